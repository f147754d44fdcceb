package config

import (
	"os"
	"strconv"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName        string
	Port           string
	Env            string
	Debug          bool
	DefaultStoreID uint
	// Add more fields as needed
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:        os.Getenv("APP_NAME"),
			Port:           os.Getenv("PORT"),
			Env:            os.Getenv("APP_ENV"),
			Debug:          os.Getenv("DEBUG") == "true",
			DefaultStoreID: storeIDFromEnv(),
		}
	})
}

func storeIDFromEnv() uint {
	v, err := strconv.ParseUint(os.Getenv("DEFAULT_STORE_ID"), 10, 32)
	if err != nil {
		return 1
	}
	return uint(v)
}
