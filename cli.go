//go:build cli
// +build cli

package main

import (
	_ "shopcore.GO/custom"

	"shopcore.GO/cmd"
	"shopcore.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
