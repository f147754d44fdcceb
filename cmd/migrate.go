package cmd

import (
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	"shopcore.GO/config"
	"shopcore.GO/migrations"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply the embedded SQL schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		src, err := iofs.New(migrations.FS, ".")
		if err != nil {
			fmt.Printf("Failed to load migrations: %v\n", err)
			os.Exit(1)
		}
		m, err := migrate.NewWithSourceInstance("iofs", src, "mysql://"+config.MySQLDSN())
		if err != nil {
			fmt.Printf("Failed to init migrate: %v\n", err)
			os.Exit(1)
		}
		defer m.Close()

		if migrateDown {
			err = m.Down()
		} else {
			err = m.Up()
		}
		if err != nil && err != migrate.ErrNoChange {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		if err == migrate.ErrNoChange {
			fmt.Println("Schema already up to date")
			return
		}
		fmt.Println("Migrations applied")
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll all migrations back instead of applying them")
	rootCmd.AddCommand(migrateCmd)
}
