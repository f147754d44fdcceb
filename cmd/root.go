package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shopcore",
	Short: "Store-scoped order and inventory domain service",
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewFigure("shopcore", "", true).Print()
		_ = cmd.Help()
	},
}

// Execute runs the CLI. Registered extension commands are applied
// before dispatch.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
