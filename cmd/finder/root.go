package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "finder",
	Short: "Find catalog products across shopping sites",
	Long: `finder matches catalog products against marketplace and brand-store
listings using reverse image search, then resolves a product URL and listed
price per site.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
