package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "greenmart",
	Short: "Greenmart shop backend",
	Long: `Greenmart serves the shop API: catalog browsing, guest checkout,
seller product management and token based authentication.

Configuration is read from an optional .env file and the environment.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Path to the .env file (missing file is ignored)")
}
