package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "market-access",
	Short: "Market-access barrier economic assessment service",
	Long: `Market-access backend CLI.

Runs the automated economic assessment calculator over the comtrade trade
table, either as a one-off calculation or behind the REST API.

Usage:
  go run ./cmd/market-access [command]

Examples:
  go run ./cmd/market-access api
  go run ./cmd/market-access assess --country "Russian Federation" --codes 010410
  go run ./cmd/market-access ping`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
