// Package cmd implements the bytebot CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "🤖"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "bytebot",
	Short: logo + " bytebot — Desktop Agent",
	Long:  logo + " bytebot — an AI agent that drives a virtual desktop through an OpenAI-compatible model endpoint",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(statusCmd)
}
