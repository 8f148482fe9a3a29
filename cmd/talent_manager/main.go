// Package main provides the entry point for the talent manager CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talent_manager",
	Short: "Autonomous AI talent manager",
	Long:  "Talent Manager researches trending topics, plans content strategy, and autonomously produces and uploads videos for AI talents.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
