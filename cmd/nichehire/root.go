package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "nichehire",
	Short: "Job-board application lifecycle and niche-matching notification engine",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
}
