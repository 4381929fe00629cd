/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/ahiokk/dazzlepack/core/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dazzlepack",
	Short: "Build and release tooling for the Dazzle desktop app",
	Long: `Dazzlepack drives the Dazzle packaging pipeline: freezing the
Python app into a standalone executable bundle, compiling the Windows
setup program from it, and publishing the update manifest the app's
built-in updater polls.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		if logfile != "" {
			return logger.OpenLogFile(logfile)
		}
		return nil
	},
	SilenceUsage: true,
}

var logfile string
var verbose bool

func Execute() {
	defer logger.CloseLogFile()
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
}
