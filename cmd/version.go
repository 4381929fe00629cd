/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/ahiokk/dazzlepack/core/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of dazzlepack",
	Long:  `Displays the version of dazzlepack.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dazzlepack %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
