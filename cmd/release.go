/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/ahiokk/dazzlepack/core/config"
	"github.com/ahiokk/dazzlepack/core/logger"
	"github.com/ahiokk/dazzlepack/core/release"
	"github.com/spf13/cobra"
)

var releaseNotes string

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Package the installer and publish the update manifest",
	Long: `Compiles the setup executable, hashes it and writes the update
manifest (updates/latest.json) that running copies of the app poll to
discover new versions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("release called")
		artifact, version, err := packageInstaller()
		if err != nil {
			return err
		}

		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg, err := config.Load(wd)
		if err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}

		notes := releaseNotes
		if notes == "" {
			notes = cfg.Release.Notes
		}

		_, err = release.Publish(wd, cfg, version, artifact, notes)
		return err
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().StringVar(&releaseNotes, "notes", "", "Release notes to embed in the update manifest")
	addInstallerFlags(releaseCmd)
	addInterpreterFlags(releaseCmd)
}
