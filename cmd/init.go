/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ahiokk/dazzlepack/core/config"
	"github.com/ahiokk/dazzlepack/core/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	force   bool
	appName string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a dazzlepack.yaml manifest",
	Long: `Writes a dazzlepack.yaml with the default pipeline settings and a
freshly generated installer AppId.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		path := filepath.Join(wd, config.FileName)
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", config.FileName)
		}

		cfg := config.Default()
		// Every scaffolded project gets its own installer identity.
		cfg.Installer.AppID = "{{" + strings.ToUpper(uuid.NewString()) + "}"
		if appName != "" {
			cfg.App.Name = appName
			cfg.Installer.OutputBase = appName + "-Setup"
			cfg.Installer.InstallDir = `{autopf}\` + appName
		}

		if err := config.Save(wd, cfg); err != nil {
			return err
		}
		logger.Info("Wrote %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite an existing manifest")
	initCmd.Flags().StringVar(&appName, "name", "", "Application name to scaffold with")
}
