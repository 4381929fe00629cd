/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/ahiokk/dazzlepack/core/config"
	"github.com/ahiokk/dazzlepack/core/logger"
	"github.com/ahiokk/dazzlepack/core/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the bundle whenever project sources change",
	Long: `Watches the project tree (excluding build outputs and the build
environment) and reruns the bundle build after changes settle. Each rebuild
is the same one-shot pipeline as 'dazzlepack build'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("watch called")
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Load(wd)
		if err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}

		builder := newBuilder(wd, cfg)

		exclude := []string{
			cfg.Build.OutputDir,
			cfg.Build.WorkDir,
			cfg.Installer.OutputDir,
			cfg.Env.Dir,
		}
		sw, err := watcher.New(wd, exclude, func() {
			if err := builder.Build(); err != nil {
				logger.Error("Rebuild failed: %v", err)
			}
		})
		if err != nil {
			return err
		}
		defer sw.Close()

		logger.Info("Watching %s for changes", wd)
		return sw.Watch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addInterpreterFlags(watchCmd)
}
