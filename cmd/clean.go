/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ahiokk/dazzlepack/core/config"
	"github.com/ahiokk/dazzlepack/core/fsutil"
	"github.com/ahiokk/dazzlepack/core/logger"
	"github.com/spf13/cobra"
)

var cleanEnv bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build outputs",
	Long: `Removes the bundle, the scratch directory and installer artifacts.
Output held open by another process is retried a bounded number of times
before the command gives up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("clean called")
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Load(wd)
		if err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}

		targets := []string{
			filepath.Join(wd, cfg.Build.OutputDir),
			filepath.Join(wd, cfg.Build.WorkDir),
			filepath.Join(wd, cfg.Installer.OutputDir),
		}
		if cleanEnv {
			targets = append(targets, filepath.Join(wd, cfg.Env.Dir))
		}

		remover := fsutil.NewRemover()
		for _, target := range targets {
			if err := remover.Remove(target); err != nil {
				return err
			}
			logger.Info("Removed %s", target)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().BoolVar(&cleanEnv, "env", false, "Also remove the build environment")
}
