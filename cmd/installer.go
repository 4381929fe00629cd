/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ahiokk/dazzlepack/core/config"
	"github.com/ahiokk/dazzlepack/core/inno"
	"github.com/ahiokk/dazzlepack/core/logger"
	"github.com/spf13/cobra"
)

var (
	appVersion string
	forceBuild bool
)

var installerCmd = &cobra.Command{
	Use:   "installer",
	Short: "Compile the setup executable from the frozen bundle",
	Long: `Resolves the app version, locates the installer compiler, makes sure
a bundle exists (building one if necessary) and compiles the setup
executable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("installer called")
		_, _, err := packageInstaller()
		return err
	},
}

// packageInstaller runs the installer pipeline and returns the produced
// artifact path together with the version it was stamped with.
func packageInstaller() (artifact, version string, err error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(wd)
	if err != nil {
		return "", "", fmt.Errorf("failed to load manifest: %w", err)
	}

	version = inno.ResolveAppVersion(appVersion, filepath.Join(wd, cfg.App.VersionSource))
	logger.Info("Packaging %s %s", cfg.App.Name, version)

	builder := newBuilder(wd, cfg)
	compiler := inno.NewCompiler(wd, cfg, builder.Build)

	artifact, err = compiler.Package(version, forceBuild)
	if err != nil {
		return "", "", err
	}
	logger.Info("Installer written to %s", artifact)
	return artifact, version, nil
}

// addInstallerFlags registers the flags shared by installer and release.
func addInstallerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&appVersion, "app-version", "", "Override the app version instead of parsing it from the version source")
	cmd.Flags().BoolVar(&forceBuild, "force-build", false, "Rebuild the bundle even if one already exists")
}

func init() {
	rootCmd.AddCommand(installerCmd)

	addInstallerFlags(installerCmd)
	addInterpreterFlags(installerCmd)
}
