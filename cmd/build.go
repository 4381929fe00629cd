/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/ahiokk/dazzlepack/core/config"
	"github.com/ahiokk/dazzlepack/core/freeze"
	"github.com/ahiokk/dazzlepack/core/logger"
	"github.com/spf13/cobra"
)

var (
	pythonPath    string
	pythonVersion string
	skipDeps      bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Freeze the app into a standalone executable bundle",
	Long: `Provisions the isolated build environment, clears stale output and
invokes the freeze tool with the options from dazzlepack.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("build called")
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Load(wd)
		if err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}

		builder := newBuilder(wd, cfg)
		return builder.Build()
	},
}

// newBuilder applies the interpreter flags shared by build, installer,
// release and watch.
func newBuilder(wd string, cfg *config.Config) *freeze.Builder {
	builder := freeze.NewBuilder(wd, cfg)
	builder.SkipDeps = skipDeps
	builder.Env().Python = pythonPath
	builder.Env().PythonVersion = pythonVersion
	return builder
}

// addInterpreterFlags registers the interpreter flags on every command that
// can end up running a bundle build.
func addInterpreterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pythonPath, "python", "", "Path to the interpreter used to create the build environment")
	cmd.Flags().StringVar(&pythonVersion, "python-version", "", "Interpreter version for the platform launcher (e.g. 3.12)")
	cmd.Flags().BoolVar(&skipDeps, "skip-deps", false, "Skip environment provisioning")
}

func init() {
	rootCmd.AddCommand(buildCmd)

	addInterpreterFlags(buildCmd)
}
