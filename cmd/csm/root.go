// SPDX-License-Identifier: GPL-2.0-only

// Package cmd contains all CLI commands for csm.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Checkmk/csm/internal/config"
	"github.com/Checkmk/csm/internal/mambarc"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"

	// verbose enables debug output.
	verbose bool
	// noopMode suppresses all side effects, only reporting intended actions.
	noopMode bool

	// cfg is the configuration loaded from ~/.csmrc, overlaid with the
	// --noop flag. Populated by the root PersistentPreRunE before any
	// subcommand runs.
	cfg *config.Config

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "csm",
		Short: "Checkmk synthetic monitoring command-line tool",
		Long: TitleStyle.Render("csm") + SubtitleStyle.Render(" - Checkmk synthetic monitoring command-line tool") + `

csm manages Robotmk environments and robots on top of micromamba.
A usable micromamba is located automatically: a copy on $PATH is
preferred, falling back to a cached copy downloaded by csm.

` + SubtitleStyle.Render("Examples:") + `
  csm env create            Create the environment for this directory
  csm env list              List existing environments
  csm robot run             Run a Robotmk robot`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debugging output")
	rootCmd.PersistentFlags().BoolVarP(&noopMode, "noop", "n", false, "don't make any changes, only print what would happen")

	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(robotCmd)
}

// setup configures logging, loads ~/.csmrc, and creates a default ~/.mambarc.
// It runs once before every subcommand.
func setup(_ *cobra.Command, _ []string) error {
	// Info level is the default so noop-mode messages are always visible.
	log.SetReportTimestamp(false)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", config.FileName, err)
	}
	cfg = loaded
	if noopMode {
		cfg.NoopMode = true
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to determine home directory: %w", err)
	}
	if err := mambarc.EnsureDefault(cfg, home); err != nil {
		log.Warn("Could not create "+mambarc.FileName+", but continuing", "err", err)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main() and only needs to happen once.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
