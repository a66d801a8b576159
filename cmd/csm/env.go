// SPDX-License-Identifier: GPL-2.0-only

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Checkmk/csm/internal/envname"
	"github.com/Checkmk/csm/internal/micromamba"
)

var (
	// envCreateName is the --name flag of `csm env create`.
	envCreateName string

	// envCmd groups the Robotmk environment subcommands.
	envCmd = &cobra.Command{
		Use:   "env",
		Short: "Manipulate Robotmk environments",
	}

	envCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an environment",
		Long: `Create a Robotmk environment via micromamba.

If --name is not given, csm looks to ` + envname.EnvFileName + ` for a "name"
field to use instead. As a last resort, the current directory name is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := envname.Resolve(envCreateName, ".")
			if err != nil {
				return err
			}
			return forwardToMicromamba(cmd, []string{
				"create", "--name", name, "--file", envname.EnvFileName, "--yes",
			})
		},
	}

	envListCmd = &cobra.Command{
		Use:   "list",
		Short: "List existing environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return forwardToMicromamba(cmd, []string{"env", "list"})
		},
	}

	envInfoCmd = &cobra.Command{
		Use:   "info",
		Short: "Display information about the micromamba setup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return forwardToMicromamba(cmd, []string{"info"})
		},
	}
)

func init() {
	envCreateCmd.Flags().StringVarP(&envCreateName, "name", "", "", "name of the environment")

	envCmd.AddCommand(envCreateCmd)
	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envInfoCmd)

	// Remaining subcommands are placeholders until their semantics land.
	for _, use := range []string{"activate", "deactivate", "run", "pack", "unpack"} {
		envCmd.AddCommand(stubCommand(use))
	}
}

// forwardToMicromamba runs micromamba with the given arguments and converts
// the outcome into the csm process exit code.
func forwardToMicromamba(cmd *cobra.Command, args []string) error {
	res := micromamba.NewRunner().Run(cmd.Context(), cfg, args)
	if code := res.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// stubCommand creates a placeholder subcommand that only reports what was
// asked of it.
func stubCommand(use string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("%s an environment (not implemented yet)", use),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "csm env %s is not implemented yet (args: %v)\n", use, args)
			return nil
		},
	}
}
