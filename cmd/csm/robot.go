// SPDX-License-Identifier: GPL-2.0-only

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// robotCmd groups the Robotmk robot subcommands. Both are placeholders
	// until robot management lands.
	robotCmd = &cobra.Command{
		Use:   "robot",
		Short: "Manage Robotmk robots",
	}

	robotNewCmd = &cobra.Command{
		Use:   "new <path>",
		Short: "Create a Robotmk robot (not implemented yet)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "csm robot new is not implemented yet (path: %s, config: %+v)\n", args[0], *cfg)
			return nil
		},
	}

	robotRunCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a Robotmk robot (not implemented yet)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "csm robot run is not implemented yet (config: %+v)\n", *cfg)
			return nil
		},
	}
)

func init() {
	robotCmd.AddCommand(robotNewCmd)
	robotCmd.AddCommand(robotRunCmd)
}
