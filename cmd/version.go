// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/academy-service/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the academy version",
	Long:  `Print the academy version, and the revision it was built from when known`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "App Version: %s\n", version.Version)

		if rev := version.Revision(); rev != "" {
			fmt.Fprintf(out, "Revision: %s\n", rev)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
