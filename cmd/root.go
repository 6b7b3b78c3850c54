// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var dsn string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "academy",
	Short: "Academy Service",
	Long:  `Academy Service, a multi-tenant learning platform backend, and the CLI to manage its tenants and members.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("DSN"), "PostgreSQL DSN connection string, defaults to $DSN")
}
