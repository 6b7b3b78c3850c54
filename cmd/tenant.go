// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/academy-service/internal/types"
)

var (
	tenantSlug         string
	tenantLogoURL      string
	tenantPrimaryColor string
	tenantDisabled     bool
	outputFormat       string
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage tenants",
}

var createTenantCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new tenant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := tenantService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		t, err := svc.CreateTenant(cmd.Context(), &types.Tenant{
			Name:         args[0],
			Slug:         tenantSlug,
			LogoURL:      tenantLogoURL,
			PrimaryColor: tenantPrimaryColor,
			Enabled:      !tenantDisabled,
		})
		if err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Tenant created: %s (ID: %s, slug: %s)\n", t.Name, t.ID, t.Slug)
		return nil
	},
}

var getTenantCmd = &cobra.Command{
	Use:   "get [id|slug]",
	Short: "Show a tenant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := tenantService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		t, err := svc.GetTenant(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get tenant: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(t)
	},
}

var deleteTenantCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a tenant along with everything it owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := tenantService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		if err := svc.DeleteTenant(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete tenant: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Tenant deleted: %s\n", args[0])
		return nil
	},
}

var listTenantsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tenants",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := tenantService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		tenants, err := svc.ListTenants(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list tenants: %w", err)
		}

		if outputFormat == "json" {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(tenants)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tSLUG\tNAME\tENABLED\tCREATED AT")
		for _, t := range tenants {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", t.ID, t.Slug, t.Name, t.Enabled, t.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		return w.Flush()
	},
}

func init() {
	createTenantCmd.Flags().StringVar(&tenantSlug, "slug", "", "Tenant slug, derived from the name when empty")
	createTenantCmd.Flags().StringVar(&tenantLogoURL, "logo-url", "", "Logo URL")
	createTenantCmd.Flags().StringVar(&tenantPrimaryColor, "primary-color", "", "Primary color, as a hex string")
	createTenantCmd.Flags().BoolVar(&tenantDisabled, "disabled", false, "Create the tenant disabled")

	listTenantsCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text or json)")

	tenantCmd.AddCommand(createTenantCmd)
	tenantCmd.AddCommand(getTenantCmd)
	tenantCmd.AddCommand(deleteTenantCmd)
	tenantCmd.AddCommand(listTenantsCmd)

	rootCmd.AddCommand(tenantCmd)
}
