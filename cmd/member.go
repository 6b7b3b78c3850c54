// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/academy-service/internal/kratos"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tenancy"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
	"github.com/canonical/academy-service/pkg/tenant"
)

var (
	memberTenant string
	memberEmail  string

	kratosAdminURL string
	kratosSchemaID string
	inviteCreate   bool
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage the members of a tenant",
}

// inTenant runs fn with the tenant named by --tenant, given as id or slug, established on the context.
func inTenant(cmd *cobra.Command, fn func(context.Context, *tenant.Service) error) error {
	svc, closeFn, err := tenantService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	t, err := svc.GetTenant(cmd.Context(), memberTenant)
	if err != nil {
		return fmt.Errorf("failed to find tenant %q: %w", memberTenant, err)
	}

	return tenancy.Run(cmd.Context(), t.ID, func(ctx context.Context) error {
		return fn(ctx, svc)
	})
}

var addMemberCmd = &cobra.Command{
	Use:   "add [principal-id] [role]",
	Short: "Grant a principal a role in a tenant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := types.Role(args[1])

		return inTenant(cmd, func(ctx context.Context, svc *tenant.Service) error {
			m, err := svc.ProvisionMember(ctx, &types.Principal{ID: args[0], Email: memberEmail}, role)
			if err != nil {
				return fmt.Errorf("failed to add member: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Member added: %s as %s (membership %s)\n", m.PrincipalID, m.Role, m.ID)
			return nil
		})
	},
}

var inviteMemberCmd = &cobra.Command{
	Use:   "invite [email] [role]",
	Short: "Grant a role to the Kratos identity registered with an email",
	Long: `Look the email up in the Kratos identity store and grant the identity a role in the tenant.
With --create a missing identity is registered first.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if kratosAdminURL == "" {
			return errors.New("no identity store configured, set --kratos-admin-url or $KRATOS_ADMIN_URL")
		}

		logger := logging.NewLogger("error")
		directory := kratos.NewClient(kratosAdminURL, kratosSchemaID, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("academy-cli", logger), logger)

		p, err := directory.FindPrincipal(cmd.Context(), args[0])
		if errors.Is(err, kratos.ErrIdentityNotFound) && inviteCreate {
			p, err = directory.CreatePrincipal(cmd.Context(), args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to find identity for %s: %w", args[0], err)
		}

		return inTenant(cmd, func(ctx context.Context, svc *tenant.Service) error {
			m, err := svc.ProvisionMember(ctx, p, types.Role(args[1]))
			if err != nil {
				return fmt.Errorf("failed to add member: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Member added: %s (%s) as %s\n", p.Email, m.PrincipalID, m.Role)
			return nil
		})
	},
}

var setRoleCmd = &cobra.Command{
	Use:   "set-role [principal-id] [role]",
	Short: "Change the role of a member",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inTenant(cmd, func(ctx context.Context, svc *tenant.Service) error {
			m, err := svc.UpdateMemberRole(ctx, args[0], types.Role(args[1]))
			if err != nil {
				return fmt.Errorf("failed to update member: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Member updated: %s is now %s\n", m.PrincipalID, m.Role)
			return nil
		})
	},
}

var removeMemberCmd = &cobra.Command{
	Use:   "remove [principal-id]",
	Short: "Remove a member from a tenant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inTenant(cmd, func(ctx context.Context, svc *tenant.Service) error {
			if err := svc.RemoveMember(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to remove member: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Member removed: %s\n", args[0])
			return nil
		})
	},
}

var listMembersCmd = &cobra.Command{
	Use:   "list",
	Short: "List the members of a tenant",
	RunE: func(cmd *cobra.Command, args []string) error {
		return inTenant(cmd, func(ctx context.Context, svc *tenant.Service) error {
			members, err := svc.ListMembers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "PRINCIPAL\tEMAIL\tROLE\tSINCE")
			for _, m := range members {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.PrincipalID, m.Email, m.Role, m.CreatedAt.Format("2006-01-02"))
			}

			return w.Flush()
		})
	},
}

func init() {
	memberCmd.PersistentFlags().StringVarP(&memberTenant, "tenant", "t", "", "Tenant id or slug")
	_ = memberCmd.MarkPersistentFlagRequired("tenant")

	addMemberCmd.Flags().StringVar(&memberEmail, "email", "", "Email of the principal")

	inviteMemberCmd.Flags().StringVar(&kratosAdminURL, "kratos-admin-url", os.Getenv("KRATOS_ADMIN_URL"), "Kratos admin API URL")
	inviteMemberCmd.Flags().StringVar(&kratosSchemaID, "schema", "default", "Identity schema of created identities")
	inviteMemberCmd.Flags().BoolVar(&inviteCreate, "create", false, "Register the identity when none holds the email")

	memberCmd.AddCommand(addMemberCmd)
	memberCmd.AddCommand(inviteMemberCmd)
	memberCmd.AddCommand(setRoleCmd)
	memberCmd.AddCommand(removeMemberCmd)
	memberCmd.AddCommand(listMembersCmd)

	rootCmd.AddCommand(memberCmd)
}
