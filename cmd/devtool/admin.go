package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/Huanyu_Go/internal/admin"
	"github.com/osse101/Huanyu_Go/internal/database/postgres"
)

const flagActor = "actor"

// moderation is one admin.Service call taking an actor and a target
type moderation func(svc admin.Service, ctx context.Context, actorID, targetID string) error

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderate accounts as an admin (defaults to the configured super admin)",
	}
	cmd.PersistentFlags().String(flagActor, "", "acting account id (defaults to SUPER_ADMIN_ACCOUNT_ID)")

	cmd.AddCommand(
		newModerationCmd("ban", "Ban an account from the economy", admin.Service.Ban),
		newModerationCmd("unban", "Lift a ban", admin.Service.Unban),
		newModerationCmd("promote", "Grant the admin role", admin.Service.Promote),
		newModerationCmd("demote", "Revoke the admin role", admin.Service.Demote),
		newListAdminsCmd(),
	)
	return cmd
}

func newModerationCmd(use, short string, action moderation) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <account-id>",
		Short: short,
		Args:  requireArgs(1, "the target account id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(cmd, func(ctx context.Context, svc admin.Service, actorID string) error {
				if err := action(svc, ctx, actorID, args[0]); err != nil {
					return fmt.Errorf("%s %s: %w", use, args[0], err)
				}
				PrintSuccess("%s: %s", use, args[0])
				return nil
			})
		},
	}
}

func newListAdminsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List admin grants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(cmd, func(ctx context.Context, svc admin.Service, actorID string) error {
				grants, err := svc.ListAdmins(ctx, actorID)
				if err != nil {
					return err
				}
				if len(grants) == 0 {
					PrintInfo("No admins")
				}
				for _, g := range grants {
					PrintInfo("%s (%s) granted by %s at %s", g.AccountID, g.Username, g.GrantedBy, g.CreatedAt.Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
}

// withAdmin opens the store and resolves the actor before running fn
func withAdmin(cmd *cobra.Command, fn func(ctx context.Context, svc admin.Service, actorID string) error) error {
	superAdmin := os.Getenv("SUPER_ADMIN_ACCOUNT_ID")
	var actorID string
	if f := cmd.Flag(flagActor); f != nil {
		actorID = f.Value.String()
	}
	if actorID == "" {
		actorID = superAdmin
	}
	if actorID == "" {
		return fmt.Errorf("no actor: pass --%s or set SUPER_ADMIN_ACCOUNT_ID", flagActor)
	}

	pool, err := openPool(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(cmd.Context(), admin.NewService(postgres.NewStore(pool, 0), superAdmin), actorID)
}
