package main

import (
	"github.com/spf13/cobra"

	"github.com/osse101/Huanyu_Go/internal/database/schema"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations (up, down, status, version)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				pool, err := openPool(cmd.Context(), cmd)
				if err != nil {
					return err
				}
				defer pool.Close()
				if err := schema.Up(cmd.Context(), pool); err != nil {
					return err
				}
				PrintSuccess("Migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				pool, err := openPool(cmd.Context(), cmd)
				if err != nil {
					return err
				}
				defer pool.Close()
				if err := schema.Down(cmd.Context(), pool); err != nil {
					return err
				}
				PrintSuccess("Rolled back one migration")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the applied state of every migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				pool, err := openPool(cmd.Context(), cmd)
				if err != nil {
					return err
				}
				defer pool.Close()
				return schema.Status(cmd.Context(), pool)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				pool, err := openPool(cmd.Context(), cmd)
				if err != nil {
					return err
				}
				defer pool.Close()
				v, err := schema.Version(cmd.Context(), pool)
				if err != nil {
					return err
				}
				PrintInfo("Schema version: %d", v)
				return nil
			},
		},
	)
	return cmd
}
