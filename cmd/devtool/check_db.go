package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const (
	defaultWaitAttempts = 30
	defaultWaitInterval = 2 * time.Second
)

func newCheckDBCmd() *cobra.Command {
	var attempts int
	var interval time.Duration

	cmd := &cobra.Command{
		Use:     "check-db",
		Aliases: []string{"wait-for-db"},
		Short:   "Wait for the database to accept connections (with retries)",
		RunE: func(cmd *cobra.Command, args []string) error {
			PrintHeader("Waiting for database...")
			return waitForDB(cmd.Context(), attempts, interval, func(ctx context.Context) error {
				pool, err := openPool(ctx, cmd)
				if err != nil {
					return err
				}
				pool.Close()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&attempts, "attempts", defaultWaitAttempts, "connection attempts before giving up")
	cmd.Flags().DurationVar(&interval, "interval", defaultWaitInterval, "pause between attempts")
	return cmd
}

// waitForDB retries ping until it succeeds, the attempts run out or ctx ends
func waitForDB(ctx context.Context, attempts int, interval time.Duration, ping func(context.Context) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = ping(ctx); err == nil {
			PrintSuccess("Database is ready")
			return nil
		}
		PrintWarning("Database not ready (%d/%d): %v", i+1, attempts, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("database failed to become ready after %d attempts: %w", attempts, err)
}
