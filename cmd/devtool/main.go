// Command devtool runs operator tasks against the Huanyu database: schema
// migrations, reference data sync, admin moderation and readiness checks.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/osse101/Huanyu_Go/internal/logger"
)

const flagVerbose = "verbose"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "devtool",
		Short:        "Operator tooling for the Huanyu economy service",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional, real env vars win
			_ = godotenv.Load()

			// service logs go to stderr so they never mix with command output
			lc := logger.DefaultConfig()
			if f := cmd.Flag(flagVerbose); f != nil && f.Value.String() == "true" {
				lc = logger.DevelopmentConfig()
			}
			logger.InitLoggerWithWriter(lc, os.Stderr)
		},
	}
	root.PersistentFlags().String(flagDBURL, "", "database URL (defaults to DB_URL or the DB_* variables)")
	root.PersistentFlags().BoolP(flagVerbose, "v", false, "debug logging on stderr")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newAdminCmd(),
		newCheckDBCmd(),
	)
	return root
}

// requireArgs is cobra.ExactArgs with a usage hint in the error
func requireArgs(n int, hint string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("expected %d argument(s): %s", n, hint)
		}
		return nil
	}
}
