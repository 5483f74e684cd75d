// Command reminderctl runs administrative reminder tasks against the
// configured storage without starting the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/app"
	"github.com/Dias221467/Reminder_Manager/internal/config"
	jwtutil "github.com/Dias221467/Reminder_Manager/pkg/jwt"
	"github.com/Dias221467/Reminder_Manager/pkg/logger"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "reminderctl",
		Short:         "Administer the reminder scheduler",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig()
			if err != nil {
				return err
			}
			logger.InitLogger(cfg.LogLevel)
			return nil
		},
	}

	root.AddCommand(
		newDispatchCmd(func() *config.Config { return cfg }),
		newStreakCmd(func() *config.Config { return cfg }),
		newTokenCmd(func() *config.Config { return cfg }),
	)
	return root
}

func newDispatchCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch",
		Short: "Run one dispatch cycle now and print its report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.New(ctx, cfg())
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			report, err := a.Scheduler.RunOnce(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		},
	}
}

func newStreakCmd(cfg func() *config.Config) *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "streak <user-id>",
		Short: "Print a user's streak",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := primitive.ObjectIDFromHex(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			a, err := app.New(ctx, cfg())
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if stats {
				s, err := a.Streaks.GetStreakStats(ctx, userID)
				if err != nil {
					return err
				}
				return printJSON(cmd, s)
			}
			snap, err := a.Streaks.GetStreak(ctx, userID)
			if err != nil {
				return err
			}
			return printJSON(cmd, snap)
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "include record counters")
	return cmd
}

func newTokenCmd(cfg func() *config.Config) *cobra.Command {
	var (
		email  string
		role   string
		expiry time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an API token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := primitive.ObjectIDFromHex(args[0]); err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			if expiry <= 0 {
				expiry = cfg().TokenExpiry
			}
			token, err := jwtutil.GenerateToken(args[0], email, role, cfg().JWTSecret, expiry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&role, "role", "user", "role claim (admin unlocks /admin routes)")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (defaults to TOKEN_EXPIRY)")
	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
