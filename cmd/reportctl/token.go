package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/withoutfanfare/developer-test/internal/app"
)

func tokenCmd() *cobra.Command {
	var (
		subject  string
		lifetime time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the report API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if a.Tokens == nil {
					return errors.New("authentication is disabled: set auth.jwt_secret")
				}
				token, err := a.Tokens.IssueToken(ctx, subject, lifetime)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "reportctl", "token subject")
	cmd.Flags().DurationVar(&lifetime, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
