package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/withoutfanfare/developer-test/internal/app"
	"github.com/withoutfanfare/developer-test/internal/platform/sqlstore"
	"github.com/withoutfanfare/developer-test/internal/seed"
	"github.com/withoutfanfare/developer-test/internal/store"
)

func seedCmd() *cobra.Command {
	var (
		opts     seed.Options
		seedFlag uint64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users, tasks and comments",
		Long: `Insert demo data in a single transaction. The defaults match the
reference data set of 50 users, 10000 tasks and 25000 comments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			if seedFlag == 0 {
				seedFlag = uint64(time.Now().UnixNano())
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				seeder := seed.New(seedFlag, time.Now, a.Logger)

				var res seed.Result
				err := store.RunInTransaction(ctx, a.DB, func(ctx context.Context, tx *sql.Tx) error {
					var err error
					res, err = seeder.Run(ctx, sqlstore.NewTaskWriter(tx, a.Dialect, a.Logger), opts)
					return err
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d tasks, %d comments (seed %d)\n",
					res.Users, res.Tasks, res.Comments, seedFlag)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&opts.Users, "users", 50, "users to create")
	cmd.Flags().IntVar(&opts.Tasks, "tasks", 10000, "tasks to create")
	cmd.Flags().IntVar(&opts.Comments, "comments", 25000, "comments to create")
	cmd.Flags().Uint64Var(&seedFlag, "seed", 0, "random seed (0 picks one from the clock)")
	return cmd
}
