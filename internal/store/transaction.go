package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/withoutfanfare/developer-test/internal/platform/logger"
)

// TxFn receives the open transaction. Writers built on tx see each other's rows
// before commit.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction commits when fn succeeds. A failing or panicking fn rolls
// the whole batch back so a seed run never leaves half its rows behind.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		p := recover()
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.FromContext(ctx).Error("transaction rollback failed",
				slog.String("error", rbErr.Error()),
				slog.Bool("panicked", p != nil))
			if err != nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
		if p != nil {
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		committed = true
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}
	committed = true
	return nil
}
