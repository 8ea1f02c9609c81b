package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

func init() {
	goose.AddMigrationContext(upAddAllowNegative, downAddAllowNegative)
}

// Deployments that predate the negative-stock flag have products tables without
// the column. Rows keep NULL until the next availability save; readers treat
// NULL as false.
func upAddAllowNegative(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`ALTER TABLE products ADD COLUMN allow_negative BOOLEAN`)
	if err != nil {
		return fmt.Errorf("adding allow_negative column : %w", err)
	}

	_, err = tx.Exec(`UPDATE products SET allow_negative = 0 WHERE allow_negative IS NULL`)
	if err != nil {
		return fmt.Errorf("backfilling allow_negative column : %w", err)
	}

	return nil
}

func downAddAllowNegative(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`ALTER TABLE products DROP COLUMN allow_negative`)
	if err != nil {
		return fmt.Errorf("dropping allow_negative column for rollback: %w", err)
	}

	return nil
}
