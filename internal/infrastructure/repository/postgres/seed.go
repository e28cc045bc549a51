package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-coach/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the sample player records into an empty table.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM player_records`); err != nil {
		return fmt.Errorf("count player records for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := NewPlayerRepository(db).Upsert(ctx, memory.SeedRecords()); err != nil {
		return fmt.Errorf("seed player records: %w", err)
	}
	return nil
}
