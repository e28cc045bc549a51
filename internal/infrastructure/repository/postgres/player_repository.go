package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-coach/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-coach/internal/platform/querybuilder"
)

const (
	playerRecordsTable = "player_records"
	nameMatchLimit     = 25
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"name_normalized",
	"position",
	"team",
	"injury_status",
	"percent_owned",
	"seasons",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetByName narrows candidates with ILIKE on the normalized name, falling
// back to names contained in the query, and resolves with player.BestMatch.
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Record, bool, error) {
	target := player.NormalizeName(name)
	if target == "" {
		return player.Record{}, false, nil
	}

	rows, err := r.selectRecords(ctx, "select player records by name", byName(qb.Contains("name_normalized", target)))
	if err != nil {
		return player.Record{}, false, err
	}
	if len(rows) == 0 {
		rows, err = r.selectRecords(ctx, "select player records contained in name",
			byName(qb.Expr("? LIKE '%' || name_normalized || '%'", target)),
		)
		if err != nil {
			return player.Record{}, false, err
		}
	}

	rec, ok := player.BestMatch(name, rows)
	return rec, ok, nil
}

func (r *PlayerRepository) GetManyByID(ctx context.Context, ids []string) (map[string]player.Record, error) {
	out := make(map[string]player.Record, len(ids))
	for _, chunk := range player.ChunkIDs(ids, player.MaxBatchSize) {
		rows, err := r.selectRecords(ctx, "select player records by ids", qb.SelectQuery{
			Columns: playerSelectColumns,
			Table:   playerRecordsTable,
			Where:   []qb.Condition{qb.In("id", chunk)},
		})
		if err != nil {
			return nil, err
		}
		for _, rec := range rows {
			out[rec.ID] = rec
		}
	}
	return out, nil
}

// Upsert writes records in one transaction, replacing rows with the same id.
// Each batch of player.MaxBatchSize records is one statement.
func (r *PlayerRepository) Upsert(ctx context.Context, records []player.Record) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]playerRecordModel, 0, len(records))
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("validate player record %s: %w", rec.ID, err)
		}
		model, err := toPlayerRecordModel(rec, now)
		if err != nil {
			return err
		}
		models = append(models, model)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert player records tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(models); start += player.MaxBatchSize {
		batch := models[start:min(start+player.MaxBatchSize, len(models))]
		query, args, err := qb.Upsert(playerRecordsTable, "id", batch)
		if err != nil {
			return fmt.Errorf("build upsert player records query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player records %s..: %w", batch[0].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert player records tx: %w", err)
	}
	return nil
}

func byName(cond qb.Condition) qb.SelectQuery {
	return qb.SelectQuery{
		Columns: playerSelectColumns,
		Table:   playerRecordsTable,
		Where:   []qb.Condition{cond},
		OrderBy: "id",
		Limit:   nameMatchLimit,
	}
}

func (r *PlayerRepository) selectRecords(ctx context.Context, op string, q qb.SelectQuery) ([]player.Record, error) {
	query, args, err := q.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []playerRecordModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]player.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: record %s: %w", op, row.ID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (m playerRecordModel) toDomain() (player.Record, error) {
	seasons, err := decodeSeasons(m.Seasons)
	if err != nil {
		return player.Record{}, err
	}
	pos, _ := player.ParsePosition(m.Position)
	return player.Record{
		ID:           m.ID,
		Name:         m.Name,
		Position:     pos,
		Team:         m.Team,
		InjuryStatus: player.ParseInjuryStatus(m.InjuryStatus),
		PercentOwned: m.PercentOwned,
		Seasons:      seasons,
	}, nil
}

func toPlayerRecordModel(rec player.Record, now time.Time) (playerRecordModel, error) {
	seasons, err := encodeSeasons(rec.Seasons)
	if err != nil {
		return playerRecordModel{}, err
	}
	return playerRecordModel{
		ID:             rec.ID,
		Name:           rec.Name,
		NameNormalized: player.NormalizeName(rec.Name),
		Position:       string(rec.Position),
		Team:           rec.Team,
		InjuryStatus:   string(rec.Status()),
		PercentOwned:   rec.PercentOwned,
		Seasons:        seasons,
		UpdatedAt:      now,
	}, nil
}
