package memory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type memoryRow struct {
	bun.BaseModel `bun:"table:memory_entries,alias:m"`

	ID          int64    `bun:"id,pk,autoincrement"`
	RecordedAt  string   `bun:"recorded_at,notnull"`
	Demand      int      `bun:"demand,notnull"`
	Reorder     int      `bun:"reorder,notnull"`
	Supplier    string   `bun:"supplier,notnull"`
	Reliability *float64 `bun:"reliability"`
}

// PostgresRepository stores one row per entry. WriteAll replaces the table contents
// inside a transaction so the log is still saved as a whole.
type PostgresRepository struct {
	db *bun.DB
}

func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres dsn is required", contractx.ErrValidation)
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return &PostgresRepository{db: bun.NewDB(sqldb, pgdialect.New())}, nil
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().Model((*memoryRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create memory_entries table: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ReadAll(ctx context.Context) ([]contractx.MemoryEntry, error) {
	var rows []memoryRow
	if err := r.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select memory entries: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrMemoryNotFound
	}
	return fromRows(rows), nil
}

func (r *PostgresRepository) WriteAll(ctx context.Context, entries []contractx.MemoryEntry) error {
	rows := toRows(entries)
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*memoryRow)(nil)).Where("TRUE").Exec(ctx); err != nil {
			return fmt.Errorf("clear memory entries: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("insert memory entries: %w", err)
		}
		return nil
	})
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func toRows(entries []contractx.MemoryEntry) []memoryRow {
	rows := make([]memoryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, memoryRow{
			RecordedAt:  e.Timestamp,
			Demand:      e.Demand,
			Reorder:     e.Reorder,
			Supplier:    e.Supplier,
			Reliability: e.Reliability,
		})
	}
	return rows
}

func fromRows(rows []memoryRow) []contractx.MemoryEntry {
	entries := make([]contractx.MemoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, contractx.MemoryEntry{
			Timestamp:   row.RecordedAt,
			Demand:      row.Demand,
			Reorder:     row.Reorder,
			Supplier:    row.Supplier,
			Reliability: row.Reliability,
		})
	}
	return entries
}
