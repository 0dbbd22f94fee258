package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"memegen/internal/domain"
	"memegen/internal/infra"
	"memegen/internal/sqlinline"
)

// Fixed width keeps lexical order equal to chronological order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// GenerationRepoSQL implements domain.GenerationRepository over database/sql.
// It is used with the pure-Go SQLite driver for single-node deployments.
type GenerationRepoSQL struct {
	db     *sql.DB
	logger *infra.Logger
}

// OpenSQLite opens (or creates) the SQLite database at dsn and applies the schema.
func OpenSQLite(ctx context.Context, dsn string, logger *infra.Logger) (*GenerationRepoSQL, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	repo := NewGenerationRepoSQL(db, logger)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// NewGenerationRepoSQL wraps an existing handle; the caller applies the schema.
func NewGenerationRepoSQL(db *sql.DB, logger *infra.Logger) *GenerationRepoSQL {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &GenerationRepoSQL{db: db, logger: logger}
}

// Migrate creates the history table when it does not exist yet.
func (r *GenerationRepoSQL) Migrate(ctx context.Context) error {
	if _, err := r.exec(ctx, sqlinline.QSQLiteCreateGenerationEvents); err != nil {
		return fmt.Errorf("history: migrate: %w", err)
	}
	return nil
}

// Record stores one event. Replaying the same event ID is a no-op.
func (r *GenerationRepoSQL) Record(ctx context.Context, ev domain.GenerationEvent) error {
	_, err := r.exec(ctx, sqlinline.QSQLiteInsertGenerationEvent,
		ev.ID,
		ev.SessionID,
		string(ev.Mode),
		ev.OK,
		ev.Category,
		ev.HTTPStatus,
		ev.ArtifactRef,
		ev.Message,
		ev.Attempts,
		ev.StartedAt.UTC().Format(sqliteTimeLayout),
		ev.FinishedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("history: record %s: %w", ev.ID, err)
	}
	return nil
}

// Recent lists the newest events, optionally for one session only.
func (r *GenerationRepoSQL) Recent(ctx context.Context, sessionID string, limit int) ([]domain.GenerationEvent, error) {
	marker, query, err := infra.ExtractMarker(sqlinline.QSQLiteRecentGenerationEvents)
	if err != nil {
		return nil, err
	}
	r.logger.Debug().Str("sql", marker).Msg("sql query")
	rows, err := r.db.QueryContext(ctx, query, sessionID, sessionID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var events []domain.GenerationEvent
	for rows.Next() {
		var (
			ev                  domain.GenerationEvent
			mode                string
			startedAt, finished string
		)
		if err := rows.Scan(
			&ev.ID,
			&ev.SessionID,
			&mode,
			&ev.OK,
			&ev.Category,
			&ev.HTTPStatus,
			&ev.ArtifactRef,
			&ev.Message,
			&ev.Attempts,
			&startedAt,
			&finished,
		); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		ev.Mode = domain.Mode(mode)
		if ev.StartedAt, err = time.Parse(sqliteTimeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("history: parse started_at: %w", err)
		}
		if ev.FinishedAt, err = time.Parse(sqliteTimeLayout, finished); err != nil {
			return nil, fmt.Errorf("history: parse finished_at: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	return events, nil
}

// Close releases the database handle.
func (r *GenerationRepoSQL) Close() error {
	return r.db.Close()
}

func (r *GenerationRepoSQL) exec(ctx context.Context, statement string, args ...any) (sql.Result, error) {
	marker, query, err := infra.ExtractMarker(statement)
	if err != nil {
		return nil, err
	}
	r.logger.Debug().Str("sql", marker).Msg("sql exec")
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("sql", marker).Msg("sql exec failed")
	}
	return res, err
}

var _ domain.GenerationRepository = (*GenerationRepoSQL)(nil)
