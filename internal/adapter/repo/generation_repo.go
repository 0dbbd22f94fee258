package repo

import (
	"context"
	"fmt"

	"memegen/internal/domain"
	"memegen/internal/infra"
	"memegen/internal/sqlinline"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 200
)

// GenerationRepoPG implements domain.GenerationRepository on Postgres.
type GenerationRepoPG struct {
	sql infra.SQLExecutor
}

// NewGenerationRepoPG wraps a marker-aware executor such as infra.SQLRunner.
func NewGenerationRepoPG(sql infra.SQLExecutor) *GenerationRepoPG {
	return &GenerationRepoPG{sql: sql}
}

// Migrate creates the history table when it does not exist yet.
func (r *GenerationRepoPG) Migrate(ctx context.Context) error {
	if _, err := r.sql.Exec(ctx, sqlinline.QCreateGenerationEvents); err != nil {
		return fmt.Errorf("history: migrate: %w", err)
	}
	return nil
}

// Record stores one event. Replaying the same event ID is a no-op.
func (r *GenerationRepoPG) Record(ctx context.Context, ev domain.GenerationEvent) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertGenerationEvent,
		ev.ID,
		ev.SessionID,
		string(ev.Mode),
		ev.OK,
		ev.Category,
		ev.HTTPStatus,
		ev.ArtifactRef,
		ev.Message,
		ev.Attempts,
		ev.StartedAt.UTC(),
		ev.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("history: record %s: %w", ev.ID, err)
	}
	return nil
}

// Recent lists the newest events, optionally for one session only.
func (r *GenerationRepoPG) Recent(ctx context.Context, sessionID string, limit int) ([]domain.GenerationEvent, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QRecentGenerationEvents, sessionID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var events []domain.GenerationEvent
	for rows.Next() {
		var (
			ev   domain.GenerationEvent
			mode string
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
			&ev.StartedAt,
			&ev.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		ev.Mode = domain.Mode(mode)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	return events, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRecentLimit
	}
	if limit > maxRecentLimit {
		return maxRecentLimit
	}
	return limit
}

var _ domain.GenerationRepository = (*GenerationRepoPG)(nil)
