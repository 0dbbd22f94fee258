package domain

import "context"

// GenerationRepository persists the outcome of every gateway call.
type GenerationRepository interface {
	Record(ctx context.Context, event GenerationEvent) error
	Recent(ctx context.Context, sessionID string, limit int) ([]GenerationEvent, error)
}
