package domain

import "time"

// GenerationEvent is the audit record written after a gateway call returns.
type GenerationEvent struct {
	ID          string
	SessionID   string
	Mode        Mode
	OK          bool
	Category    string
	HTTPStatus  int
	ArtifactRef string
	Message     string
	Attempts    int
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Duration returns the wall-clock span covered by the event.
func (e GenerationEvent) Duration() time.Duration {
	if e.FinishedAt.Before(e.StartedAt) {
		return 0
	}
	return e.FinishedAt.Sub(e.StartedAt)
}
