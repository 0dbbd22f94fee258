package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type historyItem struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Mode       string    `json:"mode"`
	Success    bool      `json:"success"`
	Category   string    `json:"category,omitempty"`
	Status     int       `json:"status"`
	Image      string    `json:"generated_image,omitempty"`
	Error      string    `json:"error,omitempty"`
	Attempts   int       `json:"attempts"`
	DurationMS int64     `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// ListHistory lists recent generation outcomes.
func (a *App) ListHistory(w http.ResponseWriter, r *http.Request) {
	if a.History == nil {
		a.error(w, r, http.StatusNotFound, "", MsgHistoryDisabled)
		return
	}
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			a.error(w, r, http.StatusBadRequest, "validation", MsgInvalidLimit)
			return
		}
		limit = n
	}
	events, err := a.History.Recent(r.Context(), strings.TrimSpace(r.URL.Query().Get("user_id")), limit)
	if err != nil {
		a.log().Error().Err(err).Msg("history: query failed")
		a.error(w, r, http.StatusInternalServerError, "", MsgHistoryFailed)
		return
	}
	items := make([]historyItem, 0, len(events))
	for _, ev := range events {
		items = append(items, historyItem{
			ID:         ev.ID,
			UserID:     ev.SessionID,
			Mode:       string(ev.Mode),
			Success:    ev.OK,
			Category:   ev.Category,
			Status:     ev.HTTPStatus,
			Image:      ev.ArtifactRef,
			Error:      ev.Message,
			Attempts:   ev.Attempts,
			DurationMS: ev.Duration().Milliseconds(),
			StartedAt:  ev.StartedAt,
			FinishedAt: ev.FinishedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
