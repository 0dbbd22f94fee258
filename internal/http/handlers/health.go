package handlers

import (
	"net/http"
)

type healthResponse struct {
	Status  string `json:"status"`
	History string `json:"history"`
}

// Health reports liveness and whether generation history is being recorded.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	history := "disabled"
	if a.History != nil {
		history = "enabled"
	}
	a.json(w, http.StatusOK, healthResponse{Status: "ok", History: history})
}
