package handlers

import (
	"context"
	"net/http"

	"memegen/internal/domain"
	"memegen/internal/generation"
	"memegen/internal/i18n"
	"memegen/internal/middleware"
)

type getResultRequest struct {
	UserID   string `json:"user_id"`
	ImageURL string `json:"image_url"`
}

type regenerateRequest struct {
	UserID       string `json:"user_id"`
	DetailModify string `json:"detail_modify"`
	Element      string `json:"element"`
}

type generatedResponse struct {
	Success        bool   `json:"success"`
	GeneratedImage string `json:"generated_image"`
}

// GetResult uploads the chosen template and waits for the generated meme.
func (a *App) GetResult(w http.ResponseWriter, r *http.Request) {
	var req getResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, string(generation.CategoryValidation), MsgInvalidBody)
		return
	}
	out := a.Gateway.Generate(pollContext(r), req.UserID, req.ImageURL)
	a.writeOutcome(w, r, out)
}

// Regenerate applies a modification directive and waits for the new meme.
func (a *App) Regenerate(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, string(generation.CategoryValidation), MsgInvalidBody)
		return
	}
	out := a.Gateway.Regenerate(pollContext(r), req.UserID, domain.Directive(req.DetailModify), req.Element)
	a.writeOutcome(w, r, out)
}

// pollContext carries the request id into the poll session logs.
func pollContext(r *http.Request) context.Context {
	return generation.WithRequestID(r.Context(), middleware.RequestIDFromContext(r.Context()))
}

func (a *App) writeOutcome(w http.ResponseWriter, r *http.Request, out generation.Outcome) {
	if out.OK {
		a.json(w, http.StatusOK, generatedResponse{Success: true, GeneratedImage: out.ArtifactRef})
		return
	}
	if out.Category == generation.CategoryCanceled {
		a.log().Info().Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("client went away before the result was ready")
	}
	a.json(w, out.HTTPStatus(), errorResponse{
		Error:    i18n.Localize(middleware.LocaleFromContext(r.Context()), out.Message),
		Category: string(out.Category),
	})
}
