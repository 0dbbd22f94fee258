package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"memegen/internal/backend"
	"memegen/internal/domain"
	"memegen/internal/generation"
	"memegen/internal/i18n"
	"memegen/internal/infra"
	"memegen/internal/middleware"
)

// Generator runs one generation session per call.
type Generator interface {
	Generate(ctx context.Context, sessionID, imageRef string) generation.Outcome
	Regenerate(ctx context.Context, sessionID string, directive domain.Directive, element string) generation.Outcome
}

// BackendAPI covers the backend calls that are forwarded without polling.
type BackendAPI interface {
	Register(ctx context.Context, sessionID string) (*backend.Reply, error)
	ProcessKeywords(ctx context.Context, sessionID string, keywords []string) (*backend.Reply, error)
	ProcessTags(ctx context.Context, sessionID string, tags map[string]any) (*backend.Reply, error)
	BaseImages(ctx context.Context, sessionID string) (*backend.Reply, error)
}

// App holds the dependencies shared by every handler.
type App struct {
	Gateway    Generator
	Backend    BackendAPI
	History    domain.GenerationRepository
	DefaultUID string
	Logger     *infra.Logger
}

func (a *App) log() *infra.Logger {
	if a.Logger == nil {
		return infra.DiscardLogger()
	}
	return a.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Category string `json:"category,omitempty"`
}

// error writes the `{success:false, error}` shape used by the generation and
// registration endpoints. Known messages are localized.
func (a *App) error(w http.ResponseWriter, r *http.Request, code int, category, message string) {
	a.json(w, code, errorResponse{
		Error:    i18n.Localize(middleware.LocaleFromContext(r.Context()), message),
		Category: category,
	})
}

type envelopeResponse struct {
	Code     int    `json:"code"`
	Ret      string `json:"ret"`
	ErrorMsg string `json:"error_msg"`
}

// envelopeError writes the backend-style `{code, ret, error_msg}` shape used
// by the pass-through endpoints.
func (a *App) envelopeError(w http.ResponseWriter, r *http.Request, code int, message string) {
	a.json(w, code, envelopeResponse{
		Code:     code,
		ErrorMsg: i18n.Localize(middleware.LocaleFromContext(r.Context()), message),
	})
}

// relay copies a backend reply to the client unchanged.
func (a *App) relay(w http.ResponseWriter, reply *backend.Reply) {
	ct := reply.ContentType
	if ct == "" {
		ct = "application/json"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(reply.StatusCode)
	_, _ = w.Write(reply.Body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(dst)
}

const maxBodyBytes = 1 << 20
