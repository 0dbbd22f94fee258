package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"memegen/internal/backend"
	"memegen/internal/domain"
	"memegen/internal/i18n"
	"memegen/internal/middleware"
)

type registerRequest struct {
	UID string `json:"uid"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UID     string `json:"uid"`
}

// Register announces a new session to the backend.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, "", MsgInvalidBody)
		return
	}
	uid := strings.TrimSpace(req.UID)
	if uid == "" {
		a.error(w, r, http.StatusBadRequest, "", domain.ErrSessionRequired.Message)
		return
	}

	reply, err := a.Backend.Register(r.Context(), uid)
	if err != nil {
		a.log().Error().Err(err).Str("uid", uid).Msg("register: backend call failed")
		a.error(w, r, http.StatusInternalServerError, "", "Registration API error: "+err.Error())
		return
	}
	if !reply.OK() {
		msg := MsgRegistrationFailed
		if env, err := reply.Envelope(); err == nil && env.Message() != "" {
			msg = env.Message()
		}
		a.log().Warn().Int("status", reply.StatusCode).Str("uid", uid).Msg("register: backend rejected session")
		a.error(w, r, reply.StatusCode, "", msg)
		return
	}
	a.json(w, http.StatusOK, registerResponse{
		Success: true,
		Message: i18n.Localize(middleware.LocaleFromContext(r.Context()), MsgRegistered),
		UID:     uid,
	})
}

type keywordsRequest struct {
	UserID   string         `json:"user_id"`
	Keywords []string       `json:"keywords"`
	Tags     map[string]any `json:"tags"`
}

// ProcessKeywords forwards keywords and then tags to the backend and returns
// the last backend envelope, preferring the tags reply.
func (a *App) ProcessKeywords(w http.ResponseWriter, r *http.Request) {
	var req keywordsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.envelopeError(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	uid := strings.TrimSpace(req.UserID)
	if uid == "" {
		uid = a.DefaultUID
	}

	var last *backend.Reply
	if len(req.Keywords) > 0 {
		reply, err := a.Backend.ProcessKeywords(r.Context(), uid, req.Keywords)
		if err != nil {
			a.log().Error().Err(err).Msg("process_keywords: keywords call failed")
			a.envelopeError(w, r, http.StatusInternalServerError, "Keywords API error: "+err.Error())
			return
		}
		if !reply.OK() {
			a.relay(w, reply)
			return
		}
		last = reply
	}
	if len(req.Tags) > 0 {
		reply, err := a.Backend.ProcessTags(r.Context(), uid, req.Tags)
		if err != nil {
			a.log().Error().Err(err).Msg("process_keywords: tags call failed")
			a.envelopeError(w, r, http.StatusInternalServerError, "Tags API error: "+err.Error())
			return
		}
		if !reply.OK() {
			a.relay(w, reply)
			return
		}
		last = reply
	}
	if last == nil {
		a.envelopeError(w, r, http.StatusBadRequest, MsgKeywordsOrTags)
		return
	}
	if !last.IsJSON() {
		a.envelopeError(w, r, http.StatusBadGateway, MsgBackendNotJSON)
		return
	}
	a.relay(w, last)
}

// ProcessKeywordsMethodNotAllowed answers non-POST requests to the keywords endpoint.
func (a *App) ProcessKeywordsMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	a.envelopeError(w, r, http.StatusMethodNotAllowed, MsgKeywordsMethod)
}

type baseImagesResponse struct {
	Success bool            `json:"success"`
	Images  json.RawMessage `json:"images"`
}

// BaseImages lists the template images offered to the default session, or to
// the session named by ?user_id=.
func (a *App) BaseImages(w http.ResponseWriter, r *http.Request) {
	uid := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if uid == "" {
		uid = a.DefaultUID
	}
	reply, err := a.Backend.BaseImages(r.Context(), uid)
	if err != nil {
		a.log().Error().Err(err).Msg("get_base_images: backend call failed")
		a.envelopeError(w, r, http.StatusInternalServerError, "Base images API error: "+err.Error())
		return
	}
	if !reply.OK() {
		a.relay(w, reply)
		return
	}
	env, err := reply.Envelope()
	if err != nil || !reply.IsJSON() {
		a.log().Warn().Int("status", reply.StatusCode).Str("content_type", reply.ContentType).Msg("get_base_images: unexpected reply")
		a.error(w, r, http.StatusBadGateway, "", MsgBaseImagesFailed)
		return
	}
	images := env.Ret
	if len(images) == 0 {
		images = json.RawMessage("null")
	}
	a.json(w, http.StatusOK, baseImagesResponse{Success: true, Images: images})
}
