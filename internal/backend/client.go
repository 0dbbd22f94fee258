package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"memegen/internal/infra"
)

// ErrMissingBaseURL indicates that the client was configured without a backend address.
var ErrMissingBaseURL = errors.New("backend: base url is required")

const (
	pathPostBaseImage   = "/post_base_image"
	pathRegenerate      = "/regenerate"
	pathGetResult       = "/get_result"
	pathRegister        = "/register"
	pathProcessKeywords = "/process_keywords"
	pathProcessTags     = "/process_tags"
	pathGetBaseImages   = "/get_base_images"

	maxReplyBytes = 4 << 20
)

// Options configures the generation backend client.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client talks JSON over HTTP to the meme generation backend. Every call is a
// POST; HTTP statuses are returned to the caller untouched.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

type sessionPayload struct {
	UserID string `json:"user_id"`
}

type baseImagePayload struct {
	UserID   string `json:"user_id"`
	ImageURL string `json:"image_url"`
}

type regeneratePayload struct {
	UserID       string `json:"user_id"`
	DetailModify string `json:"detail_modify"`
	Element      string `json:"element"`
}

type keywordsPayload struct {
	UserID   string   `json:"user_id"`
	Keywords []string `json:"keywords"`
}

type tagsPayload struct {
	UserID string         `json:"user_id"`
	Tags   map[string]any `json:"tags"`
}

// NewClient constructs a client with defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SubmitBaseImage starts an initial generation from the chosen template.
func (c *Client) SubmitBaseImage(ctx context.Context, sessionID, imageRef string) (*Reply, error) {
	return c.post(ctx, pathPostBaseImage, baseImagePayload{UserID: sessionID, ImageURL: imageRef})
}

// SubmitRegenerate restarts generation with a modification directive.
func (c *Client) SubmitRegenerate(ctx context.Context, sessionID, directive, element string) (*Reply, error) {
	return c.post(ctx, pathRegenerate, regeneratePayload{
		UserID:       sessionID,
		DetailModify: directive,
		Element:      element,
	})
}

// FetchResult queries the job status for a session.
func (c *Client) FetchResult(ctx context.Context, sessionID string) (*Reply, error) {
	return c.post(ctx, pathGetResult, sessionPayload{UserID: sessionID})
}

// Register announces a new session to the backend.
func (c *Client) Register(ctx context.Context, sessionID string) (*Reply, error) {
	return c.post(ctx, pathRegister, sessionPayload{UserID: sessionID})
}

// ProcessKeywords forwards free-text keywords for a session.
func (c *Client) ProcessKeywords(ctx context.Context, sessionID string, keywords []string) (*Reply, error) {
	return c.post(ctx, pathProcessKeywords, keywordsPayload{UserID: sessionID, Keywords: keywords})
}

// ProcessTags forwards the selected tag map for a session.
func (c *Client) ProcessTags(ctx context.Context, sessionID string, tags map[string]any) (*Reply, error) {
	return c.post(ctx, pathProcessTags, tagsPayload{UserID: sessionID, Tags: tags})
}

// BaseImages lists the template images offered to a session.
func (c *Client) BaseImages(ctx context.Context, sessionID string) (*Reply, error) {
	return c.post(ctx, pathGetBaseImages, sessionPayload{UserID: sessionID})
}

func (c *Client) post(ctx context.Context, path string, payload any) (*Reply, error) {
	op := strings.TrimPrefix(path, "/")
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("backend: %s: encode request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("backend: %s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: %s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, fmt.Errorf("backend: %s: read response: %w", op, err)
	}
	reply := &Reply{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
	}
	c.logger.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Str("content_type", reply.ContentType).
		Dur("took", time.Since(start)).
		Msg("backend: call finished")
	return reply, nil
}
