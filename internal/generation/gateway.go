package generation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"memegen/internal/backend"
	"memegen/internal/domain"
	"memegen/internal/infra"
)

// Backend is the part of the generation backend the gateway depends on.
type Backend interface {
	SubmitBaseImage(ctx context.Context, sessionID, imageRef string) (*backend.Reply, error)
	SubmitRegenerate(ctx context.Context, sessionID, directive, element string) (*backend.Reply, error)
	StatusFetcher
}

// Recorder receives one event per completed gateway call.
type Recorder interface {
	Record(ctx context.Context, event domain.GenerationEvent) error
}

const recordTimeout = 5 * time.Second

// Gateway submits a job and polls it to completion, returning exactly one
// Outcome per call. Calls share no mutable state.
type Gateway struct {
	backend  Backend
	clock    Clock
	logger   *infra.Logger
	recorder Recorder
	maxWait  time.Duration
	interval time.Duration
	newID    func() string
}

// Option customizes the gateway.
type Option func(*Gateway)

// WithClock overrides the clock used for poll timing (useful for tests).
func WithClock(clock Clock) Option {
	return func(g *Gateway) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *infra.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithRecorder stores an audit event after every call.
func WithRecorder(recorder Recorder) Option {
	return func(g *Gateway) {
		g.recorder = recorder
	}
}

// WithTiming overrides the poll budget and cadence.
func WithTiming(maxWait, interval time.Duration) Option {
	return func(g *Gateway) {
		if maxWait > 0 {
			g.maxWait = maxWait
		}
		if interval > 0 {
			g.interval = interval
		}
	}
}

// NewGateway builds a gateway around the backend client.
func NewGateway(b Backend, opts ...Option) *Gateway {
	g := &Gateway{
		backend:  b,
		clock:    SystemClock{},
		logger:   infra.DiscardLogger(),
		maxWait:  DefaultMaxWait,
		interval: DefaultInterval,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type requestIDKey struct{}

// WithRequestID tags ctx with the caller's correlation id so every log line
// of the poll session it starts can be joined with the access log.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id set by WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Generate starts an initial generation from a template image.
func (g *Gateway) Generate(ctx context.Context, sessionID, imageRef string) Outcome {
	return g.Run(ctx, domain.JobRequest{
		SessionID: sessionID,
		Mode:      domain.ModeInitial,
		ImageRef:  imageRef,
	})
}

// Regenerate restarts generation with a modification directive.
func (g *Gateway) Regenerate(ctx context.Context, sessionID string, directive domain.Directive, element string) Outcome {
	return g.Run(ctx, domain.JobRequest{
		SessionID: sessionID,
		Mode:      domain.ModeRegenerate,
		Directive: directive,
		Element:   element,
	})
}

// Run validates, submits and polls req. Invalid requests never reach the backend.
func (g *Gateway) Run(ctx context.Context, req domain.JobRequest) Outcome {
	req.Normalize()
	if err := req.Validate(); err != nil {
		g.logger.Debug().Err(err).Str("mode", string(req.Mode)).Msg("gateway: rejected request")
		return validationOutcome(err)
	}

	id := g.newID()
	lc := g.logger.With().
		Str("poll_session", id).
		Str("session_id", req.SessionID).
		Str("mode", string(req.Mode))
	if rid := RequestIDFrom(ctx); rid != "" {
		lc = lc.Str("request_id", rid)
	}
	log := lc.Logger()
	msgs := messagesFor(req.Mode)
	started := g.clock.Now()

	reply, err := g.submit(ctx, req)
	out, accepted := classifySubmit(ctx, reply, err, msgs)
	if !accepted {
		log.Warn().Err(err).Str("category", string(out.Category)).Str("message", out.Message).Msg("gateway: submission rejected")
		out.Elapsed = g.clock.Now().Sub(started)
		g.record(ctx, id, req, out, started)
		return out
	}
	log.Info().Msg("gateway: job accepted, polling")

	poller := &Poller{
		Fetcher:  g.backend,
		Clock:    g.clock,
		MaxWait:  g.maxWait,
		Interval: g.interval,
		Logger:   &log,
	}
	out = toOutcome(poller.Run(ctx, req.SessionID, req.Mode))

	log.Info().
		Bool("ok", out.OK).
		Str("category", string(out.Category)).
		Int("attempts", out.Attempts).
		Dur("elapsed", out.Elapsed).
		Msg("gateway: poll session finished")
	g.record(ctx, id, req, out, started)
	return out
}

func (g *Gateway) submit(ctx context.Context, req domain.JobRequest) (*backend.Reply, error) {
	if req.Mode == domain.ModeRegenerate {
		return g.backend.SubmitRegenerate(ctx, req.SessionID, string(req.Directive), req.Element)
	}
	return g.backend.SubmitBaseImage(ctx, req.SessionID, req.ImageRef)
}

func (g *Gateway) record(ctx context.Context, id string, req domain.JobRequest, out Outcome, started time.Time) {
	if g.recorder == nil {
		return
	}
	event := domain.GenerationEvent{
		ID:          id,
		SessionID:   req.SessionID,
		Mode:        req.Mode,
		OK:          out.OK,
		Category:    string(out.Category),
		HTTPStatus:  out.HTTPStatus(),
		ArtifactRef: out.ArtifactRef,
		Message:     out.Message,
		Attempts:    out.Attempts,
		StartedAt:   started,
		FinishedAt:  g.clock.Now(),
	}
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := g.recorder.Record(recordCtx, event); err != nil {
		g.logger.Warn().Err(err).Str("poll_session", id).Msg("gateway: failed to record generation event")
	}
}
