package generation

import (
	"context"
	"time"

	"memegen/internal/backend"
	"memegen/internal/domain"
	"memegen/internal/infra"
)

// Fixed cadence agreed with the backend: a job normally finishes well within
// a minute and the status endpoint is cheap.
const (
	DefaultMaxWait  = 60 * time.Second
	DefaultInterval = 4 * time.Second
)

// State is a poll session state.
type State int

const (
	StatePolling State = iota
	StateDone
	StateError
	StateTimedOut
	StateGatewayError
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	case StateTimedOut:
		return "timed_out"
	case StateGatewayError:
		return "gateway_error"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s != StatePolling
}

// StatusFetcher issues one status query for a session.
type StatusFetcher interface {
	FetchResult(ctx context.Context, sessionID string) (*backend.Reply, error)
}

// Result is the single terminal value of a poll session.
type Result struct {
	State    State
	Artifact string
	Message  string
	// HTTPStatus is the backend status to pass through, or zero to use the
	// default status of the mapped category.
	HTTPStatus int
	Attempts   int
	StartedAt  time.Time
	Elapsed    time.Duration
}

// Poller drives one poll session at a fixed interval until the job finishes,
// fails or MaxWait elapses. The deadline only gates starting a new attempt;
// an attempt already in flight is allowed to complete.
type Poller struct {
	Fetcher  StatusFetcher
	Clock    Clock
	MaxWait  time.Duration
	Interval time.Duration
	Logger   *infra.Logger
}

// Run polls the status endpoint for sessionID. It always returns a terminal Result.
func (p *Poller) Run(ctx context.Context, sessionID string, mode domain.Mode) Result {
	clock := p.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	maxWait := p.MaxWait
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := p.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	log := logger.With().Str("session_id", sessionID).Str("mode", string(mode)).Logger()
	msgs := messagesFor(mode)

	started := clock.Now()
	res := Result{State: StatePolling, StartedAt: started}
	finish := func(v verdict) Result {
		res.State = v.state
		res.Artifact = v.artifact
		res.Message = v.message
		res.HTTPStatus = v.status
		res.Elapsed = clock.Now().Sub(started)
		return res
	}

	for clock.Now().Sub(started) < maxWait {
		res.Attempts++
		reply, err := p.Fetcher.FetchResult(ctx, sessionID)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Int("attempt", res.Attempts).Msg("poll: canceled during status call")
				return finish(verdict{state: StateCanceled, message: MsgCanceled})
			}
			log.Error().Err(err).Int("attempt", res.Attempts).Msg("poll: status call failed")
			return finish(verdict{state: StateGatewayError, message: backendAPIErrorPrefix + err.Error()})
		}

		v := classify(reply, msgs)
		log.Debug().
			Int("attempt", res.Attempts).
			Int("status", reply.StatusCode).
			Str("state", v.state.String()).
			Str("code", v.code).
			Msg("poll: attempt finished")
		if v.state.Terminal() {
			if v.state != StateDone {
				log.Warn().Int("attempt", res.Attempts).Str("state", v.state.String()).Str("message", v.message).Msg("poll: job did not succeed")
			}
			return finish(v)
		}

		if err := clock.Sleep(ctx, interval); err != nil {
			log.Info().Int("attempt", res.Attempts).Msg("poll: canceled while waiting")
			return finish(verdict{state: StateCanceled, message: MsgCanceled})
		}
	}

	log.Warn().Int("attempts", res.Attempts).Dur("max_wait", maxWait).Msg("poll: timed out")
	return finish(verdict{state: StateTimedOut, message: msgs.timedOut})
}
