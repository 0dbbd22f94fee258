package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"memegen/internal/adapter/repo"
	"memegen/internal/backend"
	"memegen/internal/generation"
	"memegen/internal/infra"
)

type globalOptions struct {
	backendURL  string
	databaseURL string
	maxWait     time.Duration
	interval    time.Duration
	verbose     bool
}

type commandContext struct {
	opts *globalOptions
}

func newCommandContext(opts *globalOptions) *commandContext {
	return &commandContext{opts: opts}
}

func (c *commandContext) logger() *infra.Logger {
	l := infra.NewCLILogger(c.opts.verbose)
	return &l
}

func (c *commandContext) backendURL() string {
	if v := strings.TrimSpace(c.opts.backendURL); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("BACKEND_URL"))
}

func (c *commandContext) databaseURL() string {
	if v := strings.TrimSpace(c.opts.databaseURL); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("DATABASE_URL"))
}

var errNoHistory = errors.New("history is not configured: pass --database-url or set DATABASE_URL")

// openHistory returns nil without error when no database is configured.
func (c *commandContext) openHistory(ctx context.Context) (repo.History, error) {
	return repo.Open(ctx, c.databaseURL(), c.logger())
}

// withGateway builds a gateway, recording to history when one is configured.
func (c *commandContext) withGateway(ctx context.Context, fn func(*generation.Gateway) error) error {
	logger := c.logger()
	baseURL := c.backendURL()
	if baseURL == "" {
		return errors.New("backend url is required: pass --backend-url or set BACKEND_URL")
	}
	client, err := backend.NewClient(backend.Options{BaseURL: baseURL, Logger: logger})
	if err != nil {
		return err
	}

	opts := []generation.Option{
		generation.WithLogger(logger),
		generation.WithTiming(c.opts.maxWait, c.opts.interval),
	}
	history, err := c.openHistory(ctx)
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
		opts = append(opts, generation.WithRecorder(history))
	}
	return fn(generation.NewGateway(client, opts...))
}
