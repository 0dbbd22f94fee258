package repo

import (
	"context"
	"fmt"
	"strings"

	"memegen/internal/domain"
	"memegen/internal/infra"
)

// History is a generation repository that owns a connection.
type History interface {
	domain.GenerationRepository
	Close() error
}

// Open selects the history backend from the database URL scheme. An empty URL
// disables history and returns (nil, nil).
func Open(ctx context.Context, databaseURL string, logger *infra.Logger) (History, error) {
	databaseURL = strings.TrimSpace(databaseURL)
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	switch {
	case databaseURL == "":
		return nil, nil
	case infra.IsPostgresURL(databaseURL):
		pool, err := infra.NewDBPool(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		r := NewGenerationRepoPG(infra.NewSQLRunner(pool, *logger))
		if err := r.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &pgHistory{GenerationRepoPG: r, close: pool.Close}, nil
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return openSQLiteHistory(ctx, strings.TrimPrefix(strings.TrimPrefix(databaseURL, "sqlite:"), "//"), logger)
	case strings.HasPrefix(databaseURL, "file:"):
		return openSQLiteHistory(ctx, databaseURL, logger)
	default:
		return nil, fmt.Errorf("history: unsupported database url scheme in %q", redact(databaseURL))
	}
}

// openSQLiteHistory keeps a failed open from surfacing as a non-nil History
// holding a nil *GenerationRepoSQL.
func openSQLiteHistory(ctx context.Context, dsn string, logger *infra.Logger) (History, error) {
	r, err := OpenSQLite(ctx, dsn, logger)
	if err != nil {
		return nil, err
	}
	return r, nil
}

type pgHistory struct {
	*GenerationRepoPG
	close func()
}

func (h *pgHistory) Close() error {
	h.close()
	return nil
}

func redact(databaseURL string) string {
	if i := strings.Index(databaseURL, "://"); i >= 0 {
		return databaseURL[:i+3] + "..."
	}
	if i := strings.Index(databaseURL, ":"); i >= 0 {
		return databaseURL[:i+1] + "..."
	}
	return "..."
}
