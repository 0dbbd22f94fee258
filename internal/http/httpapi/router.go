package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"memegen/internal/http/handlers"
	"memegen/internal/infra"
	"memegen/internal/middleware"
)

// Options carries the cross-cutting settings for the router.
type Options struct {
	Logger          infra.Logger
	AllowedOrigins  []string
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
		middleware.Logger(opts.Logger),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))

		r.Post("/register", app.Register)
		r.Post("/process_keywords", app.ProcessKeywords)
		r.Get("/process_keywords", app.ProcessKeywordsMethodNotAllowed)
		r.Get("/get_base_images", app.BaseImages)
		r.Post("/get_result", app.GetResult)
		r.Post("/regenerate", app.Regenerate)
		r.Get("/history", app.ListHistory)
	})

	return r
}
