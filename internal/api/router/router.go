package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/smartpro/consultation-intake/internal/http/middleware"
	"github.com/smartpro/consultation-intake/internal/intake"
	"github.com/smartpro/consultation-intake/internal/submissions"
	"github.com/smartpro/consultation-intake/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	IntakeHandler      *intake.Handler
	StatsHandler       *submissions.StatsHandler
	MetricsHandler     http.Handler
	AdminJWTSecret     string
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// The intake handler owns its method gate so non-POST requests get
	// the JSON 405 body rather than chi's plain-text default.
	r.Handle("/api/consultation", http.HandlerFunc(cfg.IntakeHandler.HandleSubmit))
	r.Handle("/api/consultation/", http.HandlerFunc(cfg.IntakeHandler.HandleSubmit))

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.StatsHandler != nil && cfg.AdminJWTSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminJWTSecret))
			admin.Get("/consultation/stats", cfg.StatsHandler.GetStats)
		})
	}

	return r
}
