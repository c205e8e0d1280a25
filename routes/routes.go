package routes

import (
	"context"
	"net/http"
	"time"

	_ "github.com/Dosada05/swiss-system/docs" // registers /swagger/doc.json
	"github.com/Dosada05/swiss-system/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// HealthChecker is satisfied by *sql.DB.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer // nil disables /metrics
	Health         HealthChecker
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", healthHandler(opts.Health))
	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket живёт вне таймаута, иначе соединение оборвётся
	router.Get("/ws", webSocketHandler.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Route("/players", func(r chi.Router) {
			r.Post("/", playerHandler.RegisterPlayer)
			r.Get("/", playerHandler.ListPlayers)
			r.Delete("/", playerHandler.DeletePlayers)
			r.Get("/count", playerHandler.CountPlayers)
			r.Get("/{playerID}", playerHandler.GetPlayer)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Post("/", matchHandler.ReportMatch)
			r.Get("/", matchHandler.ListMatches)
			r.Delete("/", matchHandler.DeleteMatches)
		})

		r.Get("/standings", standingsHandler.PlayerStandings)
		r.Post("/standings/archive", standingsHandler.ArchiveStandings)
		r.Get("/pairings", standingsHandler.SwissPairings)
		r.Get("/rounds/current", standingsHandler.CurrentRound)
		r.Get("/stats", dashboardHandler.Stats)
	})
}

func healthHandler(hc HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if hc != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := hc.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("storage unavailable\n"))
				return
			}
		}
		_, _ = w.Write([]byte("ok\n"))
	}
}
