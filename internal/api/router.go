package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/gapwatch/gapwatch/internal/analysis"
	"github.com/gapwatch/gapwatch/internal/api/handlers"
	mw "github.com/gapwatch/gapwatch/internal/api/middleware"
	"github.com/gapwatch/gapwatch/internal/buildconfig"
	"github.com/gapwatch/gapwatch/internal/config"
	"github.com/gapwatch/gapwatch/internal/domain"
	"github.com/gapwatch/gapwatch/internal/service"
	"github.com/gapwatch/gapwatch/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and monitoring service.
type App struct {
	Router       *chi.Mux
	Monitor      *service.MonitorService
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(logger *zap.Logger) *App {
	decisionStore := store.NewDecisionStore()

	reversalAnalyzer := analysis.NewReversalAnalyzer(decisionStore, analysis.DefaultScorer())
	consensusAnalyzer := analysis.NewConsensusAnalyzer(decisionStore, config.SupermajorityThreshold())

	monitorSvc := service.NewMonitorService(decisionStore, reversalAnalyzer, consensusAnalyzer, logger)

	decisionHandler := handlers.NewDecisionHandler(monitorSvc)
	analysisHandler := handlers.NewAnalysisHandler(monitorSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Monitor:   monitorSvc,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health and metrics (no auth)
	r.Get("/health", healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(config.APIKey()))

		r.Route("/decisions", func(r chi.Router) {
			r.Post("/", decisionHandler.Record)
			r.Get("/", decisionHandler.List)
			r.Delete("/", decisionHandler.Clear)
			r.Get("/{id}", decisionHandler.GetByID)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", analysisHandler.ListScenarios)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/decisions", analysisHandler.ScenarioDecisions)
				r.Get("/reversals", analysisHandler.ScenarioReversals)
				r.Get("/consensus", analysisHandler.ScenarioConsensus)
				r.Get("/stats", analysisHandler.ScenarioStats)
			})
		})

		r.Route("/models", func(r chi.Router) {
			r.Get("/", analysisHandler.ListModels)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/decisions", analysisHandler.ModelDecisions)
				r.Get("/stats", analysisHandler.ModelStats)
			})
		})

		r.Get("/stats", analysisHandler.OverallStats)
	})

	return app
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"version": buildconfig.Version(),
			"commit":  buildconfig.Commit(),
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"decision_count": app.Monitor.Count(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure the store satisfies the domain interface at compile time.
var _ domain.DecisionStore = (*store.DecisionStore)(nil)
