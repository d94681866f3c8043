package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"playpulse/app"
	"playpulse/internal/report"
)

// Server exposes the analytics engine over HTTP
type Server struct {
	router    *chi.Mux
	service   *app.DashboardService
	reports   *report.Generator
	reportDir string
}

// NewServer wires the routes for a loaded dashboard service
func NewServer(service *app.DashboardService, reports *report.Generator, reportDir string) *Server {
	if reports == nil {
		reports = report.NewGenerator()
	}
	s := &Server{
		router:    chi.NewRouter(),
		service:   service,
		reports:   reports,
		reportDir: reportDir,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/categories", s.handleCategories)
		r.Get("/market-share", s.handleMarketShare)
		r.Get("/ratings", s.handleRatings)
		r.Get("/frequency", s.handleFrequency)
		r.Get("/outliers", s.handleOutliers)
		r.Get("/correlations", s.handleCorrelations)
		r.Get("/sentiment", s.handleSentiment)
		r.Get("/reports/{type}", s.handleReport)

		r.Post("/trend", s.handleTrend)
		r.Post("/summarize", s.handleSummarize)
	})
}

// ServeHTTP lets the server be mounted or tested directly
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[API] Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("[API] Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
