// Package service exposes the transformation engine over HTTP: submit a
// recipe (by URL or inline source data) with a transformation to apply, and
// fetch stored results back by ID.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/platechange/platechange/recipe"
	"github.com/platechange/platechange/scrape"
	"github.com/platechange/platechange/storage"
	"github.com/platechange/platechange/tagger"
	"github.com/platechange/platechange/taxonomy"
	"github.com/platechange/platechange/transform"
)

// maxRequestBodySize limits POST body sizes to prevent DoS.
const maxRequestBodySize = 1 << 20 // 1 MB

// Service wires the parsing and transformation pipeline behind HTTP
// handlers.
type Service struct {
	engine  *transform.Engine
	corpus  transform.CorpusSource
	fetcher *scrape.Fetcher
	pages   *scrape.PageParser
	tg      tagger.Tagger
	tax     *taxonomy.Taxonomy
	store   storage.Store
	logger  *slog.Logger
	metrics *metrics
}

// New creates a Service. corpus may be nil, in which case style
// transformations are rejected with an error response.
func New(engine *transform.Engine, corpus transform.CorpusSource, fetcher *scrape.Fetcher, pages *scrape.PageParser,
	tg tagger.Tagger, tax *taxonomy.Taxonomy, store storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		engine:  engine,
		corpus:  corpus,
		fetcher: fetcher,
		pages:   pages,
		tg:      tg,
		tax:     tax,
		store:   store,
		logger:  logger,
		metrics: newMetrics(),
	}
}

// RegisterHandlers registers all service handlers on the mux:
//
//	POST /api/transform
//	GET  /api/recipes
//	GET  /api/recipes/{id}
//	GET  /healthz
//	GET  /metrics
func (s *Service) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/api/transform", s.handleTransform)
	mux.HandleFunc("/api/recipes", s.handleListRecipes)
	mux.HandleFunc("/api/recipes/", s.handleGetRecipe)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
}

// ListenAndServe runs the HTTP server until ctx is canceled, then shuts
// down gracefully.
func (s *Service) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	s.RegisterHandlers(mux)

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// loadRecipe builds the working recipe from the request: fetched and parsed
// from a URL, or taken inline.
func (s *Service) loadRecipe(ctx context.Context, req TransformRequest) (*recipe.Recipe, error) {
	var data recipe.SourceData
	switch {
	case req.URL != "":
		body, err := s.fetcher.Fetch(ctx, req.URL)
		if err != nil {
			return nil, fmt.Errorf("fetching recipe: %w", err)
		}
		data, err = s.pages.Parse(req.URL, body)
		if err != nil {
			return nil, fmt.Errorf("parsing recipe page: %w", err)
		}
	case req.Source != nil:
		data = *req.Source
	default:
		return nil, fmt.Errorf("either url or source is required")
	}
	return recipe.New(data, s.tg, s.tax)
}
