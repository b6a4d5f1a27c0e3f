package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/plateseries/matriculas/internal/logger"
	"github.com/plateseries/matriculas/internal/series"
	"github.com/plateseries/matriculas/internal/storage"
)

// refreshTimeout bounds one background scrape pass.
const refreshTimeout = 2 * time.Minute

// Fetcher is the part of the scrape orchestrator the server needs.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]series.Record, error)
}

// Config carries the server knobs the binary wires from flags and env.
type Config struct {
	Addr           string
	CacheTTL       time.Duration
	RefreshCron    string   // optional cron expression for background refresh
	FallbackFile   string   // optional static dataset served on empty scrapes
	AllowedOrigins []string // CORS origins, empty allows all
}

// Server serves the aggregated plate-series table over HTTP.
type Server struct {
	cfg     Config
	fetcher Fetcher
	cache   *Cache
	engine  *gin.Engine
	cron    *cron.Cron

	// refreshMu makes refreshes single-flight: request handlers and the
	// cron job never fetch concurrently.
	refreshMu sync.Mutex
}

// New assembles the router, middleware and cache around a fetcher.
func New(cfg Config, fetcher Fetcher) *Server {
	s := &Server{
		cfg:     cfg,
		fetcher: fetcher,
		cache:   NewCache(cfg.CacheTTL),
		cron:    cron.New(),
	}

	engine := gin.New()
	engine.Use(RecoveryMiddleware(), LoggerMiddleware(), CORSMiddleware(cfg.AllowedOrigins))

	engine.GET("/series", s.handleSeries)
	engine.GET("/series.ics", s.handleCalendar)
	engine.GET("/health", s.handleHealth)
	engine.GET("/metrics", s.handleMetrics)

	s.engine = engine
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server and blocks until ctx is canceled or the listener
// fails, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.RefreshCron != "" {
		if _, err := s.cron.AddFunc(s.cfg.RefreshCron, s.backgroundRefresh); err != nil {
			return fmt.Errorf("invalid refresh cron %q: %w", s.cfg.RefreshCron, err)
		}
		s.cron.Start()
		defer s.cron.Stop()
		logger.Info("background refresh scheduled", logger.Fields{"cron": s.cfg.RefreshCron})
	}

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server listening", logger.Fields{"addr": s.cfg.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	logger.Info("api server shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// refresh repopulates an expired cache and returns what it cached.
func (s *Server) refresh(ctx context.Context) ([]series.Record, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// A concurrent caller may have refreshed while we waited for the lock.
	if records, ok := s.cache.Get(); ok {
		return records, nil
	}

	return s.fetchAndCache(ctx)
}

// backgroundRefresh repopulates the cache ahead of expiry so requests
// rarely pay fetch latency.
func (s *Server) backgroundRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if _, err := s.fetchAndCache(ctx); err != nil {
		logger.Error("scheduled refresh failed", nil, err)
	}
}

// fetchAndCache runs one scrape pass, substitutes the fallback dataset when
// the pass produced nothing, and stores the outcome. The caller must hold
// refreshMu.
func (s *Server) fetchAndCache(ctx context.Context) ([]series.Record, error) {
	records, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		logger.Error("refresh fetch failed", nil, err)
		records = nil
	}

	if len(records) == 0 && s.cfg.FallbackFile != "" {
		fallback, loadErr := storage.LoadFallback(s.cfg.FallbackFile)
		if loadErr != nil {
			logger.Error("fallback load failed", logger.Fields{"path": s.cfg.FallbackFile}, loadErr)
		} else {
			logger.Warn("serving fallback dataset", logger.Fields{
				"path":    s.cfg.FallbackFile,
				"records": len(fallback),
			})
			records = fallback
			err = nil
		}
	}

	if err != nil {
		return nil, err
	}

	s.cache.Set(records)
	logger.SetGauge("cache.records", float64(len(records)))

	return records, nil
}
