// Package http exposes the rating repository to the local UI as a
// small JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"daycheck/internal/cache"
	"daycheck/internal/core"
	applog "daycheck/internal/log"
)

// Repository is the façade surface the handlers consume.
type Repository interface {
	Today() core.Rating
	Set(ctx context.Context, rating core.Rating)
	GroupedByMonth() [][]core.Rating
	Average() float64
	ValueTotals() []core.ValueCount
	WeekdayBuckets() [7][]core.Rating
	ExportCSV() string
	ImportCSV(ctx context.Context, text string) error
	OnChange(fn func([]core.Rating))
}

type Server struct {
	http.Server
	repo   Repository
	logger *applog.Logger

	// History and stats are recomputed only after a write invalidates
	// them.
	historyCache *cache.LRUCache[[]monthGroup]
	statsCache   *cache.LRUCache[statsResponse]
	caches       *cache.Manager

	started      time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run
// http.Server.
func NewServer(addr string, repo Repository, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr: addr,
		},
		repo:         repo,
		logger:       logger.WithComponent(applog.ComponentHTTP),
		historyCache: cache.NewLRUCache[[]monthGroup](4, 5*time.Minute),
		statsCache:   cache.NewLRUCache[statsResponse](4, 5*time.Minute),
		caches:       cache.NewManager(),
		started:      time.Now(),
	}

	s.caches.Register(s.historyCache)
	s.caches.Register(s.statsCache)
	s.caches.StartCleanup(10 * time.Minute)

	// Any change to the collection makes the derived views stale.
	repo.OnChange(func([]core.Rating) { s.invalidateCaches() })

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/today", s.handleToday)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/api/import", s.handleImport)

	s.Handler = applog.Middleware(logger)(mux)
	return s
}

func (s *Server) invalidateCaches() {
	s.historyCache.Delete(historyCacheKey)
	s.statsCache.Delete(statsCacheKey)
}

// Shutdown gracefully shuts down the server and cache cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
