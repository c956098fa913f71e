// Package http exposes the billing engine and the store over a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"financas/internal/cache"
	"financas/internal/core"
	"financas/internal/log"
	"financas/internal/services"
)

type Server struct {
	http.Server
	finance     *services.FinanceService
	rateLimiter *rateLimiter
	metrics     *appMetrics

	// snapCache keeps the last read snapshot for the read-only
	// endpoints; every mutation invalidates it.
	snapCache    *cache.LRUCache[core.FinanceSnapshot]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

const snapshotCacheKey = "snapshot"

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, finance *services.FinanceService) *Server {
	mux := http.NewServeMux()

	logger := log.New(log.DefaultConfig())
	handler := log.Middleware(logger)(log.ComponentMiddleware(log.ComponentHTTP)(mux))

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: handler,
		},
		finance:      finance,
		rateLimiter:  newRateLimiter(),
		metrics:      newAppMetrics(),
		snapCache:    cache.NewLRUCache[core.FinanceSnapshot](1, 30*time.Second),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.snapCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.withMiddleware(s.handleMetrics))

	mux.HandleFunc("GET /api/snapshot", s.withMiddleware(s.handleSnapshot))

	mux.HandleFunc("POST /api/expenses", s.withMiddleware(s.handleCreateExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.withMiddleware(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withMiddleware(s.handleDeleteExpense))

	mux.HandleFunc("POST /api/incomes", s.withMiddleware(s.handleCreateIncome))
	mux.HandleFunc("PUT /api/incomes/{id}", s.withMiddleware(s.handleUpdateIncome))
	mux.HandleFunc("DELETE /api/incomes/{id}", s.withMiddleware(s.handleDeleteIncome))

	mux.HandleFunc("POST /api/cards", s.withMiddleware(s.handleCreateCard))
	mux.HandleFunc("PUT /api/cards/{id}", s.withMiddleware(s.handleUpdateCard))
	mux.HandleFunc("DELETE /api/cards/{id}", s.withMiddleware(s.handleDeleteCard))

	mux.HandleFunc("PUT /api/config", s.withMiddleware(s.handleUpdateConfig))

	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("GET /api/statements", s.withMiddleware(s.handleStatements))
	mux.HandleFunc("GET /api/installments", s.withMiddleware(s.handleInstallments))
	mux.HandleFunc("GET /api/obligations", s.withMiddleware(s.handleObligations))
	mux.HandleFunc("GET /api/projection", s.withMiddleware(s.handleProjection))
	mux.HandleFunc("GET /api/reimbursements", s.withMiddleware(s.handleReimbursements))
	mux.HandleFunc("GET /api/months", s.withMiddleware(s.handleMonths))
	mux.HandleFunc("GET /api/classify", s.withMiddleware(s.handleClassify))

	return s
}

// snapshot returns the cached snapshot or reads a fresh one.
func (s *Server) snapshot(ctx context.Context) (core.FinanceSnapshot, error) {
	if snap, ok := s.snapCache.Get(snapshotCacheKey); ok {
		s.metrics.cacheHit()
		return snap, nil
	}
	s.metrics.cacheMiss()

	snap, err := s.finance.Snapshot(ctx)
	if err != nil {
		return core.FinanceSnapshot{}, err
	}
	s.snapCache.Set(snapshotCacheKey, snap)
	return snap, nil
}

// invalidate drops the cached snapshot after a mutation.
func (s *Server) invalidate() {
	s.snapCache.Delete(snapshotCacheKey)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.finance.Snapshot(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", log.FieldError, err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown stops the server and the background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
