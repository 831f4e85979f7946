// Package http exposes the store and the derived-metrics views to the
// presentation layer as a JSON API. The SPA itself is an external
// collaborator; this package only serves data.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/store"
)

type Server struct {
	http.Server

	store  *store.Store
	logger *applog.Logger

	rateLimiter *rateLimiter

	// Derived views are cached keyed by store version + request params, so
	// a mutation naturally invalidates by changing the key.
	dashboardCache *cache.LRU[DashboardView]
	reportCache    *cache.LRU[ReportView]
	cacheManager   *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(cfg *config.Config, st *store.Store, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:           ":" + cfg.Port,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		store:          st,
		logger:         logger.WithComponent(applog.ComponentHTTP),
		rateLimiter:    newRateLimiter(cfg.RateLimitPerMinute),
		dashboardCache: cache.NewLRU[DashboardView](cfg.CacheSize, cfg.CacheTTL),
		reportCache:    cache.NewLRU[ReportView](cfg.CacheSize, cfg.CacheTTL),
		cacheManager:   cache.NewManager(),
	}

	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/transactions", s.withSecurity(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withSecurity(s.handleTransactionByID))
	mux.HandleFunc("/api/budgets", s.withSecurity(s.handleBudgets))
	mux.HandleFunc("/api/budgets/", s.withSecurity(s.handleBudgetByID))
	mux.HandleFunc("/api/dashboard", s.withSecurity(s.handleDashboard))
	mux.HandleFunc("/api/reports", s.withSecurity(s.handleReports))
	mux.HandleFunc("/api/export/transactions.csv", s.withSecurity(s.handleExportTransactions))
	mux.HandleFunc("/api/export/budgets.csv", s.withSecurity(s.handleExportBudgets))
	mux.HandleFunc("/api/reset", s.withSecurity(s.handleReset))

	s.Handler = trace.Middleware(extractClientIP, mux)
	return s
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurity adds security headers and rate-limits mutating requests.
func (s *Server) withSecurity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isMutating(r.Method) && !s.rateLimiter.allow(extractClientIP(r)) {
			s.logger.WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldClientIP, extractClientIP(r),
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded").Write(w)
			return
		}

		setSecurityHeaders(w.Header())
		next(w, r)
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
