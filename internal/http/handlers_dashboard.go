package http

import (
	"fmt"
	"net/http"

	"fintrack/internal/metrics"
)

// handleDashboard serves the headline figures plus the monthly rollup. The
// view is cached per store version; any mutation shifts the key.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	key := fmt.Sprintf("v%d", s.store.Version())
	if view, ok := s.dashboardCache.Get(key); ok {
		JSONResponse(http.StatusOK, view).Write(w)
		return
	}

	ts := s.store.Transactions()

	view := DashboardView{
		TotalExpenses: metrics.TotalExpenses(ts).String(),
		TopCategory:   metrics.TopSpendingCategory(ts),
		DailyAverage:  metrics.DailyAverage(ts).String(),
		Monthly:       toBucketViews(metrics.MonthlyBuckets(ts)),
	}
	if recent, ok := metrics.MostRecentTransaction(ts); ok {
		v := toTransactionView(recent)
		view.MostRecent = &v
	}

	s.dashboardCache.Set(key, view)
	JSONResponse(http.StatusOK, view).Write(w)
}
