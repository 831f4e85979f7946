package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/metrics"
)

// handleReports serves the spending breakdowns for a reporting period.
//
// Query parameters:
//
//	period  week|month|quarter|year|custom|all (default all)
//	from,to custom range bounds, both optional, format 2006-01-02
//	year    restricts the monthly rollup to one calendar year
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	q := r.URL.Query()
	period := q.Get("period")
	if period == "" {
		period = "all"
	}

	var from, to core.Date
	switch period {
	case "custom":
		var err error
		if v := q.Get("from"); v != "" {
			if from, err = parseDate(v); err != nil {
				errorFor(err).Write(w)
				return
			}
		}
		if v := q.Get("to"); v != "" {
			if to, err = parseDate(v); err != nil {
				errorFor(err).Write(w)
				return
			}
		}
	default:
		// Unknown names leave the start zero, so they behave like "all".
		from = metrics.PeriodStart(period, time.Now())
	}

	year := 0
	if v := q.Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			ErrorResponse(http.StatusBadRequest, "invalid year").Write(w)
			return
		}
		year = parsed
	}

	// Relative periods move with the calendar, so today's date is part of
	// the key alongside the store version and the request params.
	key := fmt.Sprintf("v%d:%s:%s:%s:%d:%s",
		s.store.Version(), period,
		from.Format(dateLayout), to.Format(dateLayout),
		year, time.Now().Format(dateLayout))
	if view, ok := s.reportCache.Get(key); ok {
		JSONResponse(http.StatusOK, view).Write(w)
		return
	}

	filtered := metrics.Between(s.store.Transactions(), from, to)

	var monthly []metrics.Bucket
	if year != 0 {
		monthly = metrics.MonthlyBucketsForYear(filtered, year)
	} else {
		monthly = metrics.MonthlyBuckets(filtered)
	}

	view := ReportView{
		Period:     period,
		Monthly:    toBucketViews(monthly),
		Weekday:    toBucketViews(metrics.WeekdayBuckets(filtered)),
		Categories: toBucketViews(metrics.CategoryBuckets(filtered)),
		Insights:   metrics.Insights(filtered, s.store.Budgets()),
	}

	s.reportCache.Set(key, view)
	JSONResponse(http.StatusOK, view).Write(w)
}

// handleReset erases every transaction and budget. There is no undo.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	if err := s.store.ResetAll(r.Context()); err != nil {
		errorFor(err).Write(w)
		return
	}
	NoContent().Write(w)
}
