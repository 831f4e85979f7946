package http

import (
	"net/http"

	"fintrack/internal/export"
	applog "fintrack/internal/log"
)

func (s *Server) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := export.WriteTransactionsCSV(w, s.store.Transactions()); err != nil {
		s.logger.ErrorContext(r.Context(), "Transaction export failed",
			applog.FieldOperation, applog.OpExport,
			applog.FieldError, err)
	}
}

func (s *Server) handleExportBudgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="budgets.csv"`)
	if err := export.WriteBudgetsCSV(w, s.store.Budgets()); err != nil {
		s.logger.ErrorContext(r.Context(), "Budget export failed",
			applog.FieldOperation, applog.OpExport,
			applog.FieldError, err)
	}
}
