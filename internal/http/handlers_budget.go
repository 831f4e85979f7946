package http

import (
	"net/http"

	applog "fintrack/internal/log"
)

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		JSONResponse(http.StatusOK, toBudgetViews(s.store.Budgets())).Write(w)

	case http.MethodPost:
		b, err := parseBudget(r)
		if err != nil {
			errorFor(err).Write(w)
			return
		}

		added, err := s.store.AddBudget(r.Context(), b)
		if err != nil {
			s.logger.WarnContext(r.Context(), "Budget rejected",
				applog.FieldOperation, applog.OpCreate,
				applog.FieldCategory, string(b.Category),
				applog.FieldError, err)
			errorFor(err).Write(w)
			return
		}
		JSONResponse(http.StatusCreated, toBudgetView(added)).Write(w)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleBudgetByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/budgets/")
	if id == "" {
		ErrorResponse(http.StatusBadRequest, "missing budget id").Write(w)
		return
	}

	switch r.Method {
	case http.MethodPut:
		b, err := parseBudget(r)
		if err != nil {
			errorFor(err).Write(w)
			return
		}
		b.ID = id

		if err := s.store.UpdateBudget(r.Context(), b); err != nil {
			errorFor(err).Write(w)
			return
		}

		// Re-read the stored entry; Spent was reconciled during persist.
		for _, stored := range s.store.Budgets() {
			if stored.ID == id {
				JSONResponse(http.StatusOK, toBudgetView(stored)).Write(w)
				return
			}
		}
		errorFor(nil).Write(w)

	case http.MethodDelete:
		if err := s.store.DeleteBudget(r.Context(), id); err != nil {
			errorFor(err).Write(w)
			return
		}
		NoContent().Write(w)

	default:
		methodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}
