package http

import (
	"net/http"

	applog "fintrack/internal/log"
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		JSONResponse(http.StatusOK, toTransactionViews(s.store.Transactions())).Write(w)

	case http.MethodPost:
		t, err := parseTransaction(r)
		if err != nil {
			errorFor(err).Write(w)
			return
		}

		added, err := s.store.AddTransaction(r.Context(), t)
		if err != nil {
			s.logger.WarnContext(r.Context(), "Transaction rejected",
				applog.FieldOperation, applog.OpCreate,
				applog.FieldError, err)
			errorFor(err).Write(w)
			return
		}
		JSONResponse(http.StatusCreated, toTransactionView(added)).Write(w)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/transactions/")
	if id == "" {
		ErrorResponse(http.StatusBadRequest, "missing transaction id").Write(w)
		return
	}

	switch r.Method {
	case http.MethodPut:
		t, err := parseTransaction(r)
		if err != nil {
			errorFor(err).Write(w)
			return
		}
		t.ID = id

		if err := s.store.UpdateTransaction(r.Context(), t); err != nil {
			errorFor(err).Write(w)
			return
		}
		JSONResponse(http.StatusOK, toTransactionView(t)).Write(w)

	case http.MethodDelete:
		// Deleting an absent id succeeds; the operation is idempotent.
		if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
			errorFor(err).Write(w)
			return
		}
		NoContent().Write(w)

	default:
		methodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}
