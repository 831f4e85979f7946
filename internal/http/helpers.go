package http

import (
	"errors"
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// pathID extracts the trailing id segment from a collection route like
// /api/transactions/{id}.
func pathID(path, prefix string) string {
	id := strings.TrimPrefix(path, prefix)
	return strings.Trim(id, "/")
}

// errorFor maps domain errors onto the API error envelope. Unknown errors
// collapse to a generic 500 so internals never leak to the client.
func errorFor(err error) *Response {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrShortDescription),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, errBadPayload):
		return ErrorResponse(http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return ErrorResponse(http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateCategory):
		return ErrorResponse(http.StatusConflict, err.Error())
	default:
		return ErrorResponse(http.StatusInternalServerError, "internal error")
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	ErrorResponse(http.StatusMethodNotAllowed, "method not allowed").Write(w)
}
