package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response pairs a status code with a JSON body and knows how to write
// itself. Handlers build one and call Write exactly once.
type Response struct {
	status int
	body   any
}

func JSONResponse(status int, body any) *Response {
	return &Response{status: status, body: body}
}

// ErrorResponse wraps a message in the uniform error envelope.
func ErrorResponse(status int, message string) *Response {
	return &Response{status: status, body: map[string]string{"error": message}}
}

// NoContent produces an empty 204 response.
func NoContent() *Response {
	return &Response{status: http.StatusNoContent}
}

func (r *Response) Write(w http.ResponseWriter) {
	if r.body == nil {
		w.WriteHeader(r.status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(r.status)
	if err := json.NewEncoder(w).Encode(r.body); err != nil {
		slog.Error("Failed to encode response body", "error", err)
	}
}
