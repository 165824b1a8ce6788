package core

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"techwave/internal/types"
)

// HandlerFunc is an HTTP handler that reports failures by returning them.
// Returned errors are never shown to the client.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.HandlerFunc, routing any returned error to Fail.
func (s *Server) Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.Fail(w, r, err)
		}
	}
}

// JSON marshals data and writes it with the given status. Nothing is written
// when marshalling fails; the error is returned instead.
func JSON(w http.ResponseWriter, status int, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return nil
}

// Fail is the single fallback responder: it logs err at error level and
// answers 500 with an opaque body, whatever the kind of err.
func (s *Server) Fail(w http.ResponseWriter, r *http.Request, err error) {
	s.fail(w, r, err)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, extra ...slog.Attr) {
	attrs := []any{
		slog.Any("error", err),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	if reqID := types.GetRequestID(r.Context()); reqID != "" {
		attrs = append(attrs, slog.String("request_id", reqID))
	}
	for _, a := range extra {
		attrs = append(attrs, a)
	}
	s.Logger.ErrorContext(r.Context(), "Error occurred", attrs...)

	_ = JSON(w, http.StatusInternalServerError, types.ErrorResponse{Error: types.MsgInternalServerError})
}
