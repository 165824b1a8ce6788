package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"

	"techwave/internal/types"
)

// defaultMaxBodyBytes is the JSON body limit used when none is configured.
const defaultMaxBodyBytes = 100 << 10

// unmatchedRoute labels metrics for requests that matched no route.
const unmatchedRoute = "unmatched"

// responseCapture wraps an http.ResponseWriter to capture the status code
// written by downstream handlers.
type responseCapture struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rc *responseCapture) WriteHeader(code int) {
	if !rc.written {
		rc.statusCode = code
		rc.written = true
	}
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	if !rc.written {
		rc.statusCode = http.StatusOK
		rc.written = true
	}
	return rc.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rc *responseCapture) Unwrap() http.ResponseWriter {
	return rc.ResponseWriter
}

// AccessLogMiddleware writes one Apache combined log line per request to out,
// independent of the structured application logger.
func AccessLogMiddleware(out io.Writer) func(http.Handler) http.Handler {
	if out == nil {
		out = io.Discard
	}
	return func(next http.Handler) http.Handler {
		return handlers.CombinedLoggingHandler(out, next)
	}
}

// Recoverer converts a panic in the handler chain into the fallback error
// response. The stack trace is logged, never returned to the client.
func (s *Server) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				s.fail(w, r, fmt.Errorf("panic: %v", rvr), slog.String("stack", string(debug.Stack())))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware propagates the caller's X-Request-Id or generates a
// UUID, stores it in the context and echoes it in the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(types.WithRequestID(r.Context(), requestID)))
	})
}

// NewCORSMiddleware allows cross-origin requests from allowedOrigins, where
// "*" allows any origin. Preflight requests are answered directly.
// Access-Control-* headers are only written when the request carries an
// Origin header.
func NewCORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         86400,
	})
}

// MetricsMiddleware records request count and latency. It passes through
// when no collector is configured.
func (s *Server) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rc := &responseCapture{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rc, r)

		endpoint := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		s.Metrics.RecordRequest(r.Method, endpoint, strconv.Itoa(rc.statusCode), time.Since(start))
	})
}

// JSONBody decodes application/json request bodies into a generic value
// available through types.GetBody. An empty body decodes to {}. Only an
// object or array is accepted at the top level. Oversized or malformed
// bodies fail the request through the fallback responder.
func (s *Server) JSONBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isJSONContent(r) {
			next.ServeHTTP(w, r)
			return
		}

		body, err := decodeJSONBody(w, r, s.maxBodyBytes())
		if err != nil {
			s.Fail(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(types.WithBody(r.Context(), body)))
	})
}

func isJSONContent(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}

// errBodyNotObject is returned for JSON bodies whose top-level value is a
// string, number, boolean or null.
var errBodyNotObject = errors.New("json body: top-level value must be an object or array")

func decodeJSONBody(w http.ResponseWriter, r *http.Request, limit int64) (any, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("json body: read: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	if raw[0] != '{' && raw[0] != '[' {
		return nil, errBodyNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("json body: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("json body: unexpected data after top-level value")
	}
	return body, nil
}
