// Package trace tags each request with an id and logs its outcome.
package trace

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Koushikchikkond/vouchers/internal/log"
)

// HeaderRequestID is read from incoming requests and echoed on responses.
const HeaderRequestID = "X-Request-ID"

type ctxKey struct{}

type Metrics struct {
	TotalRequests  int64
	FailedRequests int64
	LastDurationMs int64
}

type Middleware struct {
	total  atomic.Int64
	failed atomic.Int64
	lastMs atomic.Int64
}

func New() *Middleware {
	return &Middleware{}
}

// Handler wraps next. The request context carries the id, and the logger
// found in it is replaced by one stamped with the id.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, id)

		logger := log.FromContext(r.Context()).With(log.FieldRequestID, id)
		ctx := context.WithValue(r.Context(), ctxKey{}, id)
		ctx = log.IntoContext(ctx, logger)
		r = r.WithContext(ctx)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		elapsed := time.Since(start)
		m.total.Add(1)
		m.lastMs.Store(elapsed.Milliseconds())

		level := slog.LevelInfo
		switch {
		case rw.statusCode >= 500:
			level = slog.LevelError
			m.failed.Add(1)
		case rw.statusCode >= 400:
			level = slog.LevelWarn
			m.failed.Add(1)
		}
		logger.Log(ctx, level, "HTTP request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldAction, r.URL.Query().Get("action"),
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, elapsed.Milliseconds())
	})
}

func (m *Middleware) Metrics() Metrics {
	return Metrics{
		TotalRequests:  m.total.Load(),
		FailedRequests: m.failed.Load(),
		LastDurationMs: m.lastMs.Load(),
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func GenerateRequestID() string {
	return "req_" + uuid.NewString()
}

// RequestID returns the id assigned by Handler, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
