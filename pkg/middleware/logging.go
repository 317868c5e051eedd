package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vfg2006/sales-quest-api/pkg/log"
)

// RequestIDHeader permite que o questctl propague o próprio ID de correlação
const RequestIDHeader = "X-Request-ID"

const slowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware injeta o ID de correlação no contexto e registra
// início e fim de cada requisição.
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context(), r.Header.Get(RequestIDHeader))
			r = r.WithContext(ctx)
			w.Header().Set(RequestIDHeader, correlationID)

			logger := log.ForContext(ctx).WithFields(log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			if log.IsDevelopment() {
				logger.Info("→ Iniciando requisição")
			} else {
				logger.WithFields(log.Fields{
					"remote_addr":    r.RemoteAddr,
					"query":          r.URL.RawQuery,
					"user_agent":     r.UserAgent(),
					"content_length": r.ContentLength,
				}).Info("Requisição iniciada")
			}

			recorder := newStatusRecorder(w)
			start := time.Now()

			next.ServeHTTP(recorder, r)

			elapsed := time.Since(start)
			logFinished(logger.WithFields(log.Fields{
				"status_code": recorder.status,
				"duration_ms": elapsed.Milliseconds(),
			}), recorder.status, elapsed)
		})
	}
}

func logFinished(logger log.Logger, status int, elapsed time.Duration) {
	message := "Requisição finalizada"
	if log.IsDevelopment() {
		mark := "✓"
		if status >= http.StatusBadRequest {
			mark = "✗"
		}
		message = fmt.Sprintf("%s Completada em %s", mark, formatDuration(elapsed))
	}

	switch {
	case status >= http.StatusInternalServerError:
		logger.Error(message)
	case status >= http.StatusBadRequest:
		logger.Warn(message)
	default:
		logger.Info(message)
	}

	if elapsed > slowRequestThreshold {
		logger.Warnf("Requisição lenta: %s", formatDuration(elapsed))
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// statusRecorder guarda o primeiro status escrito na resposta
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.status = code
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}
