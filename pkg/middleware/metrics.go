package middleware

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-quest-api/pkg/metrics"
)

// Metrics registra contagem e duração da rota. Recebe o padrão da rota
// (ex.: /v1/cron/:type/run) para não explodir a cardinalidade dos labels.
func Metrics(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := newStatusRecorder(w)

			next.ServeHTTP(recorder, r)

			metrics.RecordHTTPRequest(route, r.Method, recorder.status, time.Since(start))
		})
	}
}
