package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/sales-quest-api/pkg/log"
)

const healthcheckTimeout = 2 * time.Second

// Pinger é satisfeito pela conexão com o PostgreSQL
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Database string `json:"database"`
}

// HealthcheckHandler responde 503 quando o banco não responde ao ping
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:   "ok",
			Time:     time.Now().Format(time.RFC3339),
			Database: "up",
		}
		status := http.StatusOK

		ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Healthcheck sem acesso ao banco")
			response.Status = "degraded"
			response.Database = "down"
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, response)
	})
}
