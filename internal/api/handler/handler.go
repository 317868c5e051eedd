package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-quest-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-quest-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-quest-api/internal/usecases/settings"
	"github.com/vfg2006/sales-quest-api/internal/usecases/snapshotting"
	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
	"github.com/vfg2006/sales-quest-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError converte os erros tipados dos casos de uso no envelope da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var (
		snapshotErr *snapshotting.SnapshotError
		settingsErr *settings.SettingsError
		authErr     *authenticating.AuthError
	)

	switch {
	case errors.Is(err, ranking.ErrNoSalesData):
		apiErrors.WriteError(w, apiErrors.ErrNoSalesData, snapshotting.MessageNotFound, nil)

	case errors.As(err, &snapshotErr):
		var details any
		if snapshotErr.SnapshotID != "" {
			details = map[string]any{"snapshot_id": snapshotErr.SnapshotID}
		}
		apiErrors.WriteError(w, snapshotErr.Code, message(snapshotErr.Details, snapshotErr.Err), details)

	case errors.As(err, &settingsErr):
		var details any
		if errors.Is(settingsErr, settings.ErrInvalidTotal) {
			details = map[string]any{"total": settingsErr.Total}
		}
		apiErrors.WriteError(w, settingsErr.Code, message(settingsErr.Details, settingsErr.Err), details)

	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, message(authErr.Details, authErr.Err), nil)

	default:
		log.ForContext(r.Context()).WithError(err).Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

func message(details string, err error) string {
	if details != "" {
		return details
	}
	return err.Error()
}
