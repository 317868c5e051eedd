package handler

import (
	"net/http"

	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/usecases/settings"
	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
)

const MessageSettingsUpdated = "Settings updated successfully"

func GetSettings(service settings.Configurator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weightings, err := service.Get(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar configurações")
			return
		}

		writeJSON(w, http.StatusOK, domain.SettingsResponse{
			Success:    true,
			Weightings: &weightings,
		})
	}
}

// UpdateSettings rejeita com 400 pesos que não somam 100
func UpdateSettings(service settings.Configurator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		weightings, err := service.Update(r.Context(), req.Weightings)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao salvar configurações")
			return
		}

		writeJSON(w, http.StatusOK, domain.SettingsResponse{
			Success:    true,
			Message:    MessageSettingsUpdated,
			Weightings: &weightings,
		})
	}
}
