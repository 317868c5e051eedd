package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
	"github.com/vfg2006/sales-quest-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSnapshotRetention = "snapshot-retention"
)

// CronJob é implementado pelos serviços do pacote scheduler
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	SnapshotRetentionService CronJob
}

func (s CronJobServices) byType(cronType string) (CronJob, bool) {
	switch cronType {
	case CronJobTypeSnapshotRetention:
		return s.SnapshotRetentionService, s.SnapshotRetentionService != nil
	}
	return nil, false
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		job, ok := services.byType(cronType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: "+CronJobTypeSnapshotRetention, nil)
			return
		}

		log.ForContext(r.Context()).WithField("cron_type", cronType).Info("Execução manual de cron job solicitada")
		job.TriggerManualSync()

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.SnapshotRetentionService != nil {
			status[CronJobTypeSnapshotRetention] = services.SnapshotRetentionService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
