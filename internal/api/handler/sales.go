package handler

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-quest-api/internal/csvparse"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-quest-api/internal/usecases/snapshotting"
	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
	"github.com/vfg2006/sales-quest-api/pkg/log"
	"github.com/vfg2006/sales-quest-api/pkg/metrics"
	"github.com/vfg2006/sales-quest-api/pkg/middleware"
)

// MaxUploadBytes limita o corpo de um upload (JSON ou CSV)
const MaxUploadBytes = 10 << 20

// GetSalesData retorna o último snapshot pontuado com os pesos vigentes
func GetSalesData(service ranking.Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response, err := service.SalesData(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar dados de vendas")
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// UploadSalesData aceita {salesData[], title} em JSON ou o CSV bruto com ?title=
func UploadSalesData(service snapshotting.Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		uploader := ""
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			uploader = claims.DisplayName()
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)

		var (
			response *domain.UploadResponse
			err      error
		)

		if isCSV(r.Header.Get("Content-Type")) {
			body, readErr := io.ReadAll(r.Body)
			if readErr != nil {
				if isTooLarge(readErr) {
					writePayloadTooLarge(w)
					return
				}
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler o arquivo enviado", nil)
				return
			}
			response, err = service.UploadCSV(r.Context(), r.URL.Query().Get("title"), bytes.NewReader(body), uploader)
		} else {
			var request domain.UploadRequest
			if decodeErr := json.NewDecoder(r.Body).Decode(&request); decodeErr != nil {
				if isTooLarge(decodeErr) {
					writePayloadTooLarge(w)
					return
				}
				metrics.RecordUpload(metrics.UploadMalformed, 0)
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
			response, err = service.Upload(r.Context(), &request, uploader)
		}

		if err != nil {
			result := metrics.UploadFailed
			if errors.Is(err, snapshotting.ErrMalformedUpload) || errors.Is(err, snapshotting.ErrNoSalesData) {
				result = metrics.UploadMalformed
			}
			metrics.RecordUpload(result, 0)
			writeServiceError(w, r, err, "Erro ao salvar dados de vendas")
			return
		}

		metrics.RecordUpload(metrics.UploadSuccess, response.Count)
		logger.WithFields(log.Fields{
			"snapshot_id":    response.SnapshotID,
			"snapshot_count": response.Count,
		}).Info("Upload de vendas concluído")

		writeJSON(w, http.StatusOK, response)
	}
}

// ListUploads retorna o histórico de uploads, mais recente primeiro
func ListUploads(service snapshotting.Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := snapshotting.MaxHistory
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		uploads, err := service.History(r.Context(), limit)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar histórico de uploads")
			return
		}

		writeJSON(w, http.StatusOK, domain.UploadHistoryResponse{
			Success: true,
			Uploads: uploads,
		})
	}
}

// GetTemplate devolve o CSV modelo do schema configurado
func GetTemplate(schema domain.CSVSchema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+csvparse.TemplateFilename+`"`)

		if _, err := w.Write([]byte(csvparse.Template(schema))); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar template")
		}
	}
}

func isCSV(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/csv" || strings.HasSuffix(mediaType, "/csv")
}

func isTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}

func writePayloadTooLarge(w http.ResponseWriter) {
	metrics.RecordUpload(metrics.UploadMalformed, 0)
	apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "Upload acima do limite de 10MB", nil)
}
