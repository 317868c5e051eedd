package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-quest-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-quest-api/internal/api/handler/router"
	"github.com/vfg2006/sales-quest-api/internal/csvparse"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/quest"
	"github.com/vfg2006/sales-quest-api/internal/report"
	"github.com/vfg2006/sales-quest-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-quest-api/internal/usecases/settings"
	"github.com/vfg2006/sales-quest-api/internal/usecases/snapshotting"
	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
	"github.com/vfg2006/sales-quest-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

type fakeCronJob struct {
	triggered int
}

func (f *fakeCronJob) TriggerManualSync() { f.triggered++ }

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": true}
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error { return f.err }

type testAPI struct {
	router       router.Router
	snapshotRepo *mocks.MockSnapshotRepository
	settingsRepo *mocks.MockSettingsRepository
	cron         *fakeCronJob
	db           *fakePinger
}

func newTestAPI(t *testing.T) *testAPI {
	ctrl := gomock.NewController(t)

	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
	settingsRepo := mocks.NewMockSettingsRepository(ctrl)

	parser, err := csvparse.NewParser(domain.SchemaGoalActual)
	require.NoError(t, err)

	snapshots := snapshotting.NewService(snapshotRepo, parser)
	configurator := settings.NewService(settingsRepo, quest.DefaultTable())
	ranker := ranking.NewService(snapshots, configurator)
	cron := &fakeCronJob{}
	db := &fakePinger{}

	rt := router.New(
		router.WithRoutes(Healthcheck(db)...),
		router.WithRoutes(Sales(snapshots, ranker, parser.Schema())...),
		router.WithRoutes(Settings(configurator)...),
		router.WithRoutes(Ranking(ranker)...),
		router.WithRoutes(CronJobs(CronJobServices{SnapshotRetentionService: cron})...),
	)

	return &testAPI{
		router:       rt,
		snapshotRepo: snapshotRepo,
		settingsRepo: settingsRepo,
		cron:         cron,
		db:           db,
	}
}

func (a *testAPI) do(req *http.Request, claims *domain.Claims) *httptest.ResponseRecorder {
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

var (
	admin  = &domain.Claims{UserID: 1, UserName: "Admin", UserLastname: "Sales", UserRoleID: middleware.RoleAdmin}
	client = &domain.Claims{UserID: 3, UserName: "Bia", UserRoleID: middleware.RoleClient}
)

func latestSnapshot() *domain.Snapshot {
	low := domain.SalesRecord{ID: 1, Name: "Bruno Souza", Avatar: "BS", Team: "Inside"}
	low.Metrics.ClosedWon = domain.MetricValue{Goal: 100, Actual: 50}

	high := domain.SalesRecord{ID: 2, Name: "Ana Lima", Avatar: "AL", Team: "Field"}
	high.Metrics.ClosedWon = domain.MetricValue{Goal: 100, Actual: 100}

	return &domain.Snapshot{
		ID:          "snap000001",
		Title:       "Sales Data - March 2025",
		Records:     []domain.SalesRecord{low, high},
		RecordCount: 2,
		Schema:      domain.SchemaGoalActual,
		CreatedAt:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	return apiErr
}

func TestGetSalesData(t *testing.T) {
	t.Run("sem dados", func(t *testing.T) {
		api := newTestAPI(t)
		api.snapshotRepo.EXPECT().Latest(gomock.Any()).Return(nil, nil)

		rec := api.do(httptest.NewRequest(http.MethodGet, "/v1/sales/data", nil), nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var response domain.SalesDataResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.False(t, response.Success)
		assert.Equal(t, snapshotting.MessageNotFound, response.Message)
		assert.NotNil(t, response.Data)
	})

	t.Run("último snapshot pontuado", func(t *testing.T) {
		api := newTestAPI(t)
		api.snapshotRepo.EXPECT().Latest(gomock.Any()).Return(latestSnapshot(), nil)
		api.settingsRepo.EXPECT().GetWeightings(gomock.Any()).Return(nil, nil)

		rec := api.do(httptest.NewRequest(http.MethodGet, "/v1/sales/data", nil), nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var response domain.SalesDataResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.True(t, response.Success)
		assert.Equal(t, "Sales Data - March 2025", response.Title)
		require.Len(t, response.Data, 2)
		assert.Equal(t, 300, response.Data[0].TotalQuestScore)
	})
}

func TestGetLeaderboard(t *testing.T) {
	t.Run("sem dados retorna 404", func(t *testing.T) {
		api := newTestAPI(t)
		api.snapshotRepo.EXPECT().Latest(gomock.Any()).Return(nil, nil)

		rec := api.do(httptest.NewRequest(http.MethodGet, "/v1/sales/leaderboard", nil), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNoSalesData, decodeAPIError(t, rec).Code)
	})

	t.Run("ordenado por pontuação", func(t *testing.T) {
		api := newTestAPI(t)
		api.snapshotRepo.EXPECT().Latest(gomock.Any()).Return(latestSnapshot(), nil)
		api.settingsRepo.EXPECT().GetWeightings(gomock.Any()).Return(nil, nil)

		rec := api.do(httptest.NewRequest(http.MethodGet, "/v1/sales/leaderboard", nil), nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var response domain.LeaderboardResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Len(t, response.Ranking, 2)
		assert.Equal(t, "Ana Lima", response.Ranking[0].Name)
		assert.Equal(t, 1, response.Ranking[0].Position)
		assert.Equal(t, quest.DefaultTable().Version, response.ScoringTable)
	})

	t.Run("erro de banco", func(t *testing.T) {
		api := newTestAPI(t)
		api.snapshotRepo.EXPECT().Latest(gomock.Any()).Return(nil, errors.New("conexão recusada"))

		rec := api.do(httptest.NewRequest(http.MethodGet, "/v1/sales/teams", nil), nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeAPIError(t, rec).Code)
	})
}

func TestUploadSalesData(t *testing.T) {
	t.Run("exige autenticação", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(httptest.NewRequest(http.MethodPost, "/v1/sales/upload", strings.NewReader(`{}`)), nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("JSON salvo com o nome do usuário", func(t *testing.T) {
		api := newTestAPI(t)
		api.snapshotRepo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, snapshot *domain.Snapshot) error {
				assert.Equal(t, "Admin Sales", snapshot.Uploader)
				assert.Equal(t, "Março", snapshot.Title)
				assert.Equal(t, 1, snapshot.RecordCount)
				return nil
			})

		body := `{"title":"Março","salesData":[{"name":"Ana Lima","metrics":{"closed_won":{"goal":100,"actual":90}}}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/sales/upload", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		rec := api.do(req, admin)

		assert.Equal(t, http.StatusOK, rec.Code)
		var response domain.UploadResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.True(t, response.Success)
		assert.Equal(t, snapshotting.MessageSaved, response.Message)
		assert.Equal(t, 1, response.Count)
	})

	t.Run("JSON sem registros", func(t *testing.T) {
		api := newTestAPI(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/sales/upload", strings.NewReader(`{"salesData":[]}`))
		rec := api.do(req, client)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		apiErr := decodeAPIError(t, rec)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, apiErr.Code)
		assert.Equal(t, "No sales data provided", apiErr.Message)
	})

	t.Run("CSV com colunas faltando", func(t *testing.T) {
		api := newTestAPI(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/sales/upload?title=Mar", strings.NewReader("PAM,Calls Goal\nAna,10\n"))
		req.Header.Set("Content-Type", "text/csv")
		rec := api.do(req, client)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})

	t.Run("CSV do template", func(t *testing.T) {
		api := newTestAPI(t)
		api.snapshotRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/sales/upload", strings.NewReader(csvparse.Template(domain.SchemaGoalActual)))
		req.Header.Set("Content-Type", "text/csv; charset=utf-8")
		rec := api.do(req, client)

		assert.Equal(t, http.StatusOK, rec.Code)
		var response domain.UploadResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 6, response.Count)
	})

	t.Run("falha ao salvar", func(t *testing.T) {
		api := newTestAPI(t)
		api.snapshotRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disco cheio"))

		req := httptest.NewRequest(http.MethodPost, "/v1/sales/upload", strings.NewReader(`{"salesData":[{"name":"Ana"}]}`))
		rec := api.do(req, client)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to save sales data", decodeAPIError(t, rec).Message)
	})
}

func TestListUploads(t *testing.T) {
	api := newTestAPI(t)
	api.snapshotRepo.EXPECT().History(gomock.Any(), snapshotting.MaxHistory).Return([]domain.UploadHistoryEntry{
		{ID: "snap000002", Title: "Abril", RecordCount: 6, Status: domain.SnapshotStatusPublished},
		{ID: "snap000001", Title: "Março", RecordCount: 5, Status: domain.SnapshotStatusPublished},
	}, nil)

	rec := api.do(httptest.NewRequest(http.MethodGet, "/v1/sales/uploads?limit=100", nil), admin)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response domain.UploadHistoryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response.Uploads, 2)
	assert.Equal(t, "Abril", response.Uploads[0].Title)

	rec = api.do(httptest.NewRequest(http.MethodGet, "/v1/sales/uploads", nil), client)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSettings(t *testing.T) {
	t.Run("padrão quando não há pesos salvos", func(t *testing.T) {
		api := newTestAPI(t)
		api.settingsRepo.EXPECT().GetWeightings(gomock.Any()).Return(nil, nil)

		rec := api.do(httptest.NewRequest(http.MethodGet, "/v1/sales/settings", nil), nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var response domain.SettingsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, quest.DefaultWeightings(), *response.Weightings)
	})

	t.Run("soma diferente de 100", func(t *testing.T) {
		api := newTestAPI(t)

		body := `{"weightings":{"closed_won":50,"opps_passed_mrr":15,"calls":8,"pem":10,"opps_count":7}}`
		rec := api.do(httptest.NewRequest(http.MethodPut, "/v1/sales/settings", strings.NewReader(body)), admin)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		apiErr := decodeAPIError(t, rec)
		assert.Equal(t, apiErrors.ErrInvalidWeightings, apiErr.Code)
		assert.Equal(t, "Weightings must add up to 100%. Current total: 90%", apiErr.Message)
	})

	t.Run("atualiza", func(t *testing.T) {
		api := newTestAPI(t)
		want := domain.Weightings{ClosedWon: 50, OppsPassedMRR: 20, Calls: 10, PEM: 10, OppsCount: 10}
		api.settingsRepo.EXPECT().SaveWeightings(gomock.Any(), want).Return(nil)

		body := `{"weightings":{"closed_won":50,"opps_passed_mrr":20,"calls":10,"pem":10,"opps_count":10}}`
		rec := api.do(httptest.NewRequest(http.MethodPut, "/v1/sales/settings", strings.NewReader(body)), admin)

		assert.Equal(t, http.StatusOK, rec.Code)
		var response domain.SettingsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, MessageSettingsUpdated, response.Message)
	})

	t.Run("somente admin atualiza", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(httptest.NewRequest(http.MethodPut, "/v1/sales/settings", strings.NewReader(`{}`)), client)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestGetReport(t *testing.T) {
	api := newTestAPI(t)
	api.snapshotRepo.EXPECT().Latest(gomock.Any()).Return(latestSnapshot(), nil).Times(2)
	api.settingsRepo.EXPECT().GetWeightings(gomock.Any()).Return(nil, nil).Times(2)

	rec := api.do(httptest.NewRequest(http.MethodGet, "/v1/sales/report.xlsx", nil), admin)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentType, rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())
}

func TestGetTemplate(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(httptest.NewRequest(http.MethodGet, "/v1/sales/template", nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), csvparse.TemplateFilename)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PAM,Calls Goal"))
}

func TestCronJobs(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(httptest.NewRequest(http.MethodPost, "/v1/cron/snapshot-retention/run", nil), admin)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, api.cron.triggered)

	rec = api.do(httptest.NewRequest(http.MethodPost, "/v1/cron/meta/run", nil), admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil), admin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), CronJobTypeSnapshotRetention)

	rec = api.do(httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil), client)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHealthcheck(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(httptest.NewRequest(http.MethodGet, "/healthcheck", nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "up", health.Database)

	api.db.err = errors.New("connection refused")
	rec = api.do(httptest.NewRequest(http.MethodGet, "/healthcheck", nil), nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")

	rec = api.do(httptest.NewRequest(http.MethodGet, "/metrics", nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sales_quest_http_requests_total")
}
