package handler

import (
	"net/http"

	"github.com/vfg2006/sales-quest-api/internal/api/handler/router"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-quest-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-quest-api/internal/usecases/settings"
	"github.com/vfg2006/sales-quest-api/internal/usecases/snapshotting"
	"github.com/vfg2006/sales-quest-api/pkg/metrics"
	"github.com/vfg2006/sales-quest-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Sales(snapshots snapshotting.Snapshotter, ranker ranking.Ranker, schema domain.CSVSchema) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales/data",
			Method:  http.MethodGet,
			Handler: GetSalesData(ranker),
		},
		{
			Path:        "/v1/sales/upload",
			Method:      http.MethodPost,
			Handler:     UploadSalesData(snapshots),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/uploads",
			Method:      http.MethodGet,
			Handler:     ListUploads(snapshots),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:    "/v1/sales/template",
			Method:  http.MethodGet,
			Handler: GetTemplate(schema),
		},
	}
}

func Settings(service settings.Configurator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales/settings",
			Method:  http.MethodGet,
			Handler: GetSettings(service),
		},
		{
			Path:        "/v1/sales/settings",
			Method:      http.MethodPut,
			Handler:     UpdateSettings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Ranking(service ranking.Ranker) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales/leaderboard",
			Method:  http.MethodGet,
			Handler: GetLeaderboard(service),
		},
		{
			Path:    "/v1/sales/challenge",
			Method:  http.MethodGet,
			Handler: GetChallenge(service),
		},
		{
			Path:    "/v1/sales/teams",
			Method:  http.MethodGet,
			Handler: GetTeams(service),
		},
		{
			Path:        "/v1/sales/report.xlsx",
			Method:      http.MethodGet,
			Handler:     GetReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
