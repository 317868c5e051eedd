package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-quest-api/internal/api/handler"
	"github.com/vfg2006/sales-quest-api/internal/api/handler/router"
	"github.com/vfg2006/sales-quest-api/internal/config"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/scheduler"
	"github.com/vfg2006/sales-quest-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-quest-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-quest-api/internal/usecases/settings"
	"github.com/vfg2006/sales-quest-api/internal/usecases/snapshotting"
	"github.com/vfg2006/sales-quest-api/pkg/middleware"
)

const (
	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 2 * time.Second
	// cobre o upload de até 10MB em conexões lentas
	readTimeout = 30 * time.Second
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	db handler.Pinger,
	authenticator authenticating.Authenticator,
	snapshots snapshotting.Snapshotter,
	configurator settings.Configurator,
	ranker ranking.Ranker,
	schema domain.CSVSchema,
	retentionService *scheduler.SnapshotRetentionService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		SnapshotRetentionService: retentionService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Sales(snapshots, ranker, schema)...),
		router.WithRoutes(handler.Settings(configurator)...),
		router.WithRoutes(handler.Ranking(ranker)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout,
		},
	}, nil
}

// Run bloqueia até SIGINT/SIGTERM ou o cancelamento de ctx e então desliga o
// servidor. Uma falha ao abrir a porta é devolvida imediatamente.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("erro durante a execução do servidor: %w", err)
		}
		return nil
	case <-ctx.Done():
		logrus.Info("Sinal de desligamento recebido")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")
	return s.Shutdown(shutdownCtx)
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("erro durante o desligamento do servidor: %w", err)
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
