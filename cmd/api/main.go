package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-quest-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-quest-api/infrastructure/repository"
	"github.com/vfg2006/sales-quest-api/internal/api"
	"github.com/vfg2006/sales-quest-api/internal/config"
	"github.com/vfg2006/sales-quest-api/internal/csvparse"
	"github.com/vfg2006/sales-quest-api/internal/quest"
	"github.com/vfg2006/sales-quest-api/internal/scheduler"
	"github.com/vfg2006/sales-quest-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-quest-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-quest-api/internal/usecases/settings"
	"github.com/vfg2006/sales-quest-api/internal/usecases/snapshotting"
	"github.com/vfg2006/sales-quest-api/pkg/log"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Setup(cfg.App.LogLevel); err != nil {
		logrus.WithError(err).Warn("Nível de log inválido, usando 'info'")
		_ = log.Setup("info")
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	settingsRepo := repository.NewSettingsRepository(pgConn)

	table, err := quest.TableByVersion(cfg.Scoring.Table)
	if err != nil {
		logrus.WithError(err).Fatal("Tabela de pontuação inválida")
	}
	logrus.WithField("scoring_table", table.Version).Info("Tabela de pontuação carregada")

	parser, err := csvparse.NewParser(table.Schema)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar parser de CSV")
	}

	authenticator := authenticating.NewService(userRepo, cfg)
	snapshotService := snapshotting.NewService(snapshotRepo, parser)
	settingsService := settings.NewService(settingsRepo, table)
	rankingService := ranking.NewService(snapshotService, settingsService)

	retentionService := scheduler.NewSnapshotRetentionService(snapshotService, cfg)
	if err := retentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de retenção de snapshots")
	}

	server, err := api.New(
		cfg,
		pgConn,
		authenticator,
		snapshotService,
		settingsService,
		rankingService,
		table.Schema,
		retentionService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource permite achar o .env relativo ao código quando rodando via go run
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	_ = os.Chdir(path.Dir(file))
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
