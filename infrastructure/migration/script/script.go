package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-quest-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-quest-api/infrastructure/repository"
	"github.com/vfg2006/sales-quest-api/internal/config"
	"github.com/vfg2006/sales-quest-api/internal/csvparse"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/quest"
	"github.com/vfg2006/sales-quest-api/pkg/log"
	"github.com/vfg2006/sales-quest-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminEmail    = "admin@salesquest.local"
	defaultAdminPassword = "Admin@123"
	sampleTitle          = "Sample Data"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		lastname VARCHAR(120) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		role_id INTEGER NOT NULL DEFAULT 3,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sales_snapshots (
		id VARCHAR(32) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		records JSONB NOT NULL,
		record_count INTEGER NOT NULL,
		uploader VARCHAR(255) NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL DEFAULT 'published',
		schema VARCHAR(32) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_snapshots_created_at ON sales_snapshots (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS sales_settings (
		key VARCHAR(64) PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func main() {
	withSample := flag.Bool("sample", false, "publica um snapshot de exemplo quando não houver nenhum")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}
	if err := log.Setup(cfg.App.LogLevel); err != nil {
		logrus.WithError(err).Warn("Usando nível de log padrão")
	}

	logrus.Info("Iniciando script de migração...")
	startTime := time.Now()

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := createSchema(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao criar tabelas")
	}

	if err := seedAdmin(ctx, repository.NewUserRepository(conn)); err != nil {
		logrus.WithError(err).Fatal("Erro ao criar usuário administrador")
	}

	if err := seedWeightings(ctx, repository.NewSettingsRepository(conn)); err != nil {
		logrus.WithError(err).Fatal("Erro ao salvar pesos padrão")
	}

	if *withSample {
		table, err := quest.TableByVersion(cfg.Scoring.Table)
		if err != nil {
			logrus.WithError(err).Fatal("Tabela de pontuação inválida")
		}
		if err := seedSample(ctx, repository.NewSnapshotRepository(conn), table.Schema); err != nil {
			logrus.WithError(err).Fatal("Erro ao publicar snapshot de exemplo")
		}
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("Migração concluída")
}

func createSchema(ctx context.Context, conn *postgres.Connection) error {
	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		queryer := postgres.TxQueryer{Tx: tx}
		for _, statement := range schemaStatements {
			if _, err := queryer.Exec(ctx, statement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("statements", len(schemaStatements)).Info("Tabelas verificadas")
	return nil
}

func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	email := strings.ToLower(envOr("ADMIN_EMAIL", defaultAdminEmail))

	existing, err := users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		logrus.WithField("email", email).Info("Administrador já existe, pulando")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(envOr("ADMIN_PASSWORD", defaultAdminPassword)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin, err := users.CreateUser(ctx, &domain.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       1,
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": admin.ID,
		"email":   email,
	}).Info("Administrador criado")
	return nil
}

func seedWeightings(ctx context.Context, settings repository.SettingsRepository) error {
	stored, err := settings.GetWeightings(ctx)
	if err != nil {
		return err
	}
	if stored != nil {
		logrus.Info("Pesos já configurados, pulando")
		return nil
	}

	if err := settings.SaveWeightings(ctx, quest.DefaultWeightings()); err != nil {
		return err
	}

	logrus.Info("Pesos padrão salvos")
	return nil
}

func seedSample(ctx context.Context, snapshots repository.SnapshotRepository, schema domain.CSVSchema) error {
	latest, err := snapshots.Latest(ctx)
	if err != nil {
		return err
	}
	if latest != nil {
		logrus.WithField("snapshot_id", latest.ID).Info("Já existe snapshot publicado, pulando exemplo")
		return nil
	}

	parser, err := csvparse.NewParser(schema)
	if err != nil {
		return err
	}

	records, err := parser.Parse(strings.NewReader(csvparse.Template(schema)))
	if err != nil {
		return err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return err
	}

	snapshot := &domain.Snapshot{
		ID:          id,
		Title:       sampleTitle,
		Records:     records,
		RecordCount: len(records),
		Uploader:    "migration",
		Status:      domain.SnapshotStatusPublished,
		Schema:      schema,
	}
	if err := snapshots.Save(ctx, snapshot); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id": id,
		"records":     len(records),
	}).Info("Snapshot de exemplo publicado")
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
