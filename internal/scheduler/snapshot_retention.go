// Package scheduler contém os serviços agendados da API
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-quest-api/internal/config"
	"github.com/vfg2006/sales-quest-api/internal/usecases/snapshotting"
	"github.com/vfg2006/sales-quest-api/pkg/metrics"
)

type SnapshotRetentionConfig struct {
	CronSchedule  string
	RetentionDays int
	SyncEnabled   bool
}

// SnapshotRetentionService remove periodicamente snapshots antigos, preservando o último
type SnapshotRetentionService struct {
	scheduler           *gocron.Scheduler
	snapshots           snapshotting.Snapshotter
	config              SnapshotRetentionConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastDeleted         int64
	lastError           string
}

func NewSnapshotRetentionService(snapshots snapshotting.Snapshotter, cfg *config.Config) *SnapshotRetentionService {
	retentionConfig := SnapshotRetentionConfig{
		CronSchedule:  cfg.SnapshotRetention.CronSchedule, // Default: 3h da manhã todos os dias
		RetentionDays: cfg.SnapshotRetention.Days,
		SyncEnabled:   cfg.SnapshotRetention.Enabled, // Default: desabilitado
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  retentionConfig.CronSchedule,
		"retention_days": retentionConfig.RetentionDays,
	}).Info("Configuração do agendador de retenção de snapshots carregada")

	return &SnapshotRetentionService{
		scheduler: gocron.NewScheduler(time.Local),
		snapshots: snapshots,
		config:    retentionConfig,
	}
}

func (s *SnapshotRetentionService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de retenção de snapshots desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de retenção de snapshots")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.PurgeSnapshots(ctx); err != nil {
			logrus.WithError(err).Error("Erro na retenção de snapshots")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar retenção de snapshots: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de retenção de snapshots")
		s.scheduler.Stop()
	}()

	return nil
}

// PurgeSnapshots executa uma rodada de retenção. Se já houver uma em andamento, não faz nada.
func (s *SnapshotRetentionService) PurgeSnapshots(ctx context.Context) (int64, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Retenção de snapshots já está em execução")
		return 0, nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithField("retention_days", s.config.RetentionDays).Info("Iniciando retenção de snapshots")

	deleted, err := s.snapshots.Purge(ctx, s.config.RetentionDays)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastDeleted = deleted
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.syncMutex.Unlock()

	if err != nil {
		return 0, err
	}

	metrics.RecordSnapshotsPurged(deleted)

	logrus.WithField("snapshot_deleted", deleted).Info("Retenção de snapshots concluída")

	return deleted, nil
}

// TriggerManualSync inicia manualmente uma rodada de retenção
func (s *SnapshotRetentionService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Retenção de snapshots já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando retenção manual de snapshots")
	go func() {
		if _, err := s.PurgeSnapshots(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na retenção manual de snapshots")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotRetentionService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"retention_days":         s.config.RetentionDays,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_deleted":           s.lastDeleted,
		"last_error":             s.lastError,
	}
}
