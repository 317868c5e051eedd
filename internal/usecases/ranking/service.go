package ranking

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/quest"
	"github.com/vfg2006/sales-quest-api/internal/usecases/settings"
	"github.com/vfg2006/sales-quest-api/internal/usecases/snapshotting"
)

var ErrNoSalesData = errors.New(snapshotting.MessageNotFound)

// Ranker pontua o último snapshot com os pesos vigentes a cada leitura
type Ranker interface {
	SalesData(ctx context.Context) (*domain.SalesDataResponse, error)
	Leaderboard(ctx context.Context) (*domain.LeaderboardResponse, error)
	Challenge(ctx context.Context) (*domain.LeaderboardResponse, error)
	Teams(ctx context.Context) (*domain.TeamOverviewResponse, error)
}

type Service struct {
	snapshots snapshotting.Snapshotter
	settings  settings.Configurator
}

func NewService(snapshots snapshotting.Snapshotter, settings settings.Configurator) Ranker {
	return &Service{
		snapshots: snapshots,
		settings:  settings,
	}
}

func (s *Service) SalesData(ctx context.Context) (*domain.SalesDataResponse, error) {
	snapshot, scored, _, err := s.scoreLatest(ctx)
	if errors.Is(err, ErrNoSalesData) {
		return &domain.SalesDataResponse{
			Success: false,
			Message: snapshotting.MessageNotFound,
			Data:    []domain.ScoredRecord{},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.SalesDataResponse{
		Success:      true,
		Data:         scored,
		UploadedDate: &snapshot.CreatedAt,
		Title:        snapshot.Title,
	}, nil
}

func (s *Service) Leaderboard(ctx context.Context) (*domain.LeaderboardResponse, error) {
	snapshot, scored, table, err := s.scoreLatest(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.LeaderboardResponse{
		Title:        snapshot.Title,
		UploadedDate: &snapshot.CreatedAt,
		ScoringTable: table.Version,
		Ranking:      Leaderboard(scored),
	}, nil
}

func (s *Service) Challenge(ctx context.Context) (*domain.LeaderboardResponse, error) {
	snapshot, scored, table, err := s.scoreLatest(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.LeaderboardResponse{
		Title:        snapshot.Title,
		UploadedDate: &snapshot.CreatedAt,
		ScoringTable: table.Version,
		Ranking:      Challenge(scored),
	}, nil
}

func (s *Service) Teams(ctx context.Context) (*domain.TeamOverviewResponse, error) {
	snapshot, scored, _, err := s.scoreLatest(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.TeamOverviewResponse{
		Title: snapshot.Title,
		Teams: Teams(scored),
	}, nil
}

func (s *Service) scoreLatest(ctx context.Context) (*domain.Snapshot, []domain.ScoredRecord, quest.ScoringTable, error) {
	snapshot, err := s.snapshots.Latest(ctx)
	if err != nil {
		return nil, nil, quest.ScoringTable{}, err
	}

	if snapshot == nil || len(snapshot.Records) == 0 {
		return nil, nil, quest.ScoringTable{}, ErrNoSalesData
	}

	table, err := s.settings.Table(ctx)
	if err != nil {
		return nil, nil, quest.ScoringTable{}, err
	}

	// o schema do snapshot define como a taxa de conclusão é lida
	if snapshot.Schema != "" && snapshot.Schema != table.Schema {
		logrus.WithFields(logrus.Fields{
			"snapshot_id":     snapshot.ID,
			"snapshot_schema": snapshot.Schema,
			"table_schema":    table.Schema,
		}).Warn("Snapshot gravado com schema diferente da tabela configurada")
		table.Schema = snapshot.Schema
	}

	return snapshot, quest.ScoreAll(snapshot.Records, table), table, nil
}
