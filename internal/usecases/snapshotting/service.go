package snapshotting

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-quest-api/infrastructure/repository"
	"github.com/vfg2006/sales-quest-api/internal/csvparse"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
	"github.com/vfg2006/sales-quest-api/pkg/utils"
)

const (
	MaxHistory = 20

	MessageSaved    = "Sales data saved successfully"
	MessageNotFound = "No sales data found"
)

type Snapshotter interface {
	Upload(ctx context.Context, request *domain.UploadRequest, uploader string) (*domain.UploadResponse, error)
	UploadCSV(ctx context.Context, title string, r io.Reader, uploader string) (*domain.UploadResponse, error)
	Latest(ctx context.Context) (*domain.Snapshot, error)
	History(ctx context.Context, limit int) ([]domain.UploadHistoryEntry, error)
	Purge(ctx context.Context, retentionDays int) (int64, error)
}

type Service struct {
	snapshotRepo repository.SnapshotRepository
	parser       *csvparse.Parser
	now          func() time.Time
	newID        func() (string, error)
}

func NewService(snapshotRepo repository.SnapshotRepository, parser *csvparse.Parser) Snapshotter {
	return &Service{
		snapshotRepo: snapshotRepo,
		parser:       parser,
		now:          time.Now,
		newID:        utils.GenerateID,
	}
}

// Upload salva um novo snapshot. O snapshot anterior continua no histórico.
func (s *Service) Upload(ctx context.Context, request *domain.UploadRequest, uploader string) (*domain.UploadResponse, error) {
	if request == nil || len(request.SalesData) == 0 {
		return nil, NewSnapshotError(ErrNoSalesData, apiErrors.ErrMissingRequiredData, "No sales data provided")
	}

	id, err := s.newID()
	if err != nil {
		return nil, NewSnapshotError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	records := normalizeRecords(request.SalesData)

	snapshot := &domain.Snapshot{
		ID:          id,
		Title:       s.title(request.Title),
		Records:     records,
		RecordCount: len(records),
		Uploader:    strings.TrimSpace(uploader),
		Status:      domain.SnapshotStatusPublished,
		Schema:      s.parser.Schema(),
	}

	if err := s.snapshotRepo.Save(ctx, snapshot); err != nil {
		logrus.WithError(err).WithField("snapshot_id", id).Error("Erro ao salvar snapshot")
		return nil, &SnapshotError{
			Err:        ErrDatabaseOperation,
			Code:       apiErrors.ErrDatabaseOperation,
			SnapshotID: id,
			Details:    "Failed to save sales data",
		}
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id": id,
		"records":     snapshot.RecordCount,
		"uploader":    snapshot.Uploader,
	}).Info("Snapshot de vendas salvo")

	return &domain.UploadResponse{
		Success:    true,
		Message:    MessageSaved,
		SnapshotID: id,
		Count:      snapshot.RecordCount,
	}, nil
}

// UploadCSV interpreta o CSV com o schema configurado. Qualquer falha rejeita o upload inteiro.
func (s *Service) UploadCSV(ctx context.Context, title string, r io.Reader, uploader string) (*domain.UploadResponse, error) {
	records, err := s.parser.Parse(r)
	if err != nil {
		if errors.Is(err, csvparse.ErrEmptyUpload) {
			return nil, NewSnapshotError(ErrNoSalesData, apiErrors.ErrMissingRequiredData, err.Error())
		}
		return nil, NewSnapshotError(ErrMalformedUpload, apiErrors.ErrInvalidFormat, err.Error())
	}

	return s.Upload(ctx, &domain.UploadRequest{SalesData: records, Title: title}, uploader)
}

// Latest retorna nil quando nenhum upload foi feito
func (s *Service) Latest(ctx context.Context) (*domain.Snapshot, error) {
	snapshot, err := s.snapshotRepo.Latest(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar último snapshot")
		return nil, NewSnapshotError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar dados de vendas")
	}

	return snapshot, nil
}

// History retorna os uploads mais recentes primeiro, no máximo MaxHistory
func (s *Service) History(ctx context.Context, limit int) ([]domain.UploadHistoryEntry, error) {
	if limit <= 0 || limit > MaxHistory {
		limit = MaxHistory
	}

	entries, err := s.snapshotRepo.History(ctx, limit)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar histórico de uploads")
		return nil, NewSnapshotError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar histórico de uploads")
	}

	if entries == nil {
		entries = []domain.UploadHistoryEntry{}
	}

	return entries, nil
}

// Purge remove snapshots mais antigos que retentionDays. O último snapshot nunca é removido.
func (s *Service) Purge(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("retenção inválida: %d dias", retentionDays)
	}

	before := s.now().AddDate(0, 0, -retentionDays)

	deleted, err := s.snapshotRepo.DeleteOlderThan(ctx, before)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao remover snapshots antigos")
	}

	return deleted, nil
}

func (s *Service) title(title string) string {
	title = strings.TrimSpace(title)
	if title != "" {
		return title
	}
	return DefaultTitle(s.now())
}

func DefaultTitle(now time.Time) string {
	return "Sales Data - " + now.Format("January 2006")
}

// normalizeRecords completa ID, avatar e time de registros enviados como JSON
func normalizeRecords(in []domain.SalesRecord) []domain.SalesRecord {
	records := make([]domain.SalesRecord, len(in))
	for i, record := range in {
		record.Name = strings.TrimSpace(record.Name)
		if record.ID == 0 {
			record.ID = i + 1
		}
		if record.Avatar == "" {
			record.Avatar = csvparse.Initials(record.Name)
		}
		if record.Team == "" {
			record.Team = domain.DefaultTeam
		}
		records[i] = record
	}
	return records
}
