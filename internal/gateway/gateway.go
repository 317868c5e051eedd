// Package gateway resolve de onde o questctl lê os dados de vendas e envia os uploads
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-quest-api/internal/csvparse"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/usecases/snapshotting"
	"github.com/vfg2006/sales-quest-api/pkg/log"
)

var (
	ErrNoRecords = errors.New("nenhum dado de vendas informado")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// Cache é a camada local (arquivo ou redis)
type Cache interface {
	Load(ctx context.Context) (*domain.CachedDataset, error)
	Save(ctx context.Context, dataset *domain.CachedDataset) error
}

type Dataset struct {
	Source       Source
	Title        string
	UploadedDate *time.Time
	Records      []domain.SalesRecord
}

type UploadResult struct {
	Title      string
	Count      int
	SnapshotID string
	Records    []domain.SalesRecord
	// Warning é preenchido quando o servidor falhou; o cache local foi atualizado mesmo assim
	Warning string
}

type Gateway struct {
	remote Remote
	cache  Cache
	parser *csvparse.Parser
	now    func() time.Time
}

func New(remote Remote, cache Cache, parser *csvparse.Parser) *Gateway {
	return &Gateway{
		remote: remote,
		cache:  cache,
		parser: parser,
		now:    time.Now,
	}
}

// Load nunca falha: cache incompatível é descartado e API fora do ar cai nos dados de exemplo
func (g *Gateway) Load(ctx context.Context) *Dataset {
	logger := log.ForContext(ctx)

	cached, cacheProbe := g.probeCache(ctx)
	if SelectSource(cacheProbe, RemoteProbe{}) == SourceCache {
		logger.WithField("records", len(cached.Records)).Debug("Dados carregados do cache local")
		return &Dataset{
			Source:       SourceCache,
			Title:        cached.Title,
			UploadedDate: cached.UploadedDate,
			Records:      cached.Records,
		}
	}

	remote, remoteProbe := g.probeRemote(ctx)

	switch SelectSource(cacheProbe, remoteProbe) {
	case SourceRemote:
		dataset := &Dataset{
			Source:       SourceRemote,
			Title:        remote.Title,
			UploadedDate: remote.UploadedDate,
			Records:      unscored(remote.Data),
		}
		g.store(ctx, dataset.Title, dataset.UploadedDate, dataset.Records)
		return dataset
	default:
		logger.Info("Sem cache e sem dados na API, usando dados de exemplo")
		return &Dataset{
			Source:  SourceSample,
			Title:   "Sample Data",
			Records: SampleRecords(),
		}
	}
}

// Upload interpreta o CSV, envia para a API e sempre atualiza o cache local.
// Só retorna erro quando o arquivo é inválido; nada é gravado nesse caso.
func (g *Gateway) Upload(ctx context.Context, r io.Reader, title string) (*UploadResult, error) {
	records, err := g.parser.Parse(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %w", csvparse.ErrMalformedUpload, ErrNoRecords)
	}

	if title == "" {
		title = snapshotting.DefaultTitle(g.now())
	}

	result := &UploadResult{
		Title:   title,
		Count:   len(records),
		Records: records,
	}

	response, err := g.remote.Upload(ctx, &domain.UploadRequest{SalesData: records, Title: title})
	switch {
	case err != nil:
		log.ForContext(ctx).WithError(err).Warn("Falha ao enviar upload para a API")
		result.Warning = fmt.Sprintf("Dados salvos localmente, mas o envio falhou: %v", err)
	case !response.Success:
		result.Warning = fmt.Sprintf("Dados salvos localmente, mas o servidor recusou: %s", response.Message)
	default:
		result.Count = response.Count
		result.SnapshotID = response.SnapshotID
	}

	now := g.now()
	g.store(ctx, title, &now, records)

	return result, nil
}

func (g *Gateway) Settings(ctx context.Context) (*domain.Weightings, error) {
	response, err := g.remote.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if !response.Success || response.Weightings == nil {
		return nil, fmt.Errorf("configurações indisponíveis: %s", response.Message)
	}
	return response.Weightings, nil
}

// UpdateSettings não valida a soma dos pesos; a API é quem rejeita
func (g *Gateway) UpdateSettings(ctx context.Context, weightings domain.Weightings) (*domain.SettingsResponse, error) {
	return g.remote.UpdateSettings(ctx, weightings)
}

func (g *Gateway) Uploads(ctx context.Context) ([]domain.UploadHistoryEntry, error) {
	response, err := g.remote.Uploads(ctx)
	if err != nil {
		return nil, err
	}
	return response.Uploads, nil
}

func (g *Gateway) probeCache(ctx context.Context) (*domain.CachedDataset, CacheProbe) {
	cached, err := g.cache.Load(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Debug("Cache local descartado")
		return nil, CacheProbe{}
	}
	if cached == nil || len(cached.Records) == 0 {
		return nil, CacheProbe{}
	}

	return cached, CacheProbe{
		Present:    true,
		Compatible: cached.Version == domain.CacheVersion && cached.Schema == g.parser.Schema(),
	}
}

func (g *Gateway) probeRemote(ctx context.Context) (*domain.SalesDataResponse, RemoteProbe) {
	response, err := g.remote.SalesData(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("API de vendas indisponível")
		return nil, RemoteProbe{}
	}

	return response, RemoteProbe{
		Available: response.Success,
		HasData:   len(response.Data) > 0,
	}
}

func (g *Gateway) store(ctx context.Context, title string, uploadedDate *time.Time, records []domain.SalesRecord) {
	err := g.cache.Save(ctx, &domain.CachedDataset{
		Version:      domain.CacheVersion,
		Schema:       g.parser.Schema(),
		SavedAt:      g.now(),
		Title:        title,
		UploadedDate: uploadedDate,
		Records:      records,
	})
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Falha ao atualizar o cache local")
	}
}

func unscored(scored []domain.ScoredRecord) []domain.SalesRecord {
	records := make([]domain.SalesRecord, 0, len(scored))
	for _, record := range scored {
		records = append(records, record.SalesRecord)
	}
	return records
}
