package settings

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-quest-api/infrastructure/repository"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/quest"
	"github.com/vfg2006/sales-quest-api/pkg/apiErrors"
)

const requiredTotal = 100

type Configurator interface {
	Get(ctx context.Context) (domain.Weightings, error)
	Update(ctx context.Context, weightings *domain.Weightings) (domain.Weightings, error)
	Table(ctx context.Context) (quest.ScoringTable, error)
}

type Service struct {
	settingsRepo repository.SettingsRepository
	table        quest.ScoringTable
}

// NewService recebe a tabela configurada, cujos pesos valem enquanto nada for salvo
func NewService(settingsRepo repository.SettingsRepository, table quest.ScoringTable) Configurator {
	return &Service{
		settingsRepo: settingsRepo,
		table:        table,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Weightings, error) {
	stored, err := s.settingsRepo.GetWeightings(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar pesos salvos")
		return domain.Weightings{}, NewSettingsError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar pesos")
	}

	if stored == nil {
		return s.table.Weights, nil
	}

	return *stored, nil
}

// Update valida e persiste os pesos. A soma precisa ser exatamente 100.
func (s *Service) Update(ctx context.Context, weightings *domain.Weightings) (domain.Weightings, error) {
	if weightings == nil {
		return domain.Weightings{}, NewSettingsError(ErrMissingWeightings, apiErrors.ErrMissingRequiredData, "Campo weightings é obrigatório")
	}

	if err := Validate(*weightings); err != nil {
		return domain.Weightings{}, err
	}

	if err := s.settingsRepo.SaveWeightings(ctx, *weightings); err != nil {
		logrus.WithError(err).Error("Erro ao salvar pesos")
		return domain.Weightings{}, NewSettingsError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao salvar pesos")
	}

	logrus.WithField("weightings", *weightings).Info("Pesos de pontuação atualizados")

	return *weightings, nil
}

// Table retorna a tabela configurada com os pesos vigentes
func (s *Service) Table(ctx context.Context) (quest.ScoringTable, error) {
	weightings, err := s.Get(ctx)
	if err != nil {
		return quest.ScoringTable{}, err
	}

	return s.table.WithWeights(weightings), nil
}

func Validate(weightings domain.Weightings) error {
	for _, key := range domain.MetricKeys {
		if weightings.Get(key) < 0 {
			return NewSettingsError(ErrNegativeWeight, apiErrors.ErrInvalidWeightings, fmt.Sprintf("peso negativo em %s", key))
		}
	}

	total := weightings.Total()
	if total != requiredTotal {
		return &SettingsError{
			Err:     ErrInvalidTotal,
			Code:    apiErrors.ErrInvalidWeightings,
			Total:   total,
			Details: fmt.Sprintf("Weightings must add up to 100%%. Current total: %d%%", total),
		}
	}

	return nil
}
