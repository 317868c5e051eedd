// Package quest converte as métricas de um vendedor em pontos de quest, nível e status
package quest

import (
	"fmt"

	"github.com/vfg2006/sales-quest-api/internal/domain"
)

const pointsPerWeight = 10

// ScoringTable é uma tabela versionada de pesos por métrica
type ScoringTable struct {
	Version string            `json:"version"`
	Schema  domain.CSVSchema  `json:"schema"`
	Weights domain.Weightings `json:"weights"`
}

var (
	// GoalActualV2 é a tabela canônica (mesmos pesos padrão das configurações)
	GoalActualV2 = ScoringTable{
		Version: "goal-actual/v2",
		Schema:  domain.SchemaGoalActual,
		Weights: DefaultWeightings(),
	}

	PercentageV1 = ScoringTable{
		Version: "percentage/v1",
		Schema:  domain.SchemaPercentage,
		Weights: domain.Weightings{
			ClosedWon:     60,
			OppsPassedMRR: 15,
			Calls:         5,
			PEM:           5,
			OppsCount:     15,
		},
	}
)

var tables = map[string]ScoringTable{
	GoalActualV2.Version: GoalActualV2,
	PercentageV1.Version: PercentageV1,
}

func DefaultWeightings() domain.Weightings {
	return domain.Weightings{
		ClosedWon:     60,
		OppsPassedMRR: 15,
		Calls:         8,
		PEM:           10,
		OppsCount:     7,
	}
}

func DefaultTable() ScoringTable {
	return GoalActualV2
}

// TableByVersion busca uma tabela registrada pela versão
func TableByVersion(version string) (ScoringTable, error) {
	table, ok := tables[version]
	if !ok {
		return ScoringTable{}, fmt.Errorf("tabela de pontuação desconhecida: %q", version)
	}
	return table, nil
}

// WithWeights retorna uma cópia da tabela com os pesos informados
func (t ScoringTable) WithWeights(weights domain.Weightings) ScoringTable {
	t.Weights = weights
	return t
}

func (t ScoringTable) MaxPoints(key domain.MetricKey) int {
	return t.Weights.Get(key) * pointsPerWeight
}

func (t ScoringTable) TotalPossibleScore() int {
	return t.Weights.Total() * pointsPerWeight
}
