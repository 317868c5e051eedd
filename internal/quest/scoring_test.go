package quest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-quest-api/internal/domain"
)

func goalActual(goal, actual float64) domain.MetricValue {
	return domain.MetricValue{Goal: goal, Actual: actual}
}

func recordWith(key domain.MetricKey, value domain.MetricValue) domain.SalesRecord {
	record := domain.SalesRecord{Name: "Test"}
	record.Metrics.Set(key, value)
	return record
}

func TestScore_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		table        ScoringTable
		value        domain.MetricValue
		wantRate     float64
		wantStatus   domain.QuestStatus
		wantBonus    bool
		wantBonusPct int
	}{
		{
			name:       "meta 100 e realizado 89 fica quase concluída",
			table:      GoalActualV2,
			value:      goalActual(100, 89),
			wantRate:   89,
			wantStatus: domain.QuestAlmost,
		},
		{
			name:       "meta 8 e realizado 8 conclui a quest",
			table:      GoalActualV2,
			value:      goalActual(8, 8),
			wantRate:   100,
			wantStatus: domain.QuestCompleted,
		},
		{
			name:         "percentual 127 não é limitado a 100",
			table:        PercentageV1,
			value:        domain.MetricValue{Percent: 127},
			wantRate:     127,
			wantStatus:   domain.QuestCompleted,
			wantBonus:    true,
			wantBonusPct: 27,
		},
		{
			name:         "taxa é limitada a 150",
			table:        GoalActualV2,
			value:        goalActual(10, 40),
			wantRate:     150,
			wantStatus:   domain.QuestCompleted,
			wantBonus:    true,
			wantBonusPct: 50,
		},
		{
			name:       "abaixo de 80 fica em progresso",
			table:      GoalActualV2,
			value:      goalActual(100, 79),
			wantRate:   79,
			wantStatus: domain.QuestInProgress,
		},
		{
			name:       "meta zero vale 0%",
			table:      GoalActualV2,
			value:      goalActual(0, 10),
			wantRate:   0,
			wantStatus: domain.QuestInProgress,
		},
		{
			name:       "meta negativa vale 0%",
			table:      GoalActualV2,
			value:      goalActual(-5, 10),
			wantRate:   0,
			wantStatus: domain.QuestInProgress,
		},
		{
			name:       "percentual negativo vale 0%",
			table:      PercentageV1,
			value:      domain.MetricValue{Percent: -20},
			wantRate:   0,
			wantStatus: domain.QuestInProgress,
		},
		{
			name:       "NaN vale 0%",
			table:      GoalActualV2,
			value:      goalActual(10, math.NaN()),
			wantRate:   0,
			wantStatus: domain.QuestInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Score(recordWith(domain.MetricCalls, tt.value), tt.table)

			result, ok := summary.Quest(domain.MetricCalls)
			require.True(t, ok)
			assert.Equal(t, tt.wantRate, result.CompletionRate)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantBonus, result.Bonus)
			assert.Equal(t, tt.wantBonusPct, result.BonusPercent)
			assert.Equal(t, "Call Crusader", result.Name)
		})
	}
}

func TestScore_SampleRecord(t *testing.T) {
	// Sarah Johnson dos dados de exemplo
	record := domain.SalesRecord{
		Name: "Sarah Johnson",
		Metrics: domain.SalesMetrics{
			ClosedWon:   goalActual(25000, 32000),
			OppsPassed:  goalActual(50000, 58000),
			Calls:       goalActual(100, 89),
			PEM:         goalActual(20, 24),
			OppsCreated: goalActual(8, 8),
		},
	}

	summary := Score(record, GoalActualV2)

	// 600 + 150 + round(0.89*80)=71 + 100 + 70
	assert.Equal(t, 991, summary.TotalQuestScore)
	assert.Equal(t, 1000, summary.TotalPossibleScore)
	assert.Equal(t, 99.1, summary.OverallCompletion)
	assert.Equal(t, LevelLegendary, summary.Level)
	assert.Equal(t, 4, summary.CompletedQuestCount)
	require.Len(t, summary.Quests, 5)
	assert.Equal(t, domain.MetricClosedWon, summary.Quests[0].Key)
	assert.Equal(t, 600, summary.Quests[0].MaxPoints)
	assert.Equal(t, domain.MetricOppsCreated, summary.Quests[4].Key)
}

func TestScore_EmptyRecordIsNovice(t *testing.T) {
	summary := Score(domain.SalesRecord{}, GoalActualV2)

	assert.Equal(t, 0, summary.TotalQuestScore)
	assert.Equal(t, 0, summary.CompletedQuestCount)
	assert.Equal(t, LevelNovice, summary.Level)
}

func TestScore_Bounds(t *testing.T) {
	values := []float64{-100, -1, 0, 0.5, 1, 7, 50, 79, 80, 99.99, 100, 101, 149, 150, 151, 1000, math.Inf(1), math.NaN()}

	for _, table := range []ScoringTable{GoalActualV2, PercentageV1} {
		for _, goal := range values {
			for _, actual := range values {
				value := domain.MetricValue{Goal: goal, Actual: actual, Percent: actual}
				record := domain.SalesRecord{}
				for _, key := range domain.MetricKeys {
					record.Metrics.Set(key, value)
				}

				summary := Score(record, table)

				assert.GreaterOrEqual(t, summary.TotalQuestScore, 0)
				assert.LessOrEqual(t, summary.TotalQuestScore, 1000)
				for _, q := range summary.Quests {
					assert.GreaterOrEqual(t, q.Score, 0)
					assert.LessOrEqual(t, q.Score, q.MaxPoints)
					assert.GreaterOrEqual(t, q.CompletionRate, 0.0)
					assert.LessOrEqual(t, q.CompletionRate, MaxCompletionRate)
				}
			}
		}
	}
}

func TestCompletionRate_MonotonicInActual(t *testing.T) {
	goal := 37.0
	previous := -1.0
	for actual := 0.0; actual <= 200; actual += 0.5 {
		rate := CompletionRate(goalActual(goal, actual), domain.SchemaGoalActual)
		assert.GreaterOrEqual(t, rate, previous)
		previous = rate
	}
	assert.Equal(t, MaxCompletionRate, previous)
}

func TestScore_CompletedIffActualReachesGoal(t *testing.T) {
	for goal := 1.0; goal <= 20; goal++ {
		for actual := 0.0; actual <= 40; actual++ {
			summary := Score(recordWith(domain.MetricPEM, goalActual(goal, actual)), GoalActualV2)
			result, _ := summary.Quest(domain.MetricPEM)

			assert.Equal(t, actual/goal >= 1, result.Status == domain.QuestCompleted, "goal=%v actual=%v", goal, actual)
		}
	}

	for percent := 0.0; percent <= 150; percent += 0.5 {
		summary := Score(recordWith(domain.MetricPEM, domain.MetricValue{Percent: percent}), PercentageV1)
		result, _ := summary.Quest(domain.MetricPEM)

		assert.Equal(t, percent >= 100, result.Status == domain.QuestCompleted, "percent=%v", percent)
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, LevelLegendary, Level(90))
	assert.Equal(t, LevelMaster, Level(89.99))
	assert.Equal(t, LevelMaster, Level(80))
	assert.Equal(t, LevelWarrior, Level(70))
	assert.Equal(t, LevelExplorer, Level(60))
	assert.Equal(t, LevelNovice, Level(59.99))
}

func TestScoringTables(t *testing.T) {
	table, err := TableByVersion("percentage/v1")
	require.NoError(t, err)
	assert.Equal(t, domain.SchemaPercentage, table.Schema)
	assert.Equal(t, 100, table.Weights.Total())
	assert.Equal(t, 100, GoalActualV2.Weights.Total())

	_, err = TableByVersion("v0")
	assert.Error(t, err)

	custom := GoalActualV2.WithWeights(domain.Weightings{ClosedWon: 100})
	assert.Equal(t, 1000, custom.MaxPoints(domain.MetricClosedWon))
	assert.Equal(t, 0, custom.MaxPoints(domain.MetricCalls))
	assert.Equal(t, 8, GoalActualV2.Weights.Calls, "WithWeights não altera a tabela original")
}
