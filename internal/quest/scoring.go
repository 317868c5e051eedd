package quest

import (
	"math"

	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/pkg/utils"
)

const (
	MaxCompletionRate = 150.0
	almostThreshold   = 80.0
	completeThreshold = 100.0
)

const (
	LevelLegendary = "Quest Legendary"
	LevelMaster    = "Quest Master"
	LevelWarrior   = "Quest Warrior"
	LevelExplorer  = "Quest Explorer"
	LevelNovice    = "Quest Novice"
)

var questNames = map[domain.MetricKey]string{
	domain.MetricClosedWon:   "Revenue Royalty",
	domain.MetricOppsPassed:  "Pipeline Paladin",
	domain.MetricCalls:       "Call Crusader",
	domain.MetricPEM:         "PEM Pioneer",
	domain.MetricOppsCreated: "Opportunity Oracle",
}

func QuestName(key domain.MetricKey) string {
	return questNames[key]
}

// Score calcula os campos derivados de um registro. Não tem efeitos colaterais.
func Score(record domain.SalesRecord, table ScoringTable) domain.QuestSummary {
	summary := domain.QuestSummary{
		Quests:             make([]domain.QuestResult, 0, len(domain.MetricKeys)),
		TotalPossibleScore: table.TotalPossibleScore(),
	}

	for _, key := range domain.MetricKeys {
		result := scoreMetric(key, record.Metrics.Get(key), table)

		summary.TotalQuestScore += result.Score
		if result.Status == domain.QuestCompleted {
			summary.CompletedQuestCount++
		}
		summary.Quests = append(summary.Quests, result)
	}

	if summary.TotalPossibleScore > 0 {
		overall := float64(summary.TotalQuestScore) / float64(summary.TotalPossibleScore) * 100
		summary.OverallCompletion = utils.RoundWithTwoDecimalPlace(overall)
	}
	summary.Level = Level(summary.OverallCompletion)

	return summary
}

// ScoreAll pontua todos os registros mantendo a ordem de entrada
func ScoreAll(records []domain.SalesRecord, table ScoringTable) []domain.ScoredRecord {
	scored := make([]domain.ScoredRecord, 0, len(records))
	for _, record := range records {
		scored = append(scored, domain.ScoredRecord{
			SalesRecord:  record,
			QuestSummary: Score(record, table),
		})
	}
	return scored
}

// scoreMetric limita os pontos a max_points mesmo com taxa de até 150%.
// A fórmula sem limite, round(taxa/100 × max_points), estouraria o total de
// 1000; o excedente aparece só como BonusPercent.
func scoreMetric(key domain.MetricKey, value domain.MetricValue, table ScoringTable) domain.QuestResult {
	raw := rawCompletionRate(value, table.Schema)
	rate := math.Min(raw, MaxCompletionRate)
	maxPoints := table.MaxPoints(key)

	// Pontos nunca passam do máximo da métrica; o excedente vira bônus
	points := int(math.Round(math.Min(rate, completeThreshold) / 100 * float64(maxPoints)))

	result := domain.QuestResult{
		Key:            key,
		Name:           QuestName(key),
		Goal:           value.Goal,
		Actual:         value.Actual,
		Percent:        value.Percent,
		Weight:         table.Weights.Get(key),
		MaxPoints:      maxPoints,
		CompletionRate: utils.RoundWithTwoDecimalPlace(rate),
		Score:          points,
		Status:         status(raw, rate),
	}

	if rate > completeThreshold {
		result.Bonus = true
		result.BonusPercent = int(math.Round(rate - completeThreshold))
	}

	return result
}

// CompletionRate retorna o percentual de conclusão limitado a 150
func CompletionRate(value domain.MetricValue, schema domain.CSVSchema) float64 {
	return math.Min(rawCompletionRate(value, schema), MaxCompletionRate)
}

// rawCompletionRate nunca retorna NaN, Inf ou valor negativo.
// Meta zero ou negativa conta como 0% de conclusão.
func rawCompletionRate(value domain.MetricValue, schema domain.CSVSchema) float64 {
	var rate float64

	switch schema {
	case domain.SchemaPercentage:
		rate = value.Percent
	default:
		if !isFinite(value.Goal) || !isFinite(value.Actual) || value.Goal <= 0 {
			return 0
		}
		rate = value.Actual / value.Goal * 100
	}

	if !isFinite(rate) || rate < 0 {
		return 0
	}
	return rate
}

func status(raw, rate float64) domain.QuestStatus {
	if raw >= completeThreshold {
		return domain.QuestCompleted
	}
	if rate >= almostThreshold {
		return domain.QuestAlmost
	}
	return domain.QuestInProgress
}

// Level converte o percentual geral no nível de quest
func Level(overallCompletion float64) string {
	switch {
	case overallCompletion >= 90:
		return LevelLegendary
	case overallCompletion >= 80:
		return LevelMaster
	case overallCompletion >= 70:
		return LevelWarrior
	case overallCompletion >= 60:
		return LevelExplorer
	default:
		return LevelNovice
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
