package domain

type QuestStatus string

const (
	QuestCompleted  QuestStatus = "completed"
	QuestAlmost     QuestStatus = "almost"
	QuestInProgress QuestStatus = "in_progress"
)

type QuestResult struct {
	Key            MetricKey   `json:"key"`
	Name           string      `json:"name"`
	Goal           float64     `json:"goal"`
	Actual         float64     `json:"actual"`
	Percent        float64     `json:"percent,omitempty"`
	Weight         int         `json:"weight"`
	MaxPoints      int         `json:"max_points"`
	CompletionRate float64     `json:"completion_rate"`
	Score          int         `json:"quest_score"`
	Status         QuestStatus `json:"status"`
	Bonus          bool        `json:"bonus"`
	BonusPercent   int         `json:"bonus_percent,omitempty"`
}

// QuestSummary contém os campos derivados de um SalesRecord (nunca persistidos)
type QuestSummary struct {
	Quests              []QuestResult `json:"quests"`
	TotalQuestScore     int           `json:"total_quest_score"`
	TotalPossibleScore  int           `json:"total_possible_score"`
	OverallCompletion   float64       `json:"overall_completion"`
	Level               string        `json:"level"`
	CompletedQuestCount int           `json:"completed_quest_count"`
}

// Quest retorna o resultado de uma métrica específica
func (q QuestSummary) Quest(key MetricKey) (QuestResult, bool) {
	for _, quest := range q.Quests {
		if quest.Key == key {
			return quest, true
		}
	}
	return QuestResult{}, false
}

type ScoredRecord struct {
	SalesRecord
	QuestSummary
	Position int `json:"position,omitempty"`
}
