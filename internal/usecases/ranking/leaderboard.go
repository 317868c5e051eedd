package ranking

import (
	"sort"

	"github.com/vfg2006/sales-quest-api/internal/domain"
)

// Leaderboard ordena por pontuação total (desc) e atribui posições a partir de 1.
// Empates mantêm a ordem de entrada.
func Leaderboard(scored []domain.ScoredRecord) []domain.ScoredRecord {
	ranking := make([]domain.ScoredRecord, len(scored))
	copy(ranking, scored)

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalQuestScore > ranking[j].TotalQuestScore
	})

	for i := range ranking {
		ranking[i].Position = i + 1
	}

	return ranking
}

// Challenge ordena pela taxa de conclusão de closed-won (desc)
func Challenge(scored []domain.ScoredRecord) []domain.ScoredRecord {
	ranking := make([]domain.ScoredRecord, len(scored))
	copy(ranking, scored)

	sort.SliceStable(ranking, func(i, j int) bool {
		return closedWonRate(ranking[i]) > closedWonRate(ranking[j])
	})

	for i := range ranking {
		ranking[i].Position = i + 1
	}

	return ranking
}

// Teams agrega os registros por time, na ordem em que cada time aparece
func Teams(scored []domain.ScoredRecord) []domain.TeamStats {
	teams := make([]domain.TeamStats, 0)
	index := make(map[string]int)

	for _, record := range scored {
		team := record.Team
		if team == "" {
			team = domain.DefaultTeam
		}

		i, exists := index[team]
		if !exists {
			i = len(teams)
			index[team] = i
			teams = append(teams, domain.TeamStats{
				Team:    team,
				Members: make([]domain.TeamMember, 0),
			})
		}

		stats := &teams[i]
		stats.MemberCount++
		stats.TotalQuestScore += record.TotalQuestScore
		stats.CompletedQuests += record.CompletedQuestCount
		stats.TotalPossibleQuests += len(domain.MetricKeys)
		stats.Members = append(stats.Members, domain.TeamMember{
			ID:                  record.ID,
			Name:                record.Name,
			Avatar:              record.Avatar,
			Level:               record.Level,
			TotalQuestScore:     record.TotalQuestScore,
			CompletedQuestCount: record.CompletedQuestCount,
		})
	}

	return teams
}

func closedWonRate(record domain.ScoredRecord) float64 {
	quest, ok := record.Quest(domain.MetricClosedWon)
	if !ok {
		return 0
	}
	return quest.CompletionRate
}
