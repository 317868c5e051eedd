package domain

import "time"

type LeaderboardResponse struct {
	Title        string         `json:"title"`
	UploadedDate *time.Time     `json:"uploaded_date,omitempty"`
	ScoringTable string         `json:"scoring_table"`
	Ranking      []ScoredRecord `json:"ranking"`
}

type TeamMember struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Avatar              string `json:"avatar"`
	Level               string `json:"level"`
	TotalQuestScore     int    `json:"total_quest_score"`
	CompletedQuestCount int    `json:"completed_quest_count"`
}

type TeamStats struct {
	Team                string       `json:"team"`
	MemberCount         int          `json:"member_count"`
	Members             []TeamMember `json:"members"`
	TotalQuestScore     int          `json:"total_quest_score"`
	CompletedQuests     int          `json:"completed_quests"`
	TotalPossibleQuests int          `json:"total_possible_quests"`
}

type TeamOverviewResponse struct {
	Title string      `json:"title"`
	Teams []TeamStats `json:"teams"`
}
