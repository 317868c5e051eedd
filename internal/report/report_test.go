package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/quest"
)

func TestBuild(t *testing.T) {
	record := domain.SalesRecord{ID: 1, Name: "Ana Lima", Avatar: "AL", Team: domain.DefaultTeam}
	record.Metrics.ClosedWon = domain.MetricValue{Goal: 100, Actual: 120}

	ranking := []domain.ScoredRecord{{
		SalesRecord:  record,
		QuestSummary: quest.Score(record, quest.DefaultTable()),
		Position:     1,
	}}
	teams := []domain.TeamStats{{
		Team:                domain.DefaultTeam,
		MemberCount:         1,
		TotalQuestScore:     ranking[0].TotalQuestScore,
		CompletedQuests:     1,
		TotalPossibleQuests: 5,
	}}

	raw, err := Build("Sales Data - March 2025", ranking, teams)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetLeaderboard, SheetTeams}, f.GetSheetList())

	rows, err := f.GetRows(SheetLeaderboard)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Position", rows[0][0])
	assert.Equal(t, "Revenue Royalty %", rows[0][6])
	assert.Equal(t, "Ana Lima", rows[1][1])
	assert.Equal(t, "600", rows[1][4])
	assert.Equal(t, "120", rows[1][6])

	teamRows, err := f.GetRows(SheetTeams)
	require.NoError(t, err)
	require.Len(t, teamRows, 2)
	assert.Equal(t, domain.DefaultTeam, teamRows[1][0])
	assert.Equal(t, "5", teamRows[1][4])
}
