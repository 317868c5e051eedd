// Package report gera a planilha XLSX do leaderboard
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/quest"
)

const (
	SheetLeaderboard = "Leaderboard"
	SheetTeams       = "Teams"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var teamHeaders = []string{"Team", "Members", "Total Score", "Completed Quests", "Possible Quests"}

// Build monta a planilha com o ranking (já ordenado) e o resumo por time
func Build(title string, ranking []domain.ScoredRecord, teams []domain.TeamStats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetLeaderboard); err != nil {
		return nil, fmt.Errorf("erro ao renomear planilha: %w", err)
	}
	if _, err := f.NewSheet(SheetTeams); err != nil {
		return nil, fmt.Errorf("erro ao criar planilha de times: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar estilo: %w", err)
	}

	if err := f.SetDocProps(&excelize.DocProperties{Title: title, Creator: "Sales Quest"}); err != nil {
		return nil, fmt.Errorf("erro ao definir propriedades: %w", err)
	}

	headers := leaderboardHeaders()
	if err := writeRow(f, SheetLeaderboard, 1, headers); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetLeaderboard, "A1", cellName(len(headers), 1), headerStyle); err != nil {
		return nil, err
	}

	for i, record := range ranking {
		if err := writeRow(f, SheetLeaderboard, i+2, leaderboardRow(record)); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, SheetTeams, 1, toAny(teamHeaders)); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetTeams, "A1", cellName(len(teamHeaders), 1), headerStyle); err != nil {
		return nil, err
	}

	for i, team := range teams {
		row := []any{team.Team, team.MemberCount, team.TotalQuestScore, team.CompletedQuests, team.TotalPossibleQuests}
		if err := writeRow(f, SheetTeams, i+2, row); err != nil {
			return nil, err
		}
	}

	for _, sheet := range []string{SheetLeaderboard, SheetTeams} {
		_ = f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
	_ = f.SetColWidth(SheetLeaderboard, "B", "D", 20)
	_ = f.SetColWidth(SheetTeams, "A", "A", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha: %w", err)
	}

	return buf.Bytes(), nil
}

func leaderboardHeaders() []any {
	headers := []any{"Position", "Name", "Team", "Level", "Score", "Completed Quests"}
	for _, key := range domain.MetricKeys {
		name := quest.QuestName(key)
		headers = append(headers, name+" %", name+" pts")
	}
	return headers
}

func leaderboardRow(record domain.ScoredRecord) []any {
	row := []any{
		record.Position,
		record.Name,
		record.Team,
		record.Level,
		record.TotalQuestScore,
		record.CompletedQuestCount,
	}
	for _, key := range domain.MetricKeys {
		result, _ := record.Quest(key)
		row = append(row, result.CompletionRate, result.Score)
	}
	return row
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	if err := f.SetSheetRow(sheet, cellName(1, row), &values); err != nil {
		return fmt.Errorf("erro ao escrever linha %d em %s: %w", row, sheet, err)
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
