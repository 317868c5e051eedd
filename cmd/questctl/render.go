package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/gateway"
	"github.com/vfg2006/sales-quest-api/internal/quest"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderHeader(w io.Writer, dataset *gateway.Dataset) {
	uploaded := ""
	if dataset.UploadedDate != nil {
		uploaded = "uploaded " + dataset.UploadedDate.Local().Format(time.DateTime)
	}

	fmt.Fprintln(w, joinNonEmpty(dataset.Title, uploaded, "source: "+string(dataset.Source)))
	fmt.Fprintln(w)
}

func renderLeaderboard(w io.Writer, leaderboard []domain.ScoredRecord) {
	tw := newTabWriter(w)
	defer tw.Flush()

	headers := []string{"#", "NAME", "TEAM", "LEVEL", "SCORE", "QUESTS"}
	for _, key := range domain.MetricKeys {
		headers = append(headers, strings.ToUpper(quest.QuestName(key)))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, record := range leaderboard {
		row := []string{
			fmt.Sprint(record.Position),
			record.Name,
			record.Team,
			record.Level,
			fmt.Sprintf("%d/%d", record.TotalQuestScore, record.TotalPossibleScore),
			fmt.Sprintf("%d/%d", record.CompletedQuestCount, len(domain.MetricKeys)),
		}
		for _, key := range domain.MetricKeys {
			result, _ := record.Quest(key)
			row = append(row, formatQuest(result))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
}

func renderChallenge(w io.Writer, challenge []domain.ScoredRecord) {
	tw := newTabWriter(w)
	defer tw.Flush()

	fmt.Fprintln(tw, "#\tNAME\tTEAM\tGOAL\tACTUAL\tCOMPLETION")
	for i, record := range challenge {
		result, _ := record.Quest(domain.MetricClosedWon)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.0f\t%.0f\t%s\n",
			i+1, record.Name, record.Team, result.Goal, result.Actual, formatQuest(result))
	}
}

func renderTeams(w io.Writer, teams []domain.TeamStats) {
	tw := newTabWriter(w)
	defer tw.Flush()

	fmt.Fprintln(tw, "TEAM\tMEMBERS\tSCORE\tQUESTS")
	for _, team := range teams {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d/%d\n",
			team.Team, team.MemberCount, team.TotalQuestScore, team.CompletedQuests, team.TotalPossibleQuests)
	}
}

func renderWeightings(w io.Writer, weightings domain.Weightings) {
	tw := newTabWriter(w)
	defer tw.Flush()

	fmt.Fprintln(tw, "QUEST\tMETRIC\tWEIGHT")
	for _, key := range domain.MetricKeys {
		fmt.Fprintf(tw, "%s\t%s\t%d%%\n", quest.QuestName(key), key, weightings.Get(key))
	}
	fmt.Fprintf(tw, "\tTotal\t%d%%\n", weightings.Total())
}

func renderUploads(w io.Writer, uploads []domain.UploadHistoryEntry) {
	if len(uploads) == 0 {
		fmt.Fprintln(w, "No uploads yet")
		return
	}

	tw := newTabWriter(w)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tTITLE\tDATE\tRECORDS\tUPLOADER\tSTATUS")
	for _, upload := range uploads {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			upload.ID, upload.Title, upload.Date.Local().Format(time.DateTime), upload.RecordCount, upload.Uploader, upload.Status)
	}
}

// formatQuest mostra a taxa de conclusão com marcador de status e bônus
func formatQuest(result domain.QuestResult) string {
	out := fmt.Sprintf("%.0f%%", result.CompletionRate)

	switch result.Status {
	case domain.QuestCompleted:
		out += " ✓"
	case domain.QuestAlmost:
		out += " ~"
	}

	if result.Bonus {
		out += fmt.Sprintf(" +%d%%", result.BonusPercent)
	}

	return out
}
