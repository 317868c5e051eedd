package handler

import (
	"net/http"

	"github.com/vfg2006/sales-quest-api/internal/report"
	"github.com/vfg2006/sales-quest-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-quest-api/pkg/log"
)

func GetLeaderboard(service ranking.Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response, err := service.Leaderboard(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar leaderboard")
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

func GetChallenge(service ranking.Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response, err := service.Challenge(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar ranking do desafio")
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

func GetTeams(service ranking.Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response, err := service.Teams(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao agrupar times")
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// GetReport exporta o leaderboard e o resumo por time em XLSX
func GetReport(service ranking.Ranker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leaderboard, err := service.Leaderboard(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar relatório")
			return
		}

		teams, err := service.Teams(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar relatório")
			return
		}

		raw, err := report.Build(leaderboard.Title, leaderboard.Ranking, teams.Teams)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar relatório")
			return
		}

		w.Header().Set("Content-Type", report.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="sales_quest_leaderboard.xlsx"`)
		if _, err := w.Write(raw); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar relatório")
		}
	}
}
