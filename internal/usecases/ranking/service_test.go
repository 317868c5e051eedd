package ranking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-quest-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-quest-api/internal/csvparse"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/quest"
	"github.com/vfg2006/sales-quest-api/internal/usecases/settings"
	"github.com/vfg2006/sales-quest-api/internal/usecases/snapshotting"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	snapshotRepo *mocks.MockSnapshotRepository
	settingsRepo *mocks.MockSettingsRepository
	service      Ranker
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
	settingsRepo := mocks.NewMockSettingsRepository(ctrl)

	parser, err := csvparse.NewParser(domain.SchemaGoalActual)
	require.NoError(t, err)

	return fixture{
		snapshotRepo: snapshotRepo,
		settingsRepo: settingsRepo,
		service: NewService(
			snapshotting.NewService(snapshotRepo, parser),
			settings.NewService(settingsRepo, quest.DefaultTable()),
		),
	}
}

func latestSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		ID:        "snap000001",
		Title:     "Sales Data - March 2025",
		Schema:    domain.SchemaGoalActual,
		CreatedAt: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC),
		Records: []domain.SalesRecord{
			{ID: 1, Name: "Low", Team: "B", Metrics: domain.SalesMetrics{
				ClosedWon: domain.MetricValue{Goal: 100, Actual: 50},
			}},
			{ID: 2, Name: "High", Team: "A", Metrics: domain.SalesMetrics{
				ClosedWon: domain.MetricValue{Goal: 100, Actual: 110},
				Calls:     domain.MetricValue{Goal: 10, Actual: 10},
			}},
		},
	}
}

func TestService_SalesData(t *testing.T) {
	ctx := context.Background()

	t.Run("sem snapshot", func(t *testing.T) {
		f := newFixture(t)
		f.snapshotRepo.EXPECT().Latest(ctx).Return(nil, nil)

		response, err := f.service.SalesData(ctx)
		require.NoError(t, err)
		assert.False(t, response.Success)
		assert.Equal(t, snapshotting.MessageNotFound, response.Message)
		assert.NotNil(t, response.Data)
		assert.Empty(t, response.Data)
	})

	t.Run("registros pontuados na ordem do upload", func(t *testing.T) {
		f := newFixture(t)
		f.snapshotRepo.EXPECT().Latest(ctx).Return(latestSnapshot(), nil)
		f.settingsRepo.EXPECT().GetWeightings(ctx).Return(nil, nil)

		response, err := f.service.SalesData(ctx)
		require.NoError(t, err)
		assert.True(t, response.Success)
		assert.Equal(t, "Sales Data - March 2025", response.Title)
		require.Len(t, response.Data, 2)
		assert.Equal(t, "Low", response.Data[0].Name)
		assert.Equal(t, 300, response.Data[0].TotalQuestScore)
		assert.Equal(t, 680, response.Data[1].TotalQuestScore)
	})
}

func TestService_Leaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("ordenado com pesos salvos", func(t *testing.T) {
		f := newFixture(t)
		f.snapshotRepo.EXPECT().Latest(ctx).Return(latestSnapshot(), nil)
		weights := domain.Weightings{ClosedWon: 100}
		f.settingsRepo.EXPECT().GetWeightings(ctx).Return(&weights, nil)

		response, err := f.service.Leaderboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, quest.GoalActualV2.Version, response.ScoringTable)
		require.Len(t, response.Ranking, 2)
		assert.Equal(t, "High", response.Ranking[0].Name)
		assert.Equal(t, 1000, response.Ranking[0].TotalQuestScore)
		assert.Equal(t, 1, response.Ranking[0].Position)
		assert.Equal(t, 500, response.Ranking[1].TotalQuestScore)
	})

	t.Run("sem snapshot", func(t *testing.T) {
		f := newFixture(t)
		f.snapshotRepo.EXPECT().Latest(ctx).Return(nil, nil)

		_, err := f.service.Leaderboard(ctx)
		assert.ErrorIs(t, err, ErrNoSalesData)
	})
}

func TestService_ChallengeAndTeams(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.snapshotRepo.EXPECT().Latest(ctx).Return(latestSnapshot(), nil).Times(2)
	f.settingsRepo.EXPECT().GetWeightings(ctx).Return(nil, nil).Times(2)

	challenge, err := f.service.Challenge(ctx)
	require.NoError(t, err)
	assert.Equal(t, "High", challenge.Ranking[0].Name)

	teams, err := f.service.Teams(ctx)
	require.NoError(t, err)
	require.Len(t, teams.Teams, 2)
	assert.Equal(t, "B", teams.Teams[0].Team)
	assert.Equal(t, "A", teams.Teams[1].Team)
}
