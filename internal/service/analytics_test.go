package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shenikar/disaster_watch/internal/config"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/shenikar/disaster_watch/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func newTestAnalyticsService(t *testing.T) (*analyticsService, *mocks.MockAnalyticsRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockAnalyticsRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	service := NewAnalyticsService(repoMock, logger, &config.Config{TrendWindowDays: 7}).(*analyticsService)
	service.now = func() time.Time { return fixedNow }
	return service, repoMock
}

func TestSummary_FromCache(t *testing.T) {
	// Подготовка
	service, repoMock := newTestAnalyticsService(t)
	ctx := context.Background()
	cached := &models.AnalyticsSummary{TotalIncidents: 5}

	// Ожидания
	repoMock.EXPECT().GetSummaryFromCache(ctx).Return(cached, nil).Times(1)
	repoMock.EXPECT().Summary(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	summary, err := service.Summary(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, cached, summary)
}

func TestSummary_ComputedAndCached(t *testing.T) {
	// Подготовка
	service, repoMock := newTestAnalyticsService(t)
	ctx := context.Background()
	dayStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// Ожидания
	repoMock.EXPECT().GetSummaryFromCache(ctx).Return(nil, nil).Times(1)
	repoMock.EXPECT().
		Summary(ctx, dayStart).
		Return(&models.AnalyticsSummary{TotalIncidents: 3, AvgUrgencyScore: 6.666, ResolutionRate: 33.333}, nil).
		Times(1)
	repoMock.EXPECT().SetSummaryCache(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	summary, err := service.Summary(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalIncidents)
	assert.Equal(t, 6.7, summary.AvgUrgencyScore)
	assert.Equal(t, 33.3, summary.ResolutionRate)
}

func TestSummary_RepositoryError(t *testing.T) {
	// Подготовка
	service, repoMock := newTestAnalyticsService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().GetSummaryFromCache(ctx).Return(nil, nil).Times(1)
	repoMock.EXPECT().Summary(ctx, gomock.Any()).Return(nil, fmt.Errorf("query failed")).Times(1)

	// Действие
	_, err := service.Summary(ctx)

	// Проверки
	assert.ErrorContains(t, err, "could not compute summary")
}

func TestTopLocations_ClampsLimit(t *testing.T) {
	// Подготовка
	service, repoMock := newTestAnalyticsService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().
		TopLocations(ctx, defaultTopLocations).
		Return([]models.LocationSummary{{LocationName: "Mumbai", IncidentCount: 4, AvgUrgencyScore: 7.25}}, nil).
		Times(1)

	// Действие
	locations, err := service.TopLocations(ctx, 500)

	// Проверки
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, 7.3, locations[0].AvgUrgencyScore)
}

func TestTrends_FillsMissingDays(t *testing.T) {
	// Подготовка
	service, repoMock := newTestAnalyticsService(t)
	ctx := context.Background()
	since := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	// Ожидания
	repoMock.EXPECT().
		Trends(ctx, since).
		Return([]models.TrendPoint{{
			Date:       time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
			Total:      2,
			BySeverity: map[models.Severity]int{models.SeverityCritical: 2},
		}}, nil).
		Times(1)

	// Действие
	series, err := service.Trends(ctx, 3)

	// Проверки
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, since, series[0].Date)
	assert.Equal(t, 0, series[0].Total)
	assert.NotNil(t, series[0].BySeverity)
	assert.Equal(t, 2, series[1].Total)
	assert.Equal(t, 2, series[1].BySeverity[models.SeverityCritical])
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), series[2].Date)
}

func TestTrends_DefaultWindow(t *testing.T) {
	// Подготовка
	service, repoMock := newTestAnalyticsService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().
		Trends(ctx, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)).
		Return(nil, nil).
		Times(1)

	// Действие
	series, err := service.Trends(ctx, 0)

	// Проверки
	require.NoError(t, err)
	assert.Len(t, series, 7)
}
