package service

//go:generate mockgen -source=analytics.go -destination=mocks/mock_analytics.go -package=mocks

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shenikar/disaster_watch/internal/config"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultTopLocations = 10
	maxTopLocations     = 50
	maxTrendDays        = 90
)

// AnalyticsRepository определяет контракт агрегирующих запросов
type AnalyticsRepository interface {
	Summary(ctx context.Context, dayStart time.Time) (*models.AnalyticsSummary, error)
	TopLocations(ctx context.Context, limit int) ([]models.LocationSummary, error)
	Trends(ctx context.Context, since time.Time) ([]models.TrendPoint, error)
	GetSummaryFromCache(ctx context.Context) (*models.AnalyticsSummary, error)
	SetSummaryCache(ctx context.Context, summary *models.AnalyticsSummary) error
}

// AnalyticsService определяет контракт панели аналитики
type AnalyticsService interface {
	Summary(ctx context.Context) (*models.AnalyticsSummary, error)
	TopLocations(ctx context.Context, limit int) ([]models.LocationSummary, error)
	Trends(ctx context.Context, days int) ([]models.TrendPoint, error)
}

type analyticsService struct {
	repo   AnalyticsRepository
	logger *logrus.Logger
	cfg    *config.Config
	now    func() time.Time
}

func NewAnalyticsService(repo AnalyticsRepository, logger *logrus.Logger, cfg *config.Config) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Summary возвращает сводку, кешируя её на короткое время
func (s *analyticsService) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "analytics",
		"method":  "Summary",
	})

	cached, err := s.repo.GetSummaryFromCache(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to read summary from cache")
	}
	if cached != nil {
		log.Debug("Summary served from cache")
		return cached, nil
	}

	summary, err := s.repo.Summary(ctx, startOfDay(s.now()))
	if err != nil {
		log.WithError(err).Error("Failed to compute analytics summary")
		return nil, fmt.Errorf("service: could not compute summary: %w", err)
	}
	summary.AvgUrgencyScore = round1(summary.AvgUrgencyScore)
	summary.ResolutionRate = round1(summary.ResolutionRate)

	if err := s.repo.SetSummaryCache(ctx, summary); err != nil {
		log.WithError(err).Warn("Failed to cache analytics summary")
	}

	log.WithField("total_incidents", summary.TotalIncidents).Info("Analytics summary computed")
	return summary, nil
}

// TopLocations возвращает самые упоминаемые места
func (s *analyticsService) TopLocations(ctx context.Context, limit int) ([]models.LocationSummary, error) {
	if limit < 1 || limit > maxTopLocations {
		limit = defaultTopLocations
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "analytics",
		"method":  "TopLocations",
		"limit":   limit,
	})

	locations, err := s.repo.TopLocations(ctx, limit)
	if err != nil {
		log.WithError(err).Error("Failed to compute top locations")
		return nil, fmt.Errorf("service: could not compute top locations: %w", err)
	}
	for i := range locations {
		locations[i].AvgUrgencyScore = round1(locations[i].AvgUrgencyScore)
	}

	log.WithField("count", len(locations)).Info("Top locations computed")
	return locations, nil
}

// Trends возвращает ряд по дням за последние days суток, включая дни без инцидентов
func (s *analyticsService) Trends(ctx context.Context, days int) ([]models.TrendPoint, error) {
	if days < 1 {
		days = s.cfg.TrendWindowDays
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "analytics",
		"method":  "Trends",
		"days":    days,
	})

	since := startOfDay(s.now()).AddDate(0, 0, -(days - 1))
	points, err := s.repo.Trends(ctx, since)
	if err != nil {
		log.WithError(err).Error("Failed to compute trends")
		return nil, fmt.Errorf("service: could not compute trends: %w", err)
	}

	series := fillTrendGaps(points, since, days)
	log.WithField("points", len(series)).Info("Trends computed")
	return series, nil
}

// fillTrendGaps раскладывает точки по дням окна; отсутствующие дни получают нулевые значения
func fillTrendGaps(points []models.TrendPoint, since time.Time, days int) []models.TrendPoint {
	byDay := make(map[string]models.TrendPoint, len(points))
	for _, p := range points {
		byDay[p.Date.UTC().Format(time.DateOnly)] = p
	}

	series := make([]models.TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i)
		p, ok := byDay[day.Format(time.DateOnly)]
		if !ok {
			p = models.TrendPoint{}
		}
		p.Date = day
		if p.BySeverity == nil {
			p.BySeverity = map[models.Severity]int{}
		}
		series = append(series, p)
	}
	return series
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
