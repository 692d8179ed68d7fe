package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/shenikar/disaster_watch/internal/service"
)

const summaryCacheKey = "analytics:summary"

type AnalyticsRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewAnalyticsRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.AnalyticsRepository {
	return &AnalyticsRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Summary считает сводные показатели одним запросом
func (r *AnalyticsRepository) Summary(ctx context.Context, dayStart time.Time) (*models.AnalyticsSummary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM incidents),
			(SELECT COUNT(*) FROM incidents WHERE severity = 'critical'),
			(SELECT COUNT(*) FROM alerts WHERE status IN ('scheduled', 'sending', 'sent')),
			(SELECT COALESCE(AVG(urgency_score), 0)::float8 FROM incidents),
			(SELECT COUNT(*) FROM incidents WHERE published_at >= $1),
			(SELECT COALESCE(
				100.0 * COUNT(*) FILTER (WHERE status = 'sent') / NULLIF(COUNT(*), 0), 0
			)::float8 FROM alerts WHERE status <> 'draft');
	`
	summary := &models.AnalyticsSummary{}
	err := r.db.QueryRow(ctx, query, dayStart).Scan(
		&summary.TotalIncidents,
		&summary.CriticalIncidents,
		&summary.ActiveAlerts,
		&summary.AvgUrgencyScore,
		&summary.IncidentsToday,
		&summary.ResolutionRate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics summary: %w", err)
	}
	return summary, nil
}

// TopLocations группирует инциденты по названиям упомянутых мест
func (r *AnalyticsRepository) TopLocations(ctx context.Context, limit int) ([]models.LocationSummary, error) {
	query := `
		SELECT
			l->>'name' AS location_name,
			COUNT(DISTINCT i.id) AS incident_count,
			COUNT(DISTINCT i.id) FILTER (WHERE i.severity = 'critical') AS critical_count,
			AVG(i.urgency_score)::float8 AS avg_urgency
		FROM incidents i
		CROSS JOIN LATERAL jsonb_array_elements(i.locations) AS l
		WHERE COALESCE(l->>'name', '') <> ''
		GROUP BY l->>'name'
		ORDER BY incident_count DESC, location_name
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top locations: %w", err)
	}
	defer rows.Close()

	locations := make([]models.LocationSummary, 0)
	for rows.Next() {
		var loc models.LocationSummary
		if err := rows.Scan(&loc.LocationName, &loc.IncidentCount, &loc.CriticalCount, &loc.AvgUrgencyScore); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error location iteration: %w", err)
	}
	return locations, nil
}

// Trends возвращает количество инцидентов по суткам (UTC) и тяжести начиная с since
func (r *AnalyticsRepository) Trends(ctx context.Context, since time.Time) ([]models.TrendPoint, error) {
	query := `
		SELECT
			date_trunc('day', published_at AT TIME ZONE 'UTC') AS day,
			severity,
			COUNT(*)
		FROM incidents
		WHERE published_at >= $1
		GROUP BY day, severity
		ORDER BY day;
	`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to compute trends: %w", err)
	}
	defer rows.Close()

	points := make([]models.TrendPoint, 0)
	for rows.Next() {
		var (
			day      time.Time
			severity string
			count    int
		)
		if err := rows.Scan(&day, &severity, &count); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		points = appendTrend(points, day, models.Severity(severity), count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error trend iteration: %w", err)
	}
	return points, nil
}

// appendTrend сворачивает строки (день, тяжесть) в точки по дням; строки отсортированы по дню
func appendTrend(points []models.TrendPoint, day time.Time, severity models.Severity, count int) []models.TrendPoint {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	if n := len(points); n == 0 || !points[n-1].Date.Equal(day) {
		points = append(points, models.TrendPoint{Date: day, BySeverity: map[models.Severity]int{}})
	}
	last := &points[len(points)-1]
	last.Total += count
	last.BySeverity[severity] += count
	return points
}

// GetSummaryFromCache возвращает сводку из Redis, nil при промахе
func (r *AnalyticsRepository) GetSummaryFromCache(ctx context.Context) (*models.AnalyticsSummary, error) {
	val, err := r.redisClient.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get summary from cache: %w", err)
	}
	summary := &models.AnalyticsSummary{}
	if err := json.Unmarshal(val, summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary from cache: %w", err)
	}
	return summary, nil
}

// SetSummaryCache сохраняет сводку в Redis
func (r *AnalyticsRepository) SetSummaryCache(ctx context.Context, summary *models.AnalyticsSummary) error {
	val, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, summaryCacheKey, val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set summary in cache: %w", err)
	}
	return nil
}
