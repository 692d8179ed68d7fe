package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/shenikar/disaster_watch/internal/service"
)

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	locations, err := json.Marshal(nonNilLocations(incident.Locations))
	if err != nil {
		return fmt.Errorf("failed to marshal incident locations: %w", err)
	}
	var sentiment []byte
	if incident.Sentiment != nil {
		if sentiment, err = json.Marshal(incident.Sentiment); err != nil {
			return fmt.Errorf("failed to marshal incident sentiment: %w", err)
		}
	}

	// NULLIF: у инцидента без координат геометрия остаётся NULL
	query := `
		INSERT INTO incidents (
			id, content, source, source_url, published_at, processed_at,
			relevance_score, urgency_score, credibility_score, severity, incident_type,
			affected_population, locations, sentiment, points
		)
		VALUES (
			$1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''),
			$13, $14, ST_GeomFromText(NULLIF($15, ''), 4326)
		);
	`
	_, err = r.db.Exec(ctx, query,
		incident.ID,
		incident.Content,
		incident.Source,
		incident.SourceURL,
		incident.PublishedAt,
		incident.ProcessedAt,
		incident.RelevanceScore,
		incident.UrgencyScore,
		incident.CredibilityScore,
		string(incident.Severity),
		string(incident.IncidentType),
		incident.AffectedPopulation,
		locations,
		sentiment,
		multiPointWKT(incident.Locations),
	)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по идентификатору
func (r *IncidentRepository) GetByID(ctx context.Context, id string) (*models.Incident, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM incidents
		WHERE id = $1;
	`, incidentColumns)

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// ListIncidents возвращает страницу ленты, новые первыми
func (r *IncidentRepository) ListIncidents(ctx context.Context, filter models.IncidentFilter, limit, offset int) ([]*models.Incident, error) {
	query, args := buildListQuery(filter, limit, offset)
	incidents, err := r.queryIncidents(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	return incidents, nil
}

// ListByBounds возвращает инциденты, у которых хотя бы одна точка внутри области
func (r *IncidentRepository) ListByBounds(ctx context.Context, bounds models.GeoBounds, filter models.IncidentFilter, limit int) ([]*models.Incident, error) {
	query, args := buildBoundsQuery(bounds, filter, limit)
	incidents, err := r.queryIncidents(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents by bounds: %w", err)
	}
	return incidents, nil
}

// MarkAlertGenerated связывает инцидент с подготовленным оповещением
func (r *IncidentRepository) MarkAlertGenerated(ctx context.Context, incidentID, alertID string) error {
	query := `
		UPDATE incidents SET
			alert_generated = TRUE,
			alert_id = $2
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, incidentID, alertID)
	if err != nil {
		return fmt.Errorf("failed to mark incident alert: %w", err)
	}

	// RowsAffected() == 0 - инцидента с таким id не существует
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident with id %s: %w", incidentID, service.ErrNotFound)
	}
	return nil
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id string) (*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, incidentCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, incidentCacheKey(incident.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id string) error {
	if err := r.redisClient.Del(ctx, incidentCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}

func (r *IncidentRepository) queryIncidents(ctx context.Context, query string, args ...any) ([]*models.Incident, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// scanIncident читает строку в порядке incidentColumns
func scanIncident(row pgx.Row) (*models.Incident, error) {
	var (
		incident     = &models.Incident{}
		severity     string
		incidentType string
		locations    []byte
		sentiment    []byte
	)
	err := row.Scan(
		&incident.ID,
		&incident.Content,
		&incident.Source,
		&incident.SourceURL,
		&incident.PublishedAt,
		&incident.ProcessedAt,
		&incident.RelevanceScore,
		&incident.UrgencyScore,
		&incident.CredibilityScore,
		&severity,
		&incidentType,
		&incident.AffectedPopulation,
		&locations,
		&sentiment,
		&incident.AlertGenerated,
		&incident.AlertID,
	)
	if err != nil {
		return nil, err
	}
	incident.Severity = models.Severity(severity)
	incident.IncidentType = models.IncidentType(incidentType)

	if err := decodeIncidentJSON(incident, locations, sentiment); err != nil {
		return nil, err
	}
	return incident, nil
}

func decodeIncidentJSON(incident *models.Incident, locations, sentiment []byte) error {
	incident.Locations = []models.Location{}
	if len(locations) > 0 {
		if err := json.Unmarshal(locations, &incident.Locations); err != nil {
			return fmt.Errorf("failed to decode locations of incident %s: %w", incident.ID, err)
		}
	}
	if len(sentiment) > 0 {
		incident.Sentiment = &models.Sentiment{}
		if err := json.Unmarshal(sentiment, incident.Sentiment); err != nil {
			return fmt.Errorf("failed to decode sentiment of incident %s: %w", incident.ID, err)
		}
	}
	return nil
}

func nonNilLocations(locations []models.Location) []models.Location {
	if locations == nil {
		return []models.Location{}
	}
	return locations
}

func incidentCacheKey(id string) string {
	return fmt.Sprintf("incident:%s", id)
}
