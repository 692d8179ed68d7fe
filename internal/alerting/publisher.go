package alerting

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/disaster_watch/internal/models"
)

const (
	alertQueueKey = "alert_requests"
)

// AlertRequest - запрос на подготовку оповещения по срочному инциденту
type AlertRequest struct {
	IncidentID   string              `json:"incident_id"`
	Severity     models.Severity     `json:"severity"`
	IncidentType models.IncidentType `json:"incident_type"`
	UrgencyScore int                 `json:"urgency_score"`
	LocationName string              `json:"location_name,omitempty"`
	RequestedAt  time.Time           `json:"requested_at"`
}

// NewAlertRequest собирает запрос из инцидента
func NewAlertRequest(incident *models.Incident) AlertRequest {
	req := AlertRequest{
		IncidentID:   incident.ID,
		Severity:     incident.Severity,
		IncidentType: incident.IncidentType,
		UrgencyScore: incident.UrgencyScore,
		RequestedAt:  time.Now().UTC(),
	}
	if len(incident.Locations) > 0 {
		req.LocationName = incident.Locations[0].Name
	}
	return req
}

// AlertPublisher - интерфейс для постановки запросов в очередь
type AlertPublisher interface {
	Publish(ctx context.Context, req AlertRequest) error
}

// RedisAlertPublisher - реализация AlertPublisher, использующая список Redis как очередь
type RedisAlertPublisher struct {
	redisClient *redis.Client
}

// NewRedisAlertPublisher создает новый RedisAlertPublisher
func NewRedisAlertPublisher(client *redis.Client) *RedisAlertPublisher {
	return &RedisAlertPublisher{
		redisClient: client,
	}
}

// Publish публикует запрос в очередь Redis
func (p *RedisAlertPublisher) Publish(ctx context.Context, req AlertRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal alert request: %w", err)
	}

	// LPUSH в левую часть списка, воркер забирает справа
	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert request to Redis: %w", err)
	}
	return nil
}
