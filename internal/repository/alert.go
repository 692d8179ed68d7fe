package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/shenikar/disaster_watch/internal/service"
)

type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) service.AlertRepository {
	return &AlertRepository{db: db}
}

// CreateAlert сохраняет оповещение
func (r *AlertRepository) CreateAlert(ctx context.Context, alert *models.Alert) error {
	query := `
		INSERT INTO alerts (
			id, incident_id, title, message, severity, audience, status,
			created_at, sent_at, delivery_rate, engagement_rate
		)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		alert.ID,
		alert.IncidentID,
		alert.Title,
		alert.Message,
		string(alert.Severity),
		alert.Audience,
		string(alert.Status),
		alert.CreatedAt,
		alert.SentAt,
		alert.DeliveryRate,
		alert.EngagementRate,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// ListAlerts возвращает оповещения, новые первыми
func (r *AlertRepository) ListAlerts(ctx context.Context, limit, offset int) ([]*models.Alert, error) {
	query := `
		SELECT
			id,
			COALESCE(incident_id, ''),
			title,
			message,
			severity,
			audience,
			status,
			created_at,
			sent_at,
			delivery_rate,
			engagement_rate
		FROM alerts
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*models.Alert, 0)
	for rows.Next() {
		var (
			alert    = &models.Alert{}
			severity string
			status   string
		)
		err := rows.Scan(
			&alert.ID,
			&alert.IncidentID,
			&alert.Title,
			&alert.Message,
			&severity,
			&alert.Audience,
			&status,
			&alert.CreatedAt,
			&alert.SentAt,
			&alert.DeliveryRate,
			&alert.EngagementRate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alert.Severity = models.Severity(severity)
		alert.Status = models.AlertStatus(status)
		if alert.Audience == nil {
			alert.Audience = []string{}
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error alert list iteration: %w", err)
	}
	return alerts, nil
}
