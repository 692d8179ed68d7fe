package service

//go:generate mockgen -source=alert.go -destination=mocks/mock_alert.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_watch/internal/alerting"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/sirupsen/logrus"
)

// Аудитория автоматически подготовленных оповещений
var defaultAlertAudience = []string{"public", "emergency_services"}

// AlertRepository определяет контракт хранилища оповещений
type AlertRepository interface {
	CreateAlert(ctx context.Context, alert *models.Alert) error
	ListAlerts(ctx context.Context, limit, offset int) ([]*models.Alert, error)
}

// AlertService определяет контракт бизнес-логики оповещений
type AlertService interface {
	CreateAlert(ctx context.Context, alert *models.Alert) error
	ListAlerts(ctx context.Context, limit, offset int) ([]*models.Alert, error)
	GenerateForIncident(ctx context.Context, req alerting.AlertRequest) (*models.Alert, error)
}

type alertService struct {
	repo      AlertRepository
	incidents IncidentRepository
	logger    *logrus.Logger
}

func NewAlertService(repo AlertRepository, incidents IncidentRepository, logger *logrus.Logger) AlertService {
	return &alertService{
		repo:      repo,
		incidents: incidents,
		logger:    logger,
	}
}

// CreateAlert сохраняет оповещение оператора как черновик
func (s *alertService) CreateAlert(ctx context.Context, alert *models.Alert) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "CreateAlert",
		"severity": alert.Severity,
	})
	log.Info("Attempting to create a new alert")

	alert.ID = uuid.NewString()
	alert.Status = models.AlertStatusDraft
	alert.CreatedAt = time.Now().UTC()
	alert.SentAt = nil
	if alert.Audience == nil {
		alert.Audience = []string{}
	}

	if err := s.repo.CreateAlert(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to create alert in repository")
		return fmt.Errorf("service: could not create alert: %w", err)
	}

	log.WithField("alert_id", alert.ID).Info("Alert created successfully")
	return nil
}

// ListAlerts возвращает страницу оповещений, новые первыми
func (s *alertService) ListAlerts(ctx context.Context, limit, offset int) ([]*models.Alert, error) {
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "ListAlerts",
		"limit":   limit,
		"offset":  offset,
	})
	log.Info("Listing alerts")

	alerts, err := s.repo.ListAlerts(ctx, limit, offset)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}

	log.WithField("count", len(alerts)).Info("Alerts listed successfully")
	return alerts, nil
}

// GenerateForIncident готовит запланированное оповещение по срочному инциденту
// и отмечает инцидент как обработанный. Доставка получателям здесь не выполняется.
func (s *alertService) GenerateForIncident(ctx context.Context, req alerting.AlertRequest) (*models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "alert",
		"method":      "GenerateForIncident",
		"incident_id": req.IncidentID,
	})
	log.Info("Generating alert for incident")

	alert := &models.Alert{
		ID:         uuid.NewString(),
		IncidentID: req.IncidentID,
		Title:      AlertTitle(req.Severity, req.IncidentType),
		Message:    PublicAlertMessage(req),
		Severity:   req.Severity,
		Audience:   append([]string(nil), defaultAlertAudience...),
		Status:     models.AlertStatusScheduled,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.CreateAlert(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to store generated alert")
		return nil, fmt.Errorf("service: could not store generated alert: %w", err)
	}

	if err := s.incidents.MarkAlertGenerated(ctx, req.IncidentID, alert.ID); err != nil {
		log.WithError(err).Error("Failed to mark incident as alerted")
		return nil, fmt.Errorf("service: could not mark incident alert: %w", err)
	}
	if err := s.incidents.InvalidateIncidentCache(ctx, req.IncidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	log.WithField("alert_id", alert.ID).Info("Alert generated successfully")
	return alert, nil
}

// AlertTitle формирует заголовок вида "Critical Flood Alert"
func AlertTitle(severity models.Severity, incidentType models.IncidentType) string {
	return fmt.Sprintf("%s %s Alert", capitalize(string(severity)), capitalize(string(incidentType)))
}

// PublicAlertMessage - короткий текст для населения
func PublicAlertMessage(req alerting.AlertRequest) string {
	severity := string(req.Severity)
	if severity == "" {
		severity = string(models.SeverityModerate)
	}
	incidentType := string(req.IncidentType)
	if incidentType == "" {
		incidentType = "incident"
	}
	place := req.LocationName
	if place == "" {
		place = "affected area"
	}
	return fmt.Sprintf("%s %s reported in %s. Follow local emergency guidelines.", capitalize(severity), incidentType, place)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
