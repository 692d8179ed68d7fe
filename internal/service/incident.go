package service

//go:generate mockgen -source=incident.go -destination=mocks/mock_incident.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_watch/internal/alerting"
	"github.com/shenikar/disaster_watch/internal/config"
	"github.com/shenikar/disaster_watch/internal/mapview"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	// MaxBoundsResults - верхняя граница выдачи запроса по области
	MaxBoundsResults = 500
	// MapIncidentLimit - сколько последних инцидентов попадает на карту
	MapIncidentLimit = 100
)

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id string) (*models.Incident, error)
	ListIncidents(ctx context.Context, filter models.IncidentFilter, limit, offset int) ([]*models.Incident, error)
	ListByBounds(ctx context.Context, bounds models.GeoBounds, filter models.IncidentFilter, limit int) ([]*models.Incident, error)
	MarkAlertGenerated(ctx context.Context, incidentID, alertID string) error
	GetIncidentFromCache(ctx context.Context, id string) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id string) error
}

// IncidentService определяет контракт для бизнес-логики ленты инцидентов
type IncidentService interface {
	CreateIncident(ctx context.Context, incident *models.Incident) error
	GetIncident(ctx context.Context, id string) (*models.Incident, error)
	ListIncidents(ctx context.Context, filter models.IncidentFilter, limit, offset int) ([]*models.Incident, error)
	ListIncidentsByBounds(ctx context.Context, bounds models.GeoBounds, filter models.IncidentFilter) ([]*models.Incident, error)
	IncidentMap(ctx context.Context, filter models.IncidentFilter) (*mapview.FeatureCollection, error)
}

type incidentService struct {
	repo      IncidentRepository
	logger    *logrus.Logger
	cfg       *config.Config
	publisher alerting.AlertPublisher
}

func NewIncidentService(repo IncidentRepository, logger *logrus.Logger, cfg *config.Config, publisher alerting.AlertPublisher) IncidentService {
	return &incidentService{
		repo:      repo,
		logger:    logger,
		cfg:       cfg,
		publisher: publisher,
	}
}

// CreateIncident сохраняет обработанный инцидент и ставит срочные в очередь на оповещение
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "incident",
		"method":        "CreateIncident",
		"severity":      incident.Severity,
		"urgency_score": incident.UrgencyScore,
	})
	log.Info("Attempting to create a new incident")

	if incident.ID == "" {
		incident.ID = uuid.NewString()
	}
	incident.ProcessedAt = time.Now().UTC()
	if incident.PublishedAt.IsZero() {
		incident.PublishedAt = incident.ProcessedAt
	}
	incident.AlertGenerated = false
	incident.AlertID = ""

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}
	log = log.WithField("incident_id", incident.ID)
	log.Info("Incident created successfully")

	if incident.UrgencyScore >= s.cfg.AlertUrgencyThreshold {
		// Инцидент уже сохранён, ошибка очереди не должна откатывать запрос
		if err := s.publisher.Publish(ctx, alerting.NewAlertRequest(incident)); err != nil {
			log.WithError(err).Error("Failed to queue alert request")
		} else {
			log.Info("Alert request queued for urgent incident")
		}
	}
	return nil
}

// GetIncident получает инцидент по ID, сначала из кеша
func (s *incidentService) GetIncident(ctx context.Context, id string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Info("Fetching incident by ID")

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident from cache")
	}
	if cached != nil {
		log.Debug("Incident served from cache")
		return cached, nil
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}

	log.Info("Incident fetched successfully")
	return incident, nil
}

// ListIncidents возвращает страницу инцидентов, новые первыми. Область в фильтре игнорируется.
func (s *incidentService) ListIncidents(ctx context.Context, filter models.IncidentFilter, limit, offset int) ([]*models.Incident, error) {
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":       "incident",
		"method":        "ListIncidents",
		"limit":         limit,
		"offset":        offset,
		"severity":      filter.Severity,
		"incident_type": filter.IncidentType,
	})
	log.Info("Listing incidents")

	incidents, err := s.repo.ListIncidents(ctx, filter.WithoutBounds(), limit, offset)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}

// ListIncidentsByBounds возвращает инциденты, у которых хотя бы одно место попадает в область.
// Репозиторий отбирает кандидатов по охватывающему прямоугольнику, точная проверка делается здесь.
func (s *incidentService) ListIncidentsByBounds(ctx context.Context, bounds models.GeoBounds, filter models.IncidentFilter) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "incident",
		"method":        "ListIncidentsByBounds",
		"north":         bounds.North,
		"south":         bounds.South,
		"east":          bounds.East,
		"west":          bounds.West,
		"severity":      filter.Severity,
		"incident_type": filter.IncidentType,
	})
	log.Info("Listing incidents by bounds")

	if err := bounds.Validate(); err != nil {
		log.WithError(err).Warn("Rejected invalid bounds")
		return nil, fmt.Errorf("service: %w", err)
	}

	candidates, err := s.repo.ListByBounds(ctx, bounds, filter.WithoutBounds(), MaxBoundsResults)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents by bounds from repository")
		return nil, fmt.Errorf("service: could not list incidents by bounds: %w", err)
	}

	incidents := make([]*models.Incident, 0, len(candidates))
	for _, incident := range candidates {
		if bounds.ContainsIncident(incident) && filter.Matches(incident) {
			incidents = append(incidents, incident)
		}
	}

	log.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"count":      len(incidents),
	}).Info("Incidents by bounds listed successfully")
	return incidents, nil
}

// IncidentMap собирает GeoJSON последних инцидентов; при заданной области - только внутри неё
func (s *incidentService) IncidentMap(ctx context.Context, filter models.IncidentFilter) (*mapview.FeatureCollection, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "IncidentMap",
	})

	var (
		incidents []*models.Incident
		err       error
	)
	if filter.Bounds != nil {
		incidents, err = s.ListIncidentsByBounds(ctx, *filter.Bounds, filter)
		if err == nil && len(incidents) > MapIncidentLimit {
			incidents = incidents[:MapIncidentLimit]
		}
	} else {
		incidents, err = s.repo.ListIncidents(ctx, filter, MapIncidentLimit, 0)
	}
	if err != nil {
		log.WithError(err).Error("Failed to load incidents for map")
		return nil, fmt.Errorf("service: could not build incident map: %w", err)
	}

	values := make([]models.Incident, 0, len(incidents))
	for _, incident := range incidents {
		values = append(values, *incident)
	}
	fc := mapview.NewFeatureCollection(values, filter.Bounds)

	log.WithField("features", len(fc.Features)).Info("Incident map built successfully")
	return &fc, nil
}
