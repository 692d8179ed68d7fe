package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/disaster_watch/internal/alerting"
	"github.com/shenikar/disaster_watch/internal/config"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/shenikar/disaster_watch/internal/service"
	"github.com/sirupsen/logrus"
)

const apiVersion = "1.0.0"

// AlertMonitor сообщает состояние обработчика очереди оповещений
type AlertMonitor interface {
	Status(ctx context.Context) (alerting.WorkerStatus, error)
}

type Handler struct {
	incidentService  service.IncidentService
	alertService     service.AlertService
	analyticsService service.AnalyticsService
	alertMonitor     AlertMonitor
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(
	incidentService service.IncidentService,
	alertService service.AlertService,
	analyticsService service.AnalyticsService,
	alertMonitor AlertMonitor,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		incidentService:  incidentService,
		alertService:     alertService,
		analyticsService: analyticsService,
		alertMonitor:     alertMonitor,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// bindQuery разбирает и валидирует параметры строки запроса; при ошибке ответ уже отправлен
func (h *Handler) bindQuery(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// bindJSON разбирает и валидирует тело запроса; при ошибке ответ уже отправлен
func (h *Handler) bindJSON(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary Ingest a processed incident
// @Description Store an incident produced by the ingestion pipeline. Urgent incidents are queued for alert generation.
// @Tags Incidents
// @Accept json
// @Produce json
// @Param incident body CreateIncidentRequest true "Incident"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if !h.bindJSON(c, log, &input) {
		return
	}

	model := DTOToIncidentModel(input)
	if err := h.incidentService.CreateIncident(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(model))
}

// @Summary Get a list of incidents
// @Description Newest incidents first, optionally filtered by severity, type and location name.
// @Tags Incidents
// @Produce json
// @Param limit query int false "Page size (1-100)" default(20)
// @Param offset query int false "Offset" default(0)
// @Param severity query string false "Severity" Enums(critical, severe, moderate, low)
// @Param incident_type query string false "Incident type" Enums(fire, flood, earthquake, landslide, storm, other)
// @Param location query string false "Location name substring"
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	var query ListIncidentsQuery
	log := h.logger.WithField("method", "listIncidents")

	if !h.bindQuery(c, log, &query) {
		return
	}

	filter := filterFromQuery(query.Severity, query.IncidentType)
	filter.Location = query.Location

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), filter, query.Limit, query.Offset)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incidents inside a bounding box
// @Description Incidents with at least one location inside the box, newest first. west > east selects a box crossing the antimeridian.
// @Tags Incidents
// @Produce json
// @Param north query number true "North latitude"
// @Param south query number true "South latitude"
// @Param east query number true "East longitude"
// @Param west query number true "West longitude"
// @Param severity query string false "Severity" Enums(critical, severe, moderate, low)
// @Param incident_type query string false "Incident type" Enums(fire, flood, earthquake, landslide, storm, other)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Missing or invalid bounds"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/by-bounds [get]
func (h *Handler) listIncidentsByBounds(c *gin.Context) {
	var query BoundsQuery
	log := h.logger.WithField("method", "listIncidentsByBounds")

	if !h.bindQuery(c, log, &query) {
		return
	}

	bounds := models.GeoBounds{North: *query.North, South: *query.South, East: *query.East, West: *query.West}
	filter := filterFromQuery(query.Severity, query.IncidentType)

	incidents, err := h.incidentService.ListIncidentsByBounds(c.Request.Context(), bounds, filter)
	if err != nil {
		h.respondError(c, log, err, "Failed to list incidents by bounds from service")
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incidents as GeoJSON
// @Description One point feature per located place of the newest incidents, optionally restricted to a bounding box.
// @Tags Incidents
// @Produce json
// @Param north query number false "North latitude"
// @Param south query number false "South latitude"
// @Param east query number false "East longitude"
// @Param west query number false "West longitude"
// @Param severity query string false "Severity" Enums(critical, severe, moderate, low)
// @Param incident_type query string false "Incident type" Enums(fire, flood, earthquake, landslide, storm, other)
// @Success 200 {object} mapview.FeatureCollection
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/map [get]
func (h *Handler) incidentMap(c *gin.Context) {
	var query MapQuery
	log := h.logger.WithField("method", "incidentMap")

	if !h.bindQuery(c, log, &query) {
		return
	}

	filter := filterFromQuery(query.Severity, query.IncidentType)
	switch set := countSet(query.North, query.South, query.East, query.West); set {
	case 0:
	case 4:
		filter = filter.WithBounds(models.GeoBounds{North: *query.North, South: *query.South, East: *query.East, West: *query.West})
	default:
		log.WithField("bounds_params", set).Warn("Incomplete bounds")
		c.JSON(http.StatusBadRequest, gin.H{"error": "north, south, east and west must be given together"})
		return
	}

	fc, err := h.incidentService.IncidentMap(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, log, err, "Failed to build incident map in service")
		return
	}

	c.JSON(http.StatusOK, fc)
}

// @Summary Get incident by ID
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err, "Failed to get incident from service")
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get a list of alerts
// @Tags Alerts
// @Produce json
// @Param limit query int false "Page size (1-100)" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} AlertResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	var query PageQuery
	log := h.logger.WithField("method", "listAlerts")

	if !h.bindQuery(c, log, &query) {
		return
	}

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Create a draft alert
// @Tags Alerts
// @Accept json
// @Produce json
// @Param alert body CreateAlertRequest true "Alert"
// @Success 201 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [post]
func (h *Handler) createAlert(c *gin.Context) {
	var input CreateAlertRequest
	log := h.logger.WithField("method", "createAlert")

	if !h.bindJSON(c, log, &input) {
		return
	}

	model := DTOToAlertModel(input)
	if err := h.alertService.CreateAlert(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create alert in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToAlertResponse(model))
}

// @Summary Get dashboard summary
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.AnalyticsSummary
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/summary [get]
func (h *Handler) analyticsSummary(c *gin.Context) {
	log := h.logger.WithField("method", "analyticsSummary")

	summary, err := h.analyticsService.Summary(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get summary from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Get most mentioned locations
// @Tags Analytics
// @Produce json
// @Param limit query int false "Number of locations (1-50)" default(10)
// @Success 200 {array} models.LocationSummary
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/locations [get]
func (h *Handler) analyticsLocations(c *gin.Context) {
	var query TopLocationsQuery
	log := h.logger.WithField("method", "analyticsLocations")

	if !h.bindQuery(c, log, &query) {
		return
	}

	locations, err := h.analyticsService.TopLocations(c.Request.Context(), query.Limit)
	if err != nil {
		log.WithError(err).Error("Failed to get top locations from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, locations)
}

// @Summary Get daily incident trends
// @Tags Analytics
// @Produce json
// @Param days query int false "Window in days (1-90)"
// @Success 200 {array} models.TrendPoint
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/trends [get]
func (h *Handler) analyticsTrends(c *gin.Context) {
	var query TrendsQuery
	log := h.logger.WithField("method", "analyticsTrends")

	if !h.bindQuery(c, log, &query) {
		return
	}

	trends, err := h.analyticsService.Trends(c.Request.Context(), query.Days)
	if err != nil {
		log.WithError(err).Error("Failed to get trends from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, trends)
}

// @Summary Get application health status
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   apiVersion,
	})
}

// @Summary Get background alert processing status
// @Tags System
// @Produce json
// @Success 200 {object} alerting.WorkerStatus
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /monitoring/status [get]
func (h *Handler) monitoringStatus(c *gin.Context) {
	log := h.logger.WithField("method", "monitoringStatus")

	status, err := h.alertMonitor.Status(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get alert worker status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// respondError переводит ошибку сервиса в HTTP-статус
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn(msg)
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
	case errors.Is(err, models.ErrInvalidBounds):
		log.WithError(err).Warn(msg)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func countSet(values ...*float64) int {
	n := 0
	for _, v := range values {
		if v != nil {
			n++
		}
	}
	return n
}
