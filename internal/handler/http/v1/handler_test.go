package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/disaster_watch/internal/alerting"
	"github.com/shenikar/disaster_watch/internal/config"
	"github.com/shenikar/disaster_watch/internal/mapview"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/shenikar/disaster_watch/internal/service"
	"github.com/shenikar/disaster_watch/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	incidents *mocks.MockIncidentService
	alerts    *mocks.MockAlertService
	analytics *mocks.MockAnalyticsService
	monitor   *fakeMonitor
}

// fakeMonitor возвращает заранее заданное состояние воркера
type fakeMonitor struct {
	status alerting.WorkerStatus
	err    error
}

func (f *fakeMonitor) Status(context.Context) (alerting.WorkerStatus, error) {
	return f.status, f.err
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := testMocks{
		incidents: mocks.NewMockIncidentService(ctrl),
		alerts:    mocks.NewMockAlertService(ctrl),
		analytics: mocks.NewMockAnalyticsService(ctrl),
		monitor:   &fakeMonitor{},
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{AlertUrgencyThreshold: 8}

	handler := NewHandler(m.incidents, m.alerts, m.analytics, m.monitor, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLoggerMiddleware(logger))
	api := router.Group("/api")
	handler.RegisterRoutes(api)

	return handler, m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func fp(v float64) *float64 { return &v }

func TestListIncidentsByBounds_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	expectedBounds := models.GeoBounds{North: 41, South: 39, East: -73, West: -75}
	found := []*models.Incident{{
		ID:        "inc-1",
		Severity:  models.SeverityCritical,
		Locations: []models.Location{{Name: "New York", Latitude: fp(40), Longitude: fp(-74)}},
	}}

	m.incidents.EXPECT().
		ListIncidentsByBounds(gomock.Any(), expectedBounds, models.IncidentFilter{Severity: models.SeverityCritical}).
		Return(found, nil).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/incidents/by-bounds?north=41&south=39&east=-73&west=-75&severity=critical", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "inc-1", resp[0].ID)
	assert.Equal(t, "New York", resp[0].Locations[0].Name)
}

func TestListIncidentsByBounds_ZeroCoordinatesAreValid(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		ListIncidentsByBounds(gomock.Any(), models.GeoBounds{North: 0, South: -10, East: 0, West: -10}, models.IncidentFilter{}).
		Return([]*models.Incident{}, nil).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/incidents/by-bounds?north=0&south=-10&east=0&west=-10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListIncidentsByBounds_BadRequest(t *testing.T) {
	cases := map[string]string{
		"missing west":     "north=41&south=39&east=-73",
		"not a number":     "north=abc&south=39&east=-73&west=-75",
		"latitude range":   "north=91&south=39&east=-73&west=-75",
		"longitude range":  "north=41&south=39&east=-73&west=-181",
		"unknown severity": "north=41&south=39&east=-73&west=-75&severity=apocalyptic",
		"unknown type":     "north=41&south=39&east=-73&west=-75&incident_type=volcano",
		"no params at all": "",
	}
	for name, query := range cases {
		t.Run(name, func(t *testing.T) {
			_, m, router := newTestHandler(t)
			m.incidents.EXPECT().ListIncidentsByBounds(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			w := makeRequest(router, http.MethodGet, "/api/incidents/by-bounds?"+query, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestListIncidentsByBounds_SouthAboveNorth(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.incidents.EXPECT().
		ListIncidentsByBounds(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("service: %w: south must not exceed north", models.ErrInvalidBounds)).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/incidents/by-bounds?north=10&south=20&east=5&west=0", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid bounds")
}

func TestListIncidents_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	expectedFilter := models.IncidentFilter{IncidentType: models.IncidentTypeFlood, Location: "Chennai"}

	m.incidents.EXPECT().
		ListIncidents(gomock.Any(), expectedFilter, 50, 10).
		Return([]*models.Incident{{ID: "a"}, {ID: "b"}}, nil).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/incidents?limit=50&offset=10&incident_type=flood&location=Chennai", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestListIncidents_LimitTooLarge(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/incidents?limit=1000", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListIncidents_ServiceError(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.incidents.EXPECT().
		ListIncidents(gomock.Any(), gomock.Any(), 0, 0).
		Return(nil, fmt.Errorf("db down")).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/incidents", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetIncident_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.incidents.EXPECT().
		GetIncident(gomock.Any(), "missing").
		Return(nil, fmt.Errorf("service: could not get incident: %w", service.ErrNotFound)).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/incidents/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetIncident_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.incidents.EXPECT().
		GetIncident(gomock.Any(), "inc-1").
		Return(&models.Incident{ID: "inc-1", Content: "Flood"}, nil).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/incidents/inc-1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"content":"Flood"`)
}

func TestCreateIncident_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	published := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	reqBody := CreateIncidentRequest{
		Content:      "Heavy flooding reported near the river",
		Source:       "rss",
		PublishedAt:  &published,
		UrgencyScore: 9,
		Severity:     "critical",
		IncidentType: "flood",
		Locations:    []LocationDTO{{Name: "Chennai", Latitude: fp(13.08), Longitude: fp(80.27)}},
	}

	m.incidents.EXPECT().
		CreateIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.Incident) error {
			assert.Equal(t, models.SeverityCritical, inc.Severity)
			assert.Equal(t, published, inc.PublishedAt)
			require.Len(t, inc.Locations, 1)
			inc.ID = "generated"
			return nil
		}).
		Times(1)

	body, _ := json.Marshal(reqBody)
	w := makeRequest(router, http.MethodPost, "/api/incidents", bytes.NewBuffer(body))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "generated", resp.ID)
}

func TestCreateIncident_ValidationError(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Times(0)

	body := `{"content":"x y","source":"rss","severity":"critical","incident_type":"flood","urgency_score":11}`
	w := makeRequest(router, http.MethodPost, "/api/incidents", strings.NewReader(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateIncident_InvalidLocation(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Times(0)

	body := `{"content":"x y","source":"rss","severity":"low","incident_type":"fire","locations":[{"name":"X","latitude":120,"longitude":0}]}`
	w := makeRequest(router, http.MethodPost, "/api/incidents", strings.NewReader(body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIncidentMap_WithBounds(t *testing.T) {
	_, m, router := newTestHandler(t)
	bounds := models.GeoBounds{North: 41, South: 39, East: -73, West: -75}

	m.incidents.EXPECT().
		IncidentMap(gomock.Any(), models.IncidentFilter{}.WithBounds(bounds)).
		Return(&mapview.FeatureCollection{Type: "FeatureCollection", Features: []mapview.Feature{}, Bounds: &bounds}, nil).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/incidents/map?north=41&south=39&east=-73&west=-75", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"FeatureCollection"`)
}

func TestIncidentMap_PartialBounds(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.incidents.EXPECT().IncidentMap(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodGet, "/api/incidents/map?north=41&south=39", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAlert_Success(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.alerts.EXPECT().
		CreateAlert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, alert *models.Alert) error {
			alert.ID = "alert-1"
			alert.Status = models.AlertStatusDraft
			return nil
		}).
		Times(1)

	body := `{"title":"Evacuate","message":"Leave the area","severity":"severe","audience":["public"]}`
	w := makeRequest(router, http.MethodPost, "/api/alerts", strings.NewReader(body))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, []string{"public"}, resp.Audience)
}

func TestListAlerts_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.alerts.EXPECT().
		ListAlerts(gomock.Any(), 5, 0).
		Return([]*models.Alert{{ID: "a-1", Status: models.AlertStatusSent}}, nil).
		Times(1)

	w := makeRequest(router, http.MethodGet, "/api/alerts?limit=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"sent"`)
}

func TestAnalyticsEndpoints(t *testing.T) {
	_, m, router := newTestHandler(t)

	m.analytics.EXPECT().Summary(gomock.Any()).Return(&models.AnalyticsSummary{TotalIncidents: 7}, nil).Times(1)
	m.analytics.EXPECT().TopLocations(gomock.Any(), 3).Return([]models.LocationSummary{{LocationName: "Mumbai"}}, nil).Times(1)
	m.analytics.EXPECT().Trends(gomock.Any(), 0).Return([]models.TrendPoint{}, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/analytics/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_incidents":7`)

	w = makeRequest(router, http.MethodGet, "/api/analytics/locations?limit=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mumbai")

	w = makeRequest(router, http.MethodGet, "/api/analytics/trends", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = makeRequest(router, http.MethodGet, "/api/analytics/trends?days=365", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestMonitoringStatus(t *testing.T) {
	_, m, router := newTestHandler(t)
	last := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	m.monitor.status = alerting.WorkerStatus{Status: "active", QueueLength: 3, LastProcessed: &last, TotalProcessed: 42}

	w := makeRequest(router, http.MethodGet, "/api/monitoring/status", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got alerting.WorkerStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, int64(3), got.QueueLength)
	assert.Equal(t, int64(42), got.TotalProcessed)
	require.NotNil(t, got.LastProcessed)
	assert.True(t, last.Equal(*got.LastProcessed))
}

func TestMonitoringStatus_Error(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.monitor.err = fmt.Errorf("redis down")

	w := makeRequest(router, http.MethodGet, "/api/monitoring/status", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
