package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/disaster_watch/internal/mapview"
	"github.com/shenikar/disaster_watch/internal/models"
)

// StatusError - ответ API с кодом, отличным от 2xx
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected HTTP status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: HTTP %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

// Client - HTTP-клиент API инцидентов. Повторов нет: запрос либо выполняется, либо возвращает ошибку.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New создает клиента; baseURL без завершающего слэша, например http://localhost:8080
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchIncidents выбирает запрос по фильтру: с областью - /incidents/by-bounds
// (сервер сам ограничивает выдачу, limit не передаётся), без неё - первая страница ленты
func (c *Client) FetchIncidents(ctx context.Context, filter models.IncidentFilter, limit int) ([]models.Incident, error) {
	if filter.Bounds != nil {
		return c.ListIncidentsByBounds(ctx, *filter.Bounds, filter)
	}
	return c.ListIncidents(ctx, filter, limit, 0)
}

// ListIncidents - GET /api/incidents
func (c *Client) ListIncidents(ctx context.Context, filter models.IncidentFilter, limit, offset int) ([]models.Incident, error) {
	q := filterValues(filter)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}

	var incidents []models.Incident
	if err := c.get(ctx, "/api/incidents", q, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// ListIncidentsByBounds - GET /api/incidents/by-bounds
func (c *Client) ListIncidentsByBounds(ctx context.Context, bounds models.GeoBounds, filter models.IncidentFilter) ([]models.Incident, error) {
	q := filterValues(filter)
	setBounds(q, bounds)

	var incidents []models.Incident
	if err := c.get(ctx, "/api/incidents/by-bounds", q, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// GetIncident - GET /api/incidents/:id
func (c *Client) GetIncident(ctx context.Context, id string) (*models.Incident, error) {
	var incident models.Incident
	if err := c.get(ctx, "/api/incidents/"+url.PathEscape(id), nil, &incident); err != nil {
		return nil, err
	}
	return &incident, nil
}

// IncidentMap - GeoJSON-слой; область берётся из фильтра, если она задана
func (c *Client) IncidentMap(ctx context.Context, filter models.IncidentFilter) (*mapview.FeatureCollection, error) {
	q := filterValues(filter)
	if filter.Bounds != nil {
		setBounds(q, *filter.Bounds)
	}

	var fc mapview.FeatureCollection
	if err := c.get(ctx, "/api/incidents/map", q, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

func (c *Client) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	var summary models.AnalyticsSummary
	if err := c.get(ctx, "/api/analytics/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) TopLocations(ctx context.Context, limit int) ([]models.LocationSummary, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var locations []models.LocationSummary
	if err := c.get(ctx, "/api/analytics/locations", q, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (c *Client) Trends(ctx context.Context, days int) ([]models.TrendPoint, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var trends []models.TrendPoint
	if err := c.get(ctx, "/api/analytics/trends", q, &trends); err != nil {
		return nil, err
	}
	return trends, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("api: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readStatusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("api: failed to parse %s response: %w", path, err)
	}
	return nil
}

func readStatusError(resp *http.Response) error {
	statusErr := &StatusError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return statusErr
	}
	var apiErr errorBody
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		statusErr.Message = apiErr.Error
	}
	return statusErr
}

// IsStatus сообщает, что ошибка - ответ API с указанным кодом
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}

func filterValues(filter models.IncidentFilter) url.Values {
	q := url.Values{}
	if filter.Severity != "" {
		q.Set("severity", string(filter.Severity))
	}
	if filter.IncidentType != "" {
		q.Set("incident_type", string(filter.IncidentType))
	}
	return q
}

func setBounds(q url.Values, b models.GeoBounds) {
	q.Set("north", formatCoord(b.North))
	q.Set("south", formatCoord(b.South))
	q.Set("east", formatCoord(b.East))
	q.Set("west", formatCoord(b.West))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
