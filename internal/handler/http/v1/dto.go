package v1

import (
	"time"
)

// ListIncidentsQuery параметры ленты инцидентов
// @Description Параметры ленты инцидентов
type ListIncidentsQuery struct {
	Limit        int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset       int    `form:"offset" validate:"omitempty,min=0"`
	Severity     string `form:"severity" validate:"omitempty,oneof=critical severe moderate low"`
	IncidentType string `form:"incident_type" validate:"omitempty,oneof=fire flood earthquake landslide storm other"`
	Location     string `form:"location" validate:"omitempty,max=255"`
}

// BoundsQuery параметры выборки по прямоугольной области.
// Указатели нужны, чтобы отличать отсутствующий параметр от нуля.
// @Description Параметры выборки по области
type BoundsQuery struct {
	North        *float64 `form:"north" validate:"required,latitude"`
	South        *float64 `form:"south" validate:"required,latitude"`
	East         *float64 `form:"east" validate:"required,longitude"`
	West         *float64 `form:"west" validate:"required,longitude"`
	Severity     string   `form:"severity" validate:"omitempty,oneof=critical severe moderate low"`
	IncidentType string   `form:"incident_type" validate:"omitempty,oneof=fire flood earthquake landslide storm other"`
}

// MapQuery параметры GeoJSON-слоя; область необязательна, но задаётся целиком
// @Description Параметры GeoJSON-слоя карты
type MapQuery struct {
	North        *float64 `form:"north" validate:"omitempty,latitude"`
	South        *float64 `form:"south" validate:"omitempty,latitude"`
	East         *float64 `form:"east" validate:"omitempty,longitude"`
	West         *float64 `form:"west" validate:"omitempty,longitude"`
	Severity     string   `form:"severity" validate:"omitempty,oneof=critical severe moderate low"`
	IncidentType string   `form:"incident_type" validate:"omitempty,oneof=fire flood earthquake landslide storm other"`
}

// PageQuery параметры постраничного списка оповещений
type PageQuery struct {
	Limit  int `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `form:"offset" validate:"omitempty,min=0"`
}

type TopLocationsQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=50"`
}

type TrendsQuery struct {
	Days int `form:"days" validate:"omitempty,min=1,max=90"`
}

// LocationDTO место, упомянутое в сообщении
// @Description Место, упомянутое в сообщении
type LocationDTO struct {
	Name       string   `json:"name" validate:"required,max=255"`
	Latitude   *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude  *float64 `json:"longitude" validate:"omitempty,longitude"`
	Confidence *float64 `json:"confidence,omitempty" validate:"omitempty,min=0,max=1"`
}

// SentimentDTO эмоциональная оценка сообщения
type SentimentDTO struct {
	DistressLevel string   `json:"distress_level" validate:"omitempty,oneof=low medium high"`
	Emotions      []string `json:"emotions"`
	HelpSeeking   bool     `json:"help_seeking"`
}

// CreateIncidentRequest DTO для приёма обработанного инцидента
// @Description DTO для приёма обработанного инцидента
type CreateIncidentRequest struct {
	Content            string        `json:"content" validate:"required,min=2"`
	Source             string        `json:"source" validate:"required,max=255"`
	SourceURL          string        `json:"source_url,omitempty" validate:"omitempty,url"`
	PublishedAt        *time.Time    `json:"published_at,omitempty"`
	RelevanceScore     float64       `json:"relevance_score" validate:"gte=0"`
	UrgencyScore       int           `json:"urgency_score" validate:"min=0,max=10"`
	CredibilityScore   float64       `json:"credibility_score" validate:"gte=0"`
	Severity           string        `json:"severity" validate:"required,oneof=critical severe moderate low"`
	IncidentType       string        `json:"incident_type" validate:"required,oneof=fire flood earthquake landslide storm other"`
	AffectedPopulation string        `json:"affected_population,omitempty"`
	Locations          []LocationDTO `json:"locations" validate:"dive"`
	Sentiment          *SentimentDTO `json:"sentiment,omitempty"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                 string        `json:"id"`
	Content            string        `json:"content"`
	Source             string        `json:"source"`
	SourceURL          string        `json:"source_url,omitempty"`
	PublishedAt        time.Time     `json:"published_at"`
	ProcessedAt        time.Time     `json:"processed_at"`
	RelevanceScore     float64       `json:"relevance_score"`
	UrgencyScore       int           `json:"urgency_score"`
	CredibilityScore   float64       `json:"credibility_score"`
	Severity           string        `json:"severity"`
	IncidentType       string        `json:"incident_type"`
	AffectedPopulation string        `json:"affected_population,omitempty"`
	Locations          []LocationDTO `json:"locations"`
	Sentiment          *SentimentDTO `json:"sentiment,omitempty"`
	AlertGenerated     bool          `json:"alert_generated"`
	AlertID            string        `json:"alert_id,omitempty"`
}

// CreateAlertRequest DTO для создания оповещения оператором
// @Description DTO для создания оповещения
type CreateAlertRequest struct {
	IncidentID string   `json:"incident_id,omitempty" validate:"omitempty,max=64"`
	Title      string   `json:"title" validate:"required,min=2,max=255"`
	Message    string   `json:"message" validate:"required,min=2"`
	Severity   string   `json:"severity" validate:"required,oneof=critical severe moderate low"`
	Audience   []string `json:"audience" validate:"dive,required"`
}

// AlertResponse DTO для ответа с информацией об оповещении
// @Description DTO для ответа с информацией об оповещении
type AlertResponse struct {
	ID             string     `json:"id"`
	IncidentID     string     `json:"incident_id,omitempty"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Severity       string     `json:"severity"`
	Audience       []string   `json:"audience"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	DeliveryRate   *float64   `json:"delivery_rate,omitempty"`
	EngagementRate *float64   `json:"engagement_rate,omitempty"`
}

// HealthResponse DTO состояния сервиса
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
