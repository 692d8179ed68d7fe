package models

import (
	"math"
	"time"
)

// Severity - классификация тяжести инцидента (critical > severe > moderate > low)
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeveritySevere   Severity = "severe"
	SeverityModerate Severity = "moderate"
	SeverityLow      Severity = "low"
)

// Valid сообщает, является ли значение одним из известных уровней тяжести
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeveritySevere, SeverityModerate, SeverityLow:
		return true
	}
	return false
}

// Rank возвращает порядковый вес уровня: чем выше, тем серьёзнее. Неизвестное значение - 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeveritySevere:
		return 3
	case SeverityModerate:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// IncidentType - тип происшествия
type IncidentType string

const (
	IncidentTypeFire       IncidentType = "fire"
	IncidentTypeFlood      IncidentType = "flood"
	IncidentTypeEarthquake IncidentType = "earthquake"
	IncidentTypeLandslide  IncidentType = "landslide"
	IncidentTypeStorm      IncidentType = "storm"
	IncidentTypeOther      IncidentType = "other"
)

func (t IncidentType) Valid() bool {
	switch t {
	case IncidentTypeFire, IncidentTypeFlood, IncidentTypeEarthquake,
		IncidentTypeLandslide, IncidentTypeStorm, IncidentTypeOther:
		return true
	}
	return false
}

// Location - упомянутое в сообщении место. Координаты могут отсутствовать,
// если геокодирование не удалось.
type Location struct {
	Name       string   `json:"name"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Coordinates возвращает координаты точки, если они заданы и лежат в допустимых пределах
func (l Location) Coordinates() (LatLng, bool) {
	if l.Latitude == nil || l.Longitude == nil {
		return LatLng{}, false
	}
	p := LatLng{Lat: *l.Latitude, Lng: *l.Longitude}
	if !p.Valid() {
		return LatLng{}, false
	}
	return p, true
}

// Sentiment - эмоциональная оценка сообщения
type Sentiment struct {
	DistressLevel string   `json:"distress_level"`
	Emotions      []string `json:"emotions"`
	HelpSeeking   bool     `json:"help_seeking"`
}

type Incident struct {
	ID                 string       `json:"id"`
	Content            string       `json:"content"`
	Source             string       `json:"source"`
	SourceURL          string       `json:"source_url,omitempty"`
	PublishedAt        time.Time    `json:"published_at"`
	ProcessedAt        time.Time    `json:"processed_at"`
	RelevanceScore     float64      `json:"relevance_score"`
	UrgencyScore       int          `json:"urgency_score"`
	CredibilityScore   float64      `json:"credibility_score"`
	Severity           Severity     `json:"severity"`
	IncidentType       IncidentType `json:"incident_type"`
	AffectedPopulation string       `json:"affected_population,omitempty"`
	Locations          []Location   `json:"locations"`
	Sentiment          *Sentiment   `json:"sentiment,omitempty"`
	AlertGenerated     bool         `json:"alert_generated"`
	AlertID            string       `json:"alert_id,omitempty"`
}

// PrimaryLocation возвращает координаты locations[0], по которым инцидент ставится на карту
func (i *Incident) PrimaryLocation() (Location, LatLng, bool) {
	if len(i.Locations) == 0 {
		return Location{}, LatLng{}, false
	}
	loc := i.Locations[0]
	p, ok := loc.Coordinates()
	return loc, p, ok
}

// LatLng - географическая точка в градусах
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p LatLng) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
