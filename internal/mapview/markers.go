package mapview

import (
	"github.com/shenikar/disaster_watch/internal/models"
)

// DefaultCenter - центр карты, когда нет ни одного маркера
var DefaultCenter = models.LatLng{Lat: 20, Lng: 0}

const previewLength = 100

// Marker - данные одного маркера карты
type Marker struct {
	IncidentID   string              `json:"incident_id"`
	Position     models.LatLng       `json:"position"`
	LocationName string              `json:"location_name"`
	Severity     models.Severity     `json:"severity"`
	IncidentType models.IncidentType `json:"incident_type"`
	UrgencyScore int                 `json:"urgency_score"`
	Preview      string              `json:"preview"`
}

// Markers строит маркеры по locations[0] каждого инцидента. Инциденты без
// корректных координат первой локации пропускаются. Порядок входа сохраняется.
func Markers(incidents []models.Incident) []Marker {
	markers := make([]Marker, 0, len(incidents))
	for i := range incidents {
		loc, pos, ok := incidents[i].PrimaryLocation()
		if !ok {
			continue
		}
		markers = append(markers, Marker{
			IncidentID:   incidents[i].ID,
			Position:     pos,
			LocationName: loc.Name,
			Severity:     incidents[i].Severity,
			IncidentType: incidents[i].IncidentType,
			UrgencyScore: incidents[i].UrgencyScore,
			Preview:      Preview(incidents[i].Content),
		})
	}
	return markers
}

// Center возвращает среднее координат маркеров или DefaultCenter для пустого списка
func Center(markers []Marker) models.LatLng {
	if len(markers) == 0 {
		return DefaultCenter
	}
	var lat, lng float64
	for _, m := range markers {
		lat += m.Position.Lat
		lng += m.Position.Lng
	}
	n := float64(len(markers))
	return models.LatLng{Lat: lat / n, Lng: lng / n}
}

// Preview обрезает текст до previewLength символов, добавляя многоточие
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "..."
}
