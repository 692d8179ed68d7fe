package mapview

import (
	"github.com/shenikar/disaster_watch/internal/models"
)

// FeatureCollection - GeoJSON-представление инцидентов для слоя карты
type FeatureCollection struct {
	Type     string            `json:"type"`
	Features []Feature         `json:"features"`
	Bounds   *models.GeoBounds `json:"bounds,omitempty"`
}

type Feature struct {
	Type       string            `json:"type"`
	Geometry   Point             `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// Point - геометрия GeoJSON; координаты в порядке [lng, lat]
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type FeatureProperties struct {
	IncidentID   string              `json:"incident_id"`
	Severity     models.Severity     `json:"severity"`
	IncidentType models.IncidentType `json:"incident_type"`
	UrgencyScore int                 `json:"urgency_score"`
	Content      string              `json:"content"`
	LocationName string              `json:"location_name"`
}

// NewFeatureCollection строит по одной точке на каждую локацию с координатами.
// При заданной области (bounds != nil) локации вне неё пропускаются, и область сохраняется в ответе.
func NewFeatureCollection(incidents []models.Incident, bounds *models.GeoBounds) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(incidents)),
		Bounds:   bounds,
	}
	for i := range incidents {
		inc := &incidents[i]
		for _, loc := range inc.Locations {
			p, ok := loc.Coordinates()
			if !ok {
				continue
			}
			if bounds != nil && !bounds.Contains(p) {
				continue
			}
			fc.Features = append(fc.Features, Feature{
				Type: "Feature",
				Geometry: Point{
					Type:        "Point",
					Coordinates: [2]float64{p.Lng, p.Lat},
				},
				Properties: FeatureProperties{
					IncidentID:   inc.ID,
					Severity:     inc.Severity,
					IncidentType: inc.IncidentType,
					UrgencyScore: inc.UrgencyScore,
					Content:      Preview(inc.Content),
					LocationName: loc.Name,
				},
			})
		}
	}
	return fc
}
