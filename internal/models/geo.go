package models

import (
	"errors"
	"fmt"
)

var ErrInvalidBounds = errors.New("invalid bounds")

// GeoBounds - прямоугольник широт/долгот, используемый как пространственный фильтр.
// West > East означает, что прямоугольник пересекает антимеридиан.
type GeoBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Envelope строит нормализованный прямоугольник по двум противоположным углам:
// порядок углов не влияет на результат.
func Envelope(a, b LatLng) GeoBounds {
	return GeoBounds{
		North: max(a.Lat, b.Lat),
		South: min(a.Lat, b.Lat),
		East:  max(a.Lng, b.Lng),
		West:  min(a.Lng, b.Lng),
	}
}

// EnvelopeOf возвращает охватывающий прямоугольник всех точек с корректными координатами
func EnvelopeOf(locations []Location) (GeoBounds, bool) {
	var (
		env   GeoBounds
		found bool
	)
	for _, loc := range locations {
		p, ok := loc.Coordinates()
		if !ok {
			continue
		}
		if !found {
			env = Envelope(p, p)
			found = true
			continue
		}
		env = GeoBounds{
			North: max(env.North, p.Lat),
			South: min(env.South, p.Lat),
			East:  max(env.East, p.Lng),
			West:  min(env.West, p.Lng),
		}
	}
	return env, found
}

// Validate проверяет диапазоны и инвариант south <= north
func (b GeoBounds) Validate() error {
	if !(LatLng{Lat: b.North, Lng: b.East}).Valid() || !(LatLng{Lat: b.South, Lng: b.West}).Valid() {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidBounds)
	}
	if b.South > b.North {
		return fmt.Errorf("%w: south (%g) must not exceed north (%g)", ErrInvalidBounds, b.South, b.North)
	}
	return nil
}

// CrossesAntimeridian сообщает, что прямоугольник переходит через 180-й меридиан
func (b GeoBounds) CrossesAntimeridian() bool {
	return b.West > b.East
}

// Contains проверяет попадание точки в прямоугольник, границы включены
func (b GeoBounds) Contains(p LatLng) bool {
	if p.Lat < b.South || p.Lat > b.North {
		return false
	}
	if b.CrossesAntimeridian() {
		return p.Lng >= b.West || p.Lng <= b.East
	}
	return p.Lng >= b.West && p.Lng <= b.East
}

// ContainsIncident - true, если хотя бы одна локация инцидента попадает в прямоугольник.
// Локации без координат игнорируются.
func (b GeoBounds) ContainsIncident(incident *Incident) bool {
	for _, loc := range incident.Locations {
		if p, ok := loc.Coordinates(); ok && b.Contains(p) {
			return true
		}
	}
	return false
}

// Split разбивает прямоугольник, пересекающий антимеридиан, на два обычных
func (b GeoBounds) Split() []GeoBounds {
	if !b.CrossesAntimeridian() {
		return []GeoBounds{b}
	}
	return []GeoBounds{
		{North: b.North, South: b.South, West: b.West, East: 180},
		{North: b.North, South: b.South, West: -180, East: b.East},
	}
}
