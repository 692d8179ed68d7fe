package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestBuildListQuery_NoFilters(t *testing.T) {
	query, args := buildListQuery(models.IncidentFilter{}, 20, 40)

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY published_at DESC")
	assert.Contains(t, query, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{20, 40}, args)
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	filter := models.IncidentFilter{
		Severity:     models.SeverityCritical,
		IncidentType: models.IncidentTypeFlood,
		Location:     " 50%_off ",
	}

	query, args := buildListQuery(filter, 10, 0)

	assert.Contains(t, query, "severity = $1")
	assert.Contains(t, query, "incident_type = $2")
	assert.Contains(t, query, "ILIKE $3")
	assert.Contains(t, query, "LIMIT $4 OFFSET $5")
	require.Len(t, args, 5)
	assert.Equal(t, "critical", args[0])
	assert.Equal(t, "flood", args[1])
	assert.Equal(t, `%50\%\_off%`, args[2])
}

func TestBuildBoundsQuery_SingleEnvelope(t *testing.T) {
	bounds := models.GeoBounds{North: 41, South: 39, East: -73, West: -75}

	query, args := buildBoundsQuery(bounds, models.IncidentFilter{Severity: models.SeverityLow}, 500)

	assert.Equal(t, 1, strings.Count(query, "ST_Intersects"))
	assert.Contains(t, query, "ST_MakeEnvelope($1, $2, $3, $4, 4326)")
	assert.Contains(t, query, "severity = $5")
	assert.Contains(t, query, "LIMIT $6")
	// west, south, east, north
	assert.Equal(t, []any{-75.0, 39.0, -73.0, 41.0, "low", 500}, args)
}

func TestBuildBoundsQuery_AntimeridianUsesTwoEnvelopes(t *testing.T) {
	bounds := models.GeoBounds{North: 10, South: -10, East: -170, West: 170}

	query, args := buildBoundsQuery(bounds, models.IncidentFilter{}, 500)

	assert.Equal(t, 2, strings.Count(query, "ST_Intersects"))
	assert.Contains(t, query, " OR ")
	assert.Equal(t, []any{170.0, -10.0, 180.0, 10.0, -180.0, -10.0, -170.0, 10.0, 500}, args)
}

func TestMultiPointWKT(t *testing.T) {
	locations := []models.Location{
		{Name: "NYC", Latitude: ptr(40.7128), Longitude: ptr(-74.006)},
		{Name: "unknown"},
		{Name: "Tokyo", Latitude: ptr(35.5), Longitude: ptr(139)},
	}

	assert.Equal(t, "MULTIPOINT((-74.006 40.7128),(139 35.5))", multiPointWKT(locations))
	assert.Equal(t, "", multiPointWKT([]models.Location{{Name: "nowhere"}}))
}

func TestAppendTrend_GroupsByDay(t *testing.T) {
	d1 := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var points []models.TrendPoint
	points = appendTrend(points, d1, models.SeverityCritical, 2)
	points = appendTrend(points, d1, models.SeverityLow, 1)
	points = appendTrend(points, d2, models.SeverityLow, 4)

	require.Len(t, points, 2)
	assert.Equal(t, 3, points[0].Total)
	assert.Equal(t, 2, points[0].BySeverity[models.SeverityCritical])
	assert.Equal(t, 4, points[1].Total)
	assert.True(t, points[1].Date.Equal(d2))
}
