package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shenikar/disaster_watch/internal/models"
)

// incidentColumns - порядок колонок должен совпадать с scanIncident
const incidentColumns = `
			id,
			content,
			source,
			COALESCE(source_url, ''),
			published_at,
			processed_at,
			relevance_score,
			urgency_score,
			credibility_score,
			severity,
			incident_type,
			COALESCE(affected_population, ''),
			locations,
			sentiment,
			alert_generated,
			COALESCE(alert_id, '')`

// whereBuilder собирает условия WHERE с позиционными параметрами $1, $2, ...
type whereBuilder struct {
	conds []string
	args  []any
}

// arg добавляет параметр и возвращает его плейсхолдер
func (w *whereBuilder) arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *whereBuilder) add(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// applyFilter добавляет равенства по тяжести/типу и поиск по названию места
func (w *whereBuilder) applyFilter(filter models.IncidentFilter) {
	if filter.Severity != "" {
		w.add("severity = " + w.arg(string(filter.Severity)))
	}
	if filter.IncidentType != "" {
		w.add("incident_type = " + w.arg(string(filter.IncidentType)))
	}
	if name := strings.TrimSpace(filter.Location); name != "" {
		w.add(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements(locations) AS l WHERE l->>'name' ILIKE %s ESCAPE '\\')",
			w.arg("%"+escapeLike(name)+"%"),
		))
	}
}

// applyBounds добавляет пространственное условие; прямоугольник через антимеридиан
// превращается в два конверта, объединённых через OR
func (w *whereBuilder) applyBounds(bounds models.GeoBounds) {
	parts := bounds.Split()
	envs := make([]string, 0, len(parts))
	for _, b := range parts {
		env := fmt.Sprintf("ST_MakeEnvelope(%s, %s, %s, %s, 4326)",
			w.arg(b.West), w.arg(b.South), w.arg(b.East), w.arg(b.North))
		envs = append(envs, fmt.Sprintf("(points && %s AND ST_Intersects(points, %s))", env, env))
	}
	w.add("(" + strings.Join(envs, " OR ") + ")")
}

// buildListQuery - лента инцидентов, новые первыми
func buildListQuery(filter models.IncidentFilter, limit, offset int) (string, []any) {
	w := &whereBuilder{}
	w.applyFilter(filter)
	where := w.String()
	query := fmt.Sprintf(`
		SELECT %s
		FROM incidents
		%s
		ORDER BY published_at DESC, id
		LIMIT %s OFFSET %s;`,
		incidentColumns, where, w.arg(limit), w.arg(offset))
	return query, w.args
}

// buildBoundsQuery - инциденты, у которых есть точка внутри области
func buildBoundsQuery(bounds models.GeoBounds, filter models.IncidentFilter, limit int) (string, []any) {
	w := &whereBuilder{}
	w.applyBounds(bounds)
	w.applyFilter(filter)
	where := w.String()
	query := fmt.Sprintf(`
		SELECT %s
		FROM incidents
		%s
		ORDER BY published_at DESC, id
		LIMIT %s;`,
		incidentColumns, where, w.arg(limit))
	return query, w.args
}

// multiPointWKT строит WKT всех точек инцидента; пустая строка - точек нет
func multiPointWKT(locations []models.Location) string {
	points := make([]string, 0, len(locations))
	for _, loc := range locations {
		p, ok := loc.Coordinates()
		if !ok {
			continue
		}
		points = append(points, fmt.Sprintf("(%s %s)",
			strconv.FormatFloat(p.Lng, 'f', -1, 64),
			strconv.FormatFloat(p.Lat, 'f', -1, 64)))
	}
	if len(points) == 0 {
		return ""
	}
	return "MULTIPOINT(" + strings.Join(points, ",") + ")"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
