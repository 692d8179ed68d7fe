package models

import "time"

// AnalyticsSummary - сводные показатели для панели аналитики
type AnalyticsSummary struct {
	TotalIncidents    int     `json:"total_incidents"`
	CriticalIncidents int     `json:"critical_incidents"`
	ActiveAlerts      int     `json:"active_alerts"`
	AvgUrgencyScore   float64 `json:"avg_urgency_score"`
	IncidentsToday    int     `json:"incidents_today"`
	ResolutionRate    float64 `json:"resolution_rate"`
}

// LocationSummary - статистика по одному названию места
type LocationSummary struct {
	LocationName    string  `json:"location_name"`
	IncidentCount   int     `json:"incident_count"`
	CriticalCount   int     `json:"critical_count"`
	AvgUrgencyScore float64 `json:"avg_urgency_score"`
}

// TrendPoint - количество инцидентов за сутки с разбивкой по тяжести
type TrendPoint struct {
	Date       time.Time        `json:"date"`
	Total      int              `json:"total"`
	BySeverity map[Severity]int `json:"by_severity"`
}
