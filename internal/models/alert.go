package models

import "time"

type AlertStatus string

const (
	AlertStatusDraft     AlertStatus = "draft"
	AlertStatusScheduled AlertStatus = "scheduled"
	AlertStatusSending   AlertStatus = "sending"
	AlertStatusSent      AlertStatus = "sent"
	AlertStatusFailed    AlertStatus = "failed"
)

// Alert - оповещение, подготовленное по инциденту или вручную оператором
type Alert struct {
	ID             string      `json:"id"`
	IncidentID     string      `json:"incident_id,omitempty"`
	Title          string      `json:"title"`
	Message        string      `json:"message"`
	Severity       Severity    `json:"severity"`
	Audience       []string    `json:"audience"`
	Status         AlertStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	SentAt         *time.Time  `json:"sent_at,omitempty"`
	DeliveryRate   *float64    `json:"delivery_rate,omitempty"`
	EngagementRate *float64    `json:"engagement_rate,omitempty"`
}
