package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	incidents := api.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.POST("", h.createIncident)
		// Статические пути регистрируются рядом с /:id, gin отдаёт им приоритет
		incidents.GET("/by-bounds", h.listIncidentsByBounds)
		incidents.GET("/map", h.incidentMap)
		incidents.GET("/:id", h.getIncident)
	}

	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("", h.createAlert)
	}

	analytics := api.Group("/analytics")
	{
		analytics.GET("/summary", h.analyticsSummary)
		analytics.GET("/locations", h.analyticsLocations)
		analytics.GET("/trends", h.analyticsTrends)
	}

	// Маршрут Health-check
	api.GET("/health", h.healthCheck)
	api.GET("/monitoring/status", h.monitoringStatus)
}
