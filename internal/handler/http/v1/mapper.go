package v1

import "github.com/shenikar/disaster_watch/internal/models"

// DTOToIncidentModel преобразует DTO приёма в доменную модель
func DTOToIncidentModel(dto CreateIncidentRequest) *models.Incident {
	incident := &models.Incident{
		Content:            dto.Content,
		Source:             dto.Source,
		SourceURL:          dto.SourceURL,
		RelevanceScore:     dto.RelevanceScore,
		UrgencyScore:       dto.UrgencyScore,
		CredibilityScore:   dto.CredibilityScore,
		Severity:           models.Severity(dto.Severity),
		IncidentType:       models.IncidentType(dto.IncidentType),
		AffectedPopulation: dto.AffectedPopulation,
		Locations:          make([]models.Location, 0, len(dto.Locations)),
	}
	if dto.PublishedAt != nil {
		incident.PublishedAt = dto.PublishedAt.UTC()
	}
	for _, loc := range dto.Locations {
		incident.Locations = append(incident.Locations, models.Location{
			Name:       loc.Name,
			Latitude:   loc.Latitude,
			Longitude:  loc.Longitude,
			Confidence: loc.Confidence,
		})
	}
	if dto.Sentiment != nil {
		incident.Sentiment = &models.Sentiment{
			DistressLevel: dto.Sentiment.DistressLevel,
			Emotions:      dto.Sentiment.Emotions,
			HelpSeeking:   dto.Sentiment.HelpSeeking,
		}
	}
	return incident
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:                 model.ID,
		Content:            model.Content,
		Source:             model.Source,
		SourceURL:          model.SourceURL,
		PublishedAt:        model.PublishedAt,
		ProcessedAt:        model.ProcessedAt,
		RelevanceScore:     model.RelevanceScore,
		UrgencyScore:       model.UrgencyScore,
		CredibilityScore:   model.CredibilityScore,
		Severity:           string(model.Severity),
		IncidentType:       string(model.IncidentType),
		AffectedPopulation: model.AffectedPopulation,
		Locations:          make([]LocationDTO, 0, len(model.Locations)),
		AlertGenerated:     model.AlertGenerated,
		AlertID:            model.AlertID,
	}
	for _, loc := range model.Locations {
		resp.Locations = append(resp.Locations, LocationDTO{
			Name:       loc.Name,
			Latitude:   loc.Latitude,
			Longitude:  loc.Longitude,
			Confidence: loc.Confidence,
		})
	}
	if model.Sentiment != nil {
		resp.Sentiment = &SentimentDTO{
			DistressLevel: model.Sentiment.DistressLevel,
			Emotions:      model.Sentiment.Emotions,
			HelpSeeking:   model.Sentiment.HelpSeeking,
		}
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func DTOToAlertModel(dto CreateAlertRequest) *models.Alert {
	return &models.Alert{
		IncidentID: dto.IncidentID,
		Title:      dto.Title,
		Message:    dto.Message,
		Severity:   models.Severity(dto.Severity),
		Audience:   dto.Audience,
	}
}

func ModelToAlertResponse(model *models.Alert) *AlertResponse {
	audience := model.Audience
	if audience == nil {
		audience = []string{}
	}
	return &AlertResponse{
		ID:             model.ID,
		IncidentID:     model.IncidentID,
		Title:          model.Title,
		Message:        model.Message,
		Severity:       string(model.Severity),
		Audience:       audience,
		Status:         string(model.Status),
		CreatedAt:      model.CreatedAt,
		SentAt:         model.SentAt,
		DeliveryRate:   model.DeliveryRate,
		EngagementRate: model.EngagementRate,
	}
}

func ModelsToAlertResponses(models []*models.Alert) []*AlertResponse {
	responses := make([]*AlertResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToAlertResponse(model)
	}
	return responses
}

// filterFromQuery собирает фильтр из параметров запроса; пустые значения - без фильтра
func filterFromQuery(severity, incidentType string) models.IncidentFilter {
	return models.IncidentFilter{
		Severity:     models.Severity(severity),
		IncidentType: models.IncidentType(incidentType),
	}
}
