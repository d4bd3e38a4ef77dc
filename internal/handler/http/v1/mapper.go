package v1

import "github.com/shenikar/tourist_safety/internal/models"

// DTOToLocationInput преобразует запрос обновления координат в вход сервиса
func DTOToLocationInput(dto LocationUpdateRequest) models.LocationInput {
	return models.LocationInput{
		UserID:    dto.UserID,
		TourID:    dto.TourID,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
		Accuracy:  dto.Accuracy,
		Speed:     dto.Speed,
		Heading:   dto.Heading,
		Timestamp: dto.Timestamp,
	}
}

// DTOToAlertInput преобразует запрос тревоги в вход сервиса
func DTOToAlertInput(dto TriggerAlertRequest) models.AlertInput {
	return models.AlertInput{
		UserID:    dto.UserID,
		TourID:    dto.TourID,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
		Message:   dto.Message,
	}
}

func DTOToStatusUpdate(dto UpdateStatusRequest) models.StatusUpdate {
	return models.StatusUpdate{
		Status:      models.EmergencyStatus(dto.Status),
		ResponderID: dto.ResponderID,
		Response:    dto.Response,
	}
}

// nonNilTours и nonNilAlerts нужны, чтобы пустой список сериализовался как [], а не null
func nonNilTours(tours []*models.TrackingState) []*models.TrackingState {
	if tours == nil {
		return []*models.TrackingState{}
	}
	return tours
}

func nonNilAlerts(alerts []*models.EmergencyAlert) []*models.EmergencyAlert {
	if alerts == nil {
		return []*models.EmergencyAlert{}
	}
	return alerts
}
