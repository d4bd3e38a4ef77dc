package v1

import (
	"time"

	"github.com/shenikar/tourist_safety/internal/models"
)

// PointRequest DTO для упрощенного обновления координат
// @Description DTO для упрощенного обновления координат
type PointRequest struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

// LocationUpdateRequest DTO для обновления координат отслеживаемого тура
// @Description DTO для обновления координат отслеживаемого тура
type LocationUpdateRequest struct {
	UserID    string     `json:"userId" validate:"required"`
	TourID    string     `json:"tourId" validate:"required"`
	Latitude  *float64   `json:"latitude" validate:"required,latitude"`
	Longitude *float64   `json:"longitude" validate:"required,longitude"`
	Accuracy  *float64   `json:"accuracy,omitempty" validate:"omitempty,gte=0"`
	Speed     *float64   `json:"speed,omitempty" validate:"omitempty,gte=0"`
	Heading   *float64   `json:"heading,omitempty" validate:"omitempty,gte=0,lte=360"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// StartTrackingRequest DTO для начала отслеживания тура
// @Description DTO для начала отслеживания тура
type StartTrackingRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// TriggerAlertRequest DTO для создания тревоги
// @Description DTO для создания тревоги
type TriggerAlertRequest struct {
	UserID    string   `json:"userId" validate:"required"`
	TourID    string   `json:"tourId" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Message   string   `json:"message,omitempty" validate:"max=500"`
}

// UpdateStatusRequest DTO для смены статуса тревоги
// @Description DTO для смены статуса тревоги
type UpdateStatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=active resolved closed"`
	ResponderID string `json:"responderId,omitempty"`
	Response    string `json:"response,omitempty"`
}

// PointResponse DTO ответа на упрощенное обновление
// @Description DTO ответа на упрощенное обновление
type PointResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *models.PointLocation `json:"data"`
}

// LocationUpdateResponse DTO ответа на обновление координат
// @Description DTO ответа на обновление координат
type LocationUpdateResponse struct {
	Success    bool      `json:"success"`
	LocationID string    `json:"locationId"`
	Timestamp  time.Time `json:"timestamp"`
}

// CurrentLocationResponse DTO с последней точкой пользователя
type CurrentLocationResponse struct {
	Location *models.LocationRecord `json:"location"`
}

// ActiveToursResponse DTO со списком активных туров
type ActiveToursResponse struct {
	ActiveTours []*models.TrackingState `json:"activeTours"`
}

// TriggerAlertResponse DTO ответа на создание тревоги
// @Description DTO ответа на создание тревоги
type TriggerAlertResponse struct {
	Success     bool      `json:"success"`
	EmergencyID string    `json:"emergencyId"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}

// EmergencyResponse DTO с одной тревогой
type EmergencyResponse struct {
	Emergency *models.EmergencyAlert `json:"emergency"`
}

// EmergencyListResponse DTO со списком активных тревог
type EmergencyListResponse struct {
	Emergencies []*models.EmergencyAlert `json:"emergencies"`
}

// UpdateStatusResponse DTO ответа на смену статуса
// @Description DTO ответа на смену статуса
type UpdateStatusResponse struct {
	Success     bool                   `json:"success"`
	Message     string                 `json:"message"`
	EmergencyID string                 `json:"emergencyId"`
	Status      models.EmergencyStatus `json:"status"`
}

// MessageResponse DTO для ответов без данных
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PoliceToursResponse DTO списка туров для пульта
type PoliceToursResponse struct {
	Success bool                    `json:"success"`
	Data    []*models.TrackingState `json:"data"`
	Count   int                     `json:"count"`
}

// PoliceAlertsResponse DTO списка тревог для пульта
type PoliceAlertsResponse struct {
	Success bool                     `json:"success"`
	Data    []*models.EmergencyAlert `json:"data"`
	Count   int                      `json:"count"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	Success bool                  `json:"success"`
	Data    models.EmergencyStats `json:"data"`
}

// HealthResponse DTO состояния сервиса
type HealthResponse struct {
	Status      string `json:"status"`
	Redis       string `json:"redis"`
	Connections int    `json:"connections"`
}
