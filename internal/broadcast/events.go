package broadcast

import (
	"encoding/json"
	"time"
)

// Группы подписки
const (
	DashboardGroup  = "police-dashboard"
	tourGroupPrefix = "tour:"
)

// TourGroup возвращает имя группы конкретного тура
func TourGroup(tourID string) string {
	return tourGroupPrefix + tourID
}

// Входящие события
const (
	EventJoinDashboard     = "join-police-dashboard"
	EventJoinTour          = "join-tour-tracking"
	EventHeartbeat         = "heartbeat"
	EventTourCompleted     = "tour-completed"
	EventEmergencyResponse = "emergency-response"
)

// События, которые могут быть и входящими, и исходящими
const (
	EventLocationUpdate = "location-update"
	EventEmergencyAlert = "emergency-alert"
)

// Исходящие события
const (
	EventInitialData           = "initial-data"
	EventHeartbeatAck          = "heartbeat-ack"
	EventTourOffline           = "tour-offline"
	EventTourEnded             = "tour-ended"
	EventEmergencyStatusUpdate = "emergency-status-update"
	EventError                 = "error"
)

// Frame - формат текстового кадра WebSocket
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outboundFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

func encodeFrame(event string, payload any) ([]byte, error) {
	return json.Marshal(outboundFrame{Event: event, Data: payload})
}

// Полезная нагрузка входящих событий

type joinTourPayload struct {
	TourID string `json:"tourId"`
	UserID string `json:"userId"`
}

type locationRelayPayload struct {
	TourID   string          `json:"tourId"`
	Location json.RawMessage `json:"location"`
}

type emergencyRelayPayload struct {
	TourID   string          `json:"tourId"`
	Location json.RawMessage `json:"location"`
	Message  string          `json:"message"`
}

type emergencyResponsePayload struct {
	EmergencyID string `json:"emergencyId"`
	TourID      string `json:"tourId"`
	Response    string `json:"response"`
	ResponderID string `json:"responderId"`
}

type tourCompletedPayload struct {
	TourID string `json:"tourId"`
}

type errorPayload struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

type heartbeatAck struct {
	Timestamp time.Time `json:"timestamp"`
}
