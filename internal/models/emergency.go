package models

import "time"

type EmergencyStatus string

const (
	EmergencyStatusActive   EmergencyStatus = "active"
	EmergencyStatusResolved EmergencyStatus = "resolved"
	EmergencyStatusClosed   EmergencyStatus = "closed"
)

const DefaultEmergencyMessage = "EMERGENCY ALERT: Tourist needs immediate assistance!"

// Valid сообщает, известен ли статус
func (s EmergencyStatus) Valid() bool {
	switch s {
	case EmergencyStatusActive, EmergencyStatusResolved, EmergencyStatusClosed:
		return true
	}
	return false
}

// IsTerminal - из resolved и closed переходов нет
func (s EmergencyStatus) IsTerminal() bool {
	return s == EmergencyStatusResolved || s == EmergencyStatusClosed
}

// CanTransitionTo проверяет переход active -> {resolved, closed}.
// Повторная установка того же статуса допустима.
func (s EmergencyStatus) CanTransitionTo(next EmergencyStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return !s.IsTerminal()
}

// EmergencyAlert - запись о тревоге
type EmergencyAlert struct {
	ID                string          `json:"id"`
	UserID            string          `json:"userId"`
	TourID            string          `json:"tourId"`
	Latitude          float64         `json:"latitude"`
	Longitude         float64         `json:"longitude"`
	Message           string          `json:"message"`
	Timestamp         time.Time       `json:"timestamp"`
	Status            EmergencyStatus `json:"status"`
	EmergencyContacts []Contact       `json:"emergencyContacts"`
	ResponderID       string          `json:"responderId,omitempty"`
	Response          string          `json:"response,omitempty"`
	UpdatedAt         *time.Time      `json:"updatedAt,omitempty"`
	SMSSuccessCount   *int            `json:"smsSuccessCount,omitempty"`
	SMSFailureCount   *int            `json:"smsFailureCount,omitempty"`
	SMSSentAt         *time.Time      `json:"smsSentAt,omitempty"`
}

// AlertInput - данные для создания тревоги
type AlertInput struct {
	UserID    string
	TourID    string
	Latitude  *float64
	Longitude *float64
	Message   string
}

// StatusUpdate - изменение статуса тревоги
type StatusUpdate struct {
	Status      EmergencyStatus
	ResponderID string
	Response    string
}

// EmergencyStats - сводка для пульта мониторинга
type EmergencyStats struct {
	ActiveTours       int `json:"activeTours"`
	ActiveEmergencies int `json:"activeEmergencies"`
}
