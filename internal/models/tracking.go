package models

import "time"

const TrackingStatusActive = "active"

// TrackingState - маркер отслеживаемого тура. Перезаписывается при каждом
// обновлении координат и истекает, если обновлений нет.
type TrackingState struct {
	TourID     string     `json:"tourId"`
	UserID     string     `json:"userId"`
	LastUpdate *time.Time `json:"lastUpdate,omitempty"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	Status     string     `json:"status,omitempty"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Accuracy   float64    `json:"accuracy"`
	Speed      float64    `json:"speed"`
}
