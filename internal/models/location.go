package models

import "time"

// LocationRecord - одна точка маршрута туриста. После записи не изменяется,
// более поздние точки того же пользователя её вытесняют.
type LocationRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	TourID     string    `json:"tourId"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy"`
	Speed      *float64  `json:"speed"`
	Heading    *float64  `json:"heading"`
	Timestamp  time.Time `json:"timestamp"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// PointLocation - упрощенная точка без привязки к туру (POST /location)
type PointLocation struct {
	ID         string    `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Timestamp  time.Time `json:"timestamp"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// LocationHistoryPage - страница истории перемещений
type LocationHistoryPage struct {
	Locations []*LocationRecord `json:"locations"`
	Total     int64             `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// LocationInput - точка маршрута от клиента до валидации
type LocationInput struct {
	UserID    string
	TourID    string
	Latitude  *float64
	Longitude *float64
	Accuracy  *float64
	Speed     *float64
	Heading   *float64
	Timestamp *time.Time
}
