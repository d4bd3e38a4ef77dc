package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/broadcast"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/metrics"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

// LocationService определяет контракт приема координат и отслеживания туров
type LocationService interface {
	RecordLocation(ctx context.Context, input models.LocationInput) (*models.LocationRecord, error)
	RecordPoint(ctx context.Context, lat, lng *float64) (*models.PointLocation, error)
	StartTracking(ctx context.Context, tourID, userID string) (*models.TrackingState, error)
	StopTracking(ctx context.Context, tourID string) error
	CurrentLocation(ctx context.Context, userID string) (*models.LocationRecord, error)
	History(ctx context.Context, userID, tourID string, limit, offset int) (*models.LocationHistoryPage, error)
	ActiveTours(ctx context.Context) ([]*models.TrackingState, error)
}

type locationService struct {
	store       StateStore
	broadcaster Broadcaster
	cfg         *config.Config
	logger      *logrus.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewLocationService(store StateStore, broadcaster Broadcaster, cfg *config.Config, logger *logrus.Logger, m *metrics.Metrics) LocationService {
	return &locationService{
		store:       store,
		broadcaster: broadcaster,
		cfg:         cfg,
		logger:      logger,
		metrics:     m,
		now:         time.Now,
	}
}

// RecordLocation сохраняет текущую точку, дописывает ее в историю тура,
// обновляет маркер отслеживания и рассылает location-update
func (s *locationService) RecordLocation(ctx context.Context, input models.LocationInput) (*models.LocationRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "RecordLocation",
		"user_id": input.UserID,
		"tour_id": input.TourID,
	})

	if input.UserID == "" || input.TourID == "" {
		return nil, validationError("userId and tourId are required")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &models.LocationRecord{
		ID:         uuid.NewString(),
		UserID:     input.UserID,
		TourID:     input.TourID,
		Latitude:   *input.Latitude,
		Longitude:  *input.Longitude,
		Accuracy:   input.Accuracy,
		Speed:      input.Speed,
		Heading:    input.Heading,
		Timestamp:  now,
		ReceivedAt: now,
	}
	if input.Timestamp != nil {
		record.Timestamp = *input.Timestamp
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("service: failed to encode location: %w", err)
	}

	if err := s.store.Put(ctx, currentLocationKey(record.UserID), data, s.cfg.LocationCurrentTTL); err != nil {
		log.WithError(err).Error("Failed to store current location")
		return nil, fmt.Errorf("service: could not store current location: %w", err)
	}
	if err := s.store.ListPrepend(ctx, historyKey(record.UserID, record.TourID), data, s.cfg.LocationHistoryMax, s.cfg.LocationHistoryTTL); err != nil {
		log.WithError(err).Error("Failed to append location history")
		return nil, fmt.Errorf("service: could not append location history: %w", err)
	}
	if err := s.refreshTracking(ctx, record, now); err != nil {
		log.WithError(err).Error("Failed to refresh tracking state")
		return nil, fmt.Errorf("service: could not refresh tracking state: %w", err)
	}

	payload := map[string]any{
		"tourId":     record.TourID,
		"userId":     record.UserID,
		"userName":   fallbackDisplayName(record.UserID),
		"location":   record,
		"timestamp":  record.Timestamp,
		"lastUpdate": now,
	}
	s.broadcaster.Publish(broadcast.DashboardGroup, broadcast.EventLocationUpdate, payload)
	s.broadcaster.Publish(broadcast.TourGroup(record.TourID), broadcast.EventLocationUpdate, payload)
	s.metrics.LocationUpdated()

	log.WithField("location_id", record.ID).Debug("Location recorded")
	return record, nil
}

// refreshTracking перезаписывает маркер тура, сохраняя время начала отслеживания
func (s *locationService) refreshTracking(ctx context.Context, record *models.LocationRecord, now time.Time) error {
	state := models.TrackingState{
		TourID:     record.TourID,
		UserID:     record.UserID,
		LastUpdate: &now,
		Status:     models.TrackingStatusActive,
		Latitude:   record.Latitude,
		Longitude:  record.Longitude,
		Accuracy:   deref(record.Accuracy),
		Speed:      deref(record.Speed),
	}

	if prev, found, err := s.store.Get(ctx, trackingKey(record.TourID)); err == nil && found {
		var existing models.TrackingState
		if json.Unmarshal(prev, &existing) == nil {
			state.StartedAt = existing.StartedAt
		}
	}

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, trackingKey(record.TourID), data, s.cfg.TrackingIdleTTL)
}

// RecordPoint сохраняет точку без привязки к пользователю и туру
func (s *locationService) RecordPoint(ctx context.Context, lat, lng *float64) (*models.PointLocation, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "RecordPoint",
	})

	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	point := &models.PointLocation{
		ID:         uuid.NewString(),
		Latitude:   *lat,
		Longitude:  *lng,
		Timestamp:  now,
		ReceivedAt: now,
	}

	data, err := json.Marshal(point)
	if err != nil {
		return nil, fmt.Errorf("service: failed to encode location: %w", err)
	}
	if err := s.store.Put(ctx, pointKey(point.ID), data, s.cfg.LocationCurrentTTL); err != nil {
		log.WithError(err).Error("Failed to store point location")
		return nil, fmt.Errorf("service: could not store location: %w", err)
	}

	s.broadcaster.Publish(broadcast.DashboardGroup, broadcast.EventLocationUpdate, map[string]any{
		"id":        point.ID,
		"location":  map[string]float64{"latitude": point.Latitude, "longitude": point.Longitude},
		"timestamp": point.Timestamp,
	})
	s.metrics.LocationUpdated()

	log.WithField("location_id", point.ID).Debug("Point location recorded")
	return point, nil
}

// StartTracking создает маркер тура. Если маркер уже есть, он не меняется
// и возвращается как есть.
func (s *locationService) StartTracking(ctx context.Context, tourID, userID string) (*models.TrackingState, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "StartTracking",
		"tour_id": tourID,
		"user_id": userID,
	})

	if tourID == "" || userID == "" {
		return nil, validationError("tourId and userId are required")
	}

	now := s.now().UTC()
	state := &models.TrackingState{
		TourID:    tourID,
		UserID:    userID,
		StartedAt: &now,
		Status:    models.TrackingStatusActive,
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("service: failed to encode tracking state: %w", err)
	}

	created, err := s.store.PutIfAbsent(ctx, trackingKey(tourID), data, s.cfg.TrackingStartTTL)
	if err != nil {
		log.WithError(err).Error("Failed to start tracking")
		return nil, fmt.Errorf("service: could not start tracking: %w", err)
	}
	if created {
		log.Info("Tour tracking started")
		return state, nil
	}

	existing, found, err := s.store.Get(ctx, trackingKey(tourID))
	if err != nil {
		return nil, fmt.Errorf("service: could not read tracking state: %w", err)
	}
	if !found {
		// маркер истек между SETNX и GET
		return state, nil
	}
	var current models.TrackingState
	if err := json.Unmarshal(existing, &current); err != nil {
		return nil, fmt.Errorf("service: failed to decode tracking state: %w", err)
	}
	log.Debug("Tour tracking already active")
	return &current, nil
}

// StopTracking удаляет маркер тура и рассылает tour-ended
func (s *locationService) StopTracking(ctx context.Context, tourID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "StopTracking",
		"tour_id": tourID,
	})

	if tourID == "" {
		return validationError("tourId is required")
	}
	if err := s.store.Delete(ctx, trackingKey(tourID)); err != nil {
		log.WithError(err).Error("Failed to stop tracking")
		return fmt.Errorf("service: could not stop tracking: %w", err)
	}

	payload := map[string]any{
		"tourId":    tourID,
		"timestamp": s.now().UTC(),
	}
	s.broadcaster.Publish(broadcast.TourGroup(tourID), broadcast.EventTourEnded, payload)
	s.broadcaster.Publish(broadcast.DashboardGroup, broadcast.EventTourEnded, payload)

	log.Info("Tour tracking stopped")
	return nil
}

// CurrentLocation возвращает последнюю записанную точку пользователя
func (s *locationService) CurrentLocation(ctx context.Context, userID string) (*models.LocationRecord, error) {
	if userID == "" {
		return nil, validationError("userId is required")
	}

	data, found, err := s.store.Get(ctx, currentLocationKey(userID))
	if err != nil {
		s.logger.WithField("method", "CurrentLocation").WithError(err).Error("Failed to read current location")
		return nil, fmt.Errorf("service: could not read current location: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("service: location for user %s: %w", userID, ErrNotFound)
	}

	var record models.LocationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("service: failed to decode location: %w", err)
	}
	return &record, nil
}

// History возвращает страницу истории, новые точки первыми
func (s *locationService) History(ctx context.Context, userID, tourID string, limit, offset int) (*models.LocationHistoryPage, error) {
	if userID == "" || tourID == "" {
		return nil, validationError("userId and tourId are required")
	}
	limit, offset = normalizePage(limit, offset)

	key := historyKey(userID, tourID)
	items, err := s.store.ListRange(ctx, key, int64(offset), int64(offset+limit-1))
	if err != nil {
		s.logger.WithField("method", "History").WithError(err).Error("Failed to read location history")
		return nil, fmt.Errorf("service: could not read location history: %w", err)
	}
	total, err := s.store.ListLen(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("service: could not count location history: %w", err)
	}

	locations := make([]*models.LocationRecord, 0, len(items))
	for _, item := range items {
		var record models.LocationRecord
		if err := json.Unmarshal(item, &record); err != nil {
			continue
		}
		locations = append(locations, &record)
	}

	return &models.LocationHistoryPage{
		Locations: locations,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

// ActiveTours возвращает все неистекшие маркеры туров, отсортированные по tourId
func (s *locationService) ActiveTours(ctx context.Context) ([]*models.TrackingState, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "ActiveTours",
	})

	keys, err := s.store.ScanPrefix(ctx, trackingPrefix)
	if err != nil {
		log.WithError(err).Error("Failed to scan tracking keys")
		return nil, fmt.Errorf("service: could not list active tours: %w", err)
	}
	values, err := s.store.GetMany(ctx, keys)
	if err != nil {
		log.WithError(err).Error("Failed to read tracking states")
		return nil, fmt.Errorf("service: could not list active tours: %w", err)
	}

	tours := make([]*models.TrackingState, 0, len(values))
	for i, v := range values {
		// ключ мог истечь между SCAN и MGET
		if v == nil {
			continue
		}
		var state models.TrackingState
		if err := json.Unmarshal(v, &state); err != nil {
			log.WithField("key", keys[i]).Warn("Skipping malformed tracking state")
			continue
		}
		tours = append(tours, &state)
	}
	sort.Slice(tours, func(i, j int) bool { return tours[i].TourID < tours[j].TourID })
	return tours, nil
}

func validateCoordinates(lat, lng *float64) error {
	if lat == nil || lng == nil {
		return validationError("latitude and longitude are required")
	}
	if !isFinite(*lat) || !isFinite(*lng) {
		return validationError("latitude and longitude must be finite numbers")
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// fallbackDisplayName используется, когда имя из хранилища пользователей недоступно
func fallbackDisplayName(userID string) string {
	return "User " + userID
}
