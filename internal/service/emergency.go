package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/broadcast"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/metrics"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/repository"
	"github.com/shenikar/tourist_safety/internal/webhook"
	"github.com/sirupsen/logrus"
)

const notifyTaskName = "notify-contacts"

// TourLister нужен для сводной статистики
type TourLister interface {
	ActiveTours(ctx context.Context) ([]*models.TrackingState, error)
}

// EmergencyService определяет контракт управления тревогами
type EmergencyService interface {
	TriggerAlert(ctx context.Context, input models.AlertInput) (*models.EmergencyAlert, error)
	GetAlert(ctx context.Context, id string) (*models.EmergencyAlert, error)
	ListActive(ctx context.Context) ([]*models.EmergencyAlert, error)
	UpdateStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.EmergencyAlert, error)
	Stats(ctx context.Context) (*models.EmergencyStats, error)
	Wait()
}

// EmergencyDeps - зависимости EmergencyService
type EmergencyDeps struct {
	Store       StateStore
	Tours       TourLister
	Directory   ContactDirectory
	Notifier    NotificationService
	Broadcaster Broadcaster
	Escalations webhook.EscalationPublisher
	Tasks       *TaskGroup
}

type emergencyService struct {
	store       StateStore
	tours       TourLister
	directory   ContactDirectory
	notifier    NotificationService
	broadcaster Broadcaster
	escalations webhook.EscalationPublisher
	tasks       *TaskGroup
	cfg         *config.Config
	logger      *logrus.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewEmergencyService(deps EmergencyDeps, cfg *config.Config, logger *logrus.Logger, m *metrics.Metrics) EmergencyService {
	tasks := deps.Tasks
	if tasks == nil {
		tasks = NewTaskGroup(logger, m)
	}
	return &emergencyService{
		store:       deps.Store,
		tours:       deps.Tours,
		directory:   deps.Directory,
		notifier:    deps.Notifier,
		broadcaster: deps.Broadcaster,
		escalations: deps.Escalations,
		tasks:       tasks,
		cfg:         cfg,
		logger:      logger,
		metrics:     m,
		now:         time.Now,
	}
}

// TriggerAlert сохраняет тревогу, индексирует ее как активную и оповещает пульт.
// Рассылка SMS выполняется в фоне, ответ не ждет ее завершения.
func (s *emergencyService) TriggerAlert(ctx context.Context, input models.AlertInput) (*models.EmergencyAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "emergency",
		"method":  "TriggerAlert",
		"user_id": input.UserID,
		"tour_id": input.TourID,
	})

	if input.UserID == "" || input.TourID == "" {
		return nil, validationError("userId and tourId are required")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	userName, contacts := s.resolveProfile(ctx, input.UserID, log)

	message := input.Message
	if message == "" {
		message = models.DefaultEmergencyMessage
	}

	alert := models.EmergencyAlert{
		ID:                uuid.NewString(),
		UserID:            input.UserID,
		TourID:            input.TourID,
		Latitude:          *input.Latitude,
		Longitude:         *input.Longitude,
		Message:           message,
		Timestamp:         s.now().UTC(),
		Status:            models.EmergencyStatusActive,
		EmergencyContacts: contacts,
	}

	data, err := json.Marshal(alert)
	if err != nil {
		return nil, fmt.Errorf("service: failed to encode alert: %w", err)
	}
	if err := s.store.Put(ctx, emergencyKey(alert.ID), data, s.cfg.EmergencyRetention); err != nil {
		log.WithError(err).Error("Failed to store emergency alert")
		return nil, fmt.Errorf("service: could not store emergency alert: %w", err)
	}
	if err := s.store.ListPrepend(ctx, activeEmergenciesKey, []byte(alert.ID), s.cfg.ActiveEmergencyMax, s.cfg.EmergencyRetention); err != nil {
		log.WithError(err).Error("Failed to index emergency alert")
		return nil, fmt.Errorf("service: could not index emergency alert: %w", err)
	}

	s.broadcaster.Publish(broadcast.DashboardGroup, broadcast.EventEmergencyAlert, map[string]any{
		"id":       alert.ID,
		"userId":   alert.UserID,
		"userName": userName,
		"location": map[string]float64{
			"latitude":  alert.Latitude,
			"longitude": alert.Longitude,
		},
		"timestamp": alert.Timestamp,
		"message":   alert.Message,
		"tourId":    alert.TourID,
		"status":    alert.Status,
		"priority":  "high",
	})
	s.publishEscalation(ctx, webhook.EscalationEvent{
		Event:        webhook.EventEmergencyTriggered,
		EmergencyID:  alert.ID,
		UserID:       alert.UserID,
		TourID:       alert.TourID,
		Latitude:     alert.Latitude,
		Longitude:    alert.Longitude,
		Message:      alert.Message,
		Status:       alert.Status,
		ContactCount: len(contacts),
		Timestamp:    alert.Timestamp,
	}, log)
	s.metrics.AlertTriggered()

	snapshot := alert
	s.tasks.Go(ctx, notifyTaskName, func(ctx context.Context) error {
		return s.notifyAndRecord(ctx, snapshot)
	})

	log.WithField("emergency_id", alert.ID).Warn("Emergency alert triggered")
	return &alert, nil
}

// resolveProfile ищет имя и контакты пользователя. Недоступность хранилища
// пользователей не мешает созданию тревоги.
func (s *emergencyService) resolveProfile(ctx context.Context, userID string, log *logrus.Entry) (string, []models.Contact) {
	name := fallbackDisplayName(userID)
	contacts := []models.Contact{}

	profile, err := s.directory.GetProfile(ctx, userID)
	if err != nil {
		log.WithError(fmt.Errorf("%w: %v", ErrDependency, err)).Warn("Identity store unavailable, proceeding without contacts")
		return name, contacts
	}
	if profile == nil {
		log.Warn("User profile not found, proceeding without contacts")
		return name, contacts
	}
	if profile.Name != "" {
		name = profile.Name
	}
	if len(profile.EmergencyContacts) > 0 {
		contacts = profile.EmergencyContacts
	}
	return name, contacts
}

// notifyAndRecord рассылает SMS и дописывает в тревогу итоговые счетчики
func (s *emergencyService) notifyAndRecord(ctx context.Context, alert models.EmergencyAlert) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "emergency",
		"method":       "notifyAndRecord",
		"emergency_id": alert.ID,
	})

	text := FormatEmergencySMS(alert.Message, alert.Latitude, alert.Longitude, alert.Timestamp)
	result, err := s.notifier.NotifyContacts(ctx, alert.EmergencyContacts, text)
	if err != nil {
		log.WithError(err).Warn("Emergency contacts were not fully notified")
	}

	sentAt := s.now().UTC()
	err = s.store.Update(ctx, emergencyKey(alert.ID), s.cfg.EmergencyRetention, func(current []byte) ([]byte, error) {
		var stored models.EmergencyAlert
		if err := json.Unmarshal(current, &stored); err != nil {
			return nil, fmt.Errorf("failed to decode alert: %w", err)
		}
		success, failure := result.SuccessCount, result.FailureCount
		stored.SMSSuccessCount = &success
		stored.SMSFailureCount = &failure
		stored.SMSSentAt = &sentAt
		return json.Marshal(stored)
	})
	if errors.Is(err, repository.ErrKeyNotFound) {
		log.Warn("Alert expired before SMS results were recorded")
		return nil
	}
	if err != nil {
		log.WithError(err).Error("Failed to record SMS results")
		return fmt.Errorf("service: could not record sms results: %w", err)
	}
	return nil
}

// GetAlert возвращает тревогу по id
func (s *emergencyService) GetAlert(ctx context.Context, id string) (*models.EmergencyAlert, error) {
	if id == "" {
		return nil, validationError("emergency id is required")
	}

	data, found, err := s.store.Get(ctx, emergencyKey(id))
	if err != nil {
		s.logger.WithField("method", "GetAlert").WithError(err).Error("Failed to read emergency alert")
		return nil, fmt.Errorf("service: could not read emergency alert: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("service: emergency %s: %w", id, ErrNotFound)
	}

	var alert models.EmergencyAlert
	if err := json.Unmarshal(data, &alert); err != nil {
		return nil, fmt.Errorf("service: failed to decode emergency alert: %w", err)
	}
	return &alert, nil
}

// ListActive возвращает активные тревоги в порядке индекса, новые первыми.
// Истекшие записи и уже закрытые тревоги пропускаются.
func (s *emergencyService) ListActive(ctx context.Context) ([]*models.EmergencyAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "emergency",
		"method":  "ListActive",
	})

	ids, err := s.store.ListRange(ctx, activeEmergenciesKey, 0, -1)
	if err != nil {
		log.WithError(err).Error("Failed to read active emergency index")
		return nil, fmt.Errorf("service: could not list active emergencies: %w", err)
	}

	seen := make(map[string]struct{}, len(ids))
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[string(id)]; ok {
			continue
		}
		seen[string(id)] = struct{}{}
		keys = append(keys, emergencyKey(string(id)))
	}

	values, err := s.store.GetMany(ctx, keys)
	if err != nil {
		log.WithError(err).Error("Failed to read active emergencies")
		return nil, fmt.Errorf("service: could not list active emergencies: %w", err)
	}

	alerts := make([]*models.EmergencyAlert, 0, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		var alert models.EmergencyAlert
		if err := json.Unmarshal(v, &alert); err != nil {
			log.WithField("key", keys[i]).Warn("Skipping malformed emergency alert")
			continue
		}
		if alert.Status.IsTerminal() {
			continue
		}
		alerts = append(alerts, &alert)
	}
	return alerts, nil
}

// UpdateStatus меняет статус тревоги и дописывает данные ответившего.
// Из resolved и closed в другой статус перейти нельзя.
func (s *emergencyService) UpdateStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.EmergencyAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "emergency",
		"method":       "UpdateStatus",
		"emergency_id": id,
		"status":       update.Status,
	})

	if id == "" {
		return nil, validationError("emergency id is required")
	}
	if update.Status == "" {
		return nil, validationError("status is required")
	}
	if !update.Status.Valid() {
		return nil, validationError(fmt.Sprintf("unknown status %q", update.Status))
	}

	var updated models.EmergencyAlert
	err := s.store.Update(ctx, emergencyKey(id), s.cfg.EmergencyRetention, func(current []byte) ([]byte, error) {
		var alert models.EmergencyAlert
		if err := json.Unmarshal(current, &alert); err != nil {
			return nil, fmt.Errorf("failed to decode alert: %w", err)
		}
		if !alert.Status.CanTransitionTo(update.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, alert.Status, update.Status)
		}

		now := s.now().UTC()
		alert.Status = update.Status
		alert.UpdatedAt = &now
		if update.ResponderID != "" {
			alert.ResponderID = update.ResponderID
		}
		if update.Response != "" {
			alert.Response = update.Response
		}
		updated = alert
		return json.Marshal(alert)
	})
	switch {
	case errors.Is(err, repository.ErrKeyNotFound):
		return nil, fmt.Errorf("service: emergency %s: %w", id, ErrNotFound)
	case errors.Is(err, ErrInvalidTransition):
		log.WithError(err).Warn("Rejected status transition")
		return nil, fmt.Errorf("service: %w", err)
	case err != nil:
		log.WithError(err).Error("Failed to update emergency status")
		return nil, fmt.Errorf("service: could not update emergency status: %w", err)
	}

	if updated.Status.IsTerminal() {
		// ListActive отфильтрует закрытую тревогу, даже если удаление из индекса не удалось
		if err := s.store.ListRemove(ctx, activeEmergenciesKey, []byte(id)); err != nil {
			log.WithError(err).Error("Failed to remove emergency from active index")
		}
	}

	s.broadcaster.Publish(broadcast.DashboardGroup, broadcast.EventEmergencyStatusUpdate, map[string]any{
		"emergencyId": updated.ID,
		"status":      updated.Status,
		"responderId": updated.ResponderID,
		"response":    updated.Response,
		"updatedAt":   updated.UpdatedAt,
	})
	s.publishEscalation(ctx, webhook.EscalationEvent{
		Event:        webhook.EventEmergencyStatusChanged,
		EmergencyID:  updated.ID,
		UserID:       updated.UserID,
		TourID:       updated.TourID,
		Latitude:     updated.Latitude,
		Longitude:    updated.Longitude,
		Status:       updated.Status,
		ResponderID:  updated.ResponderID,
		ContactCount: len(updated.EmergencyContacts),
		Timestamp:    *updated.UpdatedAt,
	}, log)
	s.metrics.AlertStatusChanged(string(updated.Status))

	log.Info("Emergency status updated")
	return &updated, nil
}

// Stats возвращает сводку для пульта мониторинга
func (s *emergencyService) Stats(ctx context.Context) (*models.EmergencyStats, error) {
	tours, err := s.tours.ActiveTours(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not count active tours: %w", err)
	}
	alerts, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return &models.EmergencyStats{
		ActiveTours:       len(tours),
		ActiveEmergencies: len(alerts),
	}, nil
}

// Wait ждет завершения фоновых рассылок
func (s *emergencyService) Wait() {
	s.tasks.Wait()
}

func (s *emergencyService) publishEscalation(ctx context.Context, event webhook.EscalationEvent, log *logrus.Entry) {
	if s.escalations == nil {
		return
	}
	if err := s.escalations.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to queue escalation event")
	}
}
