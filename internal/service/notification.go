package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/metrics"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/sirupsen/logrus"
)

// localNumberLen - длина номера без кода страны
const localNumberLen = 10

// NotificationService рассылает SMS экстренным контактам
type NotificationService interface {
	NotifyContacts(ctx context.Context, contacts []models.Contact, message string) (models.NotifyResult, error)
}

type notificationService struct {
	gateway     SMSGateway
	countryCode string
	logger      *logrus.Logger
	metrics     *metrics.Metrics
}

// NewNotificationService создает сервис рассылки. gateway может быть nil,
// тогда каждая рассылка завершается ErrGatewayNotConfigured.
func NewNotificationService(gateway SMSGateway, cfg *config.Config, logger *logrus.Logger, m *metrics.Metrics) NotificationService {
	return &notificationService{
		gateway:     gateway,
		countryCode: cfg.SMSDefaultCountryCode,
		logger:      logger,
		metrics:     m,
	}
}

// NotifyContacts отправляет message каждому контакту параллельно.
// Ошибка отдельного контакта не прерывает рассылку остальным и учитывается
// в FailureCount. Счетчики возвращаются и вместе с ошибкой.
func (s *notificationService) NotifyContacts(ctx context.Context, contacts []models.Contact, message string) (models.NotifyResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "notification",
		"method":   "NotifyContacts",
		"contacts": len(contacts),
	})

	if len(contacts) == 0 {
		log.Warn("No emergency contacts to notify")
		return models.NotifyResult{}, ErrNoContacts
	}
	if s.gateway == nil {
		log.Warn("SMS gateway is not configured, skipping notification")
		return models.NotifyResult{FailureCount: len(contacts)}, ErrGatewayNotConfigured
	}

	var success, failure int64
	recipients := make([]string, 0, len(contacts))
	for _, c := range contacts {
		to, ok := NormalizePhone(c.Phone, s.countryCode)
		if !ok {
			failure++
			s.metrics.SMSDispatched(metrics.SMSRejected)
			log.WithField("contact", c.Name).Warn("Rejected invalid phone number")
			continue
		}
		recipients = append(recipients, to)
	}

	if len(recipients) == 0 {
		return models.NotifyResult{FailureCount: int(failure)}, ErrNoContacts
	}

	var wg sync.WaitGroup
	for _, to := range recipients {
		wg.Add(1)
		go func(to string) {
			defer wg.Done()
			receipt, err := s.gateway.Send(ctx, to, message)
			if err != nil {
				atomic.AddInt64(&failure, 1)
				s.metrics.SMSDispatched(metrics.SMSFailed)
				log.WithError(err).WithField("to", maskPhone(to)).Error("Failed to send SMS")
				return
			}
			atomic.AddInt64(&success, 1)
			s.metrics.SMSDispatched(metrics.SMSSent)
			entry := log.WithField("to", maskPhone(to))
			if receipt != nil {
				entry = entry.WithField("message_id", receipt.MessageID)
			}
			entry.Info("SMS sent")
		}(to)
	}
	wg.Wait()

	result := models.NotifyResult{
		SuccessCount: int(atomic.LoadInt64(&success)),
		FailureCount: int(atomic.LoadInt64(&failure)),
	}
	log.WithFields(logrus.Fields{
		"success": result.SuccessCount,
		"failure": result.FailureCount,
	}).Info("Emergency contacts notified")
	return result, nil
}

// NormalizePhone приводит номер к E.164. Принимаются 10 цифр либо код страны
// и 10 цифр, все нецифровые символы отбрасываются.
func NormalizePhone(raw, countryCode string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == localNumberLen:
		return "+" + countryCode + digits, true
	case countryCode != "" && len(digits) == len(countryCode)+localNumberLen && strings.HasPrefix(digits, countryCode):
		return "+" + digits, true
	}
	return "", false
}

// FormatEmergencySMS формирует текст SMS со ссылкой на карту
func FormatEmergencySMS(message string, lat, lon float64, at time.Time) string {
	return fmt.Sprintf("EMERGENCY: %s\nLocation: https://maps.google.com/maps?q=%s,%s\nTime: %s",
		message,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
		at.Format("15:04:05"),
	)
}

// maskPhone оставляет в логах только последние 4 цифры
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
