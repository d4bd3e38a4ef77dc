package sms

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const providerTwilio = "twilio"

var ErrSenderNotConfigured = errors.New("sms: either TWILIO_PHONE_NUMBER or TWILIO_MESSAGING_SERVICE_SID is required")

// messageCreator - часть API Twilio, через которую уходят SMS
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioGateway struct {
	api                 messageCreator
	from                string
	messagingServiceSID string
	logger              *logrus.Logger
}

// NewTwilioGateway создает шлюз по учетным данным из конфигурации.
// Messaging Service имеет приоритет над номером отправителя.
func NewTwilioGateway(cfg *config.Config, logger *logrus.Logger) (service.SMSGateway, error) {
	if cfg.TwilioPhoneNumber == "" && cfg.TwilioMessagingServiceSID == "" {
		return nil, ErrSenderNotConfigured
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return newTwilioGateway(client.Api, cfg.TwilioPhoneNumber, cfg.TwilioMessagingServiceSID, logger), nil
}

func newTwilioGateway(api messageCreator, from, messagingServiceSID string, logger *logrus.Logger) *TwilioGateway {
	return &TwilioGateway{
		api:                 api,
		from:                from,
		messagingServiceSID: messagingServiceSID,
		logger:              logger,
	}
}

// Send отправляет одно сообщение. Клиент Twilio не принимает контекст,
// поэтому отмена проверяется только до вызова.
func (g *TwilioGateway) Send(ctx context.Context, to, body string) (*models.SMSReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)
	if g.messagingServiceSID != "" {
		params.SetMessagingServiceSid(g.messagingServiceSID)
	} else {
		params.SetFrom(g.from)
	}

	resp, err := g.api.CreateMessage(params)
	if err != nil {
		return nil, fmt.Errorf("twilio sms failed: %w", err)
	}

	receipt := &models.SMSReceipt{
		Provider: providerTwilio,
		To:       to,
	}
	if resp.Sid != nil {
		receipt.MessageID = *resp.Sid
	}
	if resp.Status != nil {
		receipt.Status = *resp.Status
	}

	g.logger.WithFields(logrus.Fields{
		"service":    "sms",
		"method":     "Send",
		"message_id": receipt.MessageID,
		"status":     receipt.Status,
	}).Debug("SMS accepted by gateway")
	return receipt, nil
}
