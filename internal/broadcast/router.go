package broadcast

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/sirupsen/logrus"
)

// snapshotTimeout ограничивает сбор initial-data
const snapshotTimeout = 5 * time.Second

// TourSource отдает активные туры для initial-data
type TourSource interface {
	ActiveTours(ctx context.Context) ([]*models.TrackingState, error)
}

// EmergencySource отдает активные тревоги для initial-data
type EmergencySource interface {
	ListActive(ctx context.Context) ([]*models.EmergencyAlert, error)
}

type initialData struct {
	ActiveTours []*models.TrackingState  `json:"activeTours"`
	Emergencies []*models.EmergencyAlert `json:"emergencies"`
	Timestamp   time.Time                `json:"timestamp"`
}

// EventRouter принимает WebSocket соединения и разбирает входящие события
type EventRouter struct {
	hub         *Hub
	tours       TourSource
	emergencies EmergencySource
	opts        ClientOptions
	upgrader    websocket.Upgrader
	logger      *logrus.Logger
	now         func() time.Time
}

// NewEventRouter создает маршрутизатор. Пустой allowedOrigins разрешает любой Origin.
func NewEventRouter(hub *Hub, tours TourSource, emergencies EmergencySource, opts ClientOptions, allowedOrigins []string, logger *logrus.Logger) *EventRouter {
	r := &EventRouter{
		hub:         hub,
		tours:       tours,
		emergencies: emergencies,
		opts:        opts,
		logger:      logger,
		now:         time.Now,
	}
	r.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	hub.OnDisconnect(r.handleDisconnect)
	return r
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// ServeWS переводит HTTP соединение в WebSocket и запускает обработку клиента
func (r *EventRouter) ServeWS(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := NewClient(conn, r.opts.SendBuffer)
	r.hub.Register(client)

	go client.writePump(r.opts)
	go client.readPump(r.opts, r.logger, func(f Frame) {
		r.Handle(client, f)
	}, func() {
		r.hub.Unregister(client)
	})
}

// Handle обрабатывает одно входящее событие клиента
func (r *EventRouter) Handle(c *Client, frame Frame) {
	log := r.logger.WithFields(logrus.Fields{
		"client_id": c.ID,
		"event":     frame.Event,
	})

	switch frame.Event {
	case EventJoinDashboard:
		r.hub.SubscribeDashboard(c)
		r.sendSnapshot(c, log)
		log.Info("Dashboard client subscribed")

	case EventJoinTour:
		var p joinTourPayload
		if !r.decode(c, frame, &p, log) {
			return
		}
		if p.TourID == "" {
			r.reject(c, frame.Event, "tourId is required")
			return
		}
		r.hub.SubscribeTour(c, p.TourID, p.UserID)
		log.WithField("tour_id", p.TourID).Info("Client joined tour tracking")

	case EventLocationUpdate:
		var p locationRelayPayload
		if !r.decode(c, frame, &p, log) {
			return
		}
		_, userID := c.Tour()
		r.hub.PublishExcept(DashboardGroup, EventLocationUpdate, map[string]any{
			"tourId":    p.TourID,
			"userId":    userID,
			"location":  p.Location,
			"timestamp": r.now(),
		}, c)

	case EventEmergencyAlert:
		var p emergencyRelayPayload
		if !r.decode(c, frame, &p, log) {
			return
		}
		_, userID := c.Tour()
		message := p.Message
		if message == "" {
			message = models.DefaultEmergencyMessage
		}
		r.hub.PublishExcept(DashboardGroup, EventEmergencyAlert, map[string]any{
			"tourId":    p.TourID,
			"userId":    userID,
			"location":  p.Location,
			"message":   message,
			"priority":  "high",
			"timestamp": r.now(),
		}, c)
		log.WithField("tour_id", p.TourID).Warn("Emergency alert relayed from client")

	case EventEmergencyResponse:
		var p emergencyResponsePayload
		if !r.decode(c, frame, &p, log) {
			return
		}
		if p.TourID == "" {
			r.reject(c, frame.Event, "tourId is required")
			return
		}
		r.hub.Publish(TourGroup(p.TourID), EventEmergencyResponse, map[string]any{
			"emergencyId": p.EmergencyID,
			"tourId":      p.TourID,
			"response":    p.Response,
			"responderId": p.ResponderID,
			"timestamp":   r.now(),
		})

	case EventTourCompleted:
		var p tourCompletedPayload
		if !r.decode(c, frame, &p, log) {
			return
		}
		if p.TourID == "" {
			r.reject(c, frame.Event, "tourId is required")
			return
		}
		r.hub.Publish(DashboardGroup, EventTourCompleted, map[string]any{
			"tourId":    p.TourID,
			"timestamp": r.now(),
		})
		r.hub.Leave(c, TourGroup(p.TourID))
		if tourID, _ := c.Tour(); tourID == p.TourID {
			c.clearTour()
		}

	case EventHeartbeat:
		r.hub.SendTo(c, EventHeartbeatAck, heartbeatAck{Timestamp: r.now()})

	default:
		log.Debug("Ignoring unknown event")
	}
}

func (r *EventRouter) sendSnapshot(c *Client, log *logrus.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	data := initialData{
		ActiveTours: []*models.TrackingState{},
		Emergencies: []*models.EmergencyAlert{},
		Timestamp:   r.now(),
	}

	if tours, err := r.tours.ActiveTours(ctx); err != nil {
		log.WithError(err).Error("Failed to load active tours for snapshot")
	} else if tours != nil {
		data.ActiveTours = tours
	}

	if alerts, err := r.emergencies.ListActive(ctx); err != nil {
		log.WithError(err).Error("Failed to load active emergencies for snapshot")
	} else if alerts != nil {
		data.Emergencies = alerts
	}

	r.hub.SendTo(c, EventInitialData, data)
}

// handleDisconnect сообщает пульту, что помеченный туром клиент отключился
func (r *EventRouter) handleDisconnect(c *Client) {
	tourID, userID := c.Tour()
	if tourID == "" {
		return
	}
	r.hub.Publish(DashboardGroup, EventTourOffline, map[string]any{
		"tourId":    tourID,
		"userId":    userID,
		"timestamp": r.now(),
	})
	r.logger.WithFields(logrus.Fields{
		"client_id": c.ID,
		"tour_id":   tourID,
	}).Info("Tour went offline")
}

func (r *EventRouter) decode(c *Client, frame Frame, dst any, log *logrus.Entry) bool {
	if len(frame.Data) == 0 {
		r.reject(c, frame.Event, "data is required")
		return false
	}
	if err := json.Unmarshal(frame.Data, dst); err != nil {
		log.WithError(err).Warn("Failed to decode event payload")
		r.reject(c, frame.Event, "malformed payload")
		return false
	}
	return true
}

func (r *EventRouter) reject(c *Client, event, message string) {
	r.hub.SendTo(c, EventError, errorPayload{Event: event, Message: message})
}
