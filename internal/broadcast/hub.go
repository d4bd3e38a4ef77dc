package broadcast

import (
	"sync"

	"github.com/shenikar/tourist_safety/internal/metrics"
	"github.com/sirupsen/logrus"
)

// HubStats - снимок состояния реестра соединений
type HubStats struct {
	Clients int            `json:"clients"`
	Groups  map[string]int `json:"groups"`
}

// Hub - реестр подключенных клиентов и групп подписки.
// Публикация не блокирует: если буфер клиента заполнен, кадр для него отбрасывается.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	groups  map[string]map[*Client]struct{}

	onDisconnect func(*Client)

	logger  *logrus.Logger
	metrics *metrics.Metrics
}

func NewHub(logger *logrus.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		groups:  make(map[string]map[*Client]struct{}),
		logger:  logger,
		metrics: m,
	}
}

// OnDisconnect задает обработчик, вызываемый после Unregister
func (h *Hub) OnDisconnect(fn func(*Client)) {
	h.mu.Lock()
	h.onDisconnect = fn
	h.mu.Unlock()
}

// Register добавляет клиента в реестр
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.metrics.ClientConnected()
	h.logger.WithField("client_id", c.ID).Debug("Client connected")
}

// Unregister удаляет клиента из всех групп и закрывает его буфер.
// Повторный вызов ничего не делает.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	for name, members := range h.groups {
		delete(members, c)
		if len(members) == 0 {
			delete(h.groups, name)
		}
	}
	onDisconnect := h.onDisconnect
	h.mu.Unlock()

	c.close()
	h.metrics.ClientDisconnected()
	h.logger.WithField("client_id", c.ID).Debug("Client disconnected")

	if onDisconnect != nil {
		onDisconnect(c)
	}
}

// Join добавляет клиента в группу
func (h *Hub) Join(c *Client, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	members, ok := h.groups[group]
	if !ok {
		members = make(map[*Client]struct{})
		h.groups[group] = members
	}
	members[c] = struct{}{}
}

// Leave убирает клиента из группы
func (h *Hub) Leave(c *Client, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.groups[group]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.groups, group)
		}
	}
}

func (h *Hub) SubscribeDashboard(c *Client) {
	h.Join(c, DashboardGroup)
}

// SubscribeTour добавляет клиента в группу тура и помечает его tourId/userId,
// чтобы при отключении сообщить пульту, что тур офлайн
func (h *Hub) SubscribeTour(c *Client, tourID, userID string) {
	c.setTour(tourID, userID)
	h.Join(c, TourGroup(tourID))
}

// Publish доставляет событие всем участникам группы
func (h *Hub) Publish(group, event string, payload any) {
	h.PublishExcept(group, event, payload, nil)
}

// PublishExcept доставляет событие всем участникам группы, кроме sender
func (h *Hub) PublishExcept(group, event string, payload any, sender *Client) {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		h.logger.WithError(err).WithField("event", event).Error("Failed to encode frame")
		return
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.groups[group]))
	for c := range h.groups[group] {
		if c != sender {
			members = append(members, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range members {
		h.deliver(c, event, frame)
	}
}

// SendTo отправляет событие одному клиенту
func (h *Hub) SendTo(c *Client, event string, payload any) {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		h.logger.WithError(err).WithField("event", event).Error("Failed to encode frame")
		return
	}
	h.deliver(c, event, frame)
}

func (h *Hub) deliver(c *Client, event string, frame []byte) {
	if c.enqueue(frame) {
		return
	}
	h.metrics.FrameDropped()
	h.logger.WithFields(logrus.Fields{
		"client_id": c.ID,
		"event":     event,
	}).Warn("Client send buffer is full, dropping frame")
}

// Stats возвращает число клиентов и размер каждой группы
func (h *Hub) Stats() HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	stats := HubStats{
		Clients: len(h.clients),
		Groups:  make(map[string]int, len(h.groups)),
	}
	for name, members := range h.groups {
		stats.Groups[name] = len(members)
	}
	return stats
}

// Close отключает всех клиентов без рассылки tour-offline.
// Вызывается при остановке сервера.
func (h *Hub) Close() {
	h.mu.Lock()
	h.onDisconnect = nil
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.Unregister(c)
	}
}
