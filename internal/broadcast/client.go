package broadcast

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// writeWait - время на запись одного кадра
const writeWait = 10 * time.Second

// ClientOptions - параметры соединения
type ClientOptions struct {
	SendBuffer     int
	PingInterval   time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
}

// Client - одно WebSocket соединение. Исходящие кадры проходят через
// ограниченный буфер send, который читает writePump.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
	tourID string
	userID string
}

// NewClient создает клиента. conn может быть nil: такой клиент только
// накапливает кадры в буфере, что удобно для тестов.
func NewClient(conn *websocket.Conn, sendBuffer int) *Client {
	if sendBuffer <= 0 {
		sendBuffer = 1
	}
	return &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// Tour возвращает метки, выставленные join-tour-tracking
func (c *Client) Tour() (tourID, userID string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tourID, c.userID
}

func (c *Client) setTour(tourID, userID string) {
	c.mu.Lock()
	c.tourID = tourID
	c.userID = userID
	c.mu.Unlock()
}

func (c *Client) clearTour() {
	c.setTour("", "")
}

// enqueue не блокирует; false - буфер заполнен или клиент закрыт
func (c *Client) enqueue(frame []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump читает кадры до ошибки соединения и передает их handle
func (c *Client) readPump(opts ClientOptions, logger *logrus.Logger, handle func(Frame), done func()) {
	defer func() {
		done()
		_ = c.conn.Close()
	}()

	log := logger.WithField("client_id", c.ID)

	c.conn.SetReadLimit(opts.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(opts.PongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("WebSocket read error")
			}
			return
		}
		// Любое сообщение от клиента тоже подтверждает, что он жив
		_ = c.conn.SetReadDeadline(time.Now().Add(opts.PongWait))

		var frame Frame
		if err := json.Unmarshal(message, &frame); err != nil || frame.Event == "" {
			log.Warn("Received malformed frame")
			continue
		}
		handle(frame)
	}
}

// writePump отправляет кадры из буфера и ping по таймеру
func (c *Client) writePump(opts ClientOptions) {
	ticker := time.NewTicker(opts.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл буфер
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
