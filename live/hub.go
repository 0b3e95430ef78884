// Package live рассылает обновления таблиц подписчикам по WebSocket.
package live

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const MessageTableUpdated = "TABLE_UPDATED"

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

// LeagueRoom - имя комнаты с подписчиками таблицы турнира.
func LeagueRoom(leagueID int) string {
	return fmt.Sprintf("league_%d", leagueID)
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	room   string
	closed bool
	mu     sync.Mutex
}

func NewClient(hub *Hub, conn *websocket.Conn, room string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		room: room,
	}
}

// Hub держит подписчиков по комнатам. Регистрация идёт через Run, рассылка - напрямую под RLock.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	stopped    chan struct{} // закрывается, когда Run завершился
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopped:    make(chan struct{}),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run обслуживает регистрацию до закрытия done. После остановки все клиенты закрываются,
// а новые не принимаются.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.logger.Debug("client registered", slog.String("room", client.room), slog.Int("clients", len(h.rooms[client.room])))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok && clients[client] {
				client.close()
				delete(clients, client)
				if len(clients) == 0 {
					delete(h.rooms, client.room)
				}
				h.logger.Debug("client unregistered", slog.String("room", client.room), slog.Int("clients", len(clients)))
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	for room, clients := range h.rooms {
		for client := range clients {
			client.close()
		}
		delete(h.rooms, room)
	}
	h.mu.Unlock()
	close(h.stopped)
}

// Register добавляет клиента в комнату. Если хаб уже остановлен, клиент закрывается
// и возвращается false.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.stopped:
		c.close()
		return false
	}
}

func (h *Hub) unregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

// RoomSize возвращает число подписчиков комнаты.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// BroadcastToRoom отправляет сообщение всем клиентам комнаты. Медленные клиенты пропускаются.
func (h *Hub) BroadcastToRoom(room string, message interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[room]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message", slog.String("room", room), slog.Any("error", err))
		return
	}

	for client := range clients {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.send <- data:
			default:
				h.logger.Warn("client send buffer full, message dropped", slog.String("room", room))
			}
		}
		client.mu.Unlock()
	}
}

// Send отправляет сообщение одному клиенту, например начальное состояние после подписки.
func (c *Client) Send(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		c.hub.logger.Error("failed to marshal client message", slog.String("room", c.room), slog.Any("error", err))
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.hub.logger.Warn("client send buffer full, message dropped", slog.String("room", c.room))
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

// ReadPump только поддерживает соединение: входящие сообщения игнорируются.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket closed unexpectedly", slog.String("room", c.room), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Warn("failed to write websocket message", slog.String("room", c.room), slog.Any("error", err))
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
