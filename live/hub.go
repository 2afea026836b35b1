package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const TypeLeaderboardUpdated = "LEADERBOARD_UPDATED"

// Message — исходящее сообщение подписчикам игры.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	GameID  int         `json:"game_id,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	GameID   int
	isClosed bool
	mu       sync.Mutex
}

// Hub держит подписчиков на live-таблицы результатов, сгруппированных по игре.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[int]map[*Client]bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[int]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.GameID]; !ok {
				h.rooms[client.GameID] = make(map[*Client]bool)
			}
			h.rooms[client.GameID][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.GameID]; ok {
				if _, okClient := room[client]; okClient {
					client.mu.Lock()
					if !client.isClosed {
						close(client.Send)
						client.isClosed = true
					}
					client.mu.Unlock()
					delete(room, client)
					if len(room) == 0 {
						delete(h.rooms, client.GameID)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToGame отправляет сообщение всем подписчикам указанной игры.
func (h *Hub) BroadcastToGame(gameID int, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[gameID]
	if !ok {
		return
	}

	message.GameID = gameID
	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshalling message for game %d: %v", gameID, err)
		return
	}

	for client := range room {
		client.mu.Lock()
		if client.isClosed {
			client.mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			log.Printf("Client's send channel full or closed for game %d. Skipping.", gameID)
		}
		client.mu.Unlock()
	}
}

// Subscribers возвращает число подписчиков игры.
func (h *Hub) Subscribers(gameID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[gameID])
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	// Входящие сообщения игнорируются: канал односторонний.
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error for game %d: %v", c.GameID, err)
			}
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
