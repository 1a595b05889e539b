package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/eightball/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the HTTP routes
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 256
)

// Client is one WebSocket connection watching a table.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	tableID string
	send    chan []byte
}

// Hub fans table events out to the clients watching each table.
type Hub struct {
	tables     *game.TableManager
	rooms      map[string]map[*Client]struct{} // tableID -> clients
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // closed when Run returns
	mu         sync.RWMutex
}

// NewHub creates a hub that forwards client input to tables.
func NewHub(tables *game.TableManager) *Hub {
	return &Hub{
		tables:     tables,
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run handles client registration until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[client.tableID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[client.tableID] = room
			}
			room[client] = struct{}{}
			size := len(room)
			h.mu.Unlock()
			log.Infof("[WS] Client joined %s (room_size=%d)", client.tableID, size)
			client.sendState()

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.tableID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.tableID)
					}
				}
			}
			h.mu.Unlock()
			log.Infof("[WS] Client left %s", client.tableID)
		}
	}
}

// join hands a client to Run. It reports false once the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for client := range room {
			close(client.send)
		}
		delete(h.rooms, id)
	}
}

// RoomSize returns how many clients watch a table.
func (h *Hub) RoomSize(tableID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[tableID])
}

// Publish is the table manager sink. It never blocks the table loop.
func (h *Hub) Publish(ev game.TableEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Errorf("[WS] Error marshaling %s event: %v", ev.Type, err)
		return
	}
	h.broadcast(ev.TableID, data)
}

// broadcast sends data to every client of a table, dropping it for clients
// whose buffer is full.
func (h *Hub) broadcast(tableID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[tableID] {
		select {
		case client.send <- data:
		default:
			log.Debugf("[WS] Send buffer full for a client of %s, dropping message", tableID)
		}
	}
}

// WSMessage is the envelope of every inbound message.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// writePump writes queued messages and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debugf("[WS] Write error on %s: %v", c.tableID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debugf("[WS] Ping error on %s: %v", c.tableID, err)
				return
			}
		}
	}
}

// trySend queues data for this client only. It is a no-op once the hub has
// dropped the client and drops data when the buffer is full.
func (c *Client) trySend(data []byte) {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()

	if _, ok := c.hub.rooms[c.tableID][c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
	c.trySend(data)
}
