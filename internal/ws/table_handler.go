package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/eightball/internal/game"
)

// PointerData is the payload of pointer_move, pointer_down and pointer_up.
type PointerData struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button"`
}

// Serve upgrades the request and attaches the connection to a table.
// Authorization has already been checked by the caller.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, tableID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		tableID: tableID,
		send:    make(chan []byte, sendBuffer),
	}
	if !h.join(client) {
		log.Warnf("[WS] Hub stopped, refusing client for %s", tableID)
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump turns inbound messages into table input until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warnf("[WS] Unexpected close on %s: %v", c.tableID, err)
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message")
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg WSMessage) {
	switch msg.Type {
	case string(game.InputMove), string(game.InputDown), string(game.InputUp):
		ev, err := decodePointer(game.InputKind(msg.Type), msg.Data)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		err = c.hub.tables.Submit(c.tableID, ev)
		switch {
		case err == nil, errors.Is(err, game.ErrInputDropped):
		case errors.Is(err, game.ErrTableNotFound), errors.Is(err, game.ErrTableClosed):
			c.sendError("Table is closed")
		default:
			c.sendError(err.Error())
		}

	case "get_state":
		c.sendState()

	default:
		c.sendError("Unknown message type")
	}
}

// decodePointer validates a pointer payload. A press without a button is a
// left press.
func decodePointer(kind game.InputKind, raw json.RawMessage) (game.InputEvent, error) {
	var data PointerData
	if err := json.Unmarshal(raw, &data); err != nil {
		return game.InputEvent{}, errors.New("invalid pointer data")
	}

	pointer := game.NewVec2(data.X, data.Y)
	if !pointer.Finite() {
		return game.InputEvent{}, errors.New("invalid pointer position")
	}

	button := game.Button(data.Button)
	if button < game.ButtonNone || button > game.ButtonRight {
		return game.InputEvent{}, errors.New("invalid button")
	}
	if button == game.ButtonNone && kind != game.InputMove {
		button = game.ButtonLeft
	}

	return game.InputEvent{Kind: kind, Pointer: pointer, Button: button}, nil
}

// sendState sends the table's latest snapshot to this client only.
func (c *Client) sendState() {
	t, err := c.hub.tables.Get(c.tableID)
	if err != nil {
		c.sendError("Table not found")
		return
	}
	snap := t.Snapshot()
	data, err := json.Marshal(game.TableEvent{TableID: c.tableID, Type: game.EventFrame, Snapshot: &snap})
	if err != nil {
		log.Errorf("[WS] Error marshaling state for %s: %v", c.tableID, err)
		return
	}
	c.trySend(data)
}
