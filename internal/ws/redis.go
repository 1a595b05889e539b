package ws

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/playmatatu/eightball/internal/game"
	"github.com/redis/go-redis/v9"
)

// StartEventRelay subscribes to the table events channel and forwards each
// event to the clients of its table. It returns immediately when rdb is nil.
func (h *Hub) StartEventRelay(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		log.Info("[WS] Redis client not set; event relay not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, game.EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Infof("[WS] %s subscriber started", game.EventsChannel)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				h.relay([]byte(msg.Payload))
			}
		}
	}()
}

// relay forwards one published payload to the room of its table.
func (h *Hub) relay(payload []byte) {
	var ev game.TableEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		log.Warnf("[WS] invalid event payload: %v", err)
		return
	}
	if ev.TableID == "" {
		log.Warnf("[WS] %s event without table_id dropped", ev.Type)
		return
	}

	switch ev.Type {
	case game.EventShotResult, game.EventGameOver:
		if h.RoomSize(ev.TableID) == 0 {
			log.Debugf("[WS] no room for table %s; %s not broadcast", ev.TableID, ev.Type)
			return
		}
		log.Debugf("[WS] relaying %s for table %s", ev.Type, ev.TableID)
		h.broadcast(ev.TableID, payload)
	default:
		log.Debugf("[WS] ignoring relayed %s event", ev.Type)
	}
}
