package game

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// EventsChannel is the Redis pub/sub channel carrying shot results and game overs.
const EventsChannel = "table_events"

func snapshotKey(id string) string {
	return "table:" + id + ":snapshot"
}

// saveGate orders a table's snapshot writes. A write for an older frame than
// the last one stored is dropped.
type saveGate struct {
	mu    sync.Mutex
	last  uint64
	saved bool
}

func (g *saveGate) run(frame uint64, save func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.saved && frame < g.last {
		return nil
	}
	if err := save(); err != nil {
		return err
	}
	g.last, g.saved = frame, true
	return nil
}

// storeSnapshot caches snap through the table's gate.
func (tm *TableManager) storeSnapshot(ctx context.Context, t *LiveTable, snap Snapshot) error {
	return t.saves.run(snap.Frame, func() error {
		return tm.saveSnapshot(ctx, t.ID, snap)
	})
}

// saveSnapshot caches a table's snapshot with the configured TTL.
func (tm *TableManager) saveSnapshot(ctx context.Context, id string, snap Snapshot) error {
	if tm.rdb == nil {
		return nil // No Redis client, skip
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return tableError(id, err)
	}
	return tm.rdb.SetEx(ctx, snapshotKey(id), data, tm.cfg.SnapshotTTL).Err()
}

// loadSnapshot reads a cached snapshot back.
func (tm *TableManager) loadSnapshot(ctx context.Context, id string) (Snapshot, error) {
	if tm.rdb == nil {
		return Snapshot{}, ErrTableNotFound
	}

	data, err := tm.rdb.Get(ctx, snapshotKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrTableNotFound
	}
	if err != nil {
		return Snapshot{}, tableError(id, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, tableError(id, err)
	}
	return snap, nil
}

// publish sends an event to every relay subscribed to EventsChannel.
func (tm *TableManager) publish(ctx context.Context, ev TableEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		log.Errorf("[TABLE] marshal %s event for %s: %v", ev.Type, ev.TableID, err)
		return
	}
	if n, err := tm.rdb.Publish(ctx, EventsChannel, b).Result(); err != nil {
		log.Errorf("[TABLE] publish %s failed: table=%s err=%v", ev.Type, ev.TableID, err)
	} else {
		log.Debugf("[TABLE] published %s: table=%s subscribers=%d", ev.Type, ev.TableID, n)
	}
}
