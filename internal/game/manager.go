package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	mrand "math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrTableClosed   = errors.New("table closed")
	ErrInputDropped  = errors.New("input queue full")
)

// EventType names the messages a table emits.
type EventType string

const (
	EventFrame      EventType = "frame"
	EventShotResult EventType = "shot_result"
	EventGameOver   EventType = "game_over"
)

// TableEvent is table output for the render collaborator.
type TableEvent struct {
	TableID  string      `json:"table_id"`
	Type     EventType   `json:"type"`
	Snapshot *Snapshot   `json:"snapshot,omitempty"`
	Result   *ShotResult `json:"result,omitempty"`
	Contacts []Contact   `json:"contacts,omitempty"`
}

// Sink receives table events on the table goroutine and must not block.
type Sink func(TableEvent)

// ManagerConfig carries the settings the table manager needs.
type ManagerConfig struct {
	Params         Params
	IdleTimeout    time.Duration
	SnapshotTTL    time.Duration
	InputQueue     int
	BroadcastEvery int
}

// LiveTable is one running table. Its Game is touched only by its own loop.
type LiveTable struct {
	ID        string
	CreatedAt time.Time

	game      *Game
	inputs    chan InputEvent
	snapshot  atomic.Pointer[Snapshot]
	lastInput atomic.Int64
	saves     saveGate
	cancel    context.CancelFunc
	done      chan struct{}
}

// Snapshot returns the state at the end of the last frame.
func (t *LiveTable) Snapshot() Snapshot {
	if s := t.snapshot.Load(); s != nil {
		return *s
	}
	return Snapshot{}
}

// LastInput is when the table last received pointer input.
func (t *LiveTable) LastInput() time.Time {
	return time.Unix(0, t.lastInput.Load())
}

// TableManager owns all live tables.
type TableManager struct {
	tables map[string]*LiveTable
	rdb    *redis.Client
	cfg    ManagerConfig
	sink   Sink
	mu     sync.RWMutex
}

// NewTableManager creates a table manager. rdb may be nil, which disables the
// snapshot cache and the event relay.
func NewTableManager(rdb *redis.Client, cfg ManagerConfig) *TableManager {
	if cfg.InputQueue <= 0 {
		cfg.InputQueue = 64
	}
	if cfg.BroadcastEvery <= 0 {
		cfg.BroadcastEvery = 1
	}
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = time.Hour
	}
	return &TableManager{
		tables: make(map[string]*LiveTable),
		rdb:    rdb,
		cfg:    cfg,
	}
}

// SetSink installs the receiver of frame events. Call before creating tables.
func (tm *TableManager) SetSink(s Sink) {
	tm.mu.Lock()
	tm.sink = s
	tm.mu.Unlock()
}

func (tm *TableManager) Params() Params {
	return tm.cfg.Params
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func generateTableID() string {
	return "table_" + generateToken(8)
}

// Create racks a new table and starts its loop.
func (tm *TableManager) Create(ctx context.Context, player1, player2 string) (*LiveTable, error) {
	if player1 == "" || player2 == "" {
		return nil, errors.New("both player names are required")
	}
	rng := mrand.New(mrand.NewSource(time.Now().UnixNano()))
	g := NewGame(tm.cfg.Params, player1, player2, rng)
	t := tm.start(ctx, generateTableID(), g)
	log.Infof("[TABLE] Created %s for %s vs %s, %s breaks", t.ID, player1, player2, g.Match.Shooter().Name)
	return t, nil
}

func (tm *TableManager) start(ctx context.Context, id string, g *Game) *LiveTable {
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	t := &LiveTable{
		ID:        id,
		CreatedAt: time.Now(),
		game:      g,
		inputs:    make(chan InputEvent, tm.cfg.InputQueue),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	t.lastInput.Store(time.Now().UnixNano())
	snap := g.Snapshot()
	t.snapshot.Store(&snap)

	tm.mu.Lock()
	if existing, ok := tm.tables[id]; ok {
		tm.mu.Unlock()
		cancel()
		return existing
	}
	tm.tables[id] = t
	tm.mu.Unlock()

	go tm.run(loopCtx, t)
	return t
}

// Get returns a live table from memory.
func (tm *TableManager) Get(id string) (*LiveTable, error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	t, ok := tm.tables[id]
	if !ok {
		return nil, ErrTableNotFound
	}
	return t, nil
}

// Open returns a live table, restoring it from the snapshot cache when it is
// no longer in memory.
func (tm *TableManager) Open(ctx context.Context, id string) (*LiveTable, error) {
	if t, err := tm.Get(id); err == nil {
		return t, nil
	}

	snap, err := tm.loadSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	rng := mrand.New(mrand.NewSource(time.Now().UnixNano()))
	t := tm.start(ctx, id, RestoreGame(tm.cfg.Params, snap, rng))
	log.Infof("[TABLE] Restored %s from cache at frame %d", id, snap.Frame)
	return t, nil
}

// Snapshot returns a table's state from memory, else from the cache.
func (tm *TableManager) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	if t, err := tm.Get(id); err == nil {
		return t.Snapshot(), nil
	}
	return tm.loadSnapshot(ctx, id)
}

// Submit queues a pointer event for the table's next tick. A full queue drops
// the event.
func (tm *TableManager) Submit(id string, ev InputEvent) error {
	t, err := tm.Get(id)
	if err != nil {
		return err
	}
	select {
	case <-t.done:
		return ErrTableClosed
	default:
	}

	t.lastInput.Store(time.Now().UnixNano())
	select {
	case t.inputs <- ev:
		return nil
	default:
		log.Warnf("[TABLE] %s input queue full, dropping %s", id, ev.Kind)
		return ErrInputDropped
	}
}

// Close stops a table's loop, caches its last snapshot and forgets it.
func (tm *TableManager) Close(id string) error {
	tm.mu.Lock()
	t, ok := tm.tables[id]
	if ok {
		delete(tm.tables, id)
	}
	tm.mu.Unlock()
	if !ok {
		return ErrTableNotFound
	}

	t.cancel()
	<-t.done
	if err := tm.storeSnapshot(context.Background(), t, t.Snapshot()); err != nil {
		log.Errorf("[TABLE] Failed to cache %s on close: %v", id, err)
	}
	log.Infof("[TABLE] Closed %s", id)
	return nil
}

// Count returns the number of live tables.
func (tm *TableManager) Count() int {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return len(tm.tables)
}

// Shutdown closes every table.
func (tm *TableManager) Shutdown() {
	tm.mu.RLock()
	ids := make([]string, 0, len(tm.tables))
	for id := range tm.tables {
		ids = append(ids, id)
	}
	tm.mu.RUnlock()

	for _, id := range ids {
		if err := tm.Close(id); err != nil && !errors.Is(err, ErrTableNotFound) {
			log.Errorf("[TABLE] Shutdown %s: %v", id, err)
		}
	}
}

// run is the table loop: drain inputs, run one frame, emit events.
func (tm *TableManager) run(ctx context.Context, t *LiveTable) {
	defer close(t.done)

	ticker := time.NewTicker(tm.cfg.Params.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			report := t.game.Frame(now, drain(t.inputs))
			snap := report.Snapshot
			t.snapshot.Store(&snap)
			tm.emit(ctx, t, report)
		}
	}
}

func drain(ch <-chan InputEvent) []InputEvent {
	var inputs []InputEvent
	for {
		select {
		case ev := <-ch:
			inputs = append(inputs, ev)
		default:
			return inputs
		}
	}
}

func (tm *TableManager) emit(ctx context.Context, t *LiveTable, report FrameReport) {
	tm.mu.RLock()
	sink := tm.sink
	tm.mu.RUnlock()

	if sink != nil && (report.Frame%uint64(tm.cfg.BroadcastEvery) == 0 || len(report.Contacts) > 0) {
		snap := report.Snapshot
		sink(TableEvent{TableID: t.ID, Type: EventFrame, Snapshot: &snap, Contacts: report.Contacts})
	}

	if report.Result == nil {
		return
	}

	events := []TableEvent{{TableID: t.ID, Type: EventShotResult, Result: report.Result}}
	if report.Result.GameOver {
		snap := report.Snapshot
		events = append(events, TableEvent{TableID: t.ID, Type: EventGameOver, Result: report.Result, Snapshot: &snap})
	}

	// The write outlives the loop so Close cannot cut it short.
	snap := report.Snapshot
	saveCtx := context.WithoutCancel(ctx)
	go func() {
		if err := tm.storeSnapshot(saveCtx, t, snap); err != nil {
			log.Errorf("[TABLE] Failed to cache %s: %v", t.ID, err)
		}
	}()

	for _, ev := range events {
		if tm.rdb != nil {
			go tm.publish(ctx, ev)
		} else if sink != nil {
			sink(ev)
		}
	}
}

// tableError wraps err with the table id.
func tableError(id string, err error) error {
	return fmt.Errorf("table %s: %w", id, err)
}
