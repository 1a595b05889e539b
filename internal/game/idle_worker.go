package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// StartIdleReaper closes tables that have had no pointer input for
// IdleTimeout. It polls every interval until ctx is done.
func (tm *TableManager) StartIdleReaper(ctx context.Context, interval time.Duration) {
	if tm.cfg.IdleTimeout <= 0 {
		log.Info("[IDLE] Idle timeout disabled; reaper not started")
		return
	}

	log.Infof("[IDLE] Idle reaper started (timeout %s)", tm.cfg.IdleTimeout)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("[IDLE] Idle reaper stopping")
				return
			case now := <-ticker.C:
				tm.reapIdle(now)
			}
		}
	}()
}

// reapIdle closes every table idle since before now-IdleTimeout and returns
// how many it closed.
func (tm *TableManager) reapIdle(now time.Time) int {
	cutoff := now.Add(-tm.cfg.IdleTimeout)

	// Collect candidates under read lock
	tm.mu.RLock()
	var idle []string
	for id, t := range tm.tables {
		if t.LastInput().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	tm.mu.RUnlock()

	closed := 0
	for _, id := range idle {
		if err := tm.Close(id); err != nil {
			log.Warnf("[IDLE] skipping %s: %v", id, err)
			continue
		}
		log.Infof("[IDLE] closed idle table %s", id)
		closed++
	}
	return closed
}
