// Package engine provides the clock driver: the loop that feeds TICK actions
// into the reducer at a controllable cadence, with pause and a bounded
// catch-up after stalls.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ayameworks/cafesim/internal/config"
	"github.com/ayameworks/cafesim/internal/game"
)

// Driver owns the authoritative snapshot and serializes every reduction.
// The simulation core itself never spins a goroutine; the driver is the only
// place real time enters the system.
type Driver struct {
	Interval time.Duration // Real time per tick at speed 1.0

	mu      sync.RWMutex
	state   game.State
	reducer *game.Reducer
	balance config.Balance

	running bool
	stopCh  chan struct{}

	// Real-time accumulator for catch-up ticks.
	carry time.Duration
}

// NewDriver creates a clock driver around a reducer and an initial snapshot.
func NewDriver(r *game.Reducer, initial game.State, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	return &Driver{
		Interval: interval,
		state:    initial,
		reducer:  r,
		balance:  r.Balance,
		stopCh:   make(chan struct{}),
	}
}

// Snapshot returns the current immutable state. Safe for concurrent readers:
// reductions replace the snapshot, they never mutate it.
func (d *Driver) Snapshot() game.State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Dispatch applies one action synchronously and returns the new snapshot.
func (d *Driver) Dispatch(a game.Action) game.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.apply(a)
}

// apply runs one reduction under the lock, emitting notifications and the
// daily report as they surface.
func (d *Driver) apply(a game.Action) game.State {
	prev := d.state
	next := d.reducer.Reduce(prev, a)

	// Presentation side: drain notifications into the log.
	if n := len(next.Notifications); n > len(prev.Notifications) {
		for _, note := range next.Notifications[len(prev.Notifications):] {
			slog.Info("notice", "category", note.Category, "day", note.Day, "message", note.Message)
		}
	}
	next.Notifications = nil

	if next.PendingSummary && !prev.PendingSummary {
		d.logDailyReport(&next)
	}

	d.state = next
	return next
}

// logDailyReport prints the end-of-day rollup in one structured line.
func (d *Driver) logDailyReport(s *game.State) {
	var rev, exp, profit int
	if n := len(s.Finance.History); n > 0 {
		rec := s.Finance.History[n-1]
		rev, exp, profit = rec.Revenue, rec.Expenses, rec.Profit
	}
	slog.Info("daily report",
		"day", s.Day,
		"revenue", humanize.Comma(int64(rev)),
		"expenses", humanize.Comma(int64(exp)),
		"profit", humanize.Comma(int64(profit)),
		"gold", humanize.Comma(int64(s.Finance.Gold)),
		"reputation", fmt.Sprintf("%.1f", s.Reputation),
		"served", s.Stats.CustomersServed,
		"lost", s.Stats.CustomersLost,
		"staff", len(s.Maids),
	)
}

// Run starts the tick loop. Blocks until Stop is called.
func (d *Driver) Run() {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	slog.Info("clock driver started", "interval", d.Interval)
	last := time.Now()
	ticker := time.NewTicker(d.Interval / 4)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopCh:
			slog.Info("clock driver stopped")
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			d.advance(elapsed)
		}
	}
}

// advance converts elapsed real time into at most MaxCatchUpTicks tick
// dispatches. Excess backlog from a stall is dropped rather than replayed.
func (d *Driver) advance(elapsed time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.state
	if s.Paused || !s.Open {
		d.carry = 0
		return
	}

	speed := s.Speed
	if speed <= 0 {
		speed = 1
	}
	d.carry += time.Duration(float64(elapsed) * speed)

	pending := int(d.carry / d.Interval)
	if pending == 0 {
		return
	}
	d.carry -= time.Duration(pending) * d.Interval

	if max := d.balance.MaxCatchUpTicks; pending > max {
		slog.Debug("dropping stalled ticks", "pending", pending, "cap", max)
		pending = max
	}

	for i := 0; i < pending; i++ {
		d.apply(game.Tick{Minutes: d.balance.TickMinutes})
		if d.state.Paused || !d.state.Open {
			break
		}
	}
}

// Stop halts the tick loop.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		d.running = false
		close(d.stopCh)
	}
}

// SimClock formats a snapshot's calendar position, e.g.
// "Spring Day 12, 14:35 Year 1".
func SimClock(s *game.State) string {
	h := int(s.TimeMinutes) / 60
	m := int(s.TimeMinutes) % 60
	seasonDay := (s.Day-1)%game.DaysPerSeason + 1
	year := (s.Day-1)/(game.DaysPerSeason*4) + 1
	return fmt.Sprintf("%s Day %d, %d:%02d Year %d",
		seasonName(s), seasonDay, h, m, year)
}

func seasonName(s *game.State) string {
	names := [4]string{"Spring", "Summer", "Autumn", "Winter"}
	return names[int(s.Season())%4]
}
