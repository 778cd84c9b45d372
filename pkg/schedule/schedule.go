// Package schedule runs recurring background tasks. The catalog uses it
// for the nightly asset sweep.
//
//	schedule.Daily().At("02:30").Name("assets:sweep").WithoutOverlapping().Run(sweep)
//	schedule.Every(15).Minutes().Run(refreshSomething)
//
//	// Start the dispatcher once at boot:
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/vastra/pkg/logger"
)

// Task is a scheduled function.
type Task func()

type entry struct {
	id        string
	interval  time.Duration
	at        string // "HH:MM"; only meaningful with Daily()
	task      Task
	lastRun   time.Time
	running   bool
	noOverlap bool
	mu        sync.Mutex
}

// Schedule is the fluent builder for one entry.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every starts a builder for an every-n-units frequency.
func Every(n int) *freqBuilder { return &freqBuilder{n: n} }

// Hourly runs the task every hour.
func Hourly() *Schedule { return Every(1).Hours() }

// Daily runs the task every 24 hours, or once a day at a fixed time
// when combined with At.
func Daily() *Schedule { return Every(24).Hours() }

type freqBuilder struct{ n int }

func (f *freqBuilder) Minutes() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * time.Minute}}
}
func (f *freqBuilder) Hours() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * time.Hour}}
}

// At pins a daily task to a wall-clock time ("15:04", server local).
// Without it, interval tasks run once at boot and then on the interval.
func (s *Schedule) At(hhmm string) *Schedule {
	s.e.at = hhmm
	return s
}

// WithoutOverlapping skips a run while the previous one is still going.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.e.noOverlap = true
	return s
}

// Name sets the identifier used in logs and the CLI listing.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task. Call Start to begin dispatching.
func (s *Schedule) Run(fn Task) {
	s.e.task = fn
	regMu.Lock()
	if s.e.id == "" {
		s.e.id = fmt.Sprintf("task-%d", len(entries)+1)
	}
	entries = append(entries, s.e)
	regMu.Unlock()
}

// Start launches the dispatcher goroutine. It ticks every second and
// fires due entries; ctx cancellation stops it.
func Start(ctx context.Context) {
	go run(ctx)
	logger.Info("schedule: scheduler started")
}

func run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			regMu.Lock()
			current := make([]*entry, len(entries))
			copy(current, entries)
			regMu.Unlock()

			for _, e := range current {
				if isDue(e, now) {
					dispatch(e)
				}
			}
		}
	}
}

func isDue(e *entry, now time.Time) bool {
	if e.at != "" {
		if now.Format("15:04") != e.at {
			return false
		}
		// At most once per day.
		return e.lastRun.IsZero() || !sameDay(e.lastRun, now)
	}
	if e.lastRun.IsZero() {
		return true // interval tasks get a boot-time run
	}
	return now.Sub(e.lastRun) >= e.interval
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dispatch(e *entry) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = time.Now()
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "panic", r)
			}
		}()

		logger.Info("schedule: running task", "id", e.id)
		e.task()
	}()
}

// List describes the registered entries for the CLI.
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		freq := e.interval.String()
		if e.at != "" {
			freq = "daily at " + e.at
		}
		out = append(out, fmt.Sprintf("%s  [%s]", e.id, freq))
	}
	return out
}
