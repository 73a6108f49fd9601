package tracker

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/imposera/remora-tracker/internal/bus"
	"github.com/imposera/remora-tracker/internal/calculator"
	"github.com/imposera/remora-tracker/internal/collector"
	"github.com/imposera/remora-tracker/internal/model"
	"github.com/imposera/remora-tracker/internal/recorder"
	"github.com/imposera/remora-tracker/internal/simulator"
)

// Preset is a named refresh cadence shown by the dashboard.
type Preset struct {
	Label   string `json:"label"`
	Seconds int    `json:"seconds"`
}

// Presets in the order the dashboard lists them.
var Presets = []Preset{
	{Label: "Turbo Mode (10s)", Seconds: 10},
	{Label: "Cruise (60s)", Seconds: 60},
	{Label: "Coffee Break (120s)", Seconds: 120},
	{Label: "Nap Time (300s)", Seconds: 300},
}

// PresetSeconds resolves a preset label to its cadence in seconds.
func PresetSeconds(label string) (int, bool) {
	for _, p := range Presets {
		if p.Label == label {
			return p.Seconds, true
		}
	}
	return 0, false
}

// Engine runs the recompute cycle on a timer and keeps the latest snapshot.
// Each cycle is a synchronous fetch → buffers → simulate sequence; cycles
// are serialized, so a slow fetch delays rather than overlaps the next tick.
type Engine struct {
	collector  *collector.Collector
	instrument model.Instrument
	bus        *bus.Bus
	recorder   recorder.Recorder
	rng        *rand.Rand

	cron  *cron.Cron
	entry cron.EntryID

	mu          sync.Mutex
	latest      *model.Snapshot
	intervalSec int
	minSec      int
	maxSec      int

	refreshMu sync.Mutex
}

// NewEngine creates an Engine with the given default refresh cadence and
// clamp bounds. rng may be nil, in which case simulation draws are
// time-seeded and ticks are not reproducible.
func NewEngine(col *collector.Collector, inst model.Instrument, b *bus.Bus, rec recorder.Recorder, defaultSec, minSec, maxSec int, rng *rand.Rand) *Engine {
	e := &Engine{
		collector:  col,
		instrument: inst,
		bus:        b,
		recorder:   rec,
		rng:        rng,
		cron:       cron.New(),
		minSec:     minSec,
		maxSec:     maxSec,
	}
	e.intervalSec = e.clamp(defaultSec)
	return e
}

// Start registers the timer entry and begins ticking.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.entry == 0 {
		id, err := e.cron.AddFunc(fmt.Sprintf("@every %ds", e.intervalSec), func() { e.Refresh() })
		if err != nil {
			return fmt.Errorf("register refresh timer: %w", err)
		}
		e.entry = id
	}
	e.cron.Start()
	log.Printf("[INFO] refresh timer started: every %ds", e.intervalSec)
	return nil
}

// Stop stops the timer gracefully.
func (e *Engine) Stop() {
	e.cron.Stop()
	log.Println("[INFO] refresh timer stopped")
}

// Latest returns the most recently published snapshot, or nil before the
// first refresh completes.
func (e *Engine) Latest() *model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latest
}

// IntervalSeconds returns the current refresh cadence.
func (e *Engine) IntervalSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.intervalSec
}

// IntervalMilliseconds returns the current timer period in milliseconds,
// the unit the dashboard timer runs in.
func (e *Engine) IntervalMilliseconds() int {
	return e.IntervalSeconds() * 1000
}

func (e *Engine) clamp(n int) int {
	if n < e.minSec {
		return e.minSec
	}
	if n > e.maxSec {
		return e.maxSec
	}
	return n
}

// SetIntervalSeconds clamps n to the configured bounds and swaps the timer
// entry. Returns the applied cadence in seconds.
func (e *Engine) SetIntervalSeconds(n int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n = e.clamp(n)
	if n == e.intervalSec && e.entry != 0 {
		return n, nil
	}
	if e.entry != 0 {
		e.cron.Remove(e.entry)
		e.entry = 0
	}
	id, err := e.cron.AddFunc(fmt.Sprintf("@every %ds", n), func() { e.Refresh() })
	if err != nil {
		return e.intervalSec, fmt.Errorf("swap refresh timer: %w", err)
	}
	e.entry = id
	e.intervalSec = n
	log.Printf("[INFO] refresh interval set to %ds", n)
	return n, nil
}

// Refresh runs one recompute cycle, publishes the snapshot, and returns it.
// Called by the timer and by user interaction (manual refresh).
func (e *Engine) Refresh() *model.Snapshot {
	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()

	snap := e.recompute()

	e.mu.Lock()
	e.latest = snap
	e.mu.Unlock()

	e.bus.Publish(snap)
	e.record(snap)
	return snap
}

// recompute runs the fetch → buffers → simulate pipeline. Every failure
// collapses to a snapshot carrying a single human-readable message with
// empty charts; nothing is fatal and nothing is retried.
func (e *Engine) recompute() *model.Snapshot {
	series, err := e.collector.Collect()
	if err != nil {
		if errors.Is(err, collector.ErrNoData) {
			log.Printf("[WARN] collect %s: empty result", e.instrument.Symbol)
			return e.errorSnapshot("No data available...")
		}
		log.Printf("[ERROR] collect %s: %v", e.instrument.Symbol, err)
		return e.errorSnapshot(fmt.Sprintf("Error loading data: %v", err))
	}

	buffers, err := calculator.Evaluate(series.CurrentPrice, e.instrument)
	if err != nil {
		log.Printf("[ERROR] buffer calculation: %v", err)
		return e.errorSnapshot(fmt.Sprintf("Error computing buffers: %v", err))
	}

	sim, err := simulator.Simulate(series, e.instrument, e.rng)
	if err != nil {
		if errors.Is(err, simulator.ErrInsufficientData) {
			log.Printf("[WARN] simulate %s: %v", e.instrument.Symbol, err)
			return e.errorSnapshot("Unable to simulate: insufficient price history")
		}
		log.Printf("[ERROR] simulate %s: %v", e.instrument.Symbol, err)
		return e.errorSnapshot(fmt.Sprintf("Error running simulation: %v", err))
	}

	return &model.Snapshot{
		Instrument:  e.instrument,
		Buffers:     buffers,
		Simulation:  sim,
		GeneratedAt: time.Now(),
	}
}

func (e *Engine) errorSnapshot(msg string) *model.Snapshot {
	return &model.Snapshot{
		Instrument:  e.instrument,
		Error:       msg,
		GeneratedAt: time.Now(),
	}
}

func (e *Engine) record(snap *model.Snapshot) {
	rec := &recorder.TickRecord{Error: snap.Error}
	if snap.Buffers != nil {
		rec.Price = snap.Buffers.CurrentPrice
		rec.LongBuffer = snap.Buffers.LongBuffer
		rec.ShortBuffer = snap.Buffers.ShortBuffer
		rec.RiskTag = snap.Buffers.RiskTag
	}
	if err := e.recorder.RecordTick(rec); err != nil {
		log.Printf("[ERROR] record tick: %v", err)
	}
}
