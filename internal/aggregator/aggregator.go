// Package aggregator implements the streaming momentum-detection core:
// per-symbol rolling price history, windowed percentage change, per-interval
// alert deduplication, and bounded alert ledgers, all behind a single mutex
// shared between the feed writer and any number of snapshot readers.
package aggregator

import (
	"fmt"
	"sync"
	"time"

	"github.com/tradepulse/momentum-scanner/internal/models"
)

// Bounds enforced at every configuration boundary.
const (
	MinLookbackSeconds  = 30
	MaxLookbackSeconds  = 900
	MinThresholdPercent = 0.1
	MaxThresholdPercent = 5.0
)

// Config holds the live-tunable detection parameters.
type Config struct {
	LookbackSeconds  int
	ThresholdPercent float64
}

// DefaultConfig returns the reference defaults: 60s window, 1% threshold.
func DefaultConfig() Config {
	return Config{LookbackSeconds: 60, ThresholdPercent: 1.0}
}

// Validate checks the parameters against the allowed bounds.
func (c Config) Validate() error {
	if c.LookbackSeconds < MinLookbackSeconds || c.LookbackSeconds > MaxLookbackSeconds {
		return fmt.Errorf("lookback seconds must be between %d and %d, got %d",
			MinLookbackSeconds, MaxLookbackSeconds, c.LookbackSeconds)
	}
	if c.ThresholdPercent < MinThresholdPercent || c.ThresholdPercent > MaxThresholdPercent {
		return fmt.Errorf("threshold percent must be between %.1f and %.1f, got %g",
			MinThresholdPercent, MaxThresholdPercent, c.ThresholdPercent)
	}
	return nil
}

// Aggregator is the shared state between the single feed writer and the
// snapshot readers. Every mutable field is guarded by mu; no I/O happens
// while it is held, so both Ingest and Snapshot stay bounded.
type Aggregator struct {
	mu sync.Mutex

	hist     history
	positive ledger
	negative ledger
	seen     seenIntervals

	cfg         Config
	connected   bool
	symbolCount int
	lastUpdate  time.Time
}

// New creates an aggregator with the given starting configuration.
func New(cfg Config) (*Aggregator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid aggregator config: %w", err)
	}
	return &Aggregator{
		hist: make(history),
		seen: make(seenIntervals),
		cfg:  cfg,
	}, nil
}

// Ingest drives one tick through the detection pipeline and returns the
// emitted alert, or nil. Ticks that fail validation are dropped without
// touching history. The feed delivers ticks from a single goroutine; Ingest
// is still safe to call concurrently with Snapshot and SetConfig.
func (a *Aggregator) Ingest(tick models.Tick) *models.Alert {
	if err := tick.Validate(); err != nil {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	alert := a.evaluate(tick)
	a.lastUpdate = tick.Timestamp
	return alert
}

// Snapshot returns a copy of everything a reader needs. No internal slice or
// map escapes the lock.
func (a *Aggregator) Snapshot() models.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	return models.Snapshot{
		PositiveAlerts:     a.positive.snapshot(),
		NegativeAlerts:     a.negative.snapshot(),
		TrackedSymbolCount: a.symbolCount,
		LastUpdate:         a.lastUpdate,
		Connected:          a.connected,
		LookbackSeconds:    a.cfg.LookbackSeconds,
		ThresholdPercent:   a.cfg.ThresholdPercent,
	}
}

// SetConfig applies new detection parameters; they take effect on the next
// ingested tick. Existing history and ledgers are not recomputed.
func (a *Aggregator) SetConfig(lookbackSeconds int, thresholdPercent float64) error {
	cfg := Config{LookbackSeconds: lookbackSeconds, ThresholdPercent: thresholdPercent}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()
	return nil
}

// Config returns the current detection parameters.
func (a *Aggregator) Config() Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// SetConnected records the transport connection state for snapshots.
func (a *Aggregator) SetConnected(connected bool) {
	a.mu.Lock()
	a.connected = connected
	a.mu.Unlock()
}

// SetSymbolCount records how many symbols the feed tracks.
func (a *Aggregator) SetSymbolCount(n int) {
	a.mu.Lock()
	a.symbolCount = n
	a.mu.Unlock()
}
