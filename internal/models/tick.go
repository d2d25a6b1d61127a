// Package models defines the core domain entities: ticks, alerts, and snapshots.
package models

import (
	"errors"
	"math"
	"time"
)

// Tick is a single price update for one symbol, as delivered by the feed.
type Tick struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks tick field constraints.
func (t *Tick) Validate() error {
	if t.Symbol == "" {
		return errors.New("tick symbol must not be empty")
	}
	if math.IsNaN(t.Price) || math.IsInf(t.Price, 0) {
		return errors.New("tick price must be finite")
	}
	if t.Price <= 0 {
		return errors.New("tick price must be positive")
	}
	if t.Timestamp.IsZero() {
		return errors.New("tick timestamp must be set")
	}
	return nil
}
