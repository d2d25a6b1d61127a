package models

import "time"

// Alert records one detected momentum spike. Immutable once created.
type Alert struct {
	ID          string  `json:"id"`
	Time        string  `json:"time"`         // wall clock, HH:MM:SS
	Symbol      string  `json:"symbol"`
	MovePercent string  `json:"move_percent"` // formatted, e.g. "1.20%" or "-1.35%"
	LastPrice   float64 `json:"last_price"`
}

// Snapshot is a point-in-time copy of the aggregator state handed to readers.
// Slices are copies; mutating them never affects the aggregator.
type Snapshot struct {
	PositiveAlerts     []Alert   `json:"positive_alerts"`
	NegativeAlerts     []Alert   `json:"negative_alerts"`
	TrackedSymbolCount int       `json:"tracked_symbol_count"`
	LastUpdate         time.Time `json:"last_update"`
	Connected          bool      `json:"connected"`
	LookbackSeconds    int       `json:"lookback_seconds"`
	ThresholdPercent   float64   `json:"threshold_percent"`
}
