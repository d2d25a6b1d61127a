package aggregator

import "time"

// sample is one retained (timestamp, price) observation.
type sample struct {
	ts    time.Time
	price float64
}

// history maps a symbol to its time-ordered samples inside the lookback
// window. Symbols are created lazily on first append.
type history map[string][]sample

// append adds a sample for sym, then drops every sample with a timestamp
// before now-lookback, where now is the timestamp just appended. The returned
// slice is the trimmed window, oldest first.
func (h history) append(sym string, ts time.Time, price float64, lookback time.Duration) []sample {
	samples := append(h[sym], sample{ts: ts, price: price})

	cutoff := ts.Add(-lookback)
	kept := samples[:0]
	for _, s := range samples {
		if !s.ts.Before(cutoff) {
			kept = append(kept, s)
		}
	}

	h[sym] = kept
	return kept
}
