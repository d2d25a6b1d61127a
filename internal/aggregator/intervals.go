package aggregator

import "time"

// seenIntervals records symbol+minute keys that already produced an alert,
// so a symbol alerts at most once per wall-clock minute no matter how often
// it crosses the threshold inside that minute.
//
// The set grows for the process lifetime, matching the reference scanner.
// TODO: evict keys older than a few lookback windows once the intended
// retention policy is confirmed.
type seenIntervals map[string]struct{}

// intervalKey derives the dedup key for sym at t, truncated to the minute.
func intervalKey(sym string, t time.Time) string {
	return sym + "_" + t.Format("15:04")
}

// markIfNew records key and reports whether it was absent.
func (s seenIntervals) markIfNew(key string) bool {
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}
