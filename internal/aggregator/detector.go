package aggregator

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tradepulse/momentum-scanner/internal/models"
)

const (
	// minSamples is the fewest window samples required before a move is
	// evaluated; a thinner window turns single prints into "100% moves".
	minSamples = 3

	// coverageRatio is the fraction of the lookback window that must have
	// elapsed between the oldest retained sample and the current tick before
	// the percentage change is considered representative of the window.
	coverageRatio = 0.8
)

// evaluate runs one validated tick through the detection pipeline and returns
// the emitted alert, or nil. The caller must hold the aggregator lock.
func (a *Aggregator) evaluate(tick models.Tick) *models.Alert {
	lookback := time.Duration(a.cfg.LookbackSeconds) * time.Second
	window := a.hist.append(tick.Symbol, tick.Timestamp, tick.Price, lookback)

	if len(window) < minSamples {
		return nil
	}

	start := window[0]
	elapsed := tick.Timestamp.Sub(start.ts).Seconds()
	if elapsed < coverageRatio*float64(a.cfg.LookbackSeconds) {
		return nil
	}

	// Ticks with non-positive prices never reach history, but a percentage
	// change is meaningless against a zero base either way.
	if start.price <= 0 {
		return nil
	}

	pctChange := (tick.Price - start.price) / start.price * 100
	if math.Abs(pctChange) < a.cfg.ThresholdPercent {
		return nil
	}

	if !a.seen.markIfNew(intervalKey(tick.Symbol, tick.Timestamp)) {
		return nil
	}

	alert := models.Alert{
		ID:          uuid.New().String(),
		Time:        tick.Timestamp.Format("15:04:05"),
		Symbol:      tick.Symbol,
		MovePercent: fmt.Sprintf("%.2f%%", pctChange),
		LastPrice:   tick.Price,
	}

	if pctChange >= a.cfg.ThresholdPercent {
		a.positive.insert(alert)
	} else {
		a.negative.insert(alert)
	}
	return &alert
}
