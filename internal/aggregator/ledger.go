package aggregator

import "github.com/tradepulse/momentum-scanner/internal/models"

// maxLedgerAlerts caps each polarity's ledger; entries past the cap are
// silently dropped, oldest first.
const maxLedgerAlerts = 50

// ledger is a bounded, newest-first list of alerts of one polarity.
type ledger struct {
	alerts []models.Alert
}

// insert prepends a and truncates to the cap.
func (l *ledger) insert(a models.Alert) {
	l.alerts = append([]models.Alert{a}, l.alerts...)
	if len(l.alerts) > maxLedgerAlerts {
		l.alerts = l.alerts[:maxLedgerAlerts]
	}
}

// snapshot returns a copy of the alerts, newest first.
func (l *ledger) snapshot() []models.Alert {
	out := make([]models.Alert, len(l.alerts))
	copy(out, l.alerts)
	return out
}
