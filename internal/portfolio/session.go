package portfolio

import "time"

// The market-session flag is computed against the regular NYSE session:
// weekdays 09:30-16:00 Eastern. Holidays are not modeled; the flag is
// informational, not a trading gate.
var easternTime = loadEastern()

func loadEastern() *time.Location {
	if loc, err := time.LoadLocation("America/New_York"); err == nil {
		return loc
	}
	// Containers without tzdata fall back to standard Eastern offset.
	return time.FixedZone("EST", -5*60*60)
}

// MarketOpen reports whether t falls inside the regular trading session.
func MarketOpen(t time.Time) bool {
	et := t.In(easternTime)
	switch et.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	minutes := et.Hour()*60 + et.Minute()
	return minutes >= 9*60+30 && minutes < 16*60
}
