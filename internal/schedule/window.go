package schedule

import (
	"regexp"
	"time"

	"carebook/internal/model"
)

// Window is the concrete start/end of a booking, derived from its calendar
// date and clock times. Invariant: Start < End; a window that cannot be
// resolved is reported as absent, never as an error.
type Window struct {
	Start time.Time
	End   time.Time
}

// serviceTimePattern matches the composite dual-timestamp form
// "<YYYY-MM-DD> <HH:mm> – <YYYY-MM-DD> <HH:mm>" with either an en dash or a
// plain hyphen between the endpoints.
var serviceTimePattern = regexp.MustCompile(
	`^\s*(\d{4}-\d{2}-\d{2})\s+(\d{1,2}:\d{2})\s*[–-]\s*(\d{4}-\d{2}-\d{2})\s+(\d{1,2}:\d{2})\s*$`,
)

// ResolveWindow combines the booking's date with its start and end clock
// times. ok=false when any field fails to parse or the window is not
// forward (start < end).
func ResolveWindow(b model.Booking) (Window, bool) {
	date, err := model.ParseDate(b.Date)
	if err != nil {
		return Window{}, false
	}
	start, err := model.ParseClock(b.StartTime)
	if err != nil {
		return Window{}, false
	}
	end, err := model.ParseClock(b.EndTime)
	if err != nil {
		return Window{}, false
	}

	w := Window{Start: start.On(date), End: end.On(date)}
	if !w.Start.Before(w.End) {
		return Window{}, false
	}
	return w, true
}

// ResolveServiceWindow parses the composite service-time string. Both
// endpoints carry their own date, so multi-day windows resolve too.
// ok=false on any mismatch or parse failure.
func ResolveServiceWindow(text string) (Window, bool) {
	m := serviceTimePattern.FindStringSubmatch(text)
	if m == nil {
		return Window{}, false
	}

	startDate, err := model.ParseDate(m[1])
	if err != nil {
		return Window{}, false
	}
	startClock, err := model.ParseClock(m[2])
	if err != nil {
		return Window{}, false
	}
	endDate, err := model.ParseDate(m[3])
	if err != nil {
		return Window{}, false
	}
	endClock, err := model.ParseClock(m[4])
	if err != nil {
		return Window{}, false
	}

	w := Window{Start: startClock.On(startDate), End: endClock.On(endDate)}
	if !w.Start.Before(w.End) {
		return Window{}, false
	}
	return w, true
}

// ResolveBookingWindow prefers the richer service-time form when the
// directory sent one, falling back to the split date/time fields.
func ResolveBookingWindow(b model.Booking) (Window, bool) {
	if b.ServiceTime != "" {
		if w, ok := ResolveServiceWindow(b.ServiceTime); ok {
			return w, true
		}
	}
	return ResolveWindow(b)
}
