package schedule

import (
	"time"

	"carebook/internal/interval"
	"carebook/internal/model"
)

// DetectConflicts checks a proposed availability template against committed
// bookings and reports every booking the proposal would strand. Pure query:
// no side effects, same inputs give the same output, and the result order
// follows the input booking order.
//
// A booking conflicts when its weekday is disabled in the proposal, or when
// no single range fully contains its [start, end) interval. Containment is
// required here: a booking merely overlapping the edge of a range would
// leave part of the visit uncovered.
//
// Bookings dated before today and bookings with unparseable dates or times
// are skipped; bad data must never block an unrelated save. The caller is
// the one refusing to persist while the returned slice is non-empty.
func DetectConflicts(proposed model.WeeklyAvailability, bookings []model.Booking, today time.Time) []model.Conflict {
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	conflicts := make([]model.Conflict, 0)
	for _, b := range bookings {
		date, err := model.ParseDate(b.Date)
		if err != nil {
			continue
		}
		if date.Before(todayDate) {
			continue
		}

		day := model.WeekdayOf(date)
		daily := proposed[day]

		if !daily.Enabled {
			conflicts = append(conflicts, model.Conflict{
				Weekday:   day.Label(),
				Window:    bookingWindowText(b),
				BookingID: b.ID,
				Reason:    model.ReasonDayDisabled,
			})
			continue
		}

		start, err := model.ParseClock(b.StartTime)
		if err != nil {
			continue
		}
		end, err := model.ParseClock(b.EndTime)
		if err != nil {
			continue
		}

		if !containedInAny(daily.Ranges, start.Minutes(), end.Minutes()) {
			conflicts = append(conflicts, model.Conflict{
				Weekday:   day.Label(),
				Window:    start.String() + "–" + end.String(),
				BookingID: b.ID,
				Reason:    model.ReasonOutsideAvailability,
			})
		}
	}
	return conflicts
}

// containedInAny reports whether some single range fully contains the
// booking interval. Ranges may be unsorted, overlapping, or inverted
// (start >= end) mid-edit; an inverted range simply contains nothing.
func containedInAny(ranges []model.TimeRange, bookingStart, bookingEnd int) bool {
	for _, r := range ranges {
		if interval.Contains(r.Start.Minutes(), r.End.Minutes(), bookingStart, bookingEnd) {
			return true
		}
	}
	return false
}

func bookingWindowText(b model.Booking) string {
	if b.StartTime == "" && b.EndTime == "" {
		return ""
	}
	return b.StartTime + "–" + b.EndTime
}
