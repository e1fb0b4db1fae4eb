package model

// ConflictReason distinguishes the two ways a proposed schedule can clash
// with a committed booking.
type ConflictReason string

const (
	// ReasonDayDisabled: the weekday is being turned off while a booking
	// still exists on it.
	ReasonDayDisabled ConflictReason = "day_disabled"
	// ReasonOutsideAvailability: no single proposed range fully contains
	// the booking's time window.
	ReasonOutsideAvailability ConflictReason = "outside_availability"
)

// Conflict is a report value produced by conflict detection. It is shown to
// the caregiver as a blocking banner and is never persisted.
type Conflict struct {
	Weekday   string         `json:"weekday"` // display label, e.g. "Monday"
	Window    string         `json:"window"`  // booking's time window, e.g. "18:00–20:00"
	BookingID string         `json:"booking_id"`
	Reason    ConflictReason `json:"reason"`
}
