package model

// BookingStatus is owned by the user-directory service; this service only
// reads it. The in_progress value gates task completion toggles.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusWaiting    BookingStatus = "waiting"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusComplaint  BookingStatus = "complaint"
)

// IsTerminal reports whether the booking can no longer change from this
// service's point of view.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusComplaint:
		return true
	default:
		return false
	}
}

// Booking is a committed care appointment as delivered by the directory
// service. Date and clock fields stay raw strings: a record that fails to
// parse is skipped by consumers, never an error that halts processing.
type Booking struct {
	ID        string        `json:"id"`
	Date      string        `json:"date"`       // "YYYY-MM-DD"
	StartTime string        `json:"start_time"` // "HH:mm"
	EndTime   string        `json:"end_time"`   // "HH:mm"
	Status    BookingStatus `json:"status"`
	// ServiceTime is the optional composite form
	// "<YYYY-MM-DD> <HH:mm> – <YYYY-MM-DD> <HH:mm>" used by the richer
	// task-window path. Empty when the directory sends split fields only.
	ServiceTime string `json:"service_time,omitempty"`
}
