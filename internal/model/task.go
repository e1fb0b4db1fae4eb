package model

// TaskTag classifies a care task's scheduling contract.
type TaskTag string

const (
	// TagFixed tasks must happen at an exact time inside the booking.
	TagFixed TaskTag = "fixed"
	// TagFlexible tasks must happen sometime within the booking window.
	TagFlexible TaskTag = "flexible"
	// TagOptional tasks are best-effort and carry no binding schedule.
	TagOptional TaskTag = "optional"
)

// Valid reports whether the tag is one of the three known kinds.
func (t TaskTag) Valid() bool {
	switch t {
	case TagFixed, TagFlexible, TagOptional:
		return true
	default:
		return false
	}
}

// CareTask is a single task attached to a booking. Tasks are created by the
// marketplace when the order is placed; Completed is the only field this
// service ever mutates, and only while the booking is in_progress.
//
// Date/StartTime/EndTime are meaningful for fixed and flexible tasks and
// empty for optional ones. EndTime may be empty even on scheduled tasks,
// in which case the task interval collapses to its start.
type CareTask struct {
	ID          string  `json:"id"`
	Tag         TaskTag `json:"tag"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date,omitempty"`       // "YYYY-MM-DD"
	StartTime   string  `json:"start_time,omitempty"` // "HH:mm"
	EndTime     string  `json:"end_time,omitempty"`   // "HH:mm"
	Completed   bool    `json:"completed"`
}
