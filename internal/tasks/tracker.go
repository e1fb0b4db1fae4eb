package tasks

import "carebook/internal/model"

// ToggleCompletion flips the completed flag of the task at index, but only
// while the owning booking is in_progress. In any other status, and for any
// out-of-bounds index, it returns the input unchanged with changed=false.
//
// The guard here is the source of truth. The UI disables the control too,
// but a request arriving with the wrong status must still be rejected
// regardless of what the client rendered.
//
// The returned slice is a copy; the caller's slice is never mutated.
func ToggleCompletion(status model.BookingStatus, list []model.CareTask, index int) ([]model.CareTask, bool) {
	if status != model.StatusInProgress {
		return list, false
	}
	if index < 0 || index >= len(list) {
		return list, false
	}

	out := make([]model.CareTask, len(list))
	copy(out, list)
	out[index].Completed = !out[index].Completed
	return out, true
}
