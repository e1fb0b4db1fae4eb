// Package schedule implements the caregiver scheduling core: the recurring
// weekly availability template, booking window resolution, and conflict
// detection between a proposed template and committed bookings.
package schedule

import (
	"context"

	"carebook/internal/model"
)

// RangeBound names one endpoint of a time range for targeted edits.
type RangeBound string

const (
	BoundStart RangeBound = "start"
	BoundEnd   RangeBound = "end"
)

// Snapshot operations return a fresh deep copy; the input snapshot is never
// mutated. The UI may produce transiently invalid ranges (start >= end)
// mid-edit, so no endpoint validation happens here.

// ToggleDay flips the enabled flag of one weekday. Ranges are untouched so
// re-enabling the day restores them.
func ToggleDay(w model.WeeklyAvailability, day model.Weekday) model.WeeklyAvailability {
	out := w.Clone()
	daily := out[day]
	daily.Enabled = !daily.Enabled
	out[day] = daily
	return out
}

// AddRange appends a range to the weekday. No sorting, no merging.
func AddRange(w model.WeeklyAvailability, day model.Weekday, r model.TimeRange) model.WeeklyAvailability {
	out := w.Clone()
	daily := out[day]
	daily.Ranges = append(daily.Ranges, r)
	out[day] = daily
	return out
}

// RemoveRange deletes the range at index. A stale index from the UI is a
// no-op, not an error.
func RemoveRange(w model.WeeklyAvailability, day model.Weekday, index int) model.WeeklyAvailability {
	out := w.Clone()
	daily := out[day]
	if index < 0 || index >= len(daily.Ranges) {
		return out
	}
	daily.Ranges = append(daily.Ranges[:index], daily.Ranges[index+1:]...)
	out[day] = daily
	return out
}

// UpdateRange replaces one endpoint of the range at index. Out-of-bounds
// indexes are a no-op.
func UpdateRange(w model.WeeklyAvailability, day model.Weekday, index int, bound RangeBound, t model.TimeOfDay) model.WeeklyAvailability {
	out := w.Clone()
	daily := out[day]
	if index < 0 || index >= len(daily.Ranges) {
		return out
	}
	switch bound {
	case BoundStart:
		daily.Ranges[index].Start = t
	case BoundEnd:
		daily.Ranges[index].End = t
	}
	out[day] = daily
	return out
}

// ResetToDefault returns the canonical template: every day enabled with one
// 08:00–17:00 range.
func ResetToDefault() model.WeeklyAvailability {
	return model.DefaultWeeklyAvailability()
}

// Repository persists the weekly availability snapshot and the
// first-time-setup flag for a caregiver. Implemented by the database
// package; tests supply in-memory stubs.
type Repository interface {
	// LoadAvailability returns the stored snapshot, or ok=false when the
	// caregiver has never saved one.
	LoadAvailability(ctx context.Context, caregiverID string) (model.WeeklyAvailability, bool, error)

	// SaveAvailability stores the whole snapshot, replacing any previous one.
	SaveAvailability(ctx context.Context, caregiverID string, w model.WeeklyAvailability) error

	// SetupComplete reports whether the caregiver has finished initial setup.
	SetupComplete(ctx context.Context, caregiverID string) (bool, error)

	// MarkSetupComplete records that initial setup has happened.
	MarkSetupComplete(ctx context.Context, caregiverID string) error
}
