// Package tasks decides which care tasks are in scope for a booking window
// and gates completion toggles on the booking's status.
package tasks

import (
	"carebook/internal/interval"
	"carebook/internal/model"
	"carebook/internal/schedule"
)

// Groups holds the visible tasks bucketed by tag. Order inside each bucket
// follows the caller's original task order.
type Groups struct {
	Fixed    []model.CareTask `json:"fixed"`
	Flexible []model.CareTask `json:"flexible"`
	Optional []model.CareTask `json:"optional"`
}

// Progress is a derived per-bucket completion ratio, recomputed on read.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// VisibleTasks filters tasks against the booking window and groups them.
//
// Optional tasks are always included, even when the window failed to
// resolve (window == nil). Fixed and flexible tasks are included only when
// their own interval overlaps the window; note this is overlap, not the
// containment used for conflicts: display is permissive where commitments
// are strict. Tasks missing a date, or any task when the window is absent,
// are excluded rather than defaulted to visible.
func VisibleTasks(list []model.CareTask, window *schedule.Window) Groups {
	g := Groups{
		Fixed:    make([]model.CareTask, 0),
		Flexible: make([]model.CareTask, 0),
		Optional: make([]model.CareTask, 0),
	}

	for _, t := range list {
		switch t.Tag {
		case model.TagOptional:
			g.Optional = append(g.Optional, t)
		case model.TagFixed:
			if window != nil && taskInWindow(t, *window) {
				g.Fixed = append(g.Fixed, t)
			}
		case model.TagFlexible:
			if window != nil && taskInWindow(t, *window) {
				g.Flexible = append(g.Flexible, t)
			}
		}
	}
	return g
}

// taskInWindow resolves the task's own interval and tests half-open overlap
// with the booking window. A missing end time collapses the interval to its
// start.
func taskInWindow(t model.CareTask, w schedule.Window) bool {
	date, err := model.ParseDate(t.Date)
	if err != nil {
		return false
	}
	start, err := model.ParseClock(t.StartTime)
	if err != nil {
		return false
	}

	end := start
	if t.EndTime != "" {
		parsed, err := model.ParseClock(t.EndTime)
		if err != nil {
			return false
		}
		end = parsed
	}

	return interval.OverlapsTime(start.On(date), end.On(date), w.Start, w.End)
}

// ProgressByTag reports completion per bucket.
func (g Groups) ProgressByTag() map[model.TaskTag]Progress {
	return map[model.TaskTag]Progress{
		model.TagFixed:    progressOf(g.Fixed),
		model.TagFlexible: progressOf(g.Flexible),
		model.TagOptional: progressOf(g.Optional),
	}
}

func progressOf(list []model.CareTask) Progress {
	p := Progress{Total: len(list)}
	for _, t := range list {
		if t.Completed {
			p.Completed++
		}
	}
	return p
}
