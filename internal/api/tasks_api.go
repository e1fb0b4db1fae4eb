package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"carebook/internal/database"
	"carebook/internal/events"
	"carebook/internal/metrics"
	"carebook/internal/model"
	"carebook/internal/schedule"
	"carebook/internal/tasks"
)

// PutTasksRequest replaces the booking's task list wholesale. The
// marketplace owns task definitions; this service only stores and toggles
// them.
type PutTasksRequest struct {
	Tasks []model.CareTask `json:"tasks"`
}

// TaskWindow is the resolved booking window in the task list response.
type TaskWindow struct {
	Start string `json:"start"` // RFC 3339
	End   string `json:"end"`
}

// TasksResponse is the response for GET /api/v1/bookings/{id}/tasks.
type TasksResponse struct {
	BookingID string                           `json:"booking_id"`
	Status    model.BookingStatus              `json:"status"`
	Window    *TaskWindow                      `json:"window,omitempty"`
	Tasks     tasks.Groups                     `json:"tasks"`
	Progress  map[model.TaskTag]tasks.Progress `json:"progress"`
}

// ToggleResponse is the response for POST /api/v1/bookings/{id}/tasks/{index}/toggle.
// A refused toggle is still a 200: the guard and stale indexes are expected
// states, not errors. Reason says why nothing changed.
type ToggleResponse struct {
	Changed bool             `json:"changed"`
	Reason  string           `json:"reason,omitempty"` // "not_in_progress" or "index_out_of_range"
	Tasks   []model.CareTask `json:"tasks"`
}

// handlePutTasks stores the task list sent by the marketplace, replacing
// whatever was there before.
// PUT /api/v1/bookings/{id}/tasks
func (s *HTTPServer) handlePutTasks(w http.ResponseWriter, r *http.Request, bookingID string) {
	metrics.IncHTTP("put_tasks")

	var req PutTasksRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	for i, t := range req.Tasks {
		if !t.Tag.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("task %d: unknown tag %q", i, t.Tag))
			return
		}
		if t.Name == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("task %d: name is required", i))
			return
		}
	}

	stored, err := s.db.ReplaceTasks(r.Context(), bookingID, req.Tasks)
	if err != nil {
		s.log.Error().Err(err).Str("booking_id", bookingID).Msg("replace tasks")
		writeError(w, http.StatusInternalServerError, "failed to store tasks")
		return
	}

	s.log.Info().
		Str("booking_id", bookingID).
		Int("count", len(stored)).
		Msg("task list replaced")

	writeJSON(w, http.StatusOK, map[string]any{"tasks": stored})
}

// handleGetTasks resolves the booking's window and returns the visible
// tasks grouped by tag with per-group progress. An unresolvable window is
// not an error: optional tasks still show, scheduled ones are hidden.
// GET /api/v1/bookings/{id}/tasks
func (s *HTTPServer) handleGetTasks(w http.ResponseWriter, r *http.Request, bookingID string) {
	metrics.IncHTTP("get_tasks")

	booking, err := s.directory.GetBooking(r.Context(), bookingID)
	if err != nil {
		s.log.Error().Err(err).Str("booking_id", bookingID).Msg("fetch booking from directory")
		writeError(w, http.StatusBadGateway, "directory unavailable")
		return
	}

	list, err := s.db.GetTasks(r.Context(), bookingID)
	if err != nil {
		s.log.Error().Err(err).Str("booking_id", bookingID).Msg("load tasks")
		writeError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	var windowPtr *schedule.Window
	var respWindow *TaskWindow
	if window, ok := schedule.ResolveBookingWindow(*booking); ok {
		windowPtr = &window
		respWindow = &TaskWindow{
			Start: window.Start.Format("2006-01-02T15:04:05Z07:00"),
			End:   window.End.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	groups := tasks.VisibleTasks(list, windowPtr)
	writeJSON(w, http.StatusOK, TasksResponse{
		BookingID: bookingID,
		Status:    booking.Status,
		Window:    respWindow,
		Tasks:     groups,
		Progress:  groups.ProgressByTag(),
	})
}

// handleToggleTask flips one task's completion. The toggle is allowed only
// while the booking is in_progress; the status is re-read from the
// directory on every call so a stale client cannot mutate a finished
// booking.
// POST /api/v1/bookings/{id}/tasks/{index}/toggle
func (s *HTTPServer) handleToggleTask(w http.ResponseWriter, r *http.Request, bookingID string, index int) {
	metrics.IncHTTP("toggle_task")

	booking, err := s.directory.GetBooking(r.Context(), bookingID)
	if err != nil {
		s.log.Error().Err(err).Str("booking_id", bookingID).Msg("fetch booking from directory")
		writeError(w, http.StatusBadGateway, "directory unavailable")
		return
	}

	list, err := s.db.GetTasks(r.Context(), bookingID)
	if err != nil {
		s.log.Error().Err(err).Str("booking_id", bookingID).Msg("load tasks")
		writeError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	updated, changed := tasks.ToggleCompletion(booking.Status, list, index)
	if !changed {
		metrics.IncTaskToggle("rejected")
		reason := "index_out_of_range"
		if booking.Status != model.StatusInProgress {
			reason = "not_in_progress"
		}
		s.log.Debug().
			Str("booking_id", bookingID).
			Int("index", index).
			Str("reason", reason).
			Msg("task toggle refused")
		writeJSON(w, http.StatusOK, ToggleResponse{Changed: false, Reason: reason, Tasks: list})
		return
	}

	toggled := updated[index]
	if err := s.db.SetTaskCompleted(r.Context(), toggled.ID, toggled.Completed); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		s.log.Error().Err(err).Str("task_id", toggled.ID).Msg("persist task toggle")
		writeError(w, http.StatusInternalServerError, "failed to store toggle")
		return
	}

	metrics.IncTaskToggle("accepted")
	s.publish(events.TypeTaskToggled, events.TaskToggled{
		BookingID: bookingID,
		TaskID:    toggled.ID,
		Completed: toggled.Completed,
	})

	s.log.Info().
		Str("booking_id", bookingID).
		Str("task_id", toggled.ID).
		Bool("completed", toggled.Completed).
		Msg("task toggled")

	writeJSON(w, http.StatusOK, ToggleResponse{Changed: true, Tasks: updated})
}
