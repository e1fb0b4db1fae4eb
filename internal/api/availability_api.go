package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"carebook/internal/events"
	"carebook/internal/metrics"
	"carebook/internal/model"
	"carebook/internal/schedule"
)

// AvailabilityResponse is the response for GET /api/v1/caregivers/{id}/availability.
type AvailabilityResponse struct {
	CaregiverID   string                   `json:"caregiver_id"`
	SetupComplete bool                     `json:"setup_complete"`
	Availability  model.WeeklyAvailability `json:"availability"`
}

// SaveAvailabilityRequest is the body for PUT .../availability and
// POST .../availability/check.
type SaveAvailabilityRequest struct {
	Availability model.WeeklyAvailability `json:"availability"`
}

// ConflictCheckResponse reports detected conflicts. OK is true when the
// proposed schedule can be saved as-is.
type ConflictCheckResponse struct {
	OK        bool             `json:"ok"`
	Conflicts []model.Conflict `json:"conflicts"`
}

// SaveAvailabilityResponse is returned on a successful save.
type SaveAvailabilityResponse struct {
	Mode          string `json:"mode"` // "initial_setup" or "update"
	SetupComplete bool   `json:"setup_complete"`
}

// handleGetAvailability returns the stored snapshot, or the default weekly
// template when the caregiver never saved one.
// GET /api/v1/caregivers/{id}/availability
func (s *HTTPServer) handleGetAvailability(w http.ResponseWriter, r *http.Request, caregiverID string) {
	metrics.IncHTTP("get_availability")

	avail, ok, err := s.db.LoadAvailability(r.Context(), caregiverID)
	if err != nil {
		s.log.Error().Err(err).Str("caregiver_id", caregiverID).Msg("load availability")
		writeError(w, http.StatusInternalServerError, "failed to load availability")
		return
	}
	if !ok {
		avail = model.DefaultWeeklyAvailability()
	}

	setupComplete, err := s.db.SetupComplete(r.Context(), caregiverID)
	if err != nil {
		s.log.Error().Err(err).Str("caregiver_id", caregiverID).Msg("load setup flag")
		writeError(w, http.StatusInternalServerError, "failed to load availability")
		return
	}

	writeJSON(w, http.StatusOK, AvailabilityResponse{
		CaregiverID:   caregiverID,
		SetupComplete: setupComplete,
		Availability:  avail,
	})
}

// handleCheckAvailability dry-runs conflict detection against the proposed
// schedule without saving anything.
// POST /api/v1/caregivers/{id}/availability/check
func (s *HTTPServer) handleCheckAvailability(w http.ResponseWriter, r *http.Request, caregiverID string) {
	metrics.IncHTTP("check_availability")

	req, ok := s.decodeAvailability(w, r)
	if !ok {
		return
	}

	conflicts, err := s.detectConflicts(r, caregiverID, req.Availability)
	if err != nil {
		writeError(w, http.StatusBadGateway, "directory unavailable")
		return
	}

	writeJSON(w, http.StatusOK, ConflictCheckResponse{
		OK:        len(conflicts) == 0,
		Conflicts: conflicts,
	})
}

// handleSaveAvailability persists the proposed schedule unless it conflicts
// with a committed booking. Conflicts block the save entirely; there is no
// partial write.
// PUT /api/v1/caregivers/{id}/availability
func (s *HTTPServer) handleSaveAvailability(w http.ResponseWriter, r *http.Request, caregiverID string) {
	metrics.IncHTTP("save_availability")

	req, ok := s.decodeAvailability(w, r)
	if !ok {
		return
	}

	conflicts, err := s.detectConflicts(r, caregiverID, req.Availability)
	if err != nil {
		writeError(w, http.StatusBadGateway, "directory unavailable")
		return
	}
	if len(conflicts) > 0 {
		metrics.IncSaveBlocked()
		writeJSON(w, http.StatusConflict, ConflictCheckResponse{
			OK:        false,
			Conflicts: conflicts,
		})
		return
	}

	wasSetup, err := s.db.SetupComplete(r.Context(), caregiverID)
	if err != nil {
		s.log.Error().Err(err).Str("caregiver_id", caregiverID).Msg("load setup flag")
		writeError(w, http.StatusInternalServerError, "failed to save availability")
		return
	}

	if err := s.db.SaveAvailability(r.Context(), caregiverID, req.Availability); err != nil {
		s.log.Error().Err(err).Str("caregiver_id", caregiverID).Msg("save availability")
		writeError(w, http.StatusInternalServerError, "failed to save availability")
		return
	}

	mode := "update"
	if !wasSetup {
		mode = "initial_setup"
		if err := s.db.MarkSetupComplete(r.Context(), caregiverID); err != nil {
			s.log.Error().Err(err).Str("caregiver_id", caregiverID).Msg("mark setup complete")
			writeError(w, http.StatusInternalServerError, "failed to save availability")
			return
		}
	}

	metrics.IncAvailabilitySaved(mode)
	s.publish(events.TypeAvailabilitySaved, events.AvailabilitySaved{
		CaregiverID: caregiverID,
		Mode:        mode,
	})

	s.log.Info().
		Str("caregiver_id", caregiverID).
		Str("mode", mode).
		Msg("availability saved")

	writeJSON(w, http.StatusOK, SaveAvailabilityResponse{
		Mode:          mode,
		SetupComplete: true,
	})
}

func (s *HTTPServer) decodeAvailability(w http.ResponseWriter, r *http.Request) (SaveAvailabilityRequest, bool) {
	var req SaveAvailabilityRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	if err := validateAvailability(req.Availability); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	return req, true
}

// detectConflicts fetches the caregiver's committed bookings and runs the
// proposed schedule against them.
func (s *HTTPServer) detectConflicts(r *http.Request, caregiverID string, avail model.WeeklyAvailability) ([]model.Conflict, error) {
	bookings, err := s.directory.GetBookings(r.Context(), caregiverID)
	if err != nil {
		s.log.Error().Err(err).Str("caregiver_id", caregiverID).Msg("fetch bookings from directory")
		return nil, err
	}

	conflicts := schedule.DetectConflicts(avail, bookings, time.Now())
	metrics.IncConflictCheck(len(conflicts))
	return conflicts, nil
}

// validateAvailability requires a full seven-day snapshot with well-formed,
// forward ranges. Partial snapshots are rejected rather than merged.
func validateAvailability(avail model.WeeklyAvailability) error {
	if len(avail) == 0 {
		return fmt.Errorf("availability is required")
	}

	for day, daily := range avail {
		if !day.Valid() {
			return fmt.Errorf("unknown weekday %q", day)
		}
		for _, rng := range daily.Ranges {
			if !rng.Start.Before(rng.End) {
				return fmt.Errorf("%s: range %s–%s must run forward", day.Label(), rng.Start, rng.End)
			}
		}
	}

	for _, day := range model.Weekdays {
		if _, ok := avail[day]; !ok {
			return fmt.Errorf("availability must cover all seven days; %s is missing", day.Label())
		}
	}
	return nil
}

func (s *HTTPServer) publish(eventType string, payload any) {
	if s.bus == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	s.bus.Publish(events.Event{Type: eventType, Payload: data})
}
