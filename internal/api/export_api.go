package api

import (
	"fmt"
	"net/http"

	"carebook/internal/export"
	"carebook/internal/metrics"
	"carebook/internal/model"
)

// handleExport streams the caregiver's schedule as an .xlsx attachment.
// GET /api/v1/caregivers/{id}/export
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request, caregiverID string) {
	metrics.IncHTTP("export")

	avail, ok, err := s.db.LoadAvailability(r.Context(), caregiverID)
	if err != nil {
		s.log.Error().Err(err).Str("caregiver_id", caregiverID).Msg("load availability for export")
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	if !ok {
		avail = model.DefaultWeeklyAvailability()
	}

	bookings, err := s.directory.GetBookings(r.Context(), caregiverID)
	if err != nil {
		s.log.Error().Err(err).Str("caregiver_id", caregiverID).Msg("fetch bookings for export")
		writeError(w, http.StatusBadGateway, "directory unavailable")
		return
	}

	wb, err := export.BuildScheduleWorkbook(avail, bookings)
	if err != nil {
		s.log.Error().Err(err).Str("caregiver_id", caregiverID).Msg("build workbook")
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	defer wb.Close()

	filename := fmt.Sprintf("schedule_%s.xlsx", caregiverID)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := wb.Save(w); err != nil {
		s.log.Error().Err(err).Str("caregiver_id", caregiverID).Msg("write workbook")
	}
}
