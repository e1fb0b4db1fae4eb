// Package sheets mirrors a caregiver's schedule into a Google Sheet the
// marketplace operations team works from.
package sheets

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"carebook/internal/model"
)

// Service pushes availability and booking rows to a spreadsheet.
type Service struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *zerolog.Logger
}

// NewService builds a Sheets client from a service-account credentials file.
func NewService(ctx context.Context, credentialsFile, spreadsheetID string, logger *zerolog.Logger) (*Service, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Service{svc: svc, spreadsheetID: spreadsheetID, logger: logger}, nil
}

// SyncSchedule replaces the Availability and Bookings ranges with current
// data. Cancelled and complaint bookings are left out of the export.
func (s *Service) SyncSchedule(ctx context.Context, caregiverID string, avail model.WeeklyAvailability, bookings []model.Booking) error {
	availRows := availabilityRows(caregiverID, avail)
	if err := s.replaceSheet(ctx, "Availability", availRows); err != nil {
		return fmt.Errorf("sync availability: %w", err)
	}

	bookingRows := [][]interface{}{
		{"Booking ID", "Caregiver", "Date", "Start", "End", "Status", "Synced At"},
	}
	for _, b := range filterActiveBookings(bookings) {
		bookingRows = append(bookingRows, bookingRowValues(caregiverID, b))
	}
	if err := s.replaceSheet(ctx, "Bookings", bookingRows); err != nil {
		return fmt.Errorf("sync bookings: %w", err)
	}

	s.logger.Info().
		Str("caregiver_id", caregiverID).
		Int("bookings", len(bookingRows)-1).
		Msg("schedule synced to sheet")
	return nil
}

func (s *Service) replaceSheet(ctx context.Context, sheetName string, rows [][]interface{}) error {
	if _, err := s.svc.Spreadsheets.Values.
		Clear(s.spreadsheetID, sheetName, &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return err
	}

	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, sheetName+"!A1", &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	return err
}

func availabilityRows(caregiverID string, avail model.WeeklyAvailability) [][]interface{} {
	rows := [][]interface{}{
		{"Caregiver", "Day", "Enabled", "Ranges"},
	}
	for _, day := range model.Weekdays {
		daily := avail[day]
		ranges := ""
		for i, r := range daily.Ranges {
			if i > 0 {
				ranges += ", "
			}
			ranges += r.Start.String() + "–" + r.End.String()
		}
		rows = append(rows, []interface{}{caregiverID, day.Label(), daily.Enabled, ranges})
	}
	return rows
}

// filterActiveBookings drops bookings the operations sheet should not show.
func filterActiveBookings(bookings []model.Booking) []model.Booking {
	active := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == model.StatusCancelled || b.Status == model.StatusComplaint {
			continue
		}
		active = append(active, b)
	}
	return active
}

func bookingRowValues(caregiverID string, b model.Booking) []interface{} {
	return []interface{}{
		b.ID,
		caregiverID,
		b.Date,
		b.StartTime,
		b.EndTime,
		string(b.Status),
		time.Now().Format(time.RFC3339),
	}
}
