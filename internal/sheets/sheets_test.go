package sheets

import (
	"testing"

	"carebook/internal/model"
)

func TestFilterActiveBookings(t *testing.T) {
	bookings := []model.Booking{
		{ID: "b-1", Status: model.StatusPending},
		{ID: "b-2", Status: model.StatusInProgress},
		{ID: "b-3", Status: model.StatusCancelled},
		{ID: "b-4", Status: model.StatusComplaint},
		{ID: "b-5", Status: model.StatusCompleted},
	}

	active := filterActiveBookings(bookings)

	if len(active) != 3 {
		t.Fatalf("expected 3 active bookings, got %d", len(active))
	}
	for _, b := range active {
		if b.Status == model.StatusCancelled || b.Status == model.StatusComplaint {
			t.Errorf("booking %s should have been filtered", b.ID)
		}
	}
}

func TestBookingRowValues(t *testing.T) {
	b := model.Booking{
		ID:        "bk-1",
		Date:      "2025-06-02",
		StartTime: "09:00",
		EndTime:   "12:00",
		Status:    model.StatusPending,
	}

	row := bookingRowValues("cg-1", b)

	if len(row) != 7 {
		t.Fatalf("expected 7 columns, got %d", len(row))
	}
	if row[0] != "bk-1" || row[1] != "cg-1" || row[2] != "2025-06-02" {
		t.Errorf("unexpected row values: %v", row)
	}
	if row[5] != "pending" {
		t.Errorf("status column = %v", row[5])
	}
}

func TestAvailabilityRows(t *testing.T) {
	rows := availabilityRows("cg-1", model.DefaultWeeklyAvailability())

	// Header plus one row per weekday.
	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(rows))
	}
	if rows[1][1] != "Monday" {
		t.Errorf("first data row should be Monday, got %v", rows[1][1])
	}
	if rows[1][3] != "08:00–17:00" {
		t.Errorf("ranges column = %v", rows[1][3])
	}
}
