package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"carebook/internal/model"
)

func seedBooking(dir *stubDirectory, status model.BookingStatus) model.Booking {
	b := model.Booking{
		ID:        "bk-1",
		Date:      nextDate(model.Monday),
		StartTime: "09:00",
		EndTime:   "17:00",
		Status:    status,
	}
	dir.byID[b.ID] = b
	return b
}

func seedTasks(t *testing.T, srv *HTTPServer, bookingID string, list []model.CareTask) []model.CareTask {
	t.Helper()
	w := doRequest(t, srv, http.MethodPut, "/api/v1/bookings/"+bookingID+"/tasks", PutTasksRequest{Tasks: list})
	if w.Code != http.StatusOK {
		t.Fatalf("put tasks status = %d; body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Tasks []model.CareTask `json:"tasks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode put response: %v", err)
	}
	return resp.Tasks
}

func getTasks(t *testing.T, srv *HTTPServer, bookingID string) TasksResponse {
	t.Helper()
	w := doRequest(t, srv, http.MethodGet, "/api/v1/bookings/"+bookingID+"/tasks", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get tasks status = %d; body %s", w.Code, w.Body.String())
	}
	var resp TasksResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	return resp
}

func TestTaskVisibilityGrouping(t *testing.T) {
	srv, dir := setupTestServer(t)
	b := seedBooking(dir, model.StatusInProgress)

	stored := seedTasks(t, srv, b.ID, []model.CareTask{
		{Tag: model.TagFixed, Name: "morning medication", Date: b.Date, StartTime: "10:00", EndTime: "10:30"},
		{Tag: model.TagFixed, Name: "evening medication", Date: b.Date, StartTime: "17:00", EndTime: "18:00"},
		{Tag: model.TagFlexible, Name: "laundry", Date: b.Date, StartTime: "12:00", EndTime: "14:00"},
		{Tag: model.TagOptional, Name: "read together"},
	})
	if len(stored) != 4 {
		t.Fatalf("stored %d tasks, want 4", len(stored))
	}
	for _, task := range stored {
		if task.ID == "" {
			t.Error("stored task should have been assigned an id")
		}
	}

	resp := getTasks(t, srv, b.ID)
	if resp.Status != model.StatusInProgress {
		t.Errorf("status = %s", resp.Status)
	}
	if resp.Window == nil {
		t.Fatal("window should resolve for a well-formed booking")
	}

	// 17:00–18:00 touches the window end; half-open semantics keep it out.
	if len(resp.Tasks.Fixed) != 1 || resp.Tasks.Fixed[0].Name != "morning medication" {
		t.Errorf("fixed group = %+v", resp.Tasks.Fixed)
	}
	if len(resp.Tasks.Flexible) != 1 {
		t.Errorf("flexible group = %+v", resp.Tasks.Flexible)
	}
	if len(resp.Tasks.Optional) != 1 {
		t.Errorf("optional group = %+v", resp.Tasks.Optional)
	}

	if p := resp.Progress[model.TagFixed]; p.Completed != 0 || p.Total != 1 {
		t.Errorf("fixed progress = %+v", p)
	}
}

func TestTaskVisibilityUnresolvableWindow(t *testing.T) {
	srv, dir := setupTestServer(t)
	dir.byID["bk-broken"] = model.Booking{
		ID:     "bk-broken",
		Date:   "someday",
		Status: model.StatusPending,
	}

	seedTasks(t, srv, "bk-broken", []model.CareTask{
		{Tag: model.TagFixed, Name: "scheduled thing", Date: "2025-06-02", StartTime: "10:00"},
		{Tag: model.TagOptional, Name: "optional thing"},
	})

	resp := getTasks(t, srv, "bk-broken")
	if resp.Window != nil {
		t.Error("window should be absent for an unparseable booking")
	}
	// Optional tasks survive a missing window; scheduled ones do not.
	if len(resp.Tasks.Fixed) != 0 || len(resp.Tasks.Optional) != 1 {
		t.Errorf("groups = %+v", resp.Tasks)
	}
}

func TestToggleTask(t *testing.T) {
	srv, dir := setupTestServer(t)
	b := seedBooking(dir, model.StatusInProgress)

	seedTasks(t, srv, b.ID, []model.CareTask{
		{Tag: model.TagFlexible, Name: "laundry", Date: b.Date, StartTime: "12:00", EndTime: "14:00"},
		{Tag: model.TagOptional, Name: "read together"},
	})

	w := doRequest(t, srv, http.MethodPost, "/api/v1/bookings/"+b.ID+"/tasks/0/toggle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status = %d; body %s", w.Code, w.Body.String())
	}
	var resp ToggleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode toggle response: %v", err)
	}
	if !resp.Changed || !resp.Tasks[0].Completed {
		t.Errorf("toggle response = %+v", resp)
	}

	// Persisted: a fresh read reflects the flip.
	got := getTasks(t, srv, b.ID)
	if !got.Tasks.Flexible[0].Completed {
		t.Error("toggle was not persisted")
	}
	if p := got.Progress[model.TagFlexible]; p.Completed != 1 || p.Total != 1 {
		t.Errorf("flexible progress = %+v", p)
	}

	// Toggling again flips it back off.
	w = doRequest(t, srv, http.MethodPost, "/api/v1/bookings/"+b.ID+"/tasks/0/toggle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second toggle status = %d", w.Code)
	}
	if got := getTasks(t, srv, b.ID); got.Tasks.Flexible[0].Completed {
		t.Error("second toggle should have unchecked the task")
	}
}

func TestToggleRejectedUnlessInProgress(t *testing.T) {
	for _, status := range []model.BookingStatus{
		model.StatusPending,
		model.StatusWaiting,
		model.StatusCompleted,
		model.StatusCancelled,
		model.StatusComplaint,
	} {
		t.Run(string(status), func(t *testing.T) {
			srv, dir := setupTestServer(t)
			b := seedBooking(dir, status)
			seedTasks(t, srv, b.ID, []model.CareTask{
				{Tag: model.TagOptional, Name: "read together"},
			})

			w := doRequest(t, srv, http.MethodPost, "/api/v1/bookings/"+b.ID+"/tasks/0/toggle", nil)
			if w.Code != http.StatusOK {
				t.Fatalf("toggle status = %d; body %s", w.Code, w.Body.String())
			}
			var resp ToggleResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode toggle response: %v", err)
			}
			if resp.Changed || resp.Reason != "not_in_progress" {
				t.Errorf("refused toggle response = %+v", resp)
			}

			if got := getTasks(t, srv, b.ID); got.Tasks.Optional[0].Completed {
				t.Error("refused toggle must not change the task")
			}
		})
	}
}

func TestToggleIndexOutOfRange(t *testing.T) {
	srv, dir := setupTestServer(t)
	b := seedBooking(dir, model.StatusInProgress)
	seedTasks(t, srv, b.ID, []model.CareTask{
		{Tag: model.TagOptional, Name: "read together"},
	})

	for _, index := range []int{-1, 1, 99} {
		w := doRequest(t, srv, http.MethodPost,
			"/api/v1/bookings/"+b.ID+"/tasks/"+strconv.Itoa(index)+"/toggle", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("index %d: status = %d; body %s", index, w.Code, w.Body.String())
		}
		var resp ToggleResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode toggle response: %v", err)
		}
		if resp.Changed || resp.Reason != "index_out_of_range" {
			t.Errorf("index %d: response = %+v", index, resp)
		}
	}
}

func TestPutTasksValidation(t *testing.T) {
	srv, _ := setupTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"invalid JSON", "not json"},
		{"unknown tag", PutTasksRequest{Tasks: []model.CareTask{{Tag: "urgent", Name: "x"}}}},
		{"missing name", PutTasksRequest{Tasks: []model.CareTask{{Tag: model.TagFixed}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, srv, http.MethodPut, "/api/v1/bookings/bk-1/tasks", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestExportSchedule(t *testing.T) {
	srv, dir := setupTestServer(t)
	dir.bookings["cg-1"] = []model.Booking{
		{ID: "bk-1", Date: nextDate(model.Monday), StartTime: "09:00", EndTime: "12:00", Status: model.StatusPending},
	}

	w := doRequest(t, srv, http.MethodGet, "/api/v1/caregivers/cg-1/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("export body is empty")
	}
}
