// Package api exposes the scheduling core over HTTP to the marketplace
// backend: availability snapshots, conflict checks, care-task ingest and
// toggles, and the back-office export.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"carebook/internal/database"
	"carebook/internal/events"
	"carebook/internal/model"
)

// BookingDirectory is the slice of the directory client the API depends on.
type BookingDirectory interface {
	GetBookings(ctx context.Context, caregiverID string) ([]model.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*model.Booking, error)
}

// HTTPServer serves the scheduling API.
type HTTPServer struct {
	db        *database.DB
	directory BookingDirectory
	bus       *events.Bus
	log       *zerolog.Logger
	apiKey    string
	server    *http.Server
}

// NewHTTPServer wires routes and returns a server listening on addr once
// Start is called. An empty apiKey disables authentication (tests, local
// runs).
func NewHTTPServer(addr, apiKey string, db *database.DB, dir BookingDirectory, bus *events.Bus, logger *zerolog.Logger) *HTTPServer {
	s := &HTTPServer{
		db:        db,
		directory: dir,
		bus:       bus,
		log:       logger,
		apiKey:    apiKey,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/caregivers/", s.routeCaregivers)
	mux.HandleFunc("/api/v1/bookings/", s.routeBookings)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.requireAPIKey(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until Shutdown is called.
func (s *HTTPServer) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("API server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routing stack for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get("X-Api-Key") != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// routeCaregivers dispatches /api/v1/caregivers/{id}/... paths.
func (s *HTTPServer) routeCaregivers(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/api/v1/caregivers/")
	if len(parts) < 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	caregiverID := parts[0]

	switch strings.Join(parts[1:], "/") {
	case "availability":
		switch r.Method {
		case http.MethodGet:
			s.handleGetAvailability(w, r, caregiverID)
		case http.MethodPut:
			s.handleSaveAvailability(w, r, caregiverID)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case "availability/check":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
			return
		}
		s.handleCheckAvailability(w, r, caregiverID)
	case "export":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleExport(w, r, caregiverID)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// routeBookings dispatches /api/v1/bookings/{id}/tasks paths.
func (s *HTTPServer) routeBookings(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path, "/api/v1/bookings/")
	if len(parts) < 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	bookingID := parts[0]

	switch {
	case len(parts) == 2 && parts[1] == "tasks":
		switch r.Method {
		case http.MethodGet:
			s.handleGetTasks(w, r, bookingID)
		case http.MethodPut:
			s.handlePutTasks(w, r, bookingID)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(parts) == 4 && parts[1] == "tasks" && parts[3] == "toggle":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
			return
		}
		index, err := strconv.Atoi(parts[2])
		if err != nil {
			writeError(w, http.StatusBadRequest, "task index must be an integer")
			return
		}
		s.handleToggleTask(w, r, bookingID, index)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func splitPath(path, prefix string) []string {
	if !strings.HasPrefix(path, prefix) {
		return nil
	}
	return strings.Split(strings.Trim(strings.TrimPrefix(path, prefix), "/"), "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
