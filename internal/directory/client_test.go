package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookingsJSON = `{
	"bookings": [
		{"id": "bk-1", "date": "2025-06-02", "start_time": "09:00", "end_time": "12:00", "status": "pending"},
		{"id": "bk-2", "date": "2025-06-03", "start_time": "10:00", "end_time": "11:00", "status": "cancelled"},
		{"id": "bk-3", "date": "2025-06-04", "start_time": "08:00", "end_time": "10:00", "status": "in_progress"}
	]
}`

func TestGetBookingsFiltersCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/caregivers/cg-1/bookings", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		w.Write([]byte(bookingsJSON))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	bookings, err := client.GetBookings(context.Background(), "cg-1")
	require.NoError(t, err)

	require.Len(t, bookings, 2)
	assert.Equal(t, "bk-1", bookings[0].ID)
	assert.Equal(t, "bk-3", bookings[1].ID)
}

func TestGetBookingsUsesRedisCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(bookingsJSON))
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	client := NewClient(srv.URL, "")
	client.UseRedisCache(rdb, time.Minute)

	_, err := client.GetBookings(context.Background(), "cg-1")
	require.NoError(t, err)
	_, err = client.GetBookings(context.Background(), "cg-1")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load(), "second read served from cache")

	// Expired cache falls through to the directory again.
	mr.FastForward(2 * time.Minute)
	_, err = client.GetBookings(context.Background(), "cg-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestGetBookingUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.GetBooking(context.Background(), "bk-1")
	assert.Error(t, err)
}

func TestGetBooking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bookings/bk-9", r.URL.Path)
		w.Write([]byte(`{"id": "bk-9", "date": "2025-06-02", "start_time": "09:00", "end_time": "12:00", "status": "in_progress"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	b, err := client.GetBooking(context.Background(), "bk-9")
	require.NoError(t, err)
	assert.Equal(t, "bk-9", b.ID)
	assert.Equal(t, "in_progress", string(b.Status))
}
