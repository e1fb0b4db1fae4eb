// Package directory talks to the user-directory service, the system of
// record for bookings and their statuses. Everything read here is treated
// as already-resolved input by the scheduling core.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"carebook/internal/model"
)

// Client is a simple HTTP client for the directory's booking APIs.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient constructs a client with baseURL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UseRedisCache configures optional Redis caching for GET endpoints.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// GetBookings fetches the caregiver's non-cancelled bookings. The conflict
// detector itself stays status-agnostic; cancelled records are filtered
// here, at the system boundary.
func (c *Client) GetBookings(ctx context.Context, caregiverID string) ([]model.Booking, error) {
	endpoint := fmt.Sprintf("%s/api/v1/caregivers/%s/bookings", c.baseURL, url.PathEscape(caregiverID))
	cacheKey := "bookings:" + caregiverID

	var wrap struct {
		Bookings []model.Booking `json:"bookings"`
	}
	if c.readCache(ctx, cacheKey, &wrap) {
		return filterCancelled(wrap.Bookings), nil
	}

	if err := c.doGet(ctx, endpoint, &wrap); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, wrap)
	return filterCancelled(wrap.Bookings), nil
}

// GetBooking fetches a single booking by id (uncached: status freshness
// matters for the completion guard).
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bookings/%s", c.baseURL, url.PathEscape(bookingID))

	var b model.Booking
	if err := c.doGet(ctx, endpoint, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func filterCancelled(list []model.Booking) []model.Booking {
	out := make([]model.Booking, 0, len(list))
	for _, b := range list {
		if b.Status == model.StatusCancelled {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, v any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("directory returned %d: %s", resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
