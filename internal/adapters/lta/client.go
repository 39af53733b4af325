// internal/adapters/lta/client.go
package lta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"navigo_ranking/internal/adapters/observability"
	"navigo_ranking/internal/domain"
)

// Client fetches bus stop records from the LTA DataMall OData service.
// DataMall authenticates with an AccountKey header; an empty key is allowed
// (the request is still issued and the caller degrades on rejection).
type Client struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base, key string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: base,
		key:  key,
		hc:   &http.Client{Timeout: timeout},
		rl:   rate.NewLimiter(rate.Limit(2), 2),
	}
}

type busStopsPayload struct {
	Value []struct {
		Latitude    *float64 `json:"Latitude"`
		Longitude   *float64 `json:"Longitude"`
		Description string   `json:"Description"`
	} `json:"value"`
}

// BusStops issues one GET against /BusStops and maps stop records to
// facilities. Records without coordinates are skipped. A transient 5xx is
// retried once; any other failure is returned as-is for the caller to
// degrade on.
func (c *Client) BusStops(ctx context.Context) ([]domain.Facility, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if err := c.rl.Wait(ctx); err != nil {
			return nil, err
		}
		payload, retryable, err := c.fetch(ctx)
		if err == nil {
			return mapStops(payload), nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		if !sleepCtx(ctx, 500*time.Millisecond) {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context) (busStopsPayload, bool, error) {
	var payload busStopsPayload
	url := c.base + "/BusStops"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return payload, false, err
	}
	req.Header.Set("AccountKey", c.key)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("lta", "BusStops", 0, time.Since(start))
		if ctx.Err() != nil {
			return payload, false, ctx.Err()
		}
		return payload, true, err // network errors are worth one retry
	}
	defer resp.Body.Close()
	observability.ObserveExternal("lta", "BusStops", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500
		return payload, retryable, fmt.Errorf("lta: bus stops status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return payload, false, fmt.Errorf("lta: decode bus stops: %w", err)
	}
	return payload, false, nil
}

func mapStops(payload busStopsPayload) []domain.Facility {
	stops := make([]domain.Facility, 0, len(payload.Value))
	for i, rec := range payload.Value {
		if rec.Latitude == nil || rec.Longitude == nil {
			continue
		}
		name := rec.Description
		if name == "" {
			name = fmt.Sprintf("BusStop_%d", i+1)
		}
		stops = append(stops, domain.Facility{
			Name: name,
			Type: domain.CategoryBus,
			Lat:  *rec.Latitude,
			Lon:  *rec.Longitude,
		})
	}
	return stops
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
