package lta_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"navigo_ranking/internal/adapters/lta"
	"navigo_ranking/internal/domain"
)

const stopsBody = `{"value":[
	{"BusStopCode":"01012","Description":"Hotel Grand Pacific","Latitude":1.29684825487647,"Longitude":103.85253591654006},
	{"BusStopCode":"01013","Description":"St. Joseph's Ch"},
	{"BusStopCode":"01019","Description":"","Latitude":1.29770970610083,"Longitude":103.8532247463225}
]}`

func TestBusStops_ParsesAndSkipsMissingCoordinates(t *testing.T) {
	var gotKey atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.Header.Get("AccountKey"))
		if r.URL.Path != "/BusStops" {
			w.WriteHeader(404)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(stopsBody))
	}))
	defer ts.Close()

	cl := lta.New(ts.URL, "test-key", 2*time.Second)
	stops, err := cl.BusStops(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("len = %d, want 2 (record without coordinates skipped)", len(stops))
	}
	if s := stops[0]; s.Name != "Hotel Grand Pacific" || s.Type != domain.CategoryBus {
		t.Fatalf("first stop: %+v", s)
	}
	// empty Description falls back to an indexed name
	if stops[1].Name != "BusStop_3" {
		t.Fatalf("fallback name = %q, want BusStop_3", stops[1].Name)
	}
	if gotKey.Load() != "test-key" {
		t.Fatalf("AccountKey header = %v", gotKey.Load())
	}
}

func TestBusStops_Non200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	cl := lta.New(ts.URL, "", time.Second)
	if _, err := cl.BusStops(context.Background()); err == nil {
		t.Fatalf("expected error for 401")
	}
}

func TestBusStops_RetriesTransient5xx(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(500)
			return
		}
		_, _ = w.Write([]byte(stopsBody))
	}))
	defer ts.Close()

	cl := lta.New(ts.URL, "k", 2*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stops, err := cl.BusStops(ctx)
	if err != nil {
		t.Fatalf("err after retry: %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("len = %d, want 2", len(stops))
	}
	if atomic.LoadInt32(&hits) != 2 {
		t.Fatalf("hits = %d, want 2", hits)
	}
}

func TestBusStops_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value": [`))
	}))
	defer ts.Close()

	cl := lta.New(ts.URL, "k", time.Second)
	if _, err := cl.BusStops(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}
