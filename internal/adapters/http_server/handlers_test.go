package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "navigo_ranking/internal/adapters/http_server"
	"navigo_ranking/internal/app"
	"navigo_ranking/internal/domain"
)

// ---- fakes ----

type fakeDatasets struct {
	hotels     []domain.Hotel
	facilities map[domain.Category][]domain.Facility
}

func (f *fakeDatasets) Hotels(ctx context.Context) ([]domain.Hotel, error) {
	out := make([]domain.Hotel, len(f.hotels))
	copy(out, f.hotels)
	return out, nil
}

func (f *fakeDatasets) Facilities(ctx context.Context, cat domain.Category) ([]domain.Facility, error) {
	return f.facilities[cat], nil
}

type fakeFeed struct{}

func (fakeFeed) BusStops(ctx context.Context) ([]domain.Facility, error) { return nil, nil }

func newTestServer(ds *fakeDatasets) *httptest.Server {
	dir := app.NewFacilityDirectory(ds, fakeFeed{}, nil, time.Hour, 2)
	svc := app.NewRankingService(ds, dir, app.NewScorer(nil))
	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{R: svc})
	return httptest.NewServer(srv.Mux())
}

type hotelJSON struct {
	Name         string             `json:"name"`
	OverallScore float64            `json:"overallScore"`
	Price        float64            `json:"price"`
	Lat          float64            `json:"latitude"`
	Lon          float64            `json:"longitude"`
	FilterScores map[string]float64 `json:"filterScores"`
}

func getRanking(t *testing.T, url string) (*http.Response, []hotelJSON) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	t.Cleanup(func() { _ = res.Body.Close() })
	var body []hotelJSON
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return res, body
}

// ---- tests ----

func TestRanking_DefaultSortOverall(t *testing.T) {
	ds := &fakeDatasets{
		hotels: []domain.Hotel{
			{Name: "Far", Price: 120, Lat: 1.3035, Lon: 103.8607},
			{Name: "Near", Price: 350, Lat: 1.2835, Lon: 103.8607},
		},
		facilities: map[domain.Category][]domain.Facility{
			domain.CategoryMRT: {{Name: "Exit A", Type: domain.CategoryMRT, Lat: 1.2835, Lon: 103.8607}},
		},
	}
	ts := newTestServer(ds)
	defer ts.Close()

	res, body := getRanking(t, ts.URL+"/ranking")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	if len(body) != 2 || body[0].Name != "Near" {
		t.Fatalf("unexpected order: %+v", body)
	}
	if body[0].FilterScores["mrt"] != 10.0 {
		t.Fatalf("mrt score = %f, want 10", body[0].FilterScores["mrt"])
	}
	// every known category appears, absent ones at 0
	for _, cat := range domain.Categories {
		if _, ok := body[0].FilterScores[string(cat)]; !ok {
			t.Fatalf("missing category %s in %+v", cat, body[0].FilterScores)
		}
	}
}

func TestRanking_PriceSorts(t *testing.T) {
	ds := &fakeDatasets{
		hotels: []domain.Hotel{
			{Name: "A", Price: 300, Lat: 1.28, Lon: 103.86},
			{Name: "B", Price: 100, Lat: 1.28, Lon: 103.86},
			{Name: "C", Price: 200, Lat: 1.28, Lon: 103.86},
		},
		facilities: map[domain.Category][]domain.Facility{},
	}
	ts := newTestServer(ds)
	defer ts.Close()

	_, low := getRanking(t, ts.URL+"/ranking?sortType=price_low")
	if low[0].Name != "B" || low[2].Name != "A" {
		t.Fatalf("price_low order: %+v", low)
	}
	_, high := getRanking(t, ts.URL+"/ranking?sortType=price_high")
	if high[0].Name != "A" || high[2].Name != "B" {
		t.Fatalf("price_high order: %+v", high)
	}
}

func TestRanking_UnrecognizedSortFallsBackToOverall(t *testing.T) {
	ds := &fakeDatasets{
		hotels:     []domain.Hotel{{Name: "Only", Price: 150, Lat: 1.28, Lon: 103.86}},
		facilities: map[domain.Category][]domain.Facility{},
	}
	ts := newTestServer(ds)
	defer ts.Close()

	res, body := getRanking(t, ts.URL+"/ranking?sortType=nonsense")
	if res.StatusCode != http.StatusOK || len(body) != 1 {
		t.Fatalf("status %d body %+v", res.StatusCode, body)
	}
}

func TestRanking_EmptyCatalogIsEmptyArray(t *testing.T) {
	ds := &fakeDatasets{facilities: map[domain.Category][]domain.Facility{}}
	ts := newTestServer(ds)
	defer ts.Close()

	res, body := getRanking(t, ts.URL+"/ranking")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	if body == nil || len(body) != 0 {
		t.Fatalf("want empty JSON array, got %+v", body)
	}
}

func TestRanking_CORSOpenToAllOrigins(t *testing.T) {
	ds := &fakeDatasets{facilities: map[domain.Category][]domain.Facility{}}
	ts := newTestServer(ds)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/ranking", nil)
	req.Header.Set("Origin", "http://example.com")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestHealthz(t *testing.T) {
	ds := &fakeDatasets{facilities: map[domain.Category][]domain.Facility{}}
	ts := newTestServer(ds)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
}
