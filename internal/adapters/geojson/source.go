// internal/adapters/geojson/source.go
package geojson

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"navigo_ranking/internal/domain"
)

// Dataset file names, one point-feature collection per category.
const (
	fileHotels = "Hotels.geojson"
)

var categoryFiles = map[domain.Category]string{
	domain.CategoryHawker:     "HawkerCentresGEOJSON.geojson",
	domain.CategoryMRT:        "LTAMRTStationExitGEOJSON.geojson",
	domain.CategoryAttraction: "TouristAttractions.geojson",
	domain.CategoryMoney:      "LocationsofMoneyChangerGEOJSON.geojson",
	domain.CategoryWifi:       "WirelessHotSpotsGEOJSON.geojson",
}

// Candidate property keys, tried in order; first present non-empty wins.
var (
	facilityNameKeys = []string{"NAME", "Name", "name", "Description", "description", "ADDRESS", "Address", "TITLE", "title"}
	hotelNameKeys    = []string{"NAME", "Name", "name", "Description", "description", "Hotel_Name", "HOTEL_NAME", "TITLE", "title"}
	priceKeys        = []string{"price", "PRICE", "room_price", "room_rate", "RATE", "rate", "avg_rate"}
)

// Synthesized room price interval: inclusive low, exclusive high.
const (
	priceMin = 90
	priceMax = 401
)

// Source reads hotels and static facility categories from a directory of
// GeoJSON point-feature collections.
type Source struct {
	dir       string
	randPrice func() float64
}

type Option func(*Source)

// WithPriceRand overrides the generator used to synthesize a price when the
// dataset carries none. Tests inject a fixed value here.
func WithPriceRand(fn func() float64) Option {
	return func(s *Source) { s.randPrice = fn }
}

func New(dir string, opts ...Option) *Source {
	s := &Source{
		dir: dir,
		randPrice: func() float64 {
			return float64(priceMin + rand.Intn(priceMax-priceMin))
		},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Source) Hotels(_ context.Context) ([]domain.Hotel, error) {
	fc, err := s.readCollection(fileHotels)
	if err != nil {
		return nil, err
	}
	hotels := make([]domain.Hotel, 0, len(fc.Features))
	for i, f := range fc.Features {
		lat, lon, ok := f.point()
		if !ok {
			continue
		}
		name, ok := firstPresent(f.Properties, hotelNameKeys)
		if !ok {
			name = fmt.Sprintf("Hotel_%d", i+1)
		}
		price, ok := firstNumeric(f.Properties, priceKeys)
		if !ok {
			// fixed for the hotel's lifetime; never re-drawn on rescore
			price = s.randPrice()
		}
		hotels = append(hotels, domain.Hotel{Name: name, Price: price, Lat: lat, Lon: lon})
	}
	return hotels, nil
}

func (s *Source) Facilities(_ context.Context, cat domain.Category) ([]domain.Facility, error) {
	file, ok := categoryFiles[cat]
	if !ok {
		return nil, fmt.Errorf("geojson: no dataset for category %q", cat)
	}
	fc, err := s.readCollection(file)
	if err != nil {
		return nil, err
	}
	list := make([]domain.Facility, 0, len(fc.Features))
	for i, f := range fc.Features {
		lat, lon, ok := f.point()
		if !ok {
			continue
		}
		name, ok := firstPresent(f.Properties, facilityNameKeys)
		if !ok {
			name = fmt.Sprintf("%s_%d", cat, i+1)
		}
		list = append(list, domain.Facility{Name: name, Type: cat, Lat: lat, Lon: lon})
	}
	return list, nil
}

// ---- GeoJSON plumbing ----

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry struct {
		Type string `json:"type"`
		// Deferred: point features carry [lon, lat], other geometry types
		// nest arrays arbitrarily deep and must not fail the collection.
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// point returns (lat, lon) for point-type features; others are skipped.
// GeoJSON orders coordinates [lon, lat].
func (f feature) point() (lat, lon float64, ok bool) {
	if !strings.EqualFold(f.Geometry.Type, "Point") {
		return 0, 0, false
	}
	var c []float64
	if err := json.Unmarshal(f.Geometry.Coordinates, &c); err != nil || len(c) < 2 {
		return 0, 0, false
	}
	return c[1], c[0], true
}

func (s *Source) readCollection(file string) (featureCollection, error) {
	var fc featureCollection
	b, err := os.ReadFile(filepath.Join(s.dir, file))
	if err != nil {
		return fc, fmt.Errorf("geojson: read %s: %w", file, err)
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("geojson: parse %s: %w", file, err)
	}
	return fc, nil
}

// firstPresent tries keys in order and returns the first present, non-empty
// string value.
func firstPresent(props map[string]any, keys []string) (string, bool) {
	for _, k := range keys {
		v, ok := props[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s != "" && s != "null" {
			return s, true
		}
	}
	return "", false
}

// firstNumeric tries keys in order and returns the first value parseable as
// a float (datasets store numbers both as JSON numbers and strings).
func firstNumeric(props map[string]any, keys []string) (float64, bool) {
	for _, k := range keys {
		v, ok := props[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
