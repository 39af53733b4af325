package app

import (
	"math"

	"navigo_ranking/internal/domain"
)

const earthRadiusKm = 6371.0

// Scorer turns hotel-to-facility distances into per-category and overall
// scores. It carries the weight table so alternate calibrations can be
// injected.
type Scorer struct {
	params map[domain.Category]domain.CategoryParams
}

func NewScorer(params map[domain.Category]domain.CategoryParams) *Scorer {
	if params == nil {
		params = domain.DefaultCategoryParams()
	}
	return &Scorer{params: params}
}

// Score mutates hotels in place: one score per configured category plus the
// weighted overall score. Facilities are read-only; re-invoke after any
// facility change. Deterministic for fixed inputs.
func (s *Scorer) Score(hotels []domain.Hotel, facilities map[domain.Category][]domain.Facility) {
	for i := range hotels {
		h := &hotels[i]
		overall := 0.0
		for cat, p := range s.params {
			sc := nearestScore(h.Lat, h.Lon, facilities[cat], p.MaxKm)
			h.SetFilterScore(cat, sc)
			overall += sc * p.Weight
		}
		h.OverallScore = overall
	}
}

// nearestScore applies linear decay to the distance of the closest facility:
// 0 km scores 10, maxKm and beyond score 0. An empty category scores 0.
func nearestScore(lat, lon float64, fs []domain.Facility, maxKm float64) float64 {
	if len(fs) == 0 || maxKm <= 0 {
		return 0
	}
	minKm := math.Inf(1)
	for _, f := range fs {
		if d := haversineKm(lat, lon, f.Lat, f.Lon); d < minKm {
			minKm = d
		}
	}
	if minKm > maxKm {
		return 0
	}
	sc := (maxKm - minKm) / maxKm * 10.0
	return math.Max(0.0, math.Min(10.0, sc))
}

// haversineKm is the great-circle distance between two WGS84-ish points on
// a sphere of Earth's mean radius.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
