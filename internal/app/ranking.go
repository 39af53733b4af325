package app

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"navigo_ranking/internal/domain"
)

// RankingService orchestrates catalog loading, scoring, and ordering.
// Every failure mode downgrades to empty data, so a ranking response is
// always produced.
type RankingService struct {
	ds     domain.DatasetSource
	dir    *FacilityDirectory
	scorer *Scorer
}

func NewRankingService(ds domain.DatasetSource, dir *FacilityDirectory, scorer *Scorer) *RankingService {
	return &RankingService{ds: ds, dir: dir, scorer: scorer}
}

// GetRanking loads the catalog fresh, scores it against the (cached)
// facility directory, and returns the full list ordered by sortType.
// Ties keep catalog order. Top-N selection is the caller's concern.
func (s *RankingService) GetRanking(ctx context.Context, sortType domain.SortType, filter domain.Category) []domain.Hotel {
	hotels, err := s.ds.Hotels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("hotel catalog load failed; serving empty ranking")
		return []domain.Hotel{}
	}
	if len(hotels) == 0 {
		return []domain.Hotel{}
	}

	s.scorer.Score(hotels, s.dir.Facilities(ctx))

	key := func(h *domain.Hotel) float64 { return h.OverallScore }
	asc := false
	switch sortType {
	case domain.SortFilter:
		// unknown filter keys score 0 everywhere, leaving catalog order
		key = func(h *domain.Hotel) float64 { return h.ScoreByFilter(filter) }
	case domain.SortPriceLow:
		key = func(h *domain.Hotel) float64 { return h.Price }
		asc = true
	case domain.SortPriceHigh:
		key = func(h *domain.Hotel) float64 { return h.Price }
	}

	sort.SliceStable(hotels, func(i, j int) bool {
		if asc {
			return key(&hotels[i]) < key(&hotels[j])
		}
		return key(&hotels[i]) > key(&hotels[j])
	})
	return hotels
}
