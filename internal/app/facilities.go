package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"navigo_ranking/internal/adapters/observability"
	"navigo_ranking/internal/domain"
)

const busSnapshotKey = "facilities:bus:v1"

// FacilityDirectory loads every facility category once per process and
// serves the cached map read-only thereafter. Any category that fails to
// load degrades to an empty list; loading never fails as a whole.
type FacilityDirectory struct {
	ds      domain.DatasetSource
	feed    domain.TransitFeed
	cache   domain.Cache // optional snapshot store for the live feed, may be nil
	ttl     time.Duration
	workers int64

	mu     sync.Mutex
	byCat  map[domain.Category][]domain.Facility
	loaded bool
}

func NewFacilityDirectory(ds domain.DatasetSource, feed domain.TransitFeed, cache domain.Cache, ttl time.Duration, workers int) *FacilityDirectory {
	if workers <= 0 {
		workers = 4
	}
	return &FacilityDirectory{ds: ds, feed: feed, cache: cache, ttl: ttl, workers: int64(workers)}
}

// Facilities returns the per-category facility map, populating it on first
// use. The mutex doubles as the one-time-init guard: concurrent first
// callers block until the single load completes, so the live feed is hit
// exactly once per process.
func (d *FacilityDirectory) Facilities(ctx context.Context) map[domain.Category][]domain.Facility {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return d.byCat
	}
	d.byCat = d.loadAll(ctx)
	d.loaded = true
	return d.byCat
}

func (d *FacilityDirectory) loadAll(ctx context.Context) map[domain.Category][]domain.Facility {
	out := make(map[domain.Category][]domain.Facility, len(domain.Categories))
	var omu sync.Mutex
	sem := semaphore.NewWeighted(d.workers)
	var wg sync.WaitGroup

	for _, cat := range domain.Categories {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Str("category", string(cat)).Err(err).Msg("facility load aborted")
			continue // category stays empty
		}
		wg.Add(1)
		go func(cat domain.Category) {
			defer wg.Done()
			defer sem.Release(1)

			fs, err := d.loadCategory(ctx, cat)
			if err != nil {
				log.Warn().Str("category", string(cat)).Err(err).Msg("facility load failed; category degraded to empty")
				fs = nil
			}
			observability.ObserveFacilities(string(cat), len(fs))
			omu.Lock()
			out[cat] = fs
			omu.Unlock()
		}(cat)
	}
	wg.Wait()

	log.Info().Int("categories", len(out)).Msg("facility directory loaded")
	return out
}

func (d *FacilityDirectory) loadCategory(ctx context.Context, cat domain.Category) ([]domain.Facility, error) {
	if cat == domain.CategoryBus {
		return d.busStops(ctx)
	}
	return d.ds.Facilities(ctx, cat)
}

// busStops prefers the live feed; a successful fetch refreshes the snapshot
// and a failed one falls back to it, so a feed outage only loses bus
// scoring when there is no snapshot either.
func (d *FacilityDirectory) busStops(ctx context.Context) ([]domain.Facility, error) {
	stops, err := d.feed.BusStops(ctx)
	if err == nil {
		if d.cache != nil && len(stops) > 0 {
			_ = d.cache.Set(ctx, busSnapshotKey, stops, int(d.ttl.Seconds()))
		}
		return stops, nil
	}
	if d.cache != nil {
		var snap []domain.Facility
		if ok, cerr := d.cache.Get(ctx, busSnapshotKey, &snap); cerr == nil && ok {
			log.Warn().Err(err).Int("stops", len(snap)).Msg("live bus feed failed; serving cached snapshot")
			return snap, nil
		}
	}
	return nil, err
}
