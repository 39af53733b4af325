package domain

import "context"

// SortType selects the ranking comparator.
type SortType string

const (
	SortOverall   SortType = "overall"
	SortFilter    SortType = "filter"
	SortPriceLow  SortType = "price_low"
	SortPriceHigh SortType = "price_high"
)

// ParseSortType maps a request parameter to a sort key.
// Unrecognized values fall back to SortOverall.
func ParseSortType(s string) SortType {
	switch SortType(s) {
	case SortFilter, SortPriceLow, SortPriceHigh:
		return SortType(s)
	default:
		return SortOverall
	}
}

// DatasetSource loads hotels and static facility categories from
// point-feature collections.
type DatasetSource interface {
	Hotels(ctx context.Context) ([]Hotel, error)
	Facilities(ctx context.Context, cat Category) ([]Facility, error)
}

// TransitFeed fetches the live transit-stop collection.
type TransitFeed interface {
	BusStops(ctx context.Context) ([]Facility, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
