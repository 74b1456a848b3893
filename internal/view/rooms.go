package view

import (
	"sort"

	"github.com/UnibsMatt/roomates/internal/api"
)

// SortKey selects the room list ordering.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// ParseSortKey maps a query value to a key, defaulting to newest-first.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc:
		return SortKey(s)
	default:
		return SortNewest
	}
}

// FilterByPrice keeps rooms inside [min, max]. Nil bounds are open. This is
// a client-side projection over the already-fetched set, not a server query.
func FilterByPrice(rooms []api.Room, min, max *float64) []api.Room {
	out := make([]api.Room, 0, len(rooms))
	for _, r := range rooms {
		if min != nil && r.Price < *min {
			continue
		}
		if max != nil && r.Price > *max {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortRooms returns a sorted copy; the fetched slice is left alone.
func SortRooms(rooms []api.Room, key SortKey) []api.Room {
	out := make([]api.Room, len(rooms))
	copy(out, rooms)
	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}
