package view

import "github.com/UnibsMatt/roomates/internal/api"

// Carousel is the image cursor of a room detail page. Index stays in
// [0, Count) and cycles modulo Count in both directions.
type Carousel struct {
	Index int
	Count int
}

// NewCarousel clamps an arbitrary requested index into range. An empty
// gallery pins the index at zero.
func NewCarousel(count, index int) Carousel {
	if count <= 0 {
		return Carousel{}
	}
	if index < 0 || index >= count {
		index = 0
	}
	return Carousel{Index: index, Count: count}
}

// Position is the 1-based index for display.
func (c Carousel) Position() int {
	if c.Count <= 0 {
		return 0
	}
	return c.Index + 1
}

// Next wraps from the last image back to the first.
func (c Carousel) Next() int {
	if c.Count <= 0 {
		return 0
	}
	return (c.Index + 1) % c.Count
}

// Prev wraps from the first image back to the last.
func (c Carousel) Prev() int {
	if c.Count <= 0 {
		return 0
	}
	return (c.Index - 1 + c.Count) % c.Count
}

// RemoveImage drops exactly one image from local state, preserving display
// order, so a deletion does not force a room re-fetch.
func RemoveImage(images []api.RoomImage, id int64) []api.RoomImage {
	out := make([]api.RoomImage, 0, len(images))
	for _, img := range images {
		if img.ID != id {
			out = append(out, img)
		}
	}
	return out
}
