package restaurant

import (
	"strings"

	"github.com/wichananm65/eatery-backend/internal/directory"
	"github.com/wichananm65/eatery-backend/internal/favorite"
)

// thumbnailUpgrades swaps the CDN's low resolution markers for larger ones.
var thumbnailUpgrades = strings.NewReplacer(
	"=200%", "=600%",
	"A200%", "A800%",
	"C200%", "C600%",
	"200&", "800&",
)

// Restaurant is a directory record prepared for display. Only the favorite
// flag changes after construction.
type Restaurant struct {
	raw      directory.Restaurant
	distance string
	favorite bool
}

func New(raw directory.Restaurant, isFavorite bool, distance string) Restaurant {
	return Restaurant{raw: raw, favorite: isFavorite, distance: distance}
}

// FromFavorite rebuilds a record from a stored favorite. Fields the favorites
// store does not keep are left empty and the rating is the numeric placeholder.
func FromFavorite(f favorite.Favorite) Restaurant {
	return Restaurant{
		raw: directory.Restaurant{
			ID:         f.ID,
			Name:       f.Name,
			Cuisines:   f.Cuisines,
			UserRating: directory.UserRating{AggregateRating: directory.AggregateRating{Numeric: true}},
			Timings:    f.Timings,
		},
		favorite: true,
	}
}

func (r Restaurant) ID() string {
	return r.raw.ID
}

func (r Restaurant) Name() string {
	return r.raw.Name
}

// Rating returns the textual rating; numeric placeholders are never shown.
func (r Restaurant) Rating() (string, bool) {
	rating := r.raw.UserRating.AggregateRating
	if rating.Numeric {
		return "", false
	}
	return rating.Text, true
}

func (r Restaurant) PriceRange() string {
	switch r.raw.PriceRange {
	case 0, 1:
		return "$"
	case 2:
		return "$$"
	default:
		return "$$$"
	}
}

func (r Restaurant) Distance() string {
	return r.distance
}

func (r Restaurant) Thumbnail() string {
	return thumbnailUpgrades.Replace(r.raw.Thumb)
}

func (r Restaurant) Cuisines() string {
	return strings.ReplaceAll(r.raw.Cuisines, ",", " ·")
}

func (r Restaurant) Address() string {
	return r.raw.Location.Address
}

func (r Restaurant) Location() (lat, lon string) {
	return r.raw.Location.Latitude, r.raw.Location.Longitude
}

// Timing drops the day range in parentheses: "11 AM to 11 PM (Mon-Sun)"
// becomes "11 AM to 11 PM ".
func (r Restaurant) Timing() string {
	before, _, _ := strings.Cut(r.raw.Timings, "(")
	return before
}

func (r Restaurant) IsFavorite() bool {
	return r.favorite
}

func (r *Restaurant) ToggleFavorite() {
	r.favorite = !r.favorite
}

func (r *Restaurant) SetFavorite(isFavorite bool) {
	r.favorite = isFavorite
}

// ContainsSearch matches value case-insensitively against name and cuisines.
func (r Restaurant) ContainsSearch(value string) bool {
	value = strings.ToLower(value)
	return strings.Contains(strings.ToLower(r.raw.Name), value) ||
		strings.Contains(strings.ToLower(r.raw.Cuisines), value)
}

// Favorite is the projection kept by the favorites store.
func (r Restaurant) Favorite() favorite.Favorite {
	return favorite.Favorite{
		ID:       r.raw.ID,
		Name:     r.raw.Name,
		Cuisines: r.raw.Cuisines,
		Timings:  r.raw.Timings,
	}
}
