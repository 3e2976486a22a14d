package catalog

import (
	"context"
	"log"

	"github.com/wichananm65/eatery-backend/internal/restaurant"
)

// FavoritesViewModel lists the device's favorites straight from the store.
type FavoritesViewModel struct {
	store   FavoritesStore
	details DetailFetcher
}

func NewFavoritesViewModel(store FavoritesStore, details DetailFetcher) *FavoritesViewModel {
	return &FavoritesViewModel{store: store, details: details}
}

// Restaurants returns one record per stored favorite, in store order. With
// backfill set, each record is refreshed from the directory; a failed lookup
// keeps the record built from the stored entry.
func (vm *FavoritesViewModel) Restaurants(ctx context.Context, backfill bool) ([]restaurant.Restaurant, error) {
	favs, err := vm.store.List()
	if err != nil {
		return nil, err
	}

	out := make([]restaurant.Restaurant, 0, len(favs))
	for _, f := range favs {
		rec := restaurant.FromFavorite(f)
		if backfill && vm.details != nil {
			raw, err := vm.details.Restaurant(ctx, f.ID)
			if err != nil {
				log.Printf("catalog: backfill %s: %v", f.ID, err)
			} else {
				rec = restaurant.New(raw, true, "")
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// IsFavorite reports whether id is in the store.
func (vm *FavoritesViewModel) IsFavorite(id string) (bool, error) {
	favs, err := vm.store.Contains([]string{id})
	if err != nil {
		return false, err
	}
	return favs[id], nil
}

func (vm *FavoritesViewModel) Unfavorite(id string) error {
	return vm.store.Remove(id)
}
