package catalog

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/wichananm65/eatery-backend/internal/directory"
	"github.com/wichananm65/eatery-backend/internal/favorite"
	"github.com/wichananm65/eatery-backend/internal/restaurant"
)

const (
	DefaultPageSize = 20

	sortByDistance = "real_distance"
	orderAscending = "asc"
)

var ErrUnknownRestaurant = errors.New("restaurant not loaded")

// Fetcher loads one page of restaurants from the directory.
type Fetcher interface {
	Search(ctx context.Context, p directory.SearchParams) (directory.SearchResponse, error)
}

// DetailFetcher loads a single directory record.
type DetailFetcher interface {
	Restaurant(ctx context.Context, id string) (directory.Restaurant, error)
}

// FavoritesStore is the favorites set of the current device.
type FavoritesStore interface {
	Add(f favorite.Favorite) error
	Remove(restaurantID string) error
	List() ([]favorite.Favorite, error)
	Contains(ids []string) (map[string]bool, error)
}

// RestaurantsViewModel pages through the directory and keeps the loaded
// records in arrival order with their favorite flags merged in. Until a
// location is set, searches carry no coordinates and records have no
// distance label.
type RestaurantsViewModel struct {
	fetcher   Fetcher
	favorites FavoritesStore
	pageSize  int

	mu         sync.Mutex
	records    []restaurant.Restaurant
	nextOffset int
	fetching   bool
	exhausted  bool
	origin     restaurant.Origin
	located    bool
	generation uint64
}

func NewRestaurantsViewModel(fetcher Fetcher, favorites FavoritesStore, pageSize int) *RestaurantsViewModel {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &RestaurantsViewModel{
		fetcher:   fetcher,
		favorites: favorites,
		pageSize:  pageSize,
	}
}

// LoadNextPage fetches the page at the current offset and appends it. It
// returns false without error when a fetch is already running, when the
// result set is exhausted, or when the view model was reset meanwhile. On
// error nothing changes, so calling it again retries the same page.
func (vm *RestaurantsViewModel) LoadNextPage(ctx context.Context) (bool, error) {
	vm.mu.Lock()
	if vm.fetching || vm.exhausted {
		vm.mu.Unlock()
		return false, nil
	}
	vm.fetching = true
	gen := vm.generation
	origin, located := vm.origin, vm.located
	params := directory.SearchParams{
		Start: vm.nextOffset,
		Count: vm.pageSize,
	}
	if located {
		params.Lat = directory.Float(origin.Lat)
		params.Lon = directory.Float(origin.Lon)
		params.Sort = sortByDistance
		params.Order = orderAscending
	}
	vm.mu.Unlock()

	resp, err := vm.fetcher.Search(ctx, params)
	var page []restaurant.Restaurant
	if err == nil {
		page = vm.build(resp, origin, located)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.fetching = false
	if gen != vm.generation {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	vm.records = append(vm.records, page...)
	vm.nextOffset += resp.ResultsShown
	if resp.ResultsShown == 0 || vm.nextOffset >= resp.ResultsFound {
		vm.exhausted = true
	}
	return true, nil
}

func (vm *RestaurantsViewModel) build(resp directory.SearchResponse, origin restaurant.Origin, located bool) []restaurant.Restaurant {
	ids := make([]string, 0, len(resp.Restaurants))
	for _, r := range resp.Restaurants {
		ids = append(ids, r.Restaurant.ID)
	}
	favs := vm.lookupFavorites(ids)

	page := make([]restaurant.Restaurant, 0, len(resp.Restaurants))
	for _, r := range resp.Restaurants {
		raw := r.Restaurant
		var distance string
		if located {
			distance = origin.DistanceLabel(raw.Location.Latitude, raw.Location.Longitude)
		}
		page = append(page, restaurant.New(raw, favs[raw.ID], distance))
	}
	return page
}

func (vm *RestaurantsViewModel) lookupFavorites(ids []string) map[string]bool {
	if vm.favorites == nil || len(ids) == 0 {
		return nil
	}
	favs, err := vm.favorites.Contains(ids)
	if err != nil {
		log.Printf("catalog: favorite lookup failed: %v", err)
		return nil
	}
	return favs
}

// Restaurants returns a copy of the loaded records.
func (vm *RestaurantsViewModel) Restaurants() []restaurant.Restaurant {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]restaurant.Restaurant(nil), vm.records...)
}

// Search filters the loaded records by name or cuisine.
func (vm *RestaurantsViewModel) Search(term string) []restaurant.Restaurant {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if term == "" {
		return append([]restaurant.Restaurant(nil), vm.records...)
	}
	var out []restaurant.Restaurant
	for _, r := range vm.records {
		if r.ContainsSearch(term) {
			out = append(out, r)
		}
	}
	return out
}

func (vm *RestaurantsViewModel) Record(id string) (restaurant.Restaurant, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if i := vm.indexOf(id); i >= 0 {
		return vm.records[i], true
	}
	return restaurant.Restaurant{}, false
}

// ToggleFavorite flips the favorite flag of the loaded record with that id
// and persists the change. The flag is restored if the store rejects it.
func (vm *RestaurantsViewModel) ToggleFavorite(id string) (restaurant.Restaurant, error) {
	vm.mu.Lock()
	i := vm.indexOf(id)
	if i < 0 {
		vm.mu.Unlock()
		return restaurant.Restaurant{}, ErrUnknownRestaurant
	}
	vm.records[i].ToggleFavorite()
	rec := vm.records[i]
	vm.mu.Unlock()

	var err error
	if rec.IsFavorite() {
		err = vm.favorites.Add(rec.Favorite())
		if errors.Is(err, favorite.ErrAlreadyFavorite) {
			err = nil
		}
	} else {
		err = vm.favorites.Remove(id)
		if errors.Is(err, favorite.ErrNotFavorite) {
			err = nil
		}
	}
	if err == nil {
		return rec, nil
	}

	vm.mu.Lock()
	if i := vm.indexOf(id); i >= 0 {
		vm.records[i].SetFavorite(!rec.IsFavorite())
	}
	vm.mu.Unlock()
	rec.SetFavorite(!rec.IsFavorite())
	return rec, err
}

// SyncFavorites re-reads the favorite flag of every loaded record.
func (vm *RestaurantsViewModel) SyncFavorites() error {
	vm.mu.Lock()
	ids := make([]string, 0, len(vm.records))
	for _, r := range vm.records {
		ids = append(ids, r.ID())
	}
	vm.mu.Unlock()
	if len(ids) == 0 || vm.favorites == nil {
		return nil
	}

	favs, err := vm.favorites.Contains(ids)
	if err != nil {
		return err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	for i := range vm.records {
		vm.records[i].SetFavorite(favs[vm.records[i].ID()])
	}
	return nil
}

// Reset drops everything loaded and starts over from origin. A fetch still
// running is discarded when it completes, and no new fetch starts before it
// does.
func (vm *RestaurantsViewModel) Reset(origin restaurant.Origin) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.generation++
	vm.origin = origin
	vm.located = true
	vm.records = nil
	vm.nextOffset = 0
	vm.exhausted = false
}

// MoveTo resets the view model when no location is set yet or origin differs
// from the current one.
func (vm *RestaurantsViewModel) MoveTo(origin restaurant.Origin) bool {
	vm.mu.Lock()
	same := vm.located && vm.origin == origin
	vm.mu.Unlock()
	if same {
		return false
	}
	vm.Reset(origin)
	return true
}

// Located reports whether a location has been set.
func (vm *RestaurantsViewModel) Located() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.located
}

func (vm *RestaurantsViewModel) NextOffset() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.nextOffset
}

func (vm *RestaurantsViewModel) IsFetching() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fetching
}

func (vm *RestaurantsViewModel) Exhausted() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.exhausted
}

func (vm *RestaurantsViewModel) indexOf(id string) int {
	for i := range vm.records {
		if vm.records[i].ID() == id {
			return i
		}
	}
	return -1
}
