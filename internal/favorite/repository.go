package favorite

import (
	"errors"
	"sync"
)

var (
	ErrInvalidDevice   = errors.New("device id is required")
	ErrInvalidFavorite = errors.New("restaurant id is required")
	ErrAlreadyFavorite = errors.New("restaurant already in favorites")
	ErrNotFavorite     = errors.New("restaurant not in favorites")
)

// Repository persists favorites per device. Add fails with ErrAlreadyFavorite
// when the id is already stored; Remove fails with ErrNotFavorite when it is not.
type Repository interface {
	Add(deviceID string, f Favorite) error
	Remove(deviceID string, restaurantID string) error
	List(deviceID string) ([]Favorite, error)
	// Contains reports which of ids are favorites of the device.
	Contains(deviceID string, ids []string) (map[string]bool, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu        sync.RWMutex
	favorites map[string][]Favorite
}

func NewInMemoryRepository(seed map[string][]Favorite) *InMemoryRepository {
	r := &InMemoryRepository{favorites: make(map[string][]Favorite, len(seed))}
	for device, favs := range seed {
		r.favorites[device] = append([]Favorite(nil), favs...)
	}
	return r
}

func (r *InMemoryRepository) Add(deviceID string, f Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.favorites[deviceID] {
		if existing.ID == f.ID {
			return ErrAlreadyFavorite
		}
	}
	r.favorites[deviceID] = append(r.favorites[deviceID], f)
	return nil
}

func (r *InMemoryRepository) Remove(deviceID string, restaurantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	favs := r.favorites[deviceID]
	for i, f := range favs {
		if f.ID == restaurantID {
			r.favorites[deviceID] = append(favs[:i:i], favs[i+1:]...)
			return nil
		}
	}
	return ErrNotFavorite
}

func (r *InMemoryRepository) List(deviceID string) ([]Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Favorite, len(r.favorites[deviceID]))
	copy(out, r.favorites[deviceID])
	return out, nil
}

func (r *InMemoryRepository) Contains(deviceID string, ids []string) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := make(map[string]bool, len(r.favorites[deviceID]))
	for _, f := range r.favorites[deviceID] {
		stored[f.ID] = true
	}
	out := make(map[string]bool)
	for _, id := range ids {
		if stored[id] {
			out[id] = true
		}
	}
	return out, nil
}
