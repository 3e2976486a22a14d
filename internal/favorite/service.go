package favorite

import "strings"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddFavorite(deviceID string, f Favorite) error {
	if strings.TrimSpace(deviceID) == "" {
		return ErrInvalidDevice
	}
	if strings.TrimSpace(f.ID) == "" {
		return ErrInvalidFavorite
	}
	return s.repo.Add(deviceID, f)
}

func (s *Service) RemoveFavorite(deviceID string, restaurantID string) error {
	if strings.TrimSpace(deviceID) == "" {
		return ErrInvalidDevice
	}
	if strings.TrimSpace(restaurantID) == "" {
		return ErrInvalidFavorite
	}
	return s.repo.Remove(deviceID, restaurantID)
}

func (s *Service) GetFavorites(deviceID string) ([]Favorite, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrInvalidDevice
	}
	return s.repo.List(deviceID)
}

func (s *Service) FavoriteIDs(deviceID string, ids []string) (map[string]bool, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrInvalidDevice
	}
	return s.repo.Contains(deviceID, ids)
}

// Store returns the favorites of one device.
func (s *Service) Store(deviceID string) *Store {
	return &Store{service: s, deviceID: deviceID}
}

// Store is the favorites set of a single device.
type Store struct {
	service  *Service
	deviceID string
}

func (s *Store) Add(f Favorite) error {
	return s.service.AddFavorite(s.deviceID, f)
}

func (s *Store) Remove(restaurantID string) error {
	return s.service.RemoveFavorite(s.deviceID, restaurantID)
}

func (s *Store) List() ([]Favorite, error) {
	return s.service.GetFavorites(s.deviceID)
}

func (s *Store) Contains(ids []string) (map[string]bool, error) {
	return s.service.FavoriteIDs(s.deviceID, ids)
}
