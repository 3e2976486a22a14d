package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/wichananm65/eatery-backend/internal/favorite"
	"github.com/wichananm65/eatery-backend/internal/interface/presenter"
)

// Session is the browsing state of one device: its restaurants grid and its
// favorites list.
type Session struct {
	Restaurants *RestaurantsViewModel
	Favorites   *FavoritesViewModel
	Grid        *presenter.GridDataSource
	List        *presenter.ListDataSource
}

// NewSession wires the view models of one device to its data sources.
func NewSession(fetcher Fetcher, details DetailFetcher, store FavoritesStore, pageSize int, layout presenter.GridLayout) *Session {
	restaurants := NewRestaurantsViewModel(fetcher, store, pageSize)
	favorites := NewFavoritesViewModel(store, details)

	s := &Session{Restaurants: restaurants, Favorites: favorites}
	s.Grid = presenter.NewGridDataSource(layout,
		func(ctx context.Context) error {
			_, err := restaurants.LoadNextPage(ctx)
			return err
		},
		func(id string) error {
			_, err := restaurants.ToggleFavorite(id)
			return err
		},
		func(id string) error {
			if _, ok := restaurants.Record(id); !ok {
				return ErrUnknownRestaurant
			}
			return nil
		},
	)
	s.List = presenter.NewListDataSource(
		func(id string) error {
			ok, err := favorites.IsFavorite(id)
			if err != nil {
				return err
			}
			if !ok {
				return favorite.ErrNotFavorite
			}
			return nil
		},
		favorites.Unfavorite,
	)
	return s
}

const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxSessions = 10000
)

// SessionLimits bounds how long and how many device sessions are kept.
// Zero values fall back to the defaults.
type SessionLimits struct {
	IdleTimeout time.Duration
	MaxSessions int
}

type sessionEntry struct {
	session  *Session
	lastUsed time.Time
}

// Sessions creates device sessions on first use and forgets them once they
// have been idle for IdleTimeout. When MaxSessions is reached the least
// recently used session is evicted.
type Sessions struct {
	fetcher   Fetcher
	details   DetailFetcher
	favorites *favorite.Service
	pageSize  int
	layout    presenter.GridLayout
	limits    SessionLimits
	now       func() time.Time

	mu        sync.Mutex
	sessions  map[string]*sessionEntry
	lastSweep time.Time
}

func NewSessions(fetcher Fetcher, details DetailFetcher, favorites *favorite.Service, pageSize int, layout presenter.GridLayout, limits SessionLimits) *Sessions {
	if limits.IdleTimeout <= 0 {
		limits.IdleTimeout = DefaultIdleTimeout
	}
	if limits.MaxSessions <= 0 {
		limits.MaxSessions = DefaultMaxSessions
	}
	return &Sessions{
		fetcher:   fetcher,
		details:   details,
		favorites: favorites,
		pageSize:  pageSize,
		layout:    layout,
		limits:    limits,
		now:       time.Now,
		sessions:  make(map[string]*sessionEntry),
	}
}

func (s *Sessions) Get(deviceID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	if e, ok := s.sessions[deviceID]; ok && !s.expired(e, now) {
		e.lastUsed = now
		return e.session
	}

	delete(s.sessions, deviceID)
	if len(s.sessions) >= s.limits.MaxSessions {
		s.evictOldest()
	}
	sess := NewSession(s.fetcher, s.details, s.favorites.Store(deviceID), s.pageSize, s.layout)
	s.sessions[deviceID] = &sessionEntry{session: sess, lastUsed: now}
	return sess
}

// Len is the number of sessions currently kept.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Drop forgets the session of deviceID. Its favorites stay in the store.
func (s *Sessions) Drop(deviceID string) {
	s.mu.Lock()
	delete(s.sessions, deviceID)
	s.mu.Unlock()
}

func (s *Sessions) expired(e *sessionEntry, now time.Time) bool {
	return now.Sub(e.lastUsed) >= s.limits.IdleTimeout
}

// sweep drops idle sessions, at most twice per idle timeout.
func (s *Sessions) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.limits.IdleTimeout/2 {
		return
	}
	s.lastSweep = now
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *Sessions) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, e := range s.sessions {
		if oldestID == "" || e.lastUsed.Before(oldest) {
			oldestID, oldest = id, e.lastUsed
		}
	}
	delete(s.sessions, oldestID)
}
