package presenter

import (
	"context"
	"errors"
	"sync"

	"github.com/wichananm65/eatery-backend/internal/restaurant"
)

const (
	FavoriteRowHeight    = 168
	FavoriteFooterHeight = 16
)

var ErrIndexOutOfRange = errors.New("item index out of range")

// Diff describes how a data source changed on Update. Pagination only ever
// appends, which is reported as Inserted; anything else is a full Reload.
type Diff struct {
	Reload   bool  `json:"reload"`
	Inserted []int `json:"inserted,omitempty"`
}

func diff(old, updated []restaurant.Restaurant) Diff {
	if len(updated) < len(old) {
		return Diff{Reload: true}
	}
	for i := range old {
		if old[i].ID() != updated[i].ID() {
			return Diff{Reload: true}
		}
	}
	inserted := make([]int, 0, len(updated)-len(old))
	for i := len(old); i < len(updated); i++ {
		inserted = append(inserted, i)
	}
	return Diff{Inserted: inserted}
}

// GridDataSource backs the restaurants grid. It knows nothing about
// navigation or state changes; it only reports ids through its callbacks.
type GridDataSource struct {
	mu          sync.RWMutex
	records     []restaurant.Restaurant
	layout      GridLayout
	presenter   *RestaurantPresenter
	tracker     ScrollTracker
	onFetchMore func(ctx context.Context) error
	onFavorite  func(id string) error
	onSelect    func(id string) error
}

// NewGridDataSource builds a grid data source. Nil callbacks are skipped.
func NewGridDataSource(layout GridLayout, fetchMore func(ctx context.Context) error, favorite func(id string) error, selectFn func(id string) error) *GridDataSource {
	return &GridDataSource{
		layout:      layout,
		presenter:   NewRestaurantPresenter(),
		onFetchMore: fetchMore,
		onFavorite:  favorite,
		onSelect:    selectFn,
	}
}

// Update replaces the displayed records.
func (d *GridDataSource) Update(records []restaurant.Restaurant) Diff {
	d.mu.Lock()
	defer d.mu.Unlock()
	change := diff(d.records, records)
	d.records = append([]restaurant.Restaurant(nil), records...)
	if change.Reload {
		d.tracker.Reset()
	}
	return change
}

func (d *GridDataSource) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.records)
}

func (d *GridDataSource) Items() []RestaurantResponse {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.presenter.ToList(d.records)
}

func (d *GridDataSource) SizeForItems(width float64) GridMetrics {
	return d.layout.Cells(width)
}

// Select reports the id at index to the select callback.
func (d *GridDataSource) Select(index int) (string, error) {
	id, err := d.idAt(index)
	if err != nil {
		return "", err
	}
	return id, report(d.onSelect, id)
}

// ToggleFavorite reports the id at index to the favorite callback.
func (d *GridDataSource) ToggleFavorite(index int) (string, error) {
	id, err := d.idAt(index)
	if err != nil {
		return "", err
	}
	return id, report(d.onFavorite, id)
}

// Scrolled feeds a scroll position to the tracker and calls the fetch-more
// callback when it fires.
func (d *GridDataSource) Scrolled(ctx context.Context, offset, contentHeight, viewportHeight float64) (bool, error) {
	if !d.tracker.Observe(offset, contentHeight, viewportHeight) {
		return false, nil
	}
	if d.onFetchMore == nil {
		return true, nil
	}
	return true, d.onFetchMore(ctx)
}

func (d *GridDataSource) idAt(index int) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return idAt(d.records, index)
}

// ListDataSource backs the favorites table: fixed height rows, select and
// unfavorite reported by id.
type ListDataSource struct {
	mu           sync.RWMutex
	records      []restaurant.Restaurant
	presenter    *RestaurantPresenter
	onSelect     func(id string) error
	onUnfavorite func(id string) error
}

func NewListDataSource(selectFn func(id string) error, unfavorite func(id string) error) *ListDataSource {
	return &ListDataSource{
		presenter:    NewRestaurantPresenter(),
		onSelect:     selectFn,
		onUnfavorite: unfavorite,
	}
}

func (d *ListDataSource) Update(records []restaurant.Restaurant) Diff {
	d.mu.Lock()
	defer d.mu.Unlock()
	change := diff(d.records, records)
	d.records = append([]restaurant.Restaurant(nil), records...)
	return change
}

func (d *ListDataSource) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.records)
}

func (d *ListDataSource) Items() []RestaurantResponse {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.presenter.ToList(d.records)
}

// ContentHeight is the table height for the current rows.
func (d *ListDataSource) ContentHeight() float64 {
	return float64(d.Len()*FavoriteRowHeight + FavoriteFooterHeight)
}

func (d *ListDataSource) Select(index int) (string, error) {
	id, err := d.idAt(index)
	if err != nil {
		return "", err
	}
	return id, report(d.onSelect, id)
}

// Unfavorite reports the id at index to the unfavorite callback and drops
// the row once the callback succeeds.
func (d *ListDataSource) Unfavorite(index int) (string, error) {
	id, err := d.idAt(index)
	if err != nil {
		return "", err
	}
	if err := report(d.onUnfavorite, id); err != nil {
		return id, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.records {
		if d.records[i].ID() == id {
			d.records = append(d.records[:i:i], d.records[i+1:]...)
			break
		}
	}
	return id, nil
}

func (d *ListDataSource) idAt(index int) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return idAt(d.records, index)
}

func idAt(records []restaurant.Restaurant, index int) (string, error) {
	if index < 0 || index >= len(records) {
		return "", ErrIndexOutOfRange
	}
	return records[index].ID(), nil
}

func report(callback func(id string) error, id string) error {
	if callback == nil {
		return nil
	}
	return callback(id)
}
