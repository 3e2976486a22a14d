package favorite

import (
	"database/sql"
	"fmt"
	"strings"
)

// SQLiteRepository keeps favorites in a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

const (
	sqliteAddFavoriteQuery = `
		INSERT OR IGNORE INTO favorites (device_id, restaurant_id, name, cuisines, timings)
		VALUES (?, ?, ?, ?, ?)
	`
	sqliteRemoveFavoriteQuery = `DELETE FROM favorites WHERE device_id = ? AND restaurant_id = ?`
	sqliteListFavoritesQuery  = `
		SELECT restaurant_id, name, cuisines, timings
		FROM favorites
		WHERE device_id = ?
		ORDER BY rowid
	`
)

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(deviceID string, f Favorite) error {
	res, err := r.db.Exec(sqliteAddFavoriteQuery, deviceID, f.ID, f.Name, f.Cuisines, f.Timings)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	if n == 0 {
		return ErrAlreadyFavorite
	}
	return nil
}

func (r *SQLiteRepository) Remove(deviceID string, restaurantID string) error {
	res, err := r.db.Exec(sqliteRemoveFavoriteQuery, deviceID, restaurantID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if n == 0 {
		return ErrNotFavorite
	}
	return nil
}

func (r *SQLiteRepository) List(deviceID string) ([]Favorite, error) {
	return listFavorites(r.db, sqliteListFavoritesQuery, deviceID)
}

func (r *SQLiteRepository) Contains(deviceID string, ids []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, deviceID)
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	query := fmt.Sprintf(`SELECT restaurant_id FROM favorites WHERE device_id = ? AND restaurant_id IN (%s)`, strings.Join(placeholders, ","))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to look up favorites: %w", err)
	}
	defer rows.Close()
	return scanIDSet(rows, out)
}
