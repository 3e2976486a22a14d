package favorite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	pgAddFavoriteQuery = `
		INSERT INTO favorites (device_id, restaurant_id, name, cuisines, timings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (device_id, restaurant_id) DO NOTHING
		RETURNING restaurant_id
	`
	pgRemoveFavoriteQuery = `
		DELETE FROM favorites
		WHERE device_id = $1 AND restaurant_id = $2
	`
	pgListFavoritesQuery = `
		SELECT restaurant_id, name, cuisines, timings
		FROM favorites
		WHERE device_id = $1
		ORDER BY created_at, restaurant_id
	`
	pgContainsFavoritesQuery = `
		SELECT restaurant_id
		FROM favorites
		WHERE device_id = $1 AND restaurant_id = ANY($2::text[])
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(deviceID string, f Favorite) error {
	var id string
	err := r.db.QueryRow(pgAddFavoriteQuery, deviceID, f.ID, f.Name, f.Cuisines, f.Timings, time.Now().UTC()).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAlreadyFavorite
	}
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Remove(deviceID string, restaurantID string) error {
	res, err := r.db.Exec(pgRemoveFavoriteQuery, deviceID, restaurantID)
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

func (r *PostgresRepository) List(deviceID string) ([]Favorite, error) {
	return listFavorites(r.db, pgListFavoritesQuery, deviceID)
}

func (r *PostgresRepository) Contains(deviceID string, ids []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(pgContainsFavoritesQuery, deviceID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to look up favorites: %w", err)
	}
	defer rows.Close()
	return scanIDSet(rows, out)
}

func listFavorites(db *sql.DB, query string, deviceID string) ([]Favorite, error) {
	rows, err := db.Query(query, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	out := make([]Favorite, 0)
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.Name, &f.Cuisines, &f.Timings); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanIDSet(rows *sql.Rows, out map[string]bool) (map[string]bool, error) {
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite id: %w", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}
