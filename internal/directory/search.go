package directory

import (
	"context"
	"errors"
	"fmt"
)

var ErrMissingID = errors.New("restaurant id is required")

// Search fetches one page of restaurants around p.Lat/p.Lon.
func (c *Client) Search(ctx context.Context, p SearchParams) (SearchResponse, error) {
	return Get[SearchResponse](ctx, c, "/search", p.query())
}

// Restaurant fetches the full record of a single restaurant.
func (c *Client) Restaurant(ctx context.Context, id string) (Restaurant, error) {
	if id == "" {
		return Restaurant{}, ErrMissingID
	}
	r, err := Get[Restaurant](ctx, c, "/restaurant", map[string]*string{"res_id": String(id)})
	if err != nil {
		return Restaurant{}, fmt.Errorf("restaurant %s: %w", id, err)
	}
	return r, nil
}
