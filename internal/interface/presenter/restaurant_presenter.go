package presenter

import "github.com/wichananm65/eatery-backend/internal/restaurant"

// RestaurantPresenter shapes restaurant records for delivery layer responses.
type RestaurantPresenter struct{}

func NewRestaurantPresenter() *RestaurantPresenter {
	return &RestaurantPresenter{}
}

type RestaurantResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Cuisines   string  `json:"cuisines"`
	Thumbnail  string  `json:"thumbnail,omitempty"`
	Address    string  `json:"address,omitempty"`
	Latitude   string  `json:"latitude,omitempty"`
	Longitude  string  `json:"longitude,omitempty"`
	Rating     *string `json:"rating,omitempty"`
	Price      string  `json:"price"`
	Timing     string  `json:"timing"`
	Distance   string  `json:"distance,omitempty"`
	IsFavorite bool    `json:"isFavorite"`
}

func (p *RestaurantPresenter) ToResponse(r restaurant.Restaurant) RestaurantResponse {
	lat, lon := r.Location()
	resp := RestaurantResponse{
		ID:         r.ID(),
		Name:       r.Name(),
		Cuisines:   r.Cuisines(),
		Thumbnail:  r.Thumbnail(),
		Address:    r.Address(),
		Latitude:   lat,
		Longitude:  lon,
		Price:      r.PriceRange(),
		Timing:     r.Timing(),
		Distance:   r.Distance(),
		IsFavorite: r.IsFavorite(),
	}
	if rating, ok := r.Rating(); ok {
		resp.Rating = &rating
	}
	return resp
}

func (p *RestaurantPresenter) ToList(records []restaurant.Restaurant) []RestaurantResponse {
	result := make([]RestaurantResponse, 0, len(records))
	for _, r := range records {
		result = append(result, p.ToResponse(r))
	}
	return result
}
