package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Restaurant is the restaurant record as the directory sends it.
type Restaurant struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Cuisines   string     `json:"cuisines"`
	Thumb      string     `json:"thumb"`
	Location   Location   `json:"location"`
	UserRating UserRating `json:"user_rating"`
	PriceRange int        `json:"price_range"`
	Timings    string     `json:"timings"`
}

type Location struct {
	Address   string `json:"address"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type UserRating struct {
	AggregateRating AggregateRating `json:"aggregate_rating"`
}

// AggregateRating is either a textual rating ("4.3") or a numeric
// placeholder (0) sent for unrated restaurants.
type AggregateRating struct {
	Text    string
	Numeric bool
	Value   float64
}

func (r *AggregateRating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = AggregateRating{Numeric: true}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = AggregateRating{Text: s}
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("aggregate_rating: %w", err)
	}
	*r = AggregateRating{Numeric: true, Value: v}
	return nil
}

func (r AggregateRating) MarshalJSON() ([]byte, error) {
	if r.Numeric {
		return json.Marshal(r.Value)
	}
	return json.Marshal(r.Text)
}

// SearchResponse is one page of /search results.
type SearchResponse struct {
	ResultsFound int                `json:"results_found"`
	ResultsStart int                `json:"results_start"`
	ResultsShown int                `json:"results_shown"`
	Restaurants  []RestaurantResult `json:"restaurants"`
}

type RestaurantResult struct {
	Restaurant Restaurant `json:"restaurant"`
}

// SearchParams maps onto the /search query string. Lat and Lon are sent only
// when both are set.
type SearchParams struct {
	Lat        *float64
	Lon        *float64
	Start      int
	Count      int
	Query      string
	Sort       string
	Order      string
	EntityID   string
	EntityType string
	Cuisines   []string
}

func (p SearchParams) query() map[string]*string {
	q := map[string]*string{
		"start": String(strconv.Itoa(p.Start)),
	}
	if p.Lat != nil && p.Lon != nil {
		q["lat"] = String(strconv.FormatFloat(*p.Lat, 'f', -1, 64))
		q["lon"] = String(strconv.FormatFloat(*p.Lon, 'f', -1, 64))
	}
	if p.Count > 0 {
		q["count"] = String(strconv.Itoa(p.Count))
	}
	optional := map[string]string{
		"q":           p.Query,
		"sort":        p.Sort,
		"order":       p.Order,
		"entity_id":   p.EntityID,
		"entity_type": p.EntityType,
		"cuisines":    strings.Join(p.Cuisines, ","),
	}
	for k, v := range optional {
		if v != "" {
			q[k] = String(v)
		}
	}
	return q
}
