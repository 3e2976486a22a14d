package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const searchBody = `{
	"results_found": 2, "results_start": 0, "results_shown": 2,
	"restaurants": [
		{"restaurant": {"id": "42", "name": "Tasca", "cuisines": "Portuguese, Seafood",
			"thumb": "https://b.zmtcdn.com/x.jpg?fit=around%7C200%3A200&crop=200%3A200%3B%2A%2C%2A",
			"location": {"address": "Rua 1", "latitude": "38.7", "longitude": "-9.1"},
			"user_rating": {"aggregate_rating": "4.3"}, "price_range": 2,
			"timings": "12 Noon to 11 PM (Mon-Sun)"}},
		{"restaurant": {"id": "43", "name": "New Place", "cuisines": "Cafe",
			"thumb": "", "location": {"address": "", "latitude": "0", "longitude": "0"},
			"user_rating": {"aggregate_rating": 0}, "price_range": 1, "timings": "24 Hours"}}
	]
}`

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	c, err := NewClient(srv.URL+"/api/v2.1", "test-key", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, srv
}

func TestSearch_SendsHeadersAndDecodes(t *testing.T) {
	var gotPath, gotQuery, gotKey, gotAccept string
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("user-key")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(searchBody))
	})
	defer srv.Close()

	res, err := c.Search(context.Background(), SearchParams{Lat: Float(38.7), Lon: Float(-9.1), Start: 20, Count: 20, Cuisines: []string{"1", "25"}})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if gotPath != "/api/v2.1/search" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" || gotAccept != "application/json" {
		t.Fatalf("missing headers: user-key=%q accept=%q", gotKey, gotAccept)
	}
	if !strings.Contains(gotQuery, "cuisines=1%2C25") {
		t.Fatalf("expected encoded comma in query, got %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "lat=38.7&lon=-9.1") {
		t.Fatalf("expected coordinates in query, got %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "start=20") {
		t.Fatalf("expected start offset in query, got %q", gotQuery)
	}

	if len(res.Restaurants) != 2 || res.ResultsShown != 2 {
		t.Fatalf("unexpected response %+v", res)
	}
	first := res.Restaurants[0].Restaurant
	if first.ID != "42" || first.UserRating.AggregateRating.Numeric || first.UserRating.AggregateRating.Text != "4.3" {
		t.Fatalf("unexpected first restaurant %+v", first)
	}
	if !res.Restaurants[1].Restaurant.UserRating.AggregateRating.Numeric {
		t.Fatalf("expected numeric placeholder rating for second restaurant")
	}
}

func TestSearch_WithoutLocation(t *testing.T) {
	var gotQuery string
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"results_found": 0, "restaurants": []}`))
	})
	defer srv.Close()

	if _, err := c.Search(context.Background(), SearchParams{Lat: Float(1)}); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if gotQuery != "start=0" {
		t.Fatalf("expected coordinates to be left out, got %q", gotQuery)
	}
}

func TestGet_BadStatus(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer srv.Close()

	_, err := c.Search(context.Background(), SearchParams{})
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
}

func TestGet_DecodeFailure(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"restaurants": "nope"`))
	})
	defer srv.Close()

	_, err := c.Search(context.Background(), SearchParams{})
	if !errors.Is(err, ErrDecodeFailure) {
		t.Fatalf("expected ErrDecodeFailure, got %v", err)
	}
}

func TestGet_NoConnectivity(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := c.Search(context.Background(), SearchParams{})
	if !errors.Is(err, ErrNoConnectivity) {
		t.Fatalf("expected ErrNoConnectivity, got %v", err)
	}
}

func TestRestaurant_Detail(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2.1/restaurant" || r.URL.Query().Get("res_id") != "7" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"id": "7", "name": "Detail", "user_rating": {"aggregate_rating": "3.9"}}`))
	})
	defer srv.Close()

	r, err := c.Restaurant(context.Background(), "7")
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if r.Name != "Detail" {
		t.Fatalf("unexpected restaurant %+v", r)
	}

	if _, err := c.Restaurant(context.Background(), ""); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestEncodeQuery(t *testing.T) {
	got := EncodeQuery(map[string]*string{
		"q":     String("sushi bar"),
		"lat":   String("1.5"),
		"skip":  nil,
		"multi": String("a,b"),
	})
	want := "lat=1.5&multi=a%2Cb&q=sushi%20bar"
	if got != want {
		t.Fatalf("EncodeQuery = %q, want %q", got, want)
	}
}

func TestNewClient_InvalidURL(t *testing.T) {
	if _, err := NewClient("not a url", "k", 0); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}
