package restaurant

import (
	"math"
	"testing"
)

func TestDistanceMeters(t *testing.T) {
	lisbon := Origin{Lat: 38.7223, Lon: -9.1393}

	// Lisbon to Porto is roughly 274 km
	m, ok := lisbon.DistanceMeters("41.1579", "-8.6291")
	if !ok {
		t.Fatalf("expected valid distance")
	}
	if math.Abs(m-274000) > 5000 {
		t.Fatalf("unexpected distance %f", m)
	}

	if _, ok := lisbon.DistanceMeters("", "-8.6"); ok {
		t.Fatalf("expected failure for empty latitude")
	}
	if _, ok := lisbon.DistanceMeters("abc", "1"); ok {
		t.Fatalf("expected failure for garbage latitude")
	}
}

func TestFormatDistance(t *testing.T) {
	cases := map[float64]string{
		0:      "0 m",
		849.6:  "850 m",
		1000:   "1.0 km",
		1234.0: "1.2 km",
	}
	for in, want := range cases {
		if got := FormatDistance(in); got != want {
			t.Errorf("FormatDistance(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestDistanceLabel(t *testing.T) {
	o := Origin{Lat: 0, Lon: 0}
	if got := o.DistanceLabel("0", "0"); got != "0 m" {
		t.Fatalf("expected 0 m, got %q", got)
	}
	if got := o.DistanceLabel("", ""); got != "" {
		t.Fatalf("expected empty label, got %q", got)
	}
}
