package restaurant

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// Origin is the point distances are measured from, usually the device location.
type Origin struct {
	Lat float64
	Lon float64
}

// DistanceMeters returns the great-circle distance from o to the given
// coordinates as the directory sends them (decimal strings).
func (o Origin) DistanceMeters(lat, lon string) (float64, bool) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return 0, false
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return 0, false
	}
	p1 := s2.LatLngFromDegrees(o.Lat, o.Lon)
	p2 := s2.LatLngFromDegrees(la, lo)
	if !p2.IsValid() {
		return 0, false
	}
	return p1.Distance(p2).Radians() * earthRadiusMeters, true
}

// DistanceLabel formats the distance to (lat, lon), or returns "" when the
// coordinates are unusable.
func (o Origin) DistanceLabel(lat, lon string) string {
	m, ok := o.DistanceMeters(lat, lon)
	if !ok {
		return ""
	}
	return FormatDistance(m)
}

// FormatDistance renders meters as "850 m" or "1.2 km".
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
