package presenter

import "math"

// MaxGridWidth bounds the container width a grid is laid out for.
const MaxGridWidth = 10000

// GridLayout sizes the restaurant grid. Cells keep a fixed aspect ratio and
// stretch so that a row fills the container exactly.
type GridLayout struct {
	EstimatedCellWidth float64
	InteritemSpacing   float64
	LineSpacing        float64
	AspectRatio        float64
}

func DefaultGridLayout() GridLayout {
	return GridLayout{
		EstimatedCellWidth: 270,
		InteritemSpacing:   10,
		LineSpacing:        18,
		AspectRatio:        1.73,
	}
}

type CellSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type GridMetrics struct {
	Columns     int        `json:"columns"`
	Cells       []CellSize `json:"cells"`
	Spacing     float64    `json:"spacing"`
	LineSpacing float64    `json:"lineSpacing"`
}

// ValidWidth reports whether width is a finite container width in
// (0, MaxGridWidth].
func ValidWidth(width float64) bool {
	return !math.IsNaN(width) && width > 0 && width <= MaxGridWidth
}

// clampWidth maps non-finite or out of range widths into [0, MaxGridWidth].
func clampWidth(width float64) float64 {
	if math.IsNaN(width) || width < 0 {
		return 0
	}
	return math.Min(width, MaxGridWidth)
}

// Columns returns how many cells fit in a row of the given width: the
// rounded-up ratio to the estimated width when it exceeds 2, otherwise 2.
func (g GridLayout) Columns(width float64) int {
	if g.EstimatedCellWidth <= 0 || math.IsNaN(g.EstimatedCellWidth) {
		return 2
	}
	raw := clampWidth(width) / g.EstimatedCellWidth
	if raw > 2 {
		return int(math.Min(math.Ceil(raw), MaxGridWidth))
	}
	return 2
}

// Cells computes one row of cell sizes. Widths are whole points; the points
// left over after an even split go one each to the trailing cells, so the row
// sums to width minus the spacing between cells.
func (g GridLayout) Cells(width float64) GridMetrics {
	width = clampWidth(width)
	n := g.Columns(width)
	available := math.Max(0, width-g.InteritemSpacing*float64(n-1))

	base := math.Floor(available / float64(n))
	leftover := int(math.Floor(available - base*float64(n)))

	cells := make([]CellSize, n)
	for i := range cells {
		w := base
		if i >= n-leftover {
			w++
		}
		cells[i] = CellSize{Width: w, Height: w * g.AspectRatio}
	}
	// absorb any fractional remainder in the last cell
	var sum float64
	for _, c := range cells {
		sum += c.Width
	}
	if diff := available - sum; diff != 0 && n > 0 {
		last := &cells[n-1]
		last.Width += diff
		last.Height = last.Width * g.AspectRatio
	}

	return GridMetrics{
		Columns:     n,
		Cells:       cells,
		Spacing:     g.InteritemSpacing,
		LineSpacing: g.LineSpacing,
	}
}
