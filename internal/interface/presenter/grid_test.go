package presenter

import (
	"math"
	"testing"
)

func TestColumns(t *testing.T) {
	g := DefaultGridLayout()
	cases := map[float64]int{
		900:  4,
		541:  3,
		540:  2,
		320:  2,
		1920: 8,
	}
	for width, want := range cases {
		if got := g.Columns(width); got != want {
			t.Errorf("Columns(%v) = %d, want %d", width, got, want)
		}
	}
}

func TestCells_FillRow(t *testing.T) {
	g := DefaultGridLayout()
	m := g.Cells(900)
	if m.Columns != 4 || len(m.Cells) != 4 {
		t.Fatalf("expected 4 cells, got %+v", m)
	}

	var sum float64
	for _, c := range m.Cells {
		sum += c.Width
		if c.Height != c.Width*g.AspectRatio {
			t.Errorf("cell %+v does not keep the aspect ratio", c)
		}
	}
	if want := 900 - 3*g.InteritemSpacing; sum != want {
		t.Fatalf("cells sum to %v, want %v", sum, want)
	}
	if m.Cells[3].Width <= m.Cells[0].Width {
		t.Fatalf("expected trailing cells to absorb leftover width: %+v", m.Cells)
	}
}

func TestCells_Narrow(t *testing.T) {
	g := DefaultGridLayout()
	m := g.Cells(375)
	if m.Columns != 2 {
		t.Fatalf("expected 2 columns, got %d", m.Columns)
	}
	if m.Cells[0].Width+m.Cells[1].Width != 375-g.InteritemSpacing {
		t.Fatalf("unexpected widths %+v", m.Cells)
	}
}

func TestCells_Fractional(t *testing.T) {
	g := DefaultGridLayout()
	m := g.Cells(1000.5)

	var sum float64
	for _, c := range m.Cells {
		sum += c.Width
	}
	want := 1000.5 - float64(m.Columns-1)*g.InteritemSpacing
	if sum != want {
		t.Fatalf("cells sum to %v, want %v", sum, want)
	}
}

func TestValidWidth(t *testing.T) {
	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -5, MaxGridWidth + 1, 1e12} {
		if ValidWidth(w) {
			t.Errorf("ValidWidth(%v) = true", w)
		}
	}
	for _, w := range []float64{1, 375, 900, MaxGridWidth} {
		if !ValidWidth(w) {
			t.Errorf("ValidWidth(%v) = false", w)
		}
	}
}

func TestCells_UnboundedWidth(t *testing.T) {
	g := DefaultGridLayout()
	maxColumns := g.Columns(MaxGridWidth)

	for _, w := range []float64{math.Inf(1), 1e12, 1e9} {
		m := g.Cells(w)
		if m.Columns != maxColumns || len(m.Cells) != maxColumns {
			t.Fatalf("Cells(%v) built %d columns, want %d", w, len(m.Cells), maxColumns)
		}
	}

	for _, w := range []float64{math.NaN(), math.Inf(-1)} {
		m := g.Cells(w)
		if m.Columns != 2 {
			t.Fatalf("Cells(%v) = %d columns, want 2", w, m.Columns)
		}
		for _, c := range m.Cells {
			if math.IsNaN(c.Width) || math.IsNaN(c.Height) {
				t.Fatalf("Cells(%v) produced NaN sizes %+v", w, m.Cells)
			}
		}
	}

	tiny := GridLayout{EstimatedCellWidth: 1e-9, AspectRatio: 1}
	if n := tiny.Columns(MaxGridWidth); n > MaxGridWidth {
		t.Fatalf("columns not bounded: %d", n)
	}
}
