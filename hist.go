package gnuplot

import (
	"math"

	"github.com/pkg/errors"
)

// Histo1D is a one dimensional histogram: len(Edges) == len(Counts)+1.
type Histo1D struct {
	Edges  []float64
	Counts []float64
}

// Hist1D bins data into nbins equal-width bins spanning [min, max]. A
// non-positive nbins picks a bin count with Sturges' rule.
func Hist1D(data []float64, nbins int) (*Histo1D, error) {
	if len(data) == 0 {
		return nil, ErrNoData
	}
	if nbins <= 0 {
		nbins = sturges(len(data))
	}

	lo, hi := minMax(data)
	if lo == hi {
		// Degenerate range; widen so every value lands in a bin.
		lo, hi = lo-0.5, hi+0.5
	}

	var h = &Histo1D{
		Edges:  make([]float64, nbins+1),
		Counts: make([]float64, nbins),
	}
	var width = (hi - lo) / float64(nbins)
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		var idx = int((v - lo) / width)
		if idx == nbins { // v == hi goes into the last bin
			idx--
		}
		h.Counts[idx]++
	}
	return h, nil
}

// Centers returns the bin midpoints.
func (h *Histo1D) Centers() []float64 {
	var c = make([]float64, len(h.Counts))
	for i := range c {
		c[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	return c
}

// Dataset returns the histogram as center/count columns.
func (h *Histo1D) Dataset() Dataset {
	return Columns(h.Centers(), h.Counts)
}

// PlotRecipe returns the plot style that renders this histogram the usual
// way.
func (h *Histo1D) PlotRecipe() string {
	return "with boxes notitle"
}

// Histo2D is a two dimensional histogram of shape len(XEdges)-1 by
// len(YEdges)-1.
type Histo2D struct {
	XEdges []float64
	YEdges []float64
	Counts [][]float64 // Counts[xbin][ybin]
}

// Hist2D bins the (x, y) pairs into an nx by ny grid. Non-positive bin
// counts fall back to Sturges' rule. The two arrays must have equal length.
func Hist2D(x, y []float64, nx, ny int) (*Histo2D, error) {
	if len(x) != len(y) {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"x has %d elements, y has %d", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, ErrNoData
	}
	if nx <= 0 {
		nx = sturges(len(x))
	}
	if ny <= 0 {
		ny = sturges(len(y))
	}

	xlo, xhi := minMax(x)
	ylo, yhi := minMax(y)
	if xlo == xhi {
		xlo, xhi = xlo-0.5, xhi+0.5
	}
	if ylo == yhi {
		ylo, yhi = ylo-0.5, yhi+0.5
	}

	var h = &Histo2D{
		XEdges: edges(xlo, xhi, nx),
		YEdges: edges(ylo, yhi, ny),
		Counts: make([][]float64, nx),
	}
	for i := range h.Counts {
		h.Counts[i] = make([]float64, ny)
	}

	var xw = (xhi - xlo) / float64(nx)
	var yw = (yhi - ylo) / float64(ny)
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		var xi = int((x[i] - xlo) / xw)
		var yi = int((y[i] - ylo) / yw)
		if xi == nx {
			xi--
		}
		if yi == ny {
			yi--
		}
		h.Counts[xi][yi]++
	}
	return h, nil
}

// Dataset returns the histogram as a labeled grid of bin centers and counts.
func (h *Histo2D) Dataset() Dataset {
	return LabeledGrid(centers(h.XEdges), centers(h.YEdges), h.Counts)
}

// PlotRecipe returns the splot style that renders this histogram as an
// image map.
func (h *Histo2D) PlotRecipe() string {
	return "with image notitle"
}

func sturges(n int) int {
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

func minMax(data []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func edges(lo, hi float64, n int) []float64 {
	var e = make([]float64, n+1)
	var w = (hi - lo) / float64(n)
	for i := range e {
		e[i] = lo + float64(i)*w
	}
	return e
}

func centers(edges []float64) []float64 {
	var c = make([]float64, len(edges)-1)
	for i := range c {
		c[i] = (edges[i] + edges[i+1]) / 2
	}
	return c
}
