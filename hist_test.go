package gnuplot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHist1D(t *testing.T) {
	h, err := Hist1D([]float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}, 4)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.875, 1.75, 2.625, 3.5}, h.Edges)
	assert.Equal(t, []float64{2, 2, 2, 2}, h.Counts)
}

func TestHist1DMaxValueLandsInLastBin(t *testing.T) {
	h, err := Hist1D([]float64{0, 1, 2, 3, 4}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, h.Counts)
}

func TestHist1DConstantData(t *testing.T) {
	h, err := Hist1D([]float64{7, 7, 7}, 3)
	require.NoError(t, err)

	var total float64
	for _, c := range h.Counts {
		total += c
	}
	assert.Equal(t, float64(3), total)
	assert.Equal(t, 6.5, h.Edges[0])
	assert.Equal(t, 7.5, h.Edges[len(h.Edges)-1])
}

func TestHist1DIgnoresNaN(t *testing.T) {
	h, err := Hist1D([]float64{1, 2, math.NaN(), 3}, 3)
	require.NoError(t, err)

	var total float64
	for _, c := range h.Counts {
		total += c
	}
	assert.Equal(t, float64(3), total)
}

func TestHist1DSturgesDefault(t *testing.T) {
	h, err := Hist1D(make([]float64, 100), 0)
	require.NoError(t, err)
	// ceil(log2(100)) + 1 = 8
	assert.Len(t, h.Counts, 8)
}

func TestHist1DEmpty(t *testing.T) {
	_, err := Hist1D(nil, 4)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHist1DCentersAndDataset(t *testing.T) {
	h, err := Hist1D([]float64{0, 1, 2, 3}, 3)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, 1.5, 2.5}, h.Centers())

	lines, err := Datablock(h.Dataset())
	require.NoError(t, err)
	assert.Len(t, lines, 3)
	assert.Equal(t, "with boxes notitle", h.PlotRecipe())
}

func TestHist2D(t *testing.T) {
	var x = []float64{0, 0, 1, 1}
	var y = []float64{0, 1, 0, 1}

	h, err := Hist2D(x, y, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 1}, {1, 1}}, h.Counts)
}

func TestHist2DShapeMismatch(t *testing.T) {
	_, err := Hist2D([]float64{1, 2}, []float64{1}, 2, 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestHist2DDataset(t *testing.T) {
	h, err := Hist2D([]float64{0, 1, 2, 3}, []float64{0, 1, 2, 3}, 2, 2)
	require.NoError(t, err)

	lines, err := Datablock(h.Dataset())
	require.NoError(t, err)
	// 2x2 grid: two groups of two lines, each followed by a blank line.
	assert.Len(t, lines, 6)
	assert.Equal(t, "with image notitle", h.PlotRecipe())
}
