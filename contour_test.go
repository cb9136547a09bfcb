package gnuplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contourTable = []string{
	"# Contour 0, label:  2",
	" 0.5 1 2",
	" 0.6 1.1 2",
	" 0.7 1.3 2",
	"",
	" 2.5 3 2",
	" 2.6 3.1 2",
	"",
	"# Contour 1, label:  1",
	" 1.5 2 1",
	" 1.6 2.1 1",
	"",
}

func TestParseContourTable(t *testing.T) {
	var paths = parseContourTable(contourTable)
	require.Len(t, paths, 3)

	assert.Equal(t, 2.0, paths[0].Level)
	assert.Equal(t, []float64{0.5, 0.6, 0.7}, paths[0].X)
	assert.Equal(t, []float64{1, 1.1, 1.3}, paths[0].Y)

	assert.Equal(t, 2.0, paths[1].Level)
	assert.Equal(t, []float64{2.5, 2.6}, paths[1].X)

	assert.Equal(t, 1.0, paths[2].Level)
	assert.Equal(t, []float64{1.5, 1.6}, paths[2].X)

	assert.Equal(t, []float64{2, 1}, Levels(paths))
}

func TestParseContourTableIgnoresJunk(t *testing.T) {
	var paths = parseContourTable([]string{
		"# Surface 0 of 1 surfaces",
		"garbage line",
		" 1 2 3",
		"",
	})
	require.Len(t, paths, 1)
	assert.Equal(t, []float64{1}, paths[0].X)
	assert.Equal(t, []float64{2}, paths[0].Y)
}

func TestParseContourTableEmpty(t *testing.T) {
	assert.Empty(t, parseContourTable(nil))
	assert.Empty(t, parseContourTable([]string{"", "# nothing", ""}))
}

func TestContourCommands(t *testing.T) {
	var cmds = contourCommands("$z", []float64{0.5, 1})
	assert.Equal(t, []string{
		"set contour base",
		"unset surface",
		"set cntrparam levels discrete 0.5,1",
		"set table $gp_contour_out",
		"splot $z",
		"unset table",
		"set surface",
	}, cmds)
}

func TestContourCommandsAutoLevels(t *testing.T) {
	var cmds = contourCommands("$z", nil)
	assert.NotContains(t, cmds, "set cntrparam levels discrete ")
	assert.Contains(t, cmds, "splot $z")
}

func TestSessionContourLines(t *testing.T) {
	s, fe := newTestSession(t)
	fe.replies["print $gp_contour_out"] = contourTable

	paths, err := s.ContourLines(
		[]float64{0, 1, 2},
		[]float64{0, 1, 2},
		[][]float64{{0, 1, 2}, {1, 2, 3}, {2, 3, 4}},
		[]float64{1, 2},
	)
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	var sent = fe.sentLines()
	assert.Contains(t, sent, "set contour base")
	assert.Contains(t, sent, "set cntrparam levels discrete 1,2")
	assert.Contains(t, sent, "splot $gp_data_1")
	assert.Contains(t, sent, "unset contour")
}
