package gnuplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotSpecString(t *testing.T) {
	var cases = []struct {
		spec PlotSpec
		want string
	}{
		{PlotSpec{Data: "$d"}, "$d notitle"},
		{PlotSpec{Data: "sin(x)", Title: "sine"}, "sin(x) title 'sine'"},
		{PlotSpec{Data: "$d", Using: "1:2", With: "lines lw 2", Title: "a"},
			"$d using 1:2 with lines lw 2 title 'a'"},
		{PlotSpec{Data: "$d", Axes: "x1y2", With: "points"},
			"$d axes x1y2 with points notitle"},
		{PlotSpec{Data: "'file.dat'", Title: "it's"},
			"'file.dat' title 'it''s'"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.spec.String())
	}
}

func TestPlotCommand(t *testing.T) {
	cmd, err := PlotCommand(false,
		PlotSpec{Data: "$a", With: "lines", Title: "first"},
		PlotSpec{Data: "$b", With: "points", Title: "second"},
	)
	require.NoError(t, err)
	assert.Equal(t, "plot $a with lines title 'first', $b with points title 'second'", cmd)
}

func TestSplotCommand(t *testing.T) {
	cmd, err := PlotCommand(true, PlotSpec{Data: "$grid", With: "pm3d"})
	require.NoError(t, err)
	assert.Equal(t, "splot $grid with pm3d notitle", cmd)
}

func TestPlotCommandRejectsEmptyInput(t *testing.T) {
	_, err := PlotCommand(false)
	assert.Error(t, err)

	_, err = PlotCommand(false, PlotSpec{With: "lines"})
	assert.Error(t, err)
}
