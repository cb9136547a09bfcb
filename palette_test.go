package gnuplot

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rgbPalette is a fixed palette with exactly known colors.
type rgbPalette []color.Color

func (p rgbPalette) Colors() []color.Color { return p }

var testPalette = rgbPalette{
	color.RGBA{R: 0xff, A: 0xff},
	color.RGBA{G: 0xff, A: 0xff},
	color.RGBA{B: 0xff, A: 0xff},
}

func TestPaletteCmdFromFixedColors(t *testing.T) {
	var want = "set palette defined (0 '#ff0000', 1 '#00ff00', 2 '#0000ff')"
	assert.Equal(t, want, PaletteCmdFrom(testPalette, true))

	assert.Equal(t, want+"\nset palette maxcolors 3", PaletteCmdFrom(testPalette, false))
}

func TestLinetypesCmdFromFixedColors(t *testing.T) {
	assert.Equal(t,
		"set linetype 1 lc rgb '#ff0000'\n"+
			"set linetype 2 lc rgb '#00ff00'\n"+
			"set linetype 3 lc rgb '#0000ff'\n"+
			"set linetype cycle 3",
		LinetypesCmdFrom(testPalette))
}

func TestPaletteCmdNamed(t *testing.T) {
	for _, name := range []string{"rainbow", "heat", "coolwarm", "kindlmann", "blackbody", "blues", "spectral"} {
		cmd, err := PaletteCmd(name, 5, true)
		require.NoError(t, err, "palette %q", name)
		assert.True(t, strings.HasPrefix(cmd, "set palette defined (0 '#"), "palette %q: %s", name, cmd)
		assert.Equal(t, 5, strings.Count(cmd, "'#"), "palette %q must have 5 entries", name)
	}
}

func TestPaletteCmdIsDeterministic(t *testing.T) {
	first, err := PaletteCmd("coolwarm", 7, false)
	require.NoError(t, err)
	again, err := PaletteCmd("coolwarm", 7, false)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestPaletteCmdUnknownName(t *testing.T) {
	_, err := PaletteCmd("nosuch", 5, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown palette")
}

func TestLinetypesCmdNamed(t *testing.T) {
	cmd, err := LinetypesCmd("rainbow", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(cmd, "lc rgb"), "four linetype lines")
	assert.True(t, strings.HasSuffix(cmd, "set linetype cycle 4"))
}
