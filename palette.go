package gnuplot

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
)

// PaletteCmd renders a named palette into the "set palette defined (...)"
// command gnuplot expects. The same name and size always produce the same
// string. With smooth false a trailing "set palette maxcolors" keeps the
// colors discrete.
func PaletteCmd(name string, n int, smooth bool) (string, error) {
	p, err := lookupPalette(name, n)
	if err != nil {
		return "", err
	}
	return PaletteCmdFrom(p, smooth), nil
}

// PaletteCmdFrom renders any gonum/plot palette into the equivalent
// "set palette defined" command.
func PaletteCmdFrom(p palette.Palette, smooth bool) string {
	var colors = p.Colors()
	var entries = make([]string, len(colors))
	for i, c := range colors {
		entries[i] = strconv.Itoa(i) + " '" + hexColor(c) + "'"
	}
	var cmd = "set palette defined (" + strings.Join(entries, ", ") + ")"
	if !smooth {
		cmd += "\nset palette maxcolors " + strconv.Itoa(len(colors))
	}
	return cmd
}

// LinetypesCmd renders a named palette as a block of "set linetype" commands
// so that successive curves cycle through its colors.
func LinetypesCmd(name string, n int) (string, error) {
	p, err := lookupPalette(name, n)
	if err != nil {
		return "", err
	}
	return LinetypesCmdFrom(p), nil
}

// LinetypesCmdFrom is LinetypesCmd for any gonum/plot palette.
func LinetypesCmdFrom(p palette.Palette) string {
	var colors = p.Colors()
	var b strings.Builder
	for i, c := range colors {
		fmt.Fprintf(&b, "set linetype %d lc rgb '%s'\n", i+1, hexColor(c))
	}
	fmt.Fprintf(&b, "set linetype cycle %d", len(colors))
	return b.String()
}

func lookupPalette(name string, n int) (palette.Palette, error) {
	switch strings.ToLower(name) {
	case "rainbow":
		return palette.Rainbow(n, palette.Red, palette.Blue, 1, 1, 1), nil
	case "heat":
		return palette.Heat(n, 1), nil
	case "coolwarm", "moreland":
		return moreland.SmoothBlueRed().Palette(n), nil
	case "kindlmann":
		return moreland.Kindlmann().Palette(n), nil
	case "blackbody":
		return moreland.BlackBody().Palette(n), nil
	case "blues":
		return brewer.GetPalette(brewer.TypeSequential, "Blues", n)
	case "spectral":
		return brewer.GetPalette(brewer.TypeDiverging, "Spectral", n)
	default:
		return nil, errors.Errorf("gnuplot: unknown palette %q", name)
	}
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
