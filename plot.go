package gnuplot

import (
	"strings"

	"github.com/pkg/errors"
)

// PlotSpec describes one curve of a plot command: a data source plus its
// modifiers. Data may be a datablock name ("$points"), a function ("sin(x)")
// or a quoted file name ("'data.txt'").
type PlotSpec struct {
	Data  string
	Using string // column selection, e.g. "1:2"
	With  string // style, e.g. "lines lw 2"
	Title string // legend entry; empty means "notitle"
	Axes  string // e.g. "x1y2"
}

func (ps PlotSpec) String() string {
	var parts = []string{ps.Data}
	if ps.Using != "" {
		parts = append(parts, "using "+ps.Using)
	}
	if ps.Axes != "" {
		parts = append(parts, "axes "+ps.Axes)
	}
	if ps.With != "" {
		parts = append(parts, "with "+ps.With)
	}
	if ps.Title != "" {
		parts = append(parts, "title "+quote(ps.Title))
	} else {
		parts = append(parts, "notitle")
	}
	return strings.Join(parts, " ")
}

// PlotCommand assembles a complete plot (or splot) command line from the
// given specs.
func PlotCommand(splot bool, specs ...PlotSpec) (string, error) {
	if len(specs) == 0 {
		return "", errors.New("gnuplot: plot command needs at least one spec")
	}
	var rendered = make([]string, len(specs))
	for i, ps := range specs {
		if ps.Data == "" {
			return "", errors.Errorf("gnuplot: plot spec %d has no data source", i+1)
		}
		rendered[i] = ps.String()
	}
	var verb = "plot "
	if splot {
		verb = "splot "
	}
	return verb + strings.Join(rendered, ", "), nil
}
