package gnuplot

import (
	"strconv"
	"strings"
)

// ContourPath is one polyline of a contour at a fixed level.
type ContourPath struct {
	Level float64
	X, Y  []float64
}

// ContourLines asks gnuplot itself to trace the contours of the labeled grid
// (x, y, z) at the given levels, using its table output mode, and parses the
// result into polyline paths. With no levels gnuplot picks them
// automatically.
func (s *Session) ContourLines(x, y []float64, z [][]float64, levels []float64) ([]ContourPath, error) {
	block, err := s.SetDatablock(s.nextBlockName(), LabeledGrid(x, y, z))
	if err != nil {
		return nil, err
	}
	for _, cmd := range contourCommands(block, levels) {
		if _, err = s.Exec(cmd); err != nil {
			return nil, err
		}
	}
	reply, err := s.Exec("print $gp_contour_out")
	if err != nil {
		return nil, err
	}
	if _, err = s.Exec("unset contour"); err != nil {
		return nil, err
	}
	return parseContourTable(strings.Split(reply, "\n")), nil
}

// contourCommands builds the command sequence that makes gnuplot write the
// contour table of a datablock into $gp_contour_out without drawing
// anything.
func contourCommands(block string, levels []float64) []string {
	var cmds = []string{
		"set contour base",
		"unset surface",
	}
	if len(levels) > 0 {
		var vals = make([]string, len(levels))
		for i, l := range levels {
			vals[i] = strconv.FormatFloat(l, 'g', -1, 64)
		}
		cmds = append(cmds, "set cntrparam levels discrete "+strings.Join(vals, ","))
	}
	cmds = append(cmds,
		"set table $gp_contour_out",
		"splot "+block,
		"unset table",
		"set surface",
	)
	return cmds
}

// parseContourTable turns gnuplot's contour table output into paths. Curves
// are blank-line separated; each is announced by a header of the form
// "# Contour N, label: <level>".
func parseContourTable(lines []string) []ContourPath {
	var paths []ContourPath
	var cur *ContourPath
	var level float64

	var flush = func() {
		if cur != nil && len(cur.X) > 0 {
			paths = append(paths, *cur)
		}
		cur = nil
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "#"):
			if i := strings.Index(line, "label:"); i >= 0 {
				if v, err := strconv.ParseFloat(strings.TrimSpace(line[i+len("label:"):]), 64); err == nil {
					level = v
				}
			}
			flush()
		default:
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			px, errx := strconv.ParseFloat(fields[0], 64)
			py, erry := strconv.ParseFloat(fields[1], 64)
			if errx != nil || erry != nil {
				continue
			}
			if cur == nil {
				cur = &ContourPath{Level: level}
			}
			cur.X = append(cur.X, px)
			cur.Y = append(cur.Y, py)
		}
	}
	flush()
	return paths
}

// Levels lists the distinct contour levels of paths in encounter order.
func Levels(paths []ContourPath) []float64 {
	var seen = make(map[float64]bool)
	var levels []float64
	for _, p := range paths {
		if !seen[p.Level] {
			seen[p.Level] = true
			levels = append(levels, p.Level)
		}
	}
	return levels
}
