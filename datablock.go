package gnuplot

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type datasetKind int

const (
	kindColumns datasetKind = iota
	kindGrid
	kindGridPair
	kindLabeledGrid
)

// Dataset is the input of Datablock: one of the array layouts gnuplot
// understands as inline data. Build one with Columns, Grid, GridPair or
// LabeledGrid. The zero value is an empty column set and serializes to an
// error.
type Dataset struct {
	kind datasetKind
	cols []column
	a, b [][]float64
	err  error // conversion error, reported by Datablock
}

type column struct {
	vals   []string
	quoted bool
}

// Columns builds a Dataset from one or more 1-D arrays combined column-wise.
// Supported element types are the usual numeric slices and []string; string
// values are double-quoted on output. All arrays must have the same length,
// which is checked by Datablock.
func Columns(cols ...interface{}) Dataset {
	var ds = Dataset{kind: kindColumns}
	for _, arg := range cols {
		c, err := toColumn(arg)
		if err != nil {
			ds.err = err
			return ds
		}
		ds.cols = append(ds.cols, c)
	}
	return ds
}

// Grid builds a Dataset from a single 2-D grid z[row][col]. Each cell is
// emitted as "row col value" with zero-based indices.
func Grid(z [][]float64) Dataset {
	return Dataset{kind: kindGrid, a: z}
}

// GridPair builds a Dataset from two grids of identical shape, emitted cell
// by cell as value pairs without index columns.
func GridPair(a, b [][]float64) Dataset {
	return Dataset{kind: kindGridPair, a: a, b: b}
}

// LabeledGrid builds a Dataset from two 1-D coordinate arrays and a grid of
// shape len(x) rows by len(y) columns. Each cell is emitted as
// "x[row] y[col] z[row][col]".
func LabeledGrid(x, y interface{}, z [][]float64) Dataset {
	var ds = Dataset{kind: kindLabeledGrid, a: z}
	for _, arg := range []interface{}{x, y} {
		c, err := toColumn(arg)
		if err != nil {
			ds.err = err
			return ds
		}
		ds.cols = append(ds.cols, c)
	}
	return ds
}

// Datablock serializes a Dataset into the text lines of a gnuplot inline
// datablock. The output is a pure function of the input: every numeric field
// is right-aligned to the widest numeric field of the same call and preceded
// by a single separator space, string fields are double-quoted and emitted
// as-is, and grids are written one column group at a time with a blank line
// after every group, the last included.
func Datablock(ds Dataset) ([]string, error) {
	if ds.err != nil {
		return nil, ds.err
	}
	switch ds.kind {
	case kindColumns:
		return columnLines(ds)
	case kindGrid:
		return gridLines(ds.a)
	case kindGridPair:
		return gridPairLines(ds.a, ds.b)
	case kindLabeledGrid:
		return labeledGridLines(ds)
	}
	return nil, errors.New("gnuplot: unknown dataset kind")
}

func columnLines(ds Dataset) ([]string, error) {
	if len(ds.cols) == 0 {
		return nil, ErrNoData
	}

	var n = len(ds.cols[0].vals)
	for i, c := range ds.cols {
		if len(c.vals) != n {
			return nil, errors.Wrapf(ErrShapeMismatch,
				"column 1 has %d elements, column %d has %d", n, i+1, len(c.vals))
		}
	}
	if n == 0 {
		return nil, ErrNoData
	}

	var w = numericWidth(ds.cols)
	var lines = make([]string, 0, n)
	for i := 0; i < n; i++ {
		var b strings.Builder
		for _, c := range ds.cols {
			b.WriteByte(' ')
			if c.quoted {
				b.WriteString(c.vals[i]) // quoted strings are never padded
			} else {
				alignInto(&b, c.vals[i], w)
			}
		}
		lines = append(lines, b.String())
	}
	return lines, nil
}

func gridLines(z [][]float64) ([]string, error) {
	rows, cols, err := gridShape(z)
	if err != nil {
		return nil, err
	}

	var w = 0
	var vals = make([][]string, rows)
	for i := range z {
		vals[i] = make([]string, cols)
		for j, v := range z[i] {
			vals[i][j] = formatFloat(v)
			if len(vals[i][j]) > w {
				w = len(vals[i][j])
			}
		}
	}

	// Row index varies fastest; the column index is held fixed per group.
	var lines = make([]string, 0, rows*cols+cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			var b strings.Builder
			b.WriteString(strconv.Itoa(i))
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(j))
			b.WriteByte(' ')
			alignInto(&b, vals[i][j], w)
			lines = append(lines, b.String())
		}
		lines = append(lines, "")
	}
	return lines, nil
}

func gridPairLines(a, b [][]float64) ([]string, error) {
	rows, cols, err := gridShape(a)
	if err != nil {
		return nil, err
	}
	rb, cb, err := gridShape(b)
	if err != nil {
		return nil, err
	}
	if rb != rows || cb != cols {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"grids have shapes %dx%d and %dx%d", rows, cols, rb, cb)
	}

	var w = 0
	var fa = make([][]string, rows)
	var fb = make([][]string, rows)
	for i := 0; i < rows; i++ {
		fa[i] = make([]string, cols)
		fb[i] = make([]string, cols)
		for j := 0; j < cols; j++ {
			fa[i][j] = formatFloat(a[i][j])
			fb[i][j] = formatFloat(b[i][j])
			if len(fa[i][j]) > w {
				w = len(fa[i][j])
			}
			if len(fb[i][j]) > w {
				w = len(fb[i][j])
			}
		}
	}

	var lines = make([]string, 0, rows*cols+cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			var sb strings.Builder
			sb.WriteByte(' ')
			alignInto(&sb, fa[i][j], w)
			sb.WriteByte(' ')
			alignInto(&sb, fb[i][j], w)
			lines = append(lines, sb.String())
		}
		lines = append(lines, "")
	}
	return lines, nil
}

func labeledGridLines(ds Dataset) ([]string, error) {
	rows, cols, err := gridShape(ds.a)
	if err != nil {
		return nil, err
	}
	var x, y = ds.cols[0], ds.cols[1]
	if len(x.vals) != rows || len(y.vals) != cols {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"labels have lengths %d and %d, grid is %dx%d", len(x.vals), len(y.vals), rows, cols)
	}

	var w = numericWidth(ds.cols)
	var vals = make([][]string, rows)
	for i := range ds.a {
		vals[i] = make([]string, cols)
		for j, v := range ds.a[i] {
			vals[i][j] = formatFloat(v)
			if len(vals[i][j]) > w {
				w = len(vals[i][j])
			}
		}
	}

	var lines = make([]string, 0, rows*cols+cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			var b strings.Builder
			writeLabel(&b, x, i, w)
			writeLabel(&b, y, j, w)
			b.WriteByte(' ')
			alignInto(&b, vals[i][j], w)
			lines = append(lines, b.String())
		}
		lines = append(lines, "")
	}
	return lines, nil
}

func writeLabel(b *strings.Builder, c column, i, w int) {
	b.WriteByte(' ')
	if c.quoted {
		b.WriteString(c.vals[i])
	} else {
		alignInto(b, c.vals[i], w)
	}
}

func gridShape(z [][]float64) (rows, cols int, err error) {
	if len(z) == 0 || len(z[0]) == 0 {
		return 0, 0, ErrNoData
	}
	rows, cols = len(z), len(z[0])
	for i, row := range z {
		if len(row) != cols {
			return 0, 0, errors.Wrapf(ErrShapeMismatch,
				"grid row 0 has %d elements, row %d has %d", cols, i, len(row))
		}
	}
	return rows, cols, nil
}

func numericWidth(cols []column) int {
	var w int
	for _, c := range cols {
		if c.quoted {
			continue
		}
		for _, v := range c.vals {
			if len(v) > w {
				w = len(v)
			}
		}
	}
	return w
}

func alignInto(b *strings.Builder, s string, w int) {
	for i := len(s); i < w; i++ {
		b.WriteByte(' ')
	}
	b.WriteString(s)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func toColumn(arg interface{}) (column, error) {
	var c column
	switch a := arg.(type) {
	case []float64:
		for _, v := range a {
			c.vals = append(c.vals, formatFloat(v))
		}
	case []float32:
		for _, v := range a {
			c.vals = append(c.vals, strconv.FormatFloat(float64(v), 'g', -1, 32))
		}
	case []int:
		for _, v := range a {
			c.vals = append(c.vals, strconv.Itoa(v))
		}
	case []int64:
		for _, v := range a {
			c.vals = append(c.vals, strconv.FormatInt(v, 10))
		}
	case []uint64:
		for _, v := range a {
			c.vals = append(c.vals, strconv.FormatUint(v, 10))
		}
	case []string:
		c.quoted = true
		for _, v := range a {
			c.vals = append(c.vals, strconv.Quote(v))
		}
	default:
		return c, errors.Errorf("gnuplot: unsupported array type %T", arg)
	}
	return c, nil
}
