package gnuplot

import "errors"

var (
	// ErrShapeMismatch is returned when arrays or grids passed together do
	// not share a common length or shape.
	ErrShapeMismatch = errors.New("gnuplot: array shapes do not match")

	// ErrNoData is returned when a dataset holds no values at all.
	ErrNoData = errors.New("gnuplot: empty dataset")

	// ErrSessionClosed is returned by operations on a session whose gnuplot
	// process has exited or been quit.
	ErrSessionClosed = errors.New("gnuplot: session is closed")
)
