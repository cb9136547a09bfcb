// Package gnuplot drives an external gnuplot process over a pipe.
//
// The package converts Go arrays and grids into gnuplot's inline datablock
// text format, assembles plot commands, and manages named plot sessions,
// each backed by its own gnuplot child process. gnuplot itself does all the
// rendering; this package only formats data and talks to it.
package gnuplot
