package gnuplot

import (
	"log"
	"os"
	"time"
)

const (
	// BinEnv overrides the gnuplot executable used by NewConfig.
	BinEnv = "GNUPLOT_GO_BIN"

	defaultBin     = "gnuplot"
	defaultTimeout = 10 * time.Second
)

// DebugMode makes the package log every command sent to gnuplot and every
// reply received from it.
var DebugMode bool

// Config holds the settings of a plot session.
// If a new Config is created instead of being filled field by field,
// the NewConfig function should be used, which sets default values.
type Config struct {
	// Bin is the gnuplot executable to spawn.
	Bin string

	// Args are extra command line arguments passed to gnuplot.
	Args []string

	// Term, when non-empty, is applied as "set terminal <Term>" right after
	// the process starts and again after Reset.
	Term string

	// Timeout bounds how long a single command may wait for its reply.
	Timeout time.Duration
}

// NewConfig creates a new Config and sets default values. The executable
// defaults to "gnuplot" on PATH and can be overridden with the
// GNUPLOT_GO_BIN environment variable.
func NewConfig() *Config {
	var bin = defaultBin
	if env := os.Getenv(BinEnv); env != "" {
		bin = env
	}

	return &Config{
		Bin:     bin,
		Timeout: defaultTimeout,
	}
}

func (cfg *Config) Clone() *Config {
	var cp = *cfg
	cp.Args = append([]string(nil), cfg.Args...)
	return &cp
}

// withDefaults fills the zero fields a caller-built Config may have left out.
func (cfg *Config) withDefaults() *Config {
	var cp = cfg.Clone()
	if cp.Bin == "" {
		cp.Bin = NewConfig().Bin
	}
	if cp.Timeout == 0 {
		cp.Timeout = defaultTimeout
	}
	return cp
}

func debugf(format string, args ...interface{}) {
	if DebugMode {
		log.Printf("[gnuplot] "+format, args...)
	}
}
