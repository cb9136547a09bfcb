package gnuplot

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	var cfg = NewConfig()
	assert.Equal(t, "gnuplot", cfg.Bin)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Args)
	assert.Empty(t, cfg.Term)
}

func TestNewConfigBinOverride(t *testing.T) {
	var old = os.Getenv(BinEnv)
	require.NoError(t, os.Setenv(BinEnv, "/opt/gnuplot/bin/gnuplot"))
	defer os.Setenv(BinEnv, old)

	assert.Equal(t, "/opt/gnuplot/bin/gnuplot", NewConfig().Bin)
}

func TestConfigClone(t *testing.T) {
	var cfg = NewConfig()
	cfg.Args = []string{"-persist"}
	cfg.Term = "qt"

	var cp = cfg.Clone()
	cp.Args[0] = "-d"
	cp.Term = "svg"

	assert.Equal(t, []string{"-persist"}, cfg.Args)
	assert.Equal(t, "qt", cfg.Term)
}

func TestConfigWithDefaults(t *testing.T) {
	var cfg = (&Config{Term: "dumb"}).withDefaults()
	assert.Equal(t, "gnuplot", cfg.Bin)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "dumb", cfg.Term)
}
