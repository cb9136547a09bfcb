package gnuplot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultSession is the name of the session used by Default.
	DefaultSession = "default"

	// execSentinel delimits command replies on gnuplot's stderr. Every
	// command batch is followed by "print '<sentinel>'"; everything gnuplot
	// says before echoing it back belongs to the batch.
	execSentinel = "gnuplot-go-done"

	// stdoutGrace is how long a reply keeps listening for stdout lines
	// after the sentinel arrived on stderr. The two pipes are drained by
	// independent goroutines, so table output written just before the
	// sentinel may still be in flight.
	stdoutGrace = 10 * time.Millisecond
)

var (
	sessionsMu sync.Mutex
	sessions   = make(map[string]*Session)
)

// Session is a named connection to one gnuplot child process. All methods
// are safe for concurrent use; commands of one session are serialized.
type Session struct {
	name string
	cfg  *Config

	// mu serializes command batches; engMu guards eng alone so that
	// interrupt and quit never wait behind a command in flight.
	mu       sync.Mutex
	engMu    sync.Mutex
	eng      engine
	blocks   map[string]bool
	nblock   int
	outGrace time.Duration
}

// NewSession starts a gnuplot process and registers it under name. A nil cfg
// means NewConfig defaults. The name must not be in use.
func NewSession(name string, cfg *Config) (*Session, error) {
	if cfg == nil {
		cfg = NewConfig()
	} else {
		cfg = cfg.withDefaults()
	}

	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	if _, ok := sessions[name]; ok {
		return nil, errors.Errorf("gnuplot: session %q already exists", name)
	}

	eng, err := startProcess(cfg)
	if err != nil {
		return nil, err
	}

	var s = newSessionWith(name, cfg, eng)
	if cfg.Term != "" {
		if _, err = s.Exec("set terminal " + cfg.Term); err != nil {
			s.quit()
			return nil, err
		}
	}
	sessions[name] = s
	return s, nil
}

func newSessionWith(name string, cfg *Config, eng engine) *Session {
	return &Session{
		name:     name,
		cfg:      cfg,
		eng:      eng,
		blocks:   make(map[string]bool),
		outGrace: stdoutGrace,
	}
}

// GetSession returns the registered session with the given name.
func GetSession(name string) (*Session, bool) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	s, ok := sessions[name]
	return s, ok
}

// Default returns the shared "default" session, starting it on first use.
func Default() (*Session, error) {
	if s, ok := GetSession(DefaultSession); ok {
		return s, nil
	}
	return NewSession(DefaultSession, nil)
}

// Quit terminates the named session's process and unregisters it.
func Quit(name string) error {
	sessionsMu.Lock()
	s, ok := sessions[name]
	delete(sessions, name)
	sessionsMu.Unlock()
	if !ok {
		return errors.Errorf("gnuplot: no session %q", name)
	}
	return s.quit()
}

// QuitAll terminates every registered session, returning the first error.
func QuitAll() error {
	sessionsMu.Lock()
	var all = make([]*Session, 0, len(sessions))
	for name, s := range sessions {
		all = append(all, s)
		delete(sessions, name)
	}
	sessionsMu.Unlock()

	var first error
	for _, s := range all {
		if err := s.quit(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Name returns the session name.
func (s *Session) Name() string { return s.name }

// Exec sends a single command line to gnuplot and returns whatever it
// printed in response (warnings, errors, print output), newline-joined.
func (s *Session) Exec(command string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.execLocked([]string{command})
}

// ExecContext is Exec bounded by ctx. When ctx fires before gnuplot answers,
// the child process is killed: gnuplot offers no per-command cancellation
// over the pipe, so the session is sacrificed and must be reopened.
func (s *Session) ExecContext(ctx context.Context, command string) (string, error) {
	outChan := make(chan string, 1)
	errChan := make(chan error, 2)
	returnedChan := make(chan struct{}, 1) // Used to indicate that this function has returned

	defer func() {
		returnedChan <- struct{}{}
	}()

	go func() {
		select {
		case <-ctx.Done():
			// context has been canceled
			s.interrupt()
			errChan <- ctx.Err()
		case <-returnedChan:
		}
	}()

	go func() {
		reply, err := s.Exec(command)
		if err != nil {
			errChan <- err
			return
		}
		outChan <- reply
	}()

	select {
	case err := <-errChan:
		return "", err
	case out := <-outChan:
		return out, nil
	}
}

// SetDatablock serializes ds and installs it as the named inline datablock,
// returning the canonical "$name" to reference in later plot commands.
func (s *Session) SetDatablock(name string, ds Dataset) (string, error) {
	block, err := canonicalBlockName(name)
	if err != nil {
		return "", err
	}
	lines, err := Datablock(ds)
	if err != nil {
		return "", err
	}

	var batch = make([]string, 0, len(lines)+2)
	batch = append(batch, block+" << EOD")
	batch = append(batch, lines...)
	batch = append(batch, "EOD")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err = s.execLocked(batch); err != nil {
		return "", err
	}
	s.blocks[block] = true
	return block, nil
}

// Blocks lists the names of the datablocks defined so far, in no particular
// order.
func (s *Session) Blocks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names = make([]string, 0, len(s.blocks))
	for name := range s.blocks {
		names = append(names, name)
	}
	return names
}

// Plot serializes ds into a fresh datablock and plots it. The style string
// is appended verbatim after the datablock name ("with lines", "using 1:2
// with points", ...).
func (s *Session) Plot(ds Dataset, style string) error {
	return s.plot("plot", ds, style)
}

// Splot is Plot with gnuplot's splot command, for grids and 3-D data.
func (s *Session) Splot(ds Dataset, style string) error {
	return s.plot("splot", ds, style)
}

func (s *Session) plot(verb string, ds Dataset, style string) error {
	block, err := s.SetDatablock(s.nextBlockName(), ds)
	if err != nil {
		return err
	}
	var cmd = verb + " " + block
	if style != "" {
		cmd += " " + style
	}
	reply, err := s.Exec(cmd)
	if err != nil {
		return err
	}
	if isGnuplotError(reply) {
		return errors.Errorf("gnuplot: %s", reply)
	}
	return nil
}

// PlotAll sends a single plot command drawing every spec.
func (s *Session) PlotAll(specs ...PlotSpec) error {
	return s.plotAll(false, specs)
}

// SplotAll sends a single splot command drawing every spec.
func (s *Session) SplotAll(specs ...PlotSpec) error {
	return s.plotAll(true, specs)
}

func (s *Session) plotAll(splot bool, specs []PlotSpec) error {
	cmd, err := PlotCommand(splot, specs...)
	if err != nil {
		return err
	}
	reply, err := s.Exec(cmd)
	if err != nil {
		return err
	}
	if isGnuplotError(reply) {
		return errors.Errorf("gnuplot: %s", reply)
	}
	return nil
}

// SetTitle sets the plot title.
func (s *Session) SetTitle(title string) error {
	_, err := s.Exec("set title " + quote(title))
	return err
}

// SetXLabel sets the x axis label.
func (s *Session) SetXLabel(label string) error {
	_, err := s.Exec("set xlabel " + quote(label))
	return err
}

// SetYLabel sets the y axis label.
func (s *Session) SetYLabel(label string) error {
	_, err := s.Exec("set ylabel " + quote(label))
	return err
}

// SetXRange sets the x axis range.
func (s *Session) SetXRange(min, max float64) error {
	_, err := s.Exec(fmt.Sprintf("set xrange [%g:%g]", min, max))
	return err
}

// SetYRange sets the y axis range.
func (s *Session) SetYRange(min, max float64) error {
	_, err := s.Exec(fmt.Sprintf("set yrange [%g:%g]", min, max))
	return err
}

// SetTerm switches the session's terminal and remembers it, so that Reset
// applies the same terminal again.
func (s *Session) SetTerm(term string) error {
	if _, err := s.Exec("set terminal " + term); err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg.Term = term
	s.mu.Unlock()
	return nil
}

// Save re-renders the current plot into a file using the given terminal
// ("pngcairo", "svg", ...), restoring the previous terminal afterwards.
func (s *Session) Save(term, outfile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.execLocked([]string{
		"set terminal push",
		"set terminal " + term,
		"set output " + quote(outfile),
		"replot",
		"set output",
		"set terminal pop",
	})
	return err
}

// Multiplot runs fn inside a multiplot layout of rows by cols panes. The
// layout is torn down even when fn fails.
func (s *Session) Multiplot(rows, cols int, title string, fn func(*Session) error) error {
	var cmd = fmt.Sprintf("set multiplot layout %d,%d", rows, cols)
	if title != "" {
		cmd += " title " + quote(title)
	}
	if _, err := s.Exec(cmd); err != nil {
		return err
	}
	defer s.Exec("unset multiplot")
	return fn(s)
}

// Reset clears the session state ("reset session") and forgets its
// datablocks. The configured terminal, if any, is applied again.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var batch = []string{"reset session"}
	if s.cfg.Term != "" {
		batch = append(batch, "set terminal "+s.cfg.Term)
	}
	if _, err := s.execLocked(batch); err != nil {
		return err
	}
	s.blocks = make(map[string]bool)
	return nil
}

func (s *Session) engine() engine {
	s.engMu.Lock()
	defer s.engMu.Unlock()
	return s.eng
}

func (s *Session) dropEngine() engine {
	s.engMu.Lock()
	defer s.engMu.Unlock()
	var eng = s.eng
	s.eng = nil
	return eng
}

func (s *Session) interrupt() {
	if eng := s.dropEngine(); eng != nil {
		eng.interrupt()
	}
}

func (s *Session) quit() error {
	var eng = s.dropEngine()
	if eng == nil {
		return nil
	}
	debugf("session %q quitting", s.name)
	return eng.close()
}

// execLocked sends a batch of lines followed by the sentinel print and
// gathers everything gnuplot says until the sentinel comes back. The caller
// holds s.mu.
func (s *Session) execLocked(batch []string) (string, error) {
	var eng = s.engine()
	if eng == nil {
		return "", ErrSessionClosed
	}
	for _, line := range batch {
		if err := eng.send(line); err != nil {
			return "", err
		}
	}
	if err := eng.send("print '" + execSentinel + "'"); err != nil {
		return "", err
	}

	var reply []string
	var outc, errc = eng.out(), eng.errs()
	var timer = time.NewTimer(s.cfg.Timeout)
	defer timer.Stop()
	for {
		select {
		case line, ok := <-errc:
			if !ok {
				return "", errors.Wrap(ErrSessionClosed, "gnuplot exited")
			}
			if line == execSentinel {
				reply = append(reply, drainFor(outc, s.outGrace)...)
				var joined = strings.Join(reply, "\n")
				debugf("< %s", joined)
				return joined, nil
			}
			reply = append(reply, line)
		case line, ok := <-outc:
			if !ok {
				outc = nil // stop selecting on a closed pipe
				continue
			}
			reply = append(reply, line)
		case <-timer.C:
			return "", errors.Errorf("gnuplot: no reply within %s", s.cfg.Timeout)
		}
	}
}

// drainFor keeps collecting lines until the channel stays quiet for the
// given window, resetting the window on every line received.
func drainFor(lines <-chan string, quiet time.Duration) []string {
	var got []string
	var timer = time.NewTimer(quiet)
	defer timer.Stop()
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return got
			}
			got = append(got, line)
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(quiet)
		case <-timer.C:
			return got
		}
	}
}

func (s *Session) nextBlockName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nblock++
	return fmt.Sprintf("$gp_data_%d", s.nblock)
}

// canonicalBlockName validates a datablock name and ensures the leading "$"
// gnuplot requires.
func canonicalBlockName(name string) (string, error) {
	name = strings.TrimPrefix(name, "$")
	if name == "" {
		return "", errors.New("gnuplot: empty datablock name")
	}
	for i, r := range name {
		var word = r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		if !word && (i == 0 || r < '0' || r > '9') {
			return "", errors.Errorf("gnuplot: invalid datablock name %q", name)
		}
	}
	return "$" + name, nil
}

func isGnuplotError(reply string) bool {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "gnuplot>") || strings.Contains(line, "error") ||
			strings.Contains(line, "undefined") || strings.HasPrefix(line, "^") {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
