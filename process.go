package gnuplot

import (
	"bufio"
	"io"
	"os/exec"
	"sync"

	"github.com/pkg/errors"
)

// engine is the pipe-level view of a gnuplot child process. Sessions talk to
// gnuplot exclusively through it, which lets tests substitute an in-memory
// implementation.
type engine interface {
	send(line string) error
	out() <-chan string  // stdout lines (table output and friends)
	errs() <-chan string // stderr lines (print replies, warnings, errors)
	interrupt() error
	close() error
}

// process runs a real gnuplot child and drains its output pipes into line
// channels.
type process struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	outc  chan string
	errc  chan string

	mu       sync.Mutex
	closed   bool
	waitOnce sync.Once
}

func startProcess(cfg *Config) (*process, error) {
	var cmd = exec.Command(cfg.Bin, cfg.Args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "gnuplot: cannot open stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "gnuplot: cannot open stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(err, "gnuplot: cannot open stderr pipe")
	}

	if err = cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "gnuplot: cannot start %q", cfg.Bin)
	}
	debugf("started %q (pid %d)", cfg.Bin, cmd.Process.Pid)

	var p = &process{
		cmd:   cmd,
		stdin: stdin,
		outc:  make(chan string, 1024),
		errc:  make(chan string, 1024),
	}
	go p.scan(stdout, p.outc)
	go p.scan(stderr, p.errc)

	return p, nil
}

// reap collects the child's exit status once, in the background so that
// callers never block on a process that is still flushing output.
func (p *process) reap() {
	p.waitOnce.Do(func() {
		go p.cmd.Wait()
	})
}

func (p *process) scan(r io.Reader, lines chan<- string) {
	var sc = bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines <- sc.Text()
	}
	close(lines)
}

func (p *process) send(line string) error {
	debugf("> %s", line)
	if _, err := io.WriteString(p.stdin, line+"\n"); err != nil {
		return errors.Wrap(ErrSessionClosed, err.Error())
	}
	return nil
}

func (p *process) out() <-chan string  { return p.outc }
func (p *process) errs() <-chan string { return p.errc }

// interrupt kills the child outright. gnuplot has no per-command abort over
// the pipe, so a cancelled command costs the whole process.
func (p *process) interrupt() error {
	debugf("killing pid %d", p.cmd.Process.Pid)
	var err = p.cmd.Process.Kill()
	p.reap()
	return err
}

func (p *process) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	defer p.reap()

	// A polite quit first; the pipe closing is what actually ends gnuplot.
	io.WriteString(p.stdin, "quit\n")
	if err := p.stdin.Close(); err != nil {
		p.cmd.Process.Kill()
		return err
	}
	return nil
}
