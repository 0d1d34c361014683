// Package console provides an interactive line-editing front end for the
// interpreter when standard input is a terminal.
package console

import (
	"io"

	"golang.org/x/term"
)

// LineReader reads whole lines of input, without their line terminator.
type LineReader interface {
	ReadLine() (string, error)
}

// Lines adapts a LineReader into an io.Reader, restoring the line feed that
// ReadLine strips off, so that downstream scanning sees line boundaries.
type Lines struct {
	LineReader
	buf []byte
}

func (ls *Lines) Read(p []byte) (n int, err error) {
	for len(ls.buf) == 0 {
		line, err := ls.ReadLine()
		if err != nil {
			return 0, err
		}
		ls.buf = append(ls.buf[:0], line...)
		ls.buf = append(ls.buf, '\n')
	}
	n = copy(p, ls.buf)
	ls.buf = ls.buf[n:]
	return n, nil
}

// Console is a raw-mode terminal session that implements line-edited input,
// and output with terminal line endings.
type Console struct {
	Lines
	term  *term.Terminal
	fd    int
	state *term.State
}

// IsTerminal returns true if fd refers to a terminal.
func IsTerminal(fd int) bool { return term.IsTerminal(fd) }

// Open puts the terminal fd into raw mode, and returns a Console that reads
// edited lines from in and writes to out. Close must be called to restore
// the terminal.
func Open(fd int, in io.Reader, out io.Writer) (*Console, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	con := &Console{fd: fd, state: state}
	con.term = term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "")
	con.LineReader = con.term
	if width, height, err := term.GetSize(fd); err == nil {
		con.term.SetSize(width, height)
	}
	return con, nil
}

// Name identifies console input in error locations.
func (con *Console) Name() string { return "<console>" }

// Write writes through the terminal, translating line feeds.
func (con *Console) Write(p []byte) (int, error) { return con.term.Write(p) }

// Close restores the terminal to its prior mode.
func (con *Console) Close() error {
	if con.state == nil {
		return nil
	}
	state := con.state
	con.state = nil
	return term.Restore(con.fd, state)
}
