package logio

import (
	"bytes"
	"sync"
)

// Writer adapts a formatted logging function, like testing.T.Logf or
// Logger.Leveledf, into an io.Writer that logs one call per line.
type Writer struct {
	Logf func(string, ...interface{})

	// Prefix, when non-empty, is logged before each line.
	Prefix string

	mu      sync.Mutex
	pending []byte
}

// Write logs every line completed by p, holding back any partial final line
// until a later Write or Flush. Safe for concurrent use.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	rest := append(lw.pending, p...)
	for {
		line, more, found := bytes.Cut(rest, []byte{'\n'})
		if !found {
			break
		}
		lw.logLine(line)
		rest = more
	}
	lw.pending = append(lw.pending[:0], rest...)
	return len(p), nil
}

// Flush logs any partial final line.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.pending) > 0 {
		lw.logLine(lw.pending)
		lw.pending = lw.pending[:0]
	}
	return nil
}

// Close calls Flush.
func (lw *Writer) Close() error { return lw.Flush() }

func (lw *Writer) logLine(line []byte) {
	lw.Logf("%s%s", lw.Prefix, bytes.TrimSuffix(line, []byte{'\r'}))
}
