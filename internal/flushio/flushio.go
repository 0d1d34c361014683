// Package flushio provides the VM's output streams: writers whose pending
// output can be pushed out before blocking on input.
package flushio

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// Discard drops everything written to it.
var Discard WriteFlusher = unbuffered{io.Discard}

// New returns w itself if it already flushes. In-memory buffers are written
// through as they are; anything else, like a file or terminal, is buffered.
func New(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case nil:
		return Discard
	case WriteFlusher:
		return impl
	case *bytes.Buffer, *strings.Builder:
		return unbuffered{w}
	}
	if w == io.Discard {
		return Discard
	}
	return bufio.NewWriter(w)
}

type unbuffered struct{ io.Writer }

func (unbuffered) Flush() error { return nil }

// Tee returns a WriteFlusher that copies every write from primary on to
// each copy, stopping at the first failed or short write.
func Tee(primary WriteFlusher, copies ...WriteFlusher) WriteFlusher {
	all := tee{primary}
	for _, wf := range copies {
		if wf != nil && wf != Discard {
			all = append(all, wf)
		}
	}
	if len(all) == 1 {
		return primary
	}
	return all
}

type tee []WriteFlusher

func (t tee) Write(p []byte) (int, error) {
	for _, wf := range t {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Flush flushes every stream, returning the first error.
func (t tee) Flush() (err error) {
	for _, wf := range t {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
