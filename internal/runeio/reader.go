package runeio

import (
	"bufio"
	"io"
)

// Reader is an io.Reader that also supports reading runes.
type Reader interface {
	io.Reader
	io.RuneReader
}

// NewReader returns a Reader from r; if r already implements, it is simply
// returned. Otherwise a bufio.Reader provides rune reading around r.
// If r implements Name() string, so will the returned Reader; if r is an
// io.Closer, so is the returned Reader.
func NewReader(r io.Reader) Reader {
	if impl, ok := r.(Reader); ok {
		return impl
	}
	var rr Reader = runeReader{r, bufio.NewReader(r)}
	if impl, ok := r.(interface{ Name() string }); ok {
		rr = namedReader{rr, impl.Name()}
	}
	if cl, ok := r.(io.Closer); ok {
		rr = closeReader{rr, cl}
	}
	return rr
}

type runeReader struct {
	io.Reader
	io.RuneReader
}

// Read reads through the buffered rune reader, so that byte and rune reads
// may be interleaved.
func (rr runeReader) Read(p []byte) (int, error) {
	if br, ok := rr.RuneReader.(io.Reader); ok {
		return br.Read(p)
	}
	return rr.Reader.Read(p)
}

type namedReader struct {
	Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

type closeReader struct {
	Reader
	io.Closer
}

func (cr closeReader) Name() string {
	if nom, ok := cr.Reader.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return ""
}
