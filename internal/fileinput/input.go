// Package fileinput implements the token source: sequential rune reading
// through a queue of named input streams, whitespace delimited token
// scanning, and raw scanning up to a terminator rune.
package fileinput

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jcorbin/ooforth/internal/runeio"
)

// Location names a line in an Input file.
type Location struct {
	Name string
	Line int
}

// Line combines a Location along with a bytes.Buffer for handling it.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il *Line) String() string     { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input implements sequential rune reading through a Queue of one or more
// input streams. Both the current and last scanned lines are tracked to
// facilitate user feedback.
type Input struct {
	rr    io.RuneReader
	Queue []io.Reader
	Last  Line
	Scan  Line

	eol bool
}

// ReadRune reads one rune from the current input stream, appending it into
// the current Scan line, and rolling Scan over to Last after line feed.
// A zero rune with a nil error is returned when one stream ends and the
// next one begins.
func (in *Input) ReadRune() (rune, int, error) {
	if in.rr == nil && !in.nextIn() {
		return 0, 0, io.EOF
	}

	r, n, err := in.rr.ReadRune()
	if err == nil {
		in.eol = r == '\n'
		if in.eol {
			in.nextLine()
		} else {
			in.Scan.WriteRune(r)
		}
		return r, n, nil
	}

	if err == io.EOF {
		in.eol = true
		if in.nextIn() {
			err = nil
		}
	}
	return 0, n, err
}

// AtEOL returns true if the last rune consumed ended a line, or if input
// has just switched streams.
func (in *Input) AtEOL() bool { return in.eol }

// Token skips any leading whitespace or control runes, and then returns the
// run of runes up to (and consuming) the next whitespace. A token never
// spans two input streams. Returns io.EOF only when no token remains.
func (in *Input) Token() (string, error) {
	var sb strings.Builder
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			return "", err
		}
		if r != 0 && !isSpace(r) {
			sb.WriteRune(r)
			break
		}
	}
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return sb.String(), err
		} else if r == 0 || isSpace(r) {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// Until reads raw runes up to the given delimiter, which is consumed but
// not returned. The end of an input stream also ends the scan. Running out
// of all input before the delimiter returns what was read along with io.EOF.
func (in *Input) Until(delim rune) (string, error) {
	var sb strings.Builder
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			return sb.String(), err
		}
		if r == delim || r == 0 {
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

// SkipLine discards the rest of the current line, unless the last read
// already ended one.
func (in *Input) SkipLine() error {
	if in.eol {
		return nil
	}
	_, err := in.Until('\n')
	return err
}

// Location returns the position of the line currently being scanned.
func (in *Input) Location() Location {
	if in.Scan.Len() == 0 && in.Last.Name != "" {
		return in.Last.Location
	}
	return in.Scan.Location
}

// Close closes any current stream and any still queued.
func (in *Input) Close() (err error) {
	if cl, ok := in.rr.(io.Closer); ok {
		err = cl.Close()
	}
	in.rr = nil
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) nextLine() {
	in.Last.Reset()
	in.Last.Name = in.Scan.Name
	in.Last.Line = in.Scan.Line
	in.Last.Write(in.Scan.Bytes())
	in.Scan.Reset()
	in.Scan.Line++
}

func (in *Input) nextIn() bool {
	if in.rr != nil {
		if in.Scan.Len() > 0 {
			in.nextLine()
		}
		if cl, ok := in.rr.(io.Closer); ok {
			cl.Close()
		}
		in.rr = nil
	}
	if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.rr = runeio.NewReader(r)
		in.Scan.Name = nameOf(r)
		in.Scan.Line = 1
	}
	return in.rr != nil
}

func isSpace(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		if name := nom.Name(); name != "" {
			return name
		}
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
