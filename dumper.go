package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/ooforth/internal/runeio"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	// primitives includes the built-in words in full dumps
	primitives bool
}

// dump writes the whole machine state: mode, stacks, any pending control
// structures, and every defined word.
func (dump vmDumper) dump() {
	vm := dump.vm
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  compiling: %v base: %v\n", vm.compiling, vm.base)
	fmt.Fprintf(dump.out, "  wp: %v ip: %v\n", vm.wp, vm.ip)
	fmt.Fprintf(dump.out, "  stack: %v\n", []int(vm.stack))
	fmt.Fprintf(dump.out, "  rstack: %v\n", []int(vm.rstack))
	for i, f := range vm.frames {
		fmt.Fprintf(dump.out, "  frame[%v]: %v %v\n", i, f.kind, f.node)
		var buf lineBuffer
		for _, w := range f.buf {
			dump.formatWord(&buf, 2, w)
		}
		buf.WriteTo(dump.out)
	}

	fmt.Fprintf(dump.out, "# Dictionary\n")
	for _, w := range vm.dict {
		if dump.primitives || w.op == opCall {
			dump.see(w)
		}
	}
}

// see writes a decompiled listing of one word, recursing into the segments of
// any runtime nodes in its body.
func (dump vmDumper) see(w *Word) {
	var buf lineBuffer
	if w.op != opCall {
		buf.WriteString(w.String())
		if w.Immediate {
			buf.WriteString(" immediate")
		}
		buf.WriteString(" primitive")
		buf.endLine()
		buf.WriteTo(dump.out)
		return
	}

	buf.WriteString(": ")
	buf.WriteString(w.String())
	if w.Immediate {
		buf.WriteString(" immediate")
	}
	buf.endLine()
	for _, child := range w.Body {
		dump.formatWord(&buf, 1, child)
	}
	buf.WriteString(";")
	buf.endLine()
	buf.WriteTo(dump.out)
}

func (dump vmDumper) formatWord(buf *lineBuffer, depth int, w *Word) {
	buf.indent(depth)
	if !w.isNode() {
		buf.WriteString(w.String())
		buf.endLine()
		return
	}

	buf.WriteString(w.op.String())
	if w.op == opDovar {
		buf.WriteString(" #")
		buf.WriteString(strconv.Itoa(w.Token))
	}
	if w.Variant != 0 {
		buf.WriteString(" variant=")
		buf.WriteString(strconv.Itoa(w.Variant))
	}
	if len(w.Fields) > 0 || w.op == opDovar {
		buf.WriteString(" =")
		buf.WriteString(fmt.Sprint(w.Fields))
	}
	if w.op == opDotstr || w.op == opDostr {
		buf.WriteString(` "`)
		buf.WriteString(runeio.Printable(w.Text))
		buf.WriteString(`"`)
	}
	buf.endLine()

	for _, child := range w.Body {
		dump.formatWord(buf, depth+1, child)
	}
	dump.formatSegment(buf, depth, "third:", w.ThirdBody)
	dump.formatSegment(buf, depth, "alt:", w.AltBody)
}

func (dump vmDumper) formatSegment(buf *lineBuffer, depth int, label string, seg []*Word) {
	if len(seg) == 0 {
		return
	}
	buf.indent(depth)
	buf.WriteString(label)
	buf.endLine()
	for _, child := range seg {
		dump.formatWord(buf, depth+1, child)
	}
}

type lineBuffer struct{ bytes.Buffer }

func (buf *lineBuffer) indent(depth int) { buf.WriteString(strings.Repeat("  ", depth)) }
func (buf *lineBuffer) endLine()         { buf.WriteByte('\n') }

//// Inspection words

// see     print the definition of the following named word
func (vm *VM) see() {
	name := vm.scanName()
	w := vm.dict.lookup(name)
	if w == nil {
		vm.unknownWord(name)
		return
	}
	vmDumper{vm: vm, out: vm.out}.see(w)
}

// words   list the dictionary, sixteen names per line
func (vm *VM) words() {
	var buf lineBuffer
	for i, w := range vm.dict {
		buf.WriteString(w.Name)
		buf.WriteByte(' ')
		if (i+1)%16 == 0 {
			buf.endLine()
		}
	}
	if len(vm.dict)%16 != 0 {
		buf.endLine()
	}
	_, err := buf.WriteTo(vm.out)
	vm.haltif(err)
}

// .s      print the data stack, bottom first
func (vm *VM) dotS() {
	var buf lineBuffer
	for _, n := range vm.stack {
		buf.WriteString(vm.format(n))
		buf.WriteByte(' ')
	}
	_, err := buf.WriteTo(vm.out)
	vm.haltif(err)
}
