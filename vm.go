package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jcorbin/ooforth/internal/fileinput"
	"github.com/jcorbin/ooforth/internal/flushio"
)

// VM is a Forth-like virtual machine: two integer stacks, a dictionary of
// words that is both namespace and code store, and an outer interpreter
// that either executes, compiles, or pushes each token read from input.
type VM struct {
	logging
	in      fileinput.Input
	out     flushio.WriteFlusher
	closers []io.Closer

	stack  stack
	rstack stack
	dict   dictionary

	compiling bool
	base      int
	prompt    bool

	// pending control structures, innermost last
	frames []*frame

	// current call frame: the token of the running colon word, and the
	// position within the body segment being run
	wp   int
	ip   int
	seg  []*Word
	skip bool

	fieldLimit int
	fieldCount int

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	ctx   context.Context
}

// Close closes any input and output streams handed to the VM by options.
func (vm *VM) Close() (err error) {
	if cerr := vm.in.Close(); err == nil {
		err = cerr
	}
	for i := len(vm.closers) - 1; i >= 0; i-- {
		if cerr := vm.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

//// Execution

// execute runs a word: primitives and runtime nodes dispatch through the op
// table, compound words run their body in a new call frame. The return value
// is true when an exit is unwinding to the nearest call frame.
func (vm *VM) execute(w *Word) bool {
	vm.checkContext()
	if w.op == opCall {
		vm.call(w)
		return false
	}
	vm.logf(">", "%v %v", w, vm.stack)
	return opTable[w.op].fn(vm, w)
}

func (vm *VM) call(w *Word) {
	vm.logf("+", "%v", w)
	wp, ip := vm.wp, vm.ip
	vm.rstack.push(wp, ip)
	depth := len(vm.rstack) - 2
	vm.wp = w.Token
	vm.runBody(w.Body)

	// the body may have left loop counters behind, by exiting a for loop,
	// or may have popped the saved frame itself; either way the caller
	// resumes where it left off
	if len(vm.rstack) > depth {
		vm.rstack = vm.rstack[:depth]
	}
	vm.wp, vm.ip = wp, ip
	vm.logf("-", "%v", w)
}

// runBody runs one body segment. Its position is copied into vm.ip before
// each word runs, for the benefit of to and does; a word may ask to skip its
// successor by setting vm.skip.
func (vm *VM) runBody(body []*Word) (exit bool) {
	seg, ip := vm.seg, vm.ip
	vm.seg = body
	for i := 0; i < len(body); i++ {
		vm.ip, vm.skip = i, false
		if exit = vm.execute(body[i]); exit {
			break
		}
		if vm.skip {
			i++
		}
	}
	vm.seg, vm.ip, vm.skip = seg, ip, false
	return exit
}

// checkContext halts once the Run context is done; loop nodes also call it
// once per iteration.
func (vm *VM) checkContext() {
	if vm.ctx != nil {
		if err := vm.ctx.Err(); err != nil {
			vm.halt(err)
		}
	}
}

// running returns true if the VM is inside a compound word, rather than
// executing directly from the outer interpreter.
func (vm *VM) running() bool { return vm.seg != nil }

//// Stacks

func (vm *VM) push(vals ...int) { vm.stack.push(vals...) }

func (vm *VM) pop() int {
	val, ok := vm.stack.pop()
	if !ok {
		vm.abort(stackError{"data", 1, 0})
	}
	return val
}

func (vm *VM) pop2() (a, b int) {
	vm.need(2)
	b = vm.pop()
	a = vm.pop()
	return a, b
}

// need aborts unless the data stack holds at least n values.
func (vm *VM) need(n int) {
	if have := len(vm.stack); have < n {
		vm.abort(stackError{"data", n, have})
	}
}

func (vm *VM) rpop() int {
	val, ok := vm.rstack.pop()
	if !ok {
		vm.abort(stackError{"return", 1, 0})
	}
	return val
}

func (vm *VM) word(token int) *Word {
	w, err := vm.dict.byToken(token)
	if err != nil {
		vm.abort(err)
	}
	return w
}

//// Faults

// abort unwinds to the outer interpreter, which reports err and resets.
func (vm *VM) abort(err error) {
	vm.logf("!", "abort: %v", err)
	panic(abortError{err})
}

// halt ends the session, after flushing any output.
func (vm *VM) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if vm.out != nil {
			if ferr := vm.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		vm.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

//// I/O

func (vm *VM) writeString(s string) {
	_, err := io.WriteString(vm.out, s)
	vm.haltif(err)
}

// writeRune writes r as UTF-8; values outside the unicode range come out as
// U+FFFD.
func (vm *VM) writeRune(r rune) {
	_, err := vm.out.Write(utf8.AppendRune(nil, r))
	vm.haltif(err)
}

func (vm *VM) printf(format string, args ...interface{}) {
	_, err := fmt.Fprintf(vm.out, format, args...)
	vm.haltif(err)
}

// scan reads the next whitespace delimited token; running out of input
// mid-word halts the session.
func (vm *VM) scan() string {
	token, err := vm.in.Token()
	vm.haltif(err)
	vm.logf("<", "%q", token)
	return token
}

// scanName reads a name for a defining or lookup word.
func (vm *VM) scanName() string {
	name := vm.scan()
	if name == "" {
		vm.abort(errNoName)
	}
	return name
}

// until reads raw input up to delim.
func (vm *VM) until(delim rune) string {
	s, err := vm.in.Until(delim)
	if err != io.EOF {
		vm.haltif(err)
	}
	return s
}

//// Logging

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
