package main

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/jcorbin/ooforth/internal/panicerr"
)

// New creates a VM with all primitive words defined, reading no input and
// discarding all output unless given options say otherwise.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	vm.boot()
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run interprets all input, returning nil once it runs out or once bye is
// read. Any other error is returned only after output has been flushed.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		return vm.run(ctx)
	})
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Dump writes a listing of the VM's state and every defined word.
func (vm *VM) Dump(w io.Writer) { vmDumper{vm: vm, out: w}.dump() }

// NamedReader attaches a name to an input stream, for use in error messages
// and trace logs.
func NamedReader(name string, r io.Reader) io.Reader {
	if rc, ok := r.(io.ReadCloser); ok {
		return namedReadCloser{rc, name}
	}
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

type namedReadCloser struct {
	io.ReadCloser
	name string
}

func (nr namedReader) Name() string     { return nr.name }
func (nr namedReadCloser) Name() string { return nr.name }

func WithInput(r io.Reader) VMOption                   { return withInput(r) }
func WithNamedInput(name string, r io.Reader) VMOption { return withInput(NamedReader(name, r)) }
func WithOutput(w io.Writer) VMOption                  { return withOutput(w) }
func WithTee(w io.Writer) VMOption                     { return withTee(w) }
func WithBase(base int) VMOption                       { return withBase(base) }
func WithPrompt(prompt bool) VMOption                  { return withPrompt(prompt) }
func WithFieldLimit(limit int) VMOption                { return withFieldLimit(limit) }
func WithClock(now func() time.Time) VMOption          { return withClock(now) }

func WithSleep(sleep func(ctx context.Context, d time.Duration) error) VMOption {
	return withSleep(sleep)
}

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
