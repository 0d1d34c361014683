package main

import (
	"context"
	"io"
	"time"

	"github.com/jcorbin/ooforth/internal/flushio"
)

// VMOption configures a VM under New.
type VMOption interface{ apply(vm *VM) }

// VMOptions flattens any number of options, skipping nils, into one.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

var defaultOptions = VMOptions(
	withBase(10),
	withOutput(io.Discard),
	withClock(time.Now),
	withSleep(sleepContext),
)

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type baseOption int
type promptOption bool
type fieldLimitOption int
type clockOption func() time.Time
type sleepOption func(ctx context.Context, d time.Duration) error

func withInput(r io.Reader) inputOption          { return inputOption{r} }
func withOutput(w io.Writer) outputOption        { return outputOption{w} }
func withTee(w io.Writer) teeOption              { return teeOption{w} }
func withBase(base int) baseOption               { return baseOption(base) }
func withPrompt(prompt bool) promptOption        { return promptOption(prompt) }
func withFieldLimit(limit int) fieldLimitOption  { return fieldLimitOption(limit) }
func withClock(now func() time.Time) clockOption { return clockOption(now) }
func withSleep(sleep func(context.Context, time.Duration) error) sleepOption {
	return sleepOption(sleep)
}

func (i inputOption) apply(vm *VM) {
	vm.in.Queue = append(vm.in.Queue, i.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.New(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.New(o.Writer))
	if cl, ok := o.Writer.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

func (base baseOption) apply(vm *VM) {
	if checkBase(int(base)) == nil {
		vm.base = int(base)
	}
}

func (prompt promptOption) apply(vm *VM)  { vm.prompt = bool(prompt) }
func (lim fieldLimitOption) apply(vm *VM) { vm.fieldLimit = int(lim) }
func (now clockOption) apply(vm *VM)      { vm.now = now }
func (sleep sleepOption) apply(vm *VM)    { vm.sleep = sleep }
