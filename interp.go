package main

import (
	"context"
	"errors"
	"io"
	"runtime"
	"strconv"
)

const farewell = "Thank you.\n"

// run is the outer interpreter: it reads tokens until input runs out or the
// token bye is read.
func (vm *VM) run(ctx context.Context) error {
	vm.ctx = ctx
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		token, err := vm.in.Token()
		if err != nil {
			return err
		}
		vm.logf("<", "%q @%v", token, vm.in.Location())

		if token == "bye" {
			vm.writeString(farewell)
			return nil
		}

		vm.interpret(token)

		if vm.in.AtEOL() {
			if vm.prompt && !vm.compiling {
				vm.writeString(" ok\n")
			}
			vm.haltif(vm.out.Flush())
		}
	}
}

// interpret handles one token: a known word is executed when interpreting,
// or when immediate, and is otherwise compiled; any other token must parse
// as a number in the current base, which is then compiled as a literal or
// pushed. Any fault, including a Go runtime error, aborts back here and
// resets the interpreter.
func (vm *VM) interpret(token string) {
	defer func() {
		switch e := recover().(type) {
		case nil:
		case abortError:
			vm.reset(token, e.error)
		case runtime.Error:
			// faults missed by checks in the words themselves still only
			// cost the current line
			vm.reset(token, e)
		default:
			panic(e)
		}
	}()

	if w := vm.dict.lookup(token); w != nil {
		if !vm.compiling || w.Immediate {
			vm.execute(w)
		} else {
			vm.compile(w)
		}
		return
	}

	n, err := strconv.ParseInt(token, vm.base, strconv.IntSize)
	if err != nil {
		vm.abort(notWordError(token))
	}
	if vm.compiling {
		vm.compile(node(opDolit, int(n)))
	} else {
		vm.push(int(n))
	}
}

// reset reports an aborted token, then returns to interpreting with empty
// stacks, dropping any partially compiled control structures and the rest of
// the input line. A partially compiled word stays in the dictionary.
func (vm *VM) reset(token string, err error) {
	vm.logf("!", "%v: %v", token, err)
	if errors.Is(err, ErrNotWord) {
		vm.writeString(err.Error() + "\n")
	} else {
		vm.writeString(token + ": " + err.Error() + "\n")
	}

	vm.stack.clear()
	vm.rstack.clear()
	vm.compiling = false
	vm.frames = vm.frames[:0]
	vm.wp, vm.ip, vm.seg = 0, 0, nil

	if err := vm.in.SkipLine(); err != nil && err != io.EOF {
		vm.halt(err)
	}
}
