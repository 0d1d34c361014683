package main

//// Definitions

// :      begin compiling a new colon word
func (vm *VM) colon() {
	name := vm.scanName()
	w := vm.dict.define(name, opCall)
	vm.logf(":", "define %v", w)
	vm.frames = vm.frames[:0]
	vm.compiling = true
}

// ;      end the current definition
func (vm *VM) semi() {
	if n := len(vm.frames); n > 0 {
		f := vm.frames[n-1]
		vm.abort(malformedError("unclosed " + f.kind.String()))
	}
	vm.compiling = false
}

func (vm *VM) lbrac() { vm.compiling = false }
func (vm *VM) rbrac() { vm.compiling = true }

// compile appends a word to the innermost pending control structure, or to
// the body of the most recent word.
func (vm *VM) compile(w *Word) {
	if n := len(vm.frames); n > 0 {
		f := vm.frames[n-1]
		f.buf = append(f.buf, w)
	} else if last := vm.dict.last(); last != nil {
		last.Body = append(last.Body, w)
	}
	vm.logf(":", "compile %v", w)
}

// primitive returns the dictionary entry for a named opcode.
func (vm *VM) primitive(op opcode) *Word { return vm.dict[int(op-opFirstNamed)] }

//// Control structures

// frame is an open control structure: the runtime node already compiled by
// its opening word, and the body segment accumulated since.
type frame struct {
	kind frameKind
	node *Word
	buf  []*Word
}

type frameKind int

const (
	frameIf frameKind = iota + 1
	frameBegin
	frameFor
)

func (kind frameKind) String() string {
	switch kind {
	case frameIf:
		return "if"
	case frameBegin:
		return "begin"
	case frameFor:
		return "for"
	default:
		return "frame"
	}
}

// take returns the accumulated segment, leaving the frame's buffer empty.
func (f *frame) take() []*Word {
	buf := f.buf
	f.buf = nil
	return buf
}

func (vm *VM) mustCompile() {
	if !vm.compiling {
		vm.abort(malformedError("outside of a definition"))
	}
}

func (vm *VM) openFrame(kind frameKind, n *Word) {
	vm.mustCompile()
	vm.compile(n)
	vm.frames = append(vm.frames, &frame{kind: kind, node: n})
}

func (vm *VM) topFrame(kinds ...frameKind) *frame {
	vm.mustCompile()
	if n := len(vm.frames); n > 0 {
		f := vm.frames[n-1]
		for _, kind := range kinds {
			if f.kind == kind {
				return f
			}
		}
		vm.abort(malformedError("unclosed " + f.kind.String()))
	}
	vm.abort(malformedError("no matching " + kinds[0].String()))
	return nil
}

func (vm *VM) closeFrame() { vm.frames = vm.frames[:len(vm.frames)-1] }

// if     ( flag -- )
func (vm *VM) compileIf() { vm.openFrame(frameIf, node(opBranch)) }

func (vm *VM) compileElse() {
	f := vm.topFrame(frameIf)
	if f.node.Variant == variantElse {
		vm.abort(malformedError("repeated else"))
	}
	f.node.Body = append(f.node.Body, f.take()...)
	f.node.Variant = variantElse
}

// then closes an if, or the per-iteration tail of a for ... aft loop; in the
// latter case the frame stays open for next.
func (vm *VM) compileThen() {
	f := vm.topFrame(frameIf, frameFor)
	switch {
	case f.kind == frameFor:
		if f.node.Variant != variantAft {
			vm.abort(malformedError("for without aft"))
		}
		f.node.AltBody = append(f.node.AltBody, f.take()...)
	case f.node.Variant == variantElse:
		f.node.AltBody = append(f.node.AltBody, f.take()...)
		vm.closeFrame()
	default:
		f.node.Body = append(f.node.Body, f.take()...)
		vm.closeFrame()
	}
}

func (vm *VM) compileBegin() { vm.openFrame(frameBegin, node(opLoops)) }

// until  ( flag -- )
func (vm *VM) compileUntil() {
	f := vm.topFrame(frameBegin)
	if f.node.Variant == variantWhile {
		vm.abort(malformedError("begin ... while needs repeat"))
	}
	f.node.Body = append(f.node.Body, f.take()...)
	vm.closeFrame()
}

func (vm *VM) compileAgain() {
	f := vm.topFrame(frameBegin)
	if f.node.Variant == variantWhile {
		vm.abort(malformedError("begin ... while needs repeat"))
	}
	f.node.Body = append(f.node.Body, f.take()...)
	f.node.Variant = variantAgain
	vm.closeFrame()
}

// while  ( flag -- )
func (vm *VM) compileWhile() {
	f := vm.topFrame(frameBegin)
	if f.node.Variant == variantWhile {
		vm.abort(malformedError("repeated while"))
	}
	f.node.Body = append(f.node.Body, f.take()...)
	f.node.Variant = variantWhile
}

func (vm *VM) compileRepeat() {
	f := vm.topFrame(frameBegin)
	if f.node.Variant != variantWhile {
		vm.abort(malformedError("begin without while"))
	}
	f.node.AltBody = append(f.node.AltBody, f.take()...)
	vm.closeFrame()
}

// for    ( n -- ) runs its body n+1 times, counting down to 0 on the return
// stack
func (vm *VM) compileFor() {
	vm.mustCompile()
	vm.compile(vm.primitive(opToR))
	vm.openFrame(frameFor, node(opCycles))
}

func (vm *VM) compileAft() {
	f := vm.topFrame(frameFor)
	if f.node.Variant == variantAft {
		vm.abort(malformedError("repeated aft"))
	}
	f.node.Body = append(f.node.Body, f.take()...)
	f.node.Variant = variantAft
}

func (vm *VM) compileNext() {
	f := vm.topFrame(frameFor)
	if f.node.Variant == variantAft {
		f.node.ThirdBody = append(f.node.ThirdBody, f.take()...)
	} else {
		f.node.Body = append(f.node.Body, f.take()...)
	}
	vm.closeFrame()
}

//// Runtime nodes

func (vm *VM) branch(w *Word) bool {
	if vm.pop() != 0 {
		return vm.runBody(w.Body)
	}
	return vm.runBody(w.AltBody)
}

func (vm *VM) loops(w *Word) bool {
	for {
		vm.checkContext()
		if vm.runBody(w.Body) {
			return true
		}
		switch w.Variant {
		case variantAgain:
		case variantWhile:
			if vm.pop() == 0 {
				return false
			}
			if vm.runBody(w.AltBody) {
				return true
			}
		default:
			if vm.pop() != 0 {
				return false
			}
		}
	}
}

func (vm *VM) cycles(w *Word) bool {
	if w.Variant != variantAft {
		for {
			vm.checkContext()
			if vm.runBody(w.Body) {
				return true
			}
			if !vm.countDown() {
				return false
			}
		}
	}

	if vm.runBody(w.Body) {
		return true
	}
	for {
		vm.checkContext()
		if vm.runBody(w.ThirdBody) {
			return true
		}
		if !vm.countDown() {
			return false
		}
		if vm.runBody(w.AltBody) {
			return true
		}
	}
}

// countDown decrements the loop counter on top of the return stack, dropping
// it and returning false once it goes negative.
func (vm *VM) countDown() bool {
	i := vm.rpop() - 1
	if i < 0 {
		return false
	}
	vm.rstack.push(i)
	return true
}

//// Execution words

// exit   leave the current colon word
func (vm *VM) exit(*Word) bool { return true }

// exec   ( token -- ) execute the word with the given token
func (vm *VM) exec(*Word) bool { return vm.execute(vm.word(vm.pop())) }
