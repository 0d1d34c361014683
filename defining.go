package main

import (
	"fmt"
	"math"
	"strconv"
)

//// Data nodes

func (vm *VM) dolit(w *Word) bool { vm.push(vm.fieldOf(w, 0)); return false }
func (vm *VM) docon(w *Word) bool { vm.push(vm.fieldOf(w, 0)); return false }

// dovar pushes the token of the word that owns it, which is where the field
// access words will look for data.
func (vm *VM) dovar(w *Word) bool { vm.push(w.Token); return false }

func (vm *VM) fieldOf(w *Word, i int) int {
	if i < 0 || i >= len(w.Fields) {
		vm.abort(fieldError{w.String(), i, len(w.Fields)})
	}
	return w.Fields[i]
}

//// Defining words

// create    define a word that pushes its own token, with no data fields
func (vm *VM) create() { vm.defineData(opDovar, 0) }

// variable  like create, with one zero field
func (vm *VM) variable() { vm.defineData(opDovar, 1) }

// constant  ( n -- ) define a word that pushes n
func (vm *VM) constant() {
	val := vm.pop()
	w := vm.defineData(opDocon, 0)
	vm.allotFields(w, val)
}

func (vm *VM) defineData(op opcode, n int) *Word {
	name := vm.scanName()
	w := vm.dict.define(name, opCall)
	data := node(op)
	data.Token = w.Token
	w.Body = []*Word{data}
	vm.logf(":", "%v %v", data, w)
	vm.allotFields(w, make([]int, n)...)
	return w
}

// allotFields appends values to w's data fields, subject to any field limit.
func (vm *VM) allotFields(w *Word, vals ...int) {
	fields, err := w.firstField()
	if err != nil {
		vm.abort(err)
	}
	vm.reserveFields(len(vals))
	vm.fieldCount += len(vals)
	*fields = append(*fields, vals...)
}

// maxFields bounds the total field count when no field limit is set.
const maxFields = 1 << 24

// reserveFields aborts unless n more fields fit under the field limit.
func (vm *VM) reserveFields(n int) {
	limit := vm.fieldLimit
	if limit <= 0 {
		limit = maxFields
	}
	if n > limit-vm.fieldCount {
		vm.abort(LimitError{limit, satAdd(vm.fieldCount, n)})
	}
}

func satAdd(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

//// Field access, addressing words by token

// cell returns field i of the word with the given token.
func (vm *VM) cell(token, i int) *int {
	w := vm.word(token)
	fields, err := w.firstField()
	if err != nil {
		vm.abort(err)
	}
	if i < 0 || i >= len(*fields) {
		vm.abort(fieldError{w.Name, i, len(*fields)})
	}
	return &(*fields)[i]
}

// @       ( token -- n )
func (vm *VM) fetch() { vm.push(*vm.cell(vm.pop(), 0)) }

// !       ( n token -- )
func (vm *VM) store() { n, token := vm.pop2(); *vm.cell(token, 0) = n }

// +!      ( n token -- )
func (vm *VM) addStore() { n, token := vm.pop2(); *vm.cell(token, 0) += n }

// ?       ( token -- ) print the value of a variable, in decimal
func (vm *VM) question() { vm.writeString(strconv.Itoa(*vm.cell(vm.pop(), 0))) }

// array@  ( token i -- n )
func (vm *VM) arrayAt() { token, i := vm.pop2(); vm.push(*vm.cell(token, i)) }

// array!  ( n token i -- )
func (vm *VM) arraySet() {
	vm.need(3)
	token, i := vm.pop2()
	*vm.cell(token, i) = vm.pop()
}

// ,       ( n -- ) append a field to the most recent word
func (vm *VM) comma() { vm.allotFields(vm.lastWord(), vm.pop()) }

// allot   ( n -- ) append n zero fields to the most recent word
func (vm *VM) allot() {
	n := vm.pop()
	if n < 0 {
		vm.abort(fmt.Errorf("allot %v: %w", n, ErrIndexRange))
	}
	w := vm.lastWord()
	vm.reserveFields(n)
	vm.allotFields(w, make([]int, n)...)
}

func (vm *VM) lastWord() *Word {
	w := vm.dict.last()
	if w == nil {
		vm.abort(tokenError(0))
	}
	return w
}

//// Templates and deferred binding

// does copies the rest of the running definition, skipping the word right
// after it, onto the body of the most recent word. The running definition
// carries on afterwards, so the skipped slot is usually an exit:
//
//	: konst create , does exit @ ;
//
// where each word defined by konst gets the shared tail "@".
func (vm *VM) does(*Word) bool {
	if !vm.running() {
		vm.abort(fmt.Errorf("does is %w", errCompileOnly))
	}
	last := vm.lastWord()
	if i := vm.ip + 2; i < len(vm.seg) {
		last.Body = append(last.Body, vm.seg[i:]...)
	}
	vm.logf(":", "does %v %v", last, last.Body)
	return false
}

// to      ( n -- ) store n into the data field of the word compiled right
// after to, skipping that word.
func (vm *VM) to() {
	if !vm.running() {
		vm.abort(fmt.Errorf("to is %w", errCompileOnly))
	}
	i := vm.ip + 1
	if i >= len(vm.seg) {
		vm.abort(slotError{"to", i})
	}
	target := vm.seg[i]
	fields, err := target.firstField()
	if err != nil {
		vm.abort(err)
	}
	if len(*fields) == 0 {
		vm.abort(fieldError{target.Name, 0, 0})
	}
	(*fields)[0] = vm.pop()
	vm.skip = true
}

// is      ( token -- ) replace the body of the following named word with that
// of the given word.
func (vm *VM) is() {
	if vm.running() {
		vm.abort(fmt.Errorf("is is %w", errExecuteOnly))
	}
	source := vm.word(vm.pop())
	name := vm.scanName()
	target := vm.dict.lookup(name)
	if target == nil {
		vm.unknownWord(name)
		return
	}
	target.Body = share(source.Body)
	vm.logf(":", "is %v <- %v", target, source)
}

// '       ( -- token ) push the token of the following named word
func (vm *VM) tick() {
	name := vm.scanName()
	if w := vm.dict.lookup(name); w != nil {
		vm.push(w.Token)
	} else {
		vm.unknownWord(name)
	}
}

// unknownWord reports a failed lookup by a word that reads a name; unlike an
// unknown token, this does not reset the interpreter.
func (vm *VM) unknownWord(name string) {
	vm.logf("!", "%v", unknownWordError(name))
	vm.writeString(unknownWordError(name).Error() + "\n")
}
