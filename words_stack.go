package main

//// Stack words

// Name   Stack effect          Function
// dup    ( a -- a a )          copy the top
func (vm *VM) dup() { vm.need(1); vm.stack.dup(0, 1) }

// over   ( a b -- a b a )      copy the second from top
func (vm *VM) over() { vm.need(2); vm.stack.dup(1, 1) }

// 4dup   ( a b c d -- a b c d a b c d )
func (vm *VM) fourDup() { vm.need(4); vm.stack.dup(0, 4) }

// 2dup   ( a b -- a b a b )
func (vm *VM) twoDup() { vm.need(2); vm.stack.dup(0, 2) }

// 2over  ( a b c d -- a b c d a b )
func (vm *VM) twoOver() { vm.need(4); vm.stack.dup(2, 2) }

// swap   ( a b -- b a )
func (vm *VM) swap() { vm.need(2); vm.rollUp(1) }

// rot    ( a b c -- b c a )
func (vm *VM) rot() { vm.need(3); vm.rollUp(2) }

// -rot   ( a b c -- c a b )
func (vm *VM) minusRot() { vm.need(3); vm.rollUp(2); vm.rollUp(2) }

// 2swap  ( a b c d -- c d a b )
func (vm *VM) twoSwap() { vm.need(4); vm.rollUp(3); vm.rollUp(3) }

// pick   ( ... i -- ... x )    copy the element i below the top; 0 pick is dup
func (vm *VM) pick() {
	i := vm.pop()
	val, ok := vm.stack.peek(i)
	if !ok {
		vm.abort(stackError{"data", i + 1, len(vm.stack)})
	}
	vm.push(val)
}

// roll   ( ... i -- ... x )    move the element i below the top to the top;
//                              1 roll is swap, 2 roll is rot
func (vm *VM) roll() {
	i := vm.pop()
	if i < 0 || i >= len(vm.stack) {
		vm.abort(stackError{"data", i + 1, len(vm.stack)})
	}
	vm.rollUp(i)
}

// drop   ( a -- )
func (vm *VM) drop() { vm.pop() }

// nip    ( a b -- b )
func (vm *VM) nip() { vm.need(2); vm.stack.remove(1) }

// 2drop  ( a b -- )
func (vm *VM) twoDrop() { vm.need(2); vm.stack = vm.stack[:len(vm.stack)-2] }

// rollUp moves the element i below the top to the top; callers check depth.
func (vm *VM) rollUp(i int) {
	val, _ := vm.stack.remove(i)
	vm.stack.push(val)
}

//// Return stack words

// >r push  ( a -- ) ( R: -- a )
func (vm *VM) toR() { vm.rstack.push(vm.pop()) }

// r> pop   ( -- a ) ( R: a -- )
func (vm *VM) rFrom() { vm.push(vm.rpop()) }

// r@       ( -- a ) ( R: a -- a )
func (vm *VM) rAt() {
	val, ok := vm.rstack.peek(0)
	if !ok {
		vm.abort(stackError{"return", 1, 0})
	}
	vm.push(val)
}
