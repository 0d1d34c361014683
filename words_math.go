package main

//// Integer arithmetic

func (vm *VM) add()    { a, b := vm.pop2(); vm.push(a + b) }
func (vm *VM) sub()    { a, b := vm.pop2(); vm.push(a - b) }
func (vm *VM) mul()    { a, b := vm.pop2(); vm.push(a * b) }
func (vm *VM) and()    { a, b := vm.pop2(); vm.push(a & b) }
func (vm *VM) or()     { a, b := vm.pop2(); vm.push(a | b) }
func (vm *VM) xor()    { a, b := vm.pop2(); vm.push(a ^ b) }
func (vm *VM) negate() { vm.push(-vm.pop()) }

func (vm *VM) div() { a, b := vm.pop2(); vm.push(a / vm.nonZero(b)) }
func (vm *VM) mod() { a, b := vm.pop2(); vm.push(a % vm.nonZero(b)) }

// */     ( a b c -- a*b/c )
func (vm *VM) mulDiv() {
	vm.need(3)
	c := vm.nonZero(vm.pop())
	a, b := vm.pop2()
	vm.push(a * b / c)
}

// */mod  ( a b c -- a*b%c a*b/c )
func (vm *VM) mulDivMod() {
	vm.need(3)
	c := vm.nonZero(vm.pop())
	a, b := vm.pop2()
	m := a * b
	vm.push(m%c, m/c)
}

func (vm *VM) nonZero(n int) int {
	if n == 0 {
		vm.abort(errDivZero)
	}
	return n
}

//// Comparison, true is -1

func truth(b bool) int {
	if b {
		return -1
	}
	return 0
}

func (vm *VM) zeroEq() { vm.push(truth(vm.pop() == 0)) }
func (vm *VM) zeroLt() { vm.push(truth(vm.pop() < 0)) }
func (vm *VM) zeroGt() { vm.push(truth(vm.pop() > 0)) }

func (vm *VM) eq() { a, b := vm.pop2(); vm.push(truth(a == b)) }
func (vm *VM) ne() { a, b := vm.pop2(); vm.push(truth(a != b)) }
func (vm *VM) lt() { a, b := vm.pop2(); vm.push(truth(a < b)) }
func (vm *VM) gt() { a, b := vm.pop2(); vm.push(truth(a > b)) }
func (vm *VM) le() { a, b := vm.pop2(); vm.push(truth(a <= b)) }
func (vm *VM) ge() { a, b := vm.pop2(); vm.push(truth(a >= b)) }

//// Numeric base

func (vm *VM) baseAt()  { vm.push(vm.base) }
func (vm *VM) hex()     { vm.base = 16 }
func (vm *VM) decimal() { vm.base = 10 }

// base! ( n -- ) radix for number parsing and printing, from 2 to 36
func (vm *VM) baseSet() {
	base := vm.pop()
	if err := checkBase(base); err != nil {
		vm.abort(err)
	}
	vm.base = base
}

func checkBase(base int) error {
	if base < 2 || base > 36 {
		return baseError(base)
	}
	return nil
}
