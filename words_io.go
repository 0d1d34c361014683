package main

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

//// Output

func (vm *VM) format(n int) string { return strconv.FormatInt(int64(n), vm.base) }

func (vm *VM) cr()    { vm.writeRune('\n') }
func (vm *VM) space() { vm.writeRune(' ') }
func (vm *VM) emit()  { vm.writeRune(rune(vm.pop())) }

// .      ( n -- )        print n in the current base, followed by a space
func (vm *VM) dot() { vm.writeString(vm.format(vm.pop()) + " ") }

// .r     ( n width -- )  like . but right justified with spaces
func (vm *VM) dotR() {
	n, width := vm.pop2()
	vm.justify(vm.format(n), width)
}

// u.r    ( n width -- )  like .r but with the sign bit masked off
func (vm *VM) uDotR() {
	n, width := vm.pop2()
	vm.justify(vm.format(n&math.MaxInt), width)
}

func (vm *VM) justify(s string, width int) {
	if pad := width - len(s); pad > 0 {
		s = vm.blanks("width", pad) + s
	}
	vm.writeString(s + " ")
}

// spaces ( n -- )
func (vm *VM) spaces() {
	if n := vm.pop(); n > 0 {
		vm.writeString(vm.blanks("spaces", n))
	}
}

// maxBlanks bounds the padding that spaces, .r and u.r will write.
const maxBlanks = 1 << 16

func (vm *VM) blanks(what string, n int) string {
	if n > maxBlanks {
		vm.abort(fmt.Errorf("%v %v: %w", what, n, ErrIndexRange))
	}
	return strings.Repeat(" ", n)
}

//// Input

// key    ( -- c )        read the next token, pushing its first character
func (vm *VM) key() {
	vm.haltif(vm.out.Flush())
	r, _ := utf8.DecodeRuneInString(vm.scanName())
	vm.push(int(r))
}

//// Strings and comments

// ." and $" print text up to the next double quote, or compile a node that
// prints it later.
func (vm *VM) dotQuote() { vm.quote(opDotstr) }
func (vm *VM) strQuote() { vm.quote(opDostr) }

func (vm *VM) quote(op opcode) {
	text := vm.until('"')
	if vm.compiling {
		vm.compile(&Word{op: op, Text: text})
	} else {
		vm.writeString(text)
	}
}

func (vm *VM) dotstr(w *Word) bool {
	vm.writeString(w.Text)
	return false
}

// (      skip up to the next close paren
func (vm *VM) paren() { vm.until(')') }

// .(     print up to the next close paren
func (vm *VM) dotParen() { vm.writeString(vm.until(')')) }

// \      skip the rest of the line
func (vm *VM) backslash() {
	if !vm.in.AtEOL() {
		vm.until('\n')
	}
}

//// Tools

// here   ( -- token )    the token that the next defined word will get
func (vm *VM) here() { vm.push(vm.dict.fence()) }

// time   print the wall clock time
func (vm *VM) time() {
	vm.writeString(vm.now().Format("15:04:05.000") + "\n")
}

// ms     ( n -- )        sleep for n milliseconds
func (vm *VM) ms() {
	n := vm.pop()
	if n <= 0 {
		return
	}
	vm.haltif(vm.out.Flush())
	ctx := vm.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	vm.haltif(vm.sleep(ctx, time.Duration(n)*time.Millisecond))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
