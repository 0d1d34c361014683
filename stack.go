package main

// stack is an unbounded LIFO of integers; all position arguments count down
// from the top, so that 0 is the top itself.
type stack []int

func (s *stack) push(vals ...int) { *s = append(*s, vals...) }

func (s *stack) pop() (int, bool) {
	i := len(*s) - 1
	if i < 0 {
		return 0, false
	}
	val := (*s)[i]
	*s = (*s)[:i]
	return val, true
}

// peek returns the value i positions below the top.
func (s stack) peek(i int) (int, bool) {
	j := len(s) - 1 - i
	if i < 0 || j < 0 {
		return 0, false
	}
	return s[j], true
}

// remove takes out the value i positions below the top.
func (s *stack) remove(i int) (int, bool) {
	j := len(*s) - 1 - i
	if i < 0 || j < 0 {
		return 0, false
	}
	val := (*s)[j]
	*s = append((*s)[:j], (*s)[j+1:]...)
	return val, true
}

// dup pushes a copy of the n values found i positions below the top; e.g.
// over is dup(1, 1), 2dup is dup(0, 2), and 2over is dup(2, 2).
func (s *stack) dup(i, n int) bool {
	hi := len(*s) - i
	lo := hi - n
	if i < 0 || lo < 0 {
		return false
	}
	*s = append(*s, (*s)[lo:hi]...)
	return true
}

func (s *stack) clear() { *s = (*s)[:0] }
