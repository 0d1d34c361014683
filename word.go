package main

import "fmt"

// Word is the single entity of the system: named dictionary entries, both
// primitive and compound, along with the unnamed runtime nodes that the
// compiler splices into their bodies.
type Word struct {
	Name      string
	Token     int
	Immediate bool

	// Body is the compiled code of a colon word, or the primary segment of a
	// runtime control node. AltBody and ThirdBody hold any further segments:
	// the false arm of a branch, the post-condition body of a while loop, or
	// the per-iteration tail and main body of an aft loop.
	Body      []*Word
	AltBody   []*Word
	ThirdBody []*Word

	// Fields is the data payload of variables, constants, arrays, and
	// literal nodes.
	Fields []int

	// Variant selects a control node's compiled shape; see the variant*
	// constants.
	Variant int

	// Text is printed by string nodes.
	Text string

	op opcode
}

// control node variants
const (
	variantElse  = 1 // branch: else arm compiled
	variantAgain = 1 // loops: begin ... again
	variantWhile = 2 // loops: begin ... while ... repeat
	variantAft   = 3 // cycles: for ... aft ... then ... next
)

func (w *Word) String() string {
	if w == nil {
		return "<nil>"
	}
	if w.isNode() {
		return w.op.String()
	}
	return fmt.Sprintf("%v #%v", w.Name, w.Token)
}

// isNode returns true for unnamed runtime nodes, which exist only inside the
// bodies of other words.
func (w *Word) isNode() bool { return w.op.isNode() }

// firstField returns the field sequence of w's first body slot, which is
// where variables, constants, and created words keep their data.
func (w *Word) firstField() (*[]int, error) {
	if len(w.Body) == 0 {
		return nil, slotError{w.Name, 0}
	}
	return &w.Body[0].Fields, nil
}

// node creates an unnamed runtime node.
func node(op opcode, fields ...int) *Word {
	return &Word{op: op, Fields: fields}
}

// dictionary is the ordered, append-only word table; a word's token is its
// index within it.
type dictionary []*Word

// lookup scans from the oldest entry, so that the earliest definition of a
// name shadows any later redefinition.
func (dict dictionary) lookup(name string) *Word {
	for _, w := range dict {
		if w.Name == name {
			return w
		}
	}
	return nil
}

func (dict dictionary) byToken(token int) (*Word, error) {
	if token < 0 || token >= len(dict) {
		return nil, tokenError(token)
	}
	return dict[token], nil
}

func (dict dictionary) last() *Word {
	if i := len(dict) - 1; i >= 0 {
		return dict[i]
	}
	return nil
}

// fence returns the next token to be assigned.
func (dict dictionary) fence() int { return len(dict) }

func (dict *dictionary) define(name string, op opcode) *Word {
	w := &Word{Name: name, Token: len(*dict), op: op}
	*dict = append(*dict, w)
	return w
}

// share returns a capped alias of a body, so that later appends through
// either word never write into the other.
func share(body []*Word) []*Word { return body[:len(body):len(body)] }
