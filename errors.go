package main

import (
	"errors"
	"fmt"
)

var (
	// ErrStackUnderflow is wrapped by errors from popping or indexing past
	// the bottom of the data or return stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrIndexRange is wrapped by errors from addressing a field or a token
	// that does not exist.
	ErrIndexRange = errors.New("index out of range")

	// ErrMalformed is wrapped by errors from control structure words used
	// without a matching opener, or out of order.
	ErrMalformed = errors.New("malformed control structure")

	// ErrNotWord is wrapped by errors from tokens that neither name a word
	// nor parse as a number in the current base.
	ErrNotWord = errors.New("not a word or number")

	// ErrUnknownWord is wrapped by errors from name lookups done by words
	// like ' and is.
	ErrUnknownWord = errors.New("unknown word")

	errCompileOnly = errors.New("compile only")
	errExecuteOnly = errors.New("execute only")
	errDivZero     = errors.New("division by zero")
	errNoName      = errors.New("missing name")
)

type stackError struct {
	stack      string
	need, have int
}

func (err stackError) Error() string {
	return fmt.Sprintf("%v stack underflow, need %v have %v", err.stack, err.need, err.have)
}
func (err stackError) Unwrap() error { return ErrStackUnderflow }

type fieldError struct {
	word   string
	index  int
	length int
}

func (err fieldError) Error() string {
	return fmt.Sprintf("%v field %v out of range [0:%v]", err.word, err.index, err.length)
}
func (err fieldError) Unwrap() error { return ErrIndexRange }

type slotError struct {
	word string
	slot int
}

func (err slotError) Error() string {
	return fmt.Sprintf("%v has no body slot %v", err.word, err.slot)
}
func (err slotError) Unwrap() error { return ErrIndexRange }

type tokenError int

func (tok tokenError) Error() string { return fmt.Sprintf("invalid token %v", int(tok)) }
func (tokenError) Unwrap() error     { return ErrIndexRange }

type notWordError string

func (token notWordError) Error() string { return string(token) + " ?" }
func (notWordError) Unwrap() error       { return ErrNotWord }

type unknownWordError string

func (name unknownWordError) Error() string { return string(name) + " ?" }
func (unknownWordError) Unwrap() error      { return ErrUnknownWord }

type malformedError string

func (reason malformedError) Error() string { return "malformed control structure, " + string(reason) }
func (malformedError) Unwrap() error        { return ErrMalformed }

type baseError int

func (base baseError) Error() string { return fmt.Sprintf("invalid base %v", int(base)) }

// LimitError indicates that allotting fields would exceed the configured
// field limit.
type LimitError struct {
	Limit int
	Need  int
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("field limit %v exceeded, need %v", lim.Limit, lim.Need)
}

// abortError carries a fault up to the outer interpreter, which reports it
// and resets to interactive mode.
type abortError struct{ error }

func (err abortError) Unwrap() error { return err.error }

// haltError ends the whole session.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }
