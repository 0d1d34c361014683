// Package panicerr turns a panic, or a runtime.Goexit, in a function run on
// its own goroutine into an ordinary error.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Error is a panic or goroutine exit recovered by Recover.
type Error struct {
	Name  string
	Value interface{} // the panic value; nil after runtime.Goexit
	Stack []byte
}

// Recover runs f on a new goroutine and waits for it. A panic inside f
// becomes an *Error carrying the panic value and stack; so does a call to
// runtime.Goexit, with a nil Value.
func Recover(name string, f func() error) (err error) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		returned := false
		defer func() {
			if e := recover(); e != nil {
				err = &Error{Name: name, Value: e, Stack: debug.Stack()}
			} else if !returned {
				err = &Error{Name: name}
			}
		}()
		err = f()
		returned = true
	}()
	<-done
	return err
}

func (pe *Error) Error() string {
	who := pe.Name
	if who != "" {
		who += " "
	}
	if pe.Value == nil {
		return who + "called runtime.Goexit"
	}
	return fmt.Sprintf("%vpanicked: %v", who, pe.Value)
}

// Format adds the panic stack under %+v.
func (pe *Error) Format(f fmt.State, c rune) {
	fmt.Fprint(f, pe.Error())
	if c == 'v' && f.Flag('+') && len(pe.Stack) > 0 {
		fmt.Fprintf(f, "\npanic stack: %s", pe.Stack)
	}
}

// Unwrap returns the panic value when it is an error.
func (pe *Error) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}

// Stack returns the panic stack carried by err, if any.
func Stack(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return string(pe.Stack)
	}
	return ""
}
