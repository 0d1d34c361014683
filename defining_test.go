package main

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_defining(t *testing.T) {
	tok := func(i int) string { return strconv.Itoa(userToken(i)) }

	vmTestCases{
		// variables push their own token, addressing field 0
		vmTest("variable").withInput(`variable v 5 v ! v @`).
			expectStack(5).expectFields("v", 5),
		vmTest("variable token").withInput(`variable v v`).
			expectStack(userToken(0)).expectFields("v", 0),
		vmTest("+! and ?").withInput(`variable v 3 v +! 4 v +! v ?`).
			expectStack().expectOutput("7"),
		vmTest("? ignores base").withInput(`variable v 255 v ! hex v ? v @ .`).
			expectOutput("255ff "),
		vmTest("variable listing").withInput(`variable v 7 v !`).expectSee("v", lines(
			`: v #`+tok(0),
			`  dovar #`+tok(0)+` =[7]`,
			`;`,
		)),

		// constants push their value
		vmTest("constant").withInput(`42 constant answer answer answer +`).
			expectStack(84).expectSee("answer", lines(
			`: answer #`+tok(0),
			`  docon =[42]`,
			`;`,
		)),
		vmTest("constant underflow").withInput(`constant nope`).
			expectOutput("constant: data stack underflow, need 1 have 0\n"),

		// created words grow by , and allot
		vmTest("create").withInput(`create c c`).
			expectStack(userToken(0)).expectFields("c").expectSee("c", lines(
			`: c #`+tok(0),
			`  dovar #`+tok(0)+` =[]`,
			`;`,
		)),
		vmTest("comma").withInput(`create tbl 1 , 2 , 3 , tbl 2 array@`).
			expectStack(3).expectFields("tbl", 1, 2, 3),
		vmTest("allot").withInput(`create arr 3 allot 7 arr 1 array! arr 1 array@`).
			expectStack(7).expectFields("arr", 0, 7, 0),
		vmTest("allot negative").withInput(`create arr -1 allot`).
			expectOutput("allot: allot -1: index out of range\n"),
		vmTest("array out of range").withInput(`create a 1 , a 5 array@`).
			expectOutput("array@: a field 5 out of range [0:1]\n"),
		vmTest("fetch from colon word").withInput(`: nodata ; ' nodata @`).
			expectOutput("@: nodata has no body slot 0\n"),
		vmTest("fetch bad token").withInput(`-1 @`).
			expectOutput("@: invalid token -1\n"),
		vmTest("field limit").withOptions(WithFieldLimit(2)).withInput(lines(
			`create t 1 , 2 , 3 ,`,
			`t 1 array@`,
		)).expectStack(2).expectFields("t", 1, 2).
			expectOutput(",: field limit 2 exceeded, need 3\n"),

		// does turns a defining word into a template
		vmTest("does konst").withInput(lines(
			`: konst create , does exit @ ;`,
			`5 konst five 7 konst seven`,
			`five seven`,
		)).expectStack(5, 7).expectSee("five", lines(
			`: five #`+tok(1),
			`  dovar #`+tok(1)+` =[5]`,
			`  `+primRef("@"),
			`;`,
		)),
		vmTest("does runs on").withInput(lines(
			`: mk create , does 100 200 ;`,
			`5 mk five five`,
		)).expectStack(100, 200, userToken(1), 200).expectFields("five", 5),
		vmTest("does outside").withInput(`does`).
			expectOutput("does: does is compile only\n"),

		// to stores into the word compiled after it, which is skipped
		vmTest("to").withInput(lines(
			`variable v`,
			`: setv to v ;`,
			`9 setv v @`,
		)).expectStack(9).expectFields("v", 9),
		vmTest("to constant").withInput(lines(
			`1 constant k`,
			`: setk to k k ;`,
			`5 setk`,
		)).expectStack(5),
		vmTest("to outside").withInput(`variable v 5 to v`).
			expectOutput("to: to is compile only\n"),

		// is rebinds a word to another's body
		vmTest("is").withInput(lines(
			`: a 1 ; : b 2 ;`,
			`' b is a a`,
		)).expectStack(2),
		vmTest("is deferred").withInput(lines(
			`: greet ;`,
			`: run greet greet ;`,
			`: hello ." hi " ;`,
			`' hello is greet run`,
		)).expectOutput("hi hi "),
		vmTest("is unknown").withInput(`: a 1 ; ' a is nope 3`).
			expectStack(3).expectOutput("nope ?\n"),
		vmTest("is compiled").withInput(lines(
			`: a 1 ; : bind is ;`,
			`' a bind a`,
		)).expectOutput("bind: is is execute only\n"),
	}.run(t)
}

func Test_shareBody(t *testing.T) {
	var out strings.Builder
	vm := New(WithOutput(&out), WithNamedInput("share", strings.NewReader(lines(
		`: a 1 ;`,
		`: b 2 ;`,
		`' a is b`,
	))))
	require.NoError(t, vm.Run(context.Background()))

	a, b := vm.dict.lookup("a"), vm.dict.lookup("b")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.Body, b.Body, "expected shared body")

	// appending to the rebound word must not write into the source
	b.Body = append(b.Body, node(opDolit, 3))
	assert.Len(t, a.Body, 1)
	assert.Len(t, b.Body, 2)
}

func Test_firstField(t *testing.T) {
	vm := New()
	vm.dict.define("empty", opCall)
	_, err := vm.dict.lookup("empty").firstField()
	var slot slotError
	assert.True(t, errors.As(err, &slot))
	assert.True(t, errors.Is(err, ErrIndexRange))
}
