/* Package main: ooforth -- a small object-oriented take on FORTH

FORTH is an extendable language: built-in primitives are indistinguishable
from user-defined words, and the interpreter's own vocabulary grows as a
session goes on. ooforth keeps that property, but instead of compiling into a
flat memory of cells, every word is an object: a named dictionary entry whose
body is a list of references to other words.

The dictionary is both namespace and code store. Each entry gets a token, its
permanent index, when it is defined. Looking up a name scans from the oldest
entry, so the first definition of a name always wins over any later
redefinition: after

	: foo 1 ; : foo 2 ;

the word foo still pushes 1.

Control structures compile into unnamed runtime nodes spliced into the body of
the word being defined: if/else/then builds a branch node with true and false
arms, begin/until, begin/again, and begin/while/repeat build a loops node, and
for/next or for/aft/then/next build a cycles node that counts down on the
return stack. Since the compiler keeps a stack of open structures, these nest
freely, and see prints the resulting tree:

	: count 5 for dup . next ;
	see count

Data lives in field sequences hung off a word's first body slot. create,
variable, and constant define words whose execution pushes their token (or
value, for a constant); @ ! +! array@ and array! address fields by token, and
, and allot grow the most recent word. does turns a defining word into a
template, copying the rest of its body onto each newly created word:

	: konst create , does exit @ ;
	5 konst five
	five .

Run the interpreter with any number of source files to preload; standard
input is read after them, through a line editing console when it is a
terminal. See config.go for settings, which may come from flags or a TOML
file.

*/
package main
