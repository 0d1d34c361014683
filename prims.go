package main

import "fmt"

// opcode selects the behavior of a word; it is fixed when the word is
// created, so execution never looks anything up by name.
type opcode int

const (
	opCall opcode = iota // <INTERNAL>  run the word's body in a new call frame

	// runtime nodes, compiled into bodies but never named in the dictionary
	opDolit  // <INTERNAL>  push literal
	opDocon  // <INTERNAL>  push constant value
	opDovar  // <INTERNAL>  push owning word's token
	opDotstr // <INTERNAL>  print text
	opDostr  // <INTERNAL>  print text
	opBranch // <INTERNAL>  if else then
	opLoops  // <INTERNAL>  begin until, again, while repeat
	opCycles // <INTERNAL>  for aft then next

	// named words, in dictionary order
	opColon    // :
	opSemi     // ;
	opDup      // dup
	opOver     // over
	op4Dup     // 4dup
	opSwap     // swap
	opRot      // rot
	opMinusRot // -rot
	op2Swap    // 2swap
	opPick     // pick
	opRoll     // roll
	op2Dup     // 2dup
	op2Over    // 2over
	opDrop     // drop
	opNip      // nip
	op2Drop    // 2drop
	opToR      // >r
	opRFrom    // r>
	opRAt      // r@
	opPush     // push
	opPop      // pop

	opAdd       // +
	opSub       // -
	opMul       // *
	opDiv       // /
	opMod       // mod
	opMulDiv    // */
	opMulDivMod // */mod
	opAnd       // and
	opOr        // or
	opXor       // xor
	opNegate    // negate

	opZeroEq // 0=
	opZeroLt // 0<
	opZeroGt // 0>
	opEq     // =
	opLt     // <
	opGt     // >
	opNe     // <>
	opGe     // >=
	opLe     // <=

	opBaseAt  // base@
	opBaseSet // base!
	opHex     // hex
	opDecimal // decimal
	opCR      // cr
	opDot     // .
	opDotR    // .r
	opUDotR   // u.r
	opKey     // key
	opEmit    // emit
	opSpace   // space
	opSpaces  // spaces

	opRBrac     // ]
	opLBrac     // [
	opTick      // '
	opStrQuote  // $"
	opDotQuote  // ."
	opParen     // (
	opDotParen  // .(
	opBackslash // \

	opExit   // exit
	opExec   // exec
	opIf     // if
	opElse   // else
	opThen   // then
	opBegin  // begin
	opAgain  // again
	opUntil  // until
	opWhile  // while
	opRepeat // repeat
	opFor    // for
	opNext   // next
	opAft    // aft

	opCreate   // create
	opVariable // variable
	opConstant // constant
	opFetch    // @
	opStore    // !
	opAddStore // +!
	opQuestion // ?
	opArrayAt  // array@
	opArraySet // array!
	opComma    // ,
	opAllot    // allot
	opDoes     // does
	opTo       // to
	opIs       // is

	opHere  // here
	opWords // words
	opDotS  // .s
	opSee   // see
	opTime  // time
	opMs    // ms

	opMax
	opFirstNamed = opColon
)

type opFunc func(vm *VM, w *Word) bool

type opInfo struct {
	name      string
	immediate bool
	fn        opFunc
}

var opTable [opMax]opInfo

func (op opcode) isNode() bool { return op > opCall && op < opFirstNamed }

func (op opcode) String() string {
	if op >= 0 && op < opMax {
		if name := opTable[op].name; name != "" {
			return name
		}
	}
	return fmt.Sprintf("op%d", int(op))
}

// prim adapts a word behavior that cannot exit.
func prim(f func(vm *VM)) opFunc {
	return func(vm *VM, _ *Word) bool {
		f(vm)
		return false
	}
}

func immediate(name string, f func(vm *VM)) opInfo { return opInfo{name, true, prim(f)} }
func named(name string, f func(vm *VM)) opInfo     { return opInfo{name, false, prim(f)} }

func init() {
	opTable = [opMax]opInfo{
		opCall: {"call", false, nil},

		opDolit:  {"dolit", false, (*VM).dolit},
		opDocon:  {"docon", false, (*VM).docon},
		opDovar:  {"dovar", false, (*VM).dovar},
		opDotstr: {"dotstr", false, (*VM).dotstr},
		opDostr:  {"dostr", false, (*VM).dotstr},
		opBranch: {"branch", false, (*VM).branch},
		opLoops:  {"loops", false, (*VM).loops},
		opCycles: {"cycles", false, (*VM).cycles},

		opColon:    named(":", (*VM).colon),
		opSemi:     immediate(";", (*VM).semi),
		opDup:      named("dup", (*VM).dup),
		opOver:     named("over", (*VM).over),
		op4Dup:     named("4dup", (*VM).fourDup),
		opSwap:     named("swap", (*VM).swap),
		opRot:      named("rot", (*VM).rot),
		opMinusRot: named("-rot", (*VM).minusRot),
		op2Swap:    named("2swap", (*VM).twoSwap),
		opPick:     named("pick", (*VM).pick),
		opRoll:     named("roll", (*VM).roll),
		op2Dup:     named("2dup", (*VM).twoDup),
		op2Over:    named("2over", (*VM).twoOver),
		opDrop:     named("drop", (*VM).drop),
		opNip:      named("nip", (*VM).nip),
		op2Drop:    named("2drop", (*VM).twoDrop),
		opToR:      named(">r", (*VM).toR),
		opRFrom:    named("r>", (*VM).rFrom),
		opRAt:      named("r@", (*VM).rAt),
		opPush:     named("push", (*VM).toR),
		opPop:      named("pop", (*VM).rFrom),

		opAdd:       named("+", (*VM).add),
		opSub:       named("-", (*VM).sub),
		opMul:       named("*", (*VM).mul),
		opDiv:       named("/", (*VM).div),
		opMod:       named("mod", (*VM).mod),
		opMulDiv:    named("*/", (*VM).mulDiv),
		opMulDivMod: named("*/mod", (*VM).mulDivMod),
		opAnd:       named("and", (*VM).and),
		opOr:        named("or", (*VM).or),
		opXor:       named("xor", (*VM).xor),
		opNegate:    named("negate", (*VM).negate),

		opZeroEq: named("0=", (*VM).zeroEq),
		opZeroLt: named("0<", (*VM).zeroLt),
		opZeroGt: named("0>", (*VM).zeroGt),
		opEq:     named("=", (*VM).eq),
		opLt:     named("<", (*VM).lt),
		opGt:     named(">", (*VM).gt),
		opNe:     named("<>", (*VM).ne),
		opGe:     named(">=", (*VM).ge),
		opLe:     named("<=", (*VM).le),

		opBaseAt:  named("base@", (*VM).baseAt),
		opBaseSet: named("base!", (*VM).baseSet),
		opHex:     named("hex", (*VM).hex),
		opDecimal: named("decimal", (*VM).decimal),
		opCR:      named("cr", (*VM).cr),
		opDot:     named(".", (*VM).dot),
		opDotR:    named(".r", (*VM).dotR),
		opUDotR:   named("u.r", (*VM).uDotR),
		opKey:     named("key", (*VM).key),
		opEmit:    named("emit", (*VM).emit),
		opSpace:   named("space", (*VM).space),
		opSpaces:  named("spaces", (*VM).spaces),

		opRBrac:     named("]", (*VM).rbrac),
		opLBrac:     immediate("[", (*VM).lbrac),
		opTick:      named("'", (*VM).tick),
		opStrQuote:  immediate(`$"`, (*VM).strQuote),
		opDotQuote:  immediate(`."`, (*VM).dotQuote),
		opParen:     immediate("(", (*VM).paren),
		opDotParen:  immediate(".(", (*VM).dotParen),
		opBackslash: immediate(`\`, (*VM).backslash),

		opExit:   {"exit", false, (*VM).exit},
		opExec:   {"exec", false, (*VM).exec},
		opIf:     immediate("if", (*VM).compileIf),
		opElse:   immediate("else", (*VM).compileElse),
		opThen:   immediate("then", (*VM).compileThen),
		opBegin:  immediate("begin", (*VM).compileBegin),
		opAgain:  immediate("again", (*VM).compileAgain),
		opUntil:  immediate("until", (*VM).compileUntil),
		opWhile:  immediate("while", (*VM).compileWhile),
		opRepeat: immediate("repeat", (*VM).compileRepeat),
		opFor:    immediate("for", (*VM).compileFor),
		opNext:   immediate("next", (*VM).compileNext),
		opAft:    immediate("aft", (*VM).compileAft),

		opCreate:   named("create", (*VM).create),
		opVariable: named("variable", (*VM).variable),
		opConstant: named("constant", (*VM).constant),
		opFetch:    named("@", (*VM).fetch),
		opStore:    named("!", (*VM).store),
		opAddStore: named("+!", (*VM).addStore),
		opQuestion: named("?", (*VM).question),
		opArrayAt:  named("array@", (*VM).arrayAt),
		opArraySet: named("array!", (*VM).arraySet),
		opComma:    named(",", (*VM).comma),
		opAllot:    named("allot", (*VM).allot),
		opDoes:     {"does", false, (*VM).does},
		opTo:       named("to", (*VM).to),
		opIs:       named("is", (*VM).is),

		opHere:  named("here", (*VM).here),
		opWords: named("words", (*VM).words),
		opDotS:  named(".s", (*VM).dotS),
		opSee:   named("see", (*VM).see),
		opTime:  named("time", (*VM).time),
		opMs:    named("ms", (*VM).ms),
	}
}

// boot fills an empty dictionary with the named primitives.
func (vm *VM) boot() {
	for op := opFirstNamed; op < opMax; op++ {
		info := &opTable[op]
		w := vm.dict.define(info.name, op)
		w.Immediate = info.immediate
	}
}
