package resolver

import "github.com/swenson/guicelint/bytecode"

// previousConstant implements the one-instruction lookback the resolver
// uses to recover a string/class constant feeding a call site: "what ldc
// loaded the value this invoke just consumed?" It is kept as its own
// function, separate from the call-site scanners, so it can be exercised
// directly against hand-built instruction slices rather than only through
// a full binding-enumeration run.
//
// It looks at the instruction immediately preceding callIdx. If that is
// dup (e.g. `ldc Foo.class; dup; invokevirtual .bind`), it looks one
// instruction further back instead, since dup doesn't consume or replace
// the loaded value. Any other instruction between the ldc and the call
// means no constant is found. ldc_w is accepted
// identically to ldc; only their operand width differs.
func previousConstant(instrs []bytecode.Instruction, callIdx int) (constIndex uint16, ok bool) {
	i := callIdx - 1
	if i < 0 {
		return 0, false
	}
	if instrs[i].Mnemonic == "dup" {
		i--
	}
	if i < 0 {
		return 0, false
	}
	prev := instrs[i]
	if prev.Mnemonic == "ldc" || prev.Mnemonic == "ldc_w" {
		return prev.ConstIndex, true
	}
	return 0, false
}

// isInvoke reports whether mnemonic names one of the five invoke-family
// opcodes.
func isInvoke(mnemonic string) bool {
	switch mnemonic {
	case "invokevirtual", "invokespecial", "invokestatic", "invokeinterface", "invokedynamic":
		return true
	default:
		return false
	}
}
