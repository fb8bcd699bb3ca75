package bytecode

import (
	"encoding/binary"

	"github.com/swenson/guicelint/classfile"
)

// Instruction is one decoded bytecode instruction. Rather than a
// polymorphic hierarchy (one struct type per opcode family), this is a
// single tagged struct: the Mnemonic/Address identify the
// instruction, and only the operand fields relevant to that instruction's
// operandKind are populated.
// Callers that need a specific operand shape (the resolver's lookback
// helper, primarily) read the field documented for that mnemonic rather
// than type-switching.
type Instruction struct {
	Address  int // byte offset of this instruction within the method's code array
	Mnemonic string
	Size     int // total width in bytes, including the opcode byte and any wide/table prefix

	// ConstIndex is the constant-pool index for ldc/ldc_w/ldc2_w, the
	// field/method/class/interface-method-ref family, invokedynamic, new,
	// anewarray, checkcast, instanceof, and multianewarray.
	ConstIndex uint16

	// LocalIndex is the local-variable slot for the *load/*store/ret family
	// (including their wide forms).
	LocalIndex uint16

	// Branch is the absolute target address for the if*/goto*/jsr* family,
	// computed from the instruction's own Address plus the signed operand.
	Branch int

	// IntImm carries bipush's and sipush's sign-extended immediate.
	IntImm int32

	// IincDelta carries iinc's (and wide iinc's) signed increment; IincDelta
	// pairs with LocalIndex for the target local.
	IincDelta int32

	// ArrayType carries newarray's 1-byte primitive type code.
	ArrayType uint8

	// Dimensions carries multianewarray's dimension count.
	Dimensions uint8

	// InterfaceCount carries invokeinterface's declared argument count.
	InterfaceCount uint8

	// Default/Low/High/MatchOffsets describe tableswitch; Default/Pairs
	// describe lookupswitch. See decodeTableSwitch/decodeLookupSwitch.
	Default      int
	Low, High    int32
	MatchOffsets []int

	Pairs []LookupPair

	// Wide is true if this instruction was prefixed by the wide opcode.
	Wide bool
}

// LookupPair is one (match, target) entry of a lookupswitch table.
type LookupPair struct {
	Match  int32
	Target int
}

// Disassemble decodes code into a sequence of instructions, in order.
// Addresses are relative to the start of code, matching the JVM's own
// addressing (branch targets, tableswitch/lookupswitch padding, and
// exception table bounds all key off this same origin).
//
// An unrecognized opcode decodes to a 1-byte "unknown" instruction rather
// than aborting the scan — callers that need bytecode exactness (the
// resolver does not; it only inspects a handful of mnemonics) can inspect
// Mnemonic == "unknown".
func Disassemble(code []byte) ([]Instruction, error) {
	var out []Instruction
	addr := 0
	for addr < len(code) {
		inst, err := decodeAt(code, addr)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
		addr += inst.Size
	}
	return out, nil
}

func decodeAt(code []byte, addr int) (Instruction, error) {
	opcode := code[addr]
	info := opcodeTable[opcode]
	inst := Instruction{Address: addr, Mnemonic: info.mnemonic}

	switch info.kind {
	case operandNone:
		inst.Size = info.size

	case operandLocalIndex8:
		if addr+2 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		inst.LocalIndex = uint16(code[addr+1])
		inst.Size = info.size

	case operandConstIndex8:
		if addr+2 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		inst.ConstIndex = uint16(code[addr+1])
		inst.Size = info.size

	case operandConstIndex16:
		if addr+3 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		inst.ConstIndex = binary.BigEndian.Uint16(code[addr+1 : addr+3])
		inst.Size = info.size

	case operandBranch16:
		if addr+3 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		off := int16(binary.BigEndian.Uint16(code[addr+1 : addr+3]))
		inst.Branch = addr + int(off)
		inst.Size = info.size

	case operandBranch32:
		if addr+5 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		off := int32(binary.BigEndian.Uint32(code[addr+1 : addr+5]))
		inst.Branch = addr + int(off)
		inst.Size = info.size

	case operandImmByte:
		if addr+2 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		inst.IntImm = int32(int8(code[addr+1]))
		inst.Size = info.size

	case operandImmShort:
		if addr+3 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		inst.IntImm = int32(int16(binary.BigEndian.Uint16(code[addr+1 : addr+3])))
		inst.Size = info.size

	case operandIinc:
		if addr+3 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		inst.LocalIndex = uint16(code[addr+1])
		inst.IincDelta = int32(int8(code[addr+2]))
		inst.Size = info.size

	case operandNewarray:
		if addr+2 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		inst.ArrayType = code[addr+1]
		inst.Size = info.size

	case operandMultiANewArray:
		if addr+4 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		inst.ConstIndex = binary.BigEndian.Uint16(code[addr+1 : addr+3])
		inst.Dimensions = code[addr+3]
		inst.Size = info.size

	case operandInvokeInterface:
		if addr+5 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		inst.ConstIndex = binary.BigEndian.Uint16(code[addr+1 : addr+3])
		inst.InterfaceCount = code[addr+3]
		// code[addr+4] is a reserved zero byte; not validated.
		inst.Size = info.size

	case operandInvokeDynamic:
		if addr+5 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		inst.ConstIndex = binary.BigEndian.Uint16(code[addr+1 : addr+3])
		// code[addr+3:addr+5] are reserved zero bytes.
		inst.Size = info.size

	case operandTableSwitch:
		return decodeTableSwitch(code, addr)

	case operandLookupSwitch:
		return decodeLookupSwitch(code, addr)

	case operandWide:
		return decodeWide(code, addr)

	default:
		inst.Size = 1
	}

	return inst, nil
}

// alignedOperandStart returns the first byte offset strictly after addr
// that is 4-byte aligned relative to the start of the code array, per the
// tableswitch/lookupswitch padding rule.
func alignedOperandStart(addr int) int {
	pad := addr + 1
	for pad%4 != 0 {
		pad++
	}
	return pad
}

// decodeTableSwitch decodes a tableswitch instruction: 0-3 zero padding
// bytes, then default:i32, low:i32, high:i32, then (high-low+1) i32 jump
// offsets. Non-zero padding bytes are treated as a decoder error rather
// than a tolerated anomaly, a stricter well-formedness check than a pure
// disassembler that only skips over the padding would apply.
func decodeTableSwitch(code []byte, addr int) (Instruction, error) {
	opStart := alignedOperandStart(addr)
	for p := addr + 1; p < opStart; p++ {
		if p >= len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		if code[p] != 0 {
			return Instruction{}, classfile.ErrBadAlignment
		}
	}
	if opStart+12 > len(code) {
		return Instruction{}, classfile.ErrTruncated
	}
	def := int32(binary.BigEndian.Uint32(code[opStart : opStart+4]))
	low := int32(binary.BigEndian.Uint32(code[opStart+4 : opStart+8]))
	high := int32(binary.BigEndian.Uint32(code[opStart+8 : opStart+12]))
	n := int(high-low) + 1
	if n < 0 {
		return Instruction{}, classfile.ErrBadAlignment
	}
	entriesStart := opStart + 12
	if entriesStart+4*n > len(code) {
		return Instruction{}, classfile.ErrTruncated
	}
	offsets := make([]int, n)
	for i := 0; i < n; i++ {
		off := int32(binary.BigEndian.Uint32(code[entriesStart+4*i : entriesStart+4*i+4]))
		offsets[i] = addr + int(off)
	}
	end := entriesStart + 4*n
	return Instruction{
		Address:      addr,
		Mnemonic:     "tableswitch",
		Size:         end - addr,
		Default:      addr + int(def),
		Low:          low,
		High:         high,
		MatchOffsets: offsets,
	}, nil
}

// decodeLookupSwitch decodes a lookupswitch instruction: 0-3 zero padding
// bytes, then default:i32, npairs:i32, then npairs (match:i32, offset:i32)
// pairs.
func decodeLookupSwitch(code []byte, addr int) (Instruction, error) {
	opStart := alignedOperandStart(addr)
	for p := addr + 1; p < opStart; p++ {
		if p >= len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		if code[p] != 0 {
			return Instruction{}, classfile.ErrBadAlignment
		}
	}
	if opStart+8 > len(code) {
		return Instruction{}, classfile.ErrTruncated
	}
	def := int32(binary.BigEndian.Uint32(code[opStart : opStart+4]))
	npairs := int32(binary.BigEndian.Uint32(code[opStart+4 : opStart+8]))
	if npairs < 0 {
		return Instruction{}, classfile.ErrBadAlignment
	}
	pairsStart := opStart + 8
	if pairsStart+8*int(npairs) > len(code) {
		return Instruction{}, classfile.ErrTruncated
	}
	pairs := make([]LookupPair, npairs)
	for i := 0; i < int(npairs); i++ {
		base := pairsStart + 8*i
		match := int32(binary.BigEndian.Uint32(code[base : base+4]))
		off := int32(binary.BigEndian.Uint32(code[base+4 : base+8]))
		pairs[i] = LookupPair{Match: match, Target: addr + int(off)}
	}
	end := pairsStart + 8*int(npairs)
	return Instruction{
		Address:  addr,
		Mnemonic: "lookupswitch",
		Size:     end - addr,
		Default:  addr + int(def),
		Pairs:    pairs,
	}, nil
}

// decodeWide decodes the wide prefix: wide iinc is 6 bytes total
// (opcode, wide-opcode, local:u16, delta:i16); every other wide form
// (iload/istore/fload/fstore/aload/astore/lload/lstore/ret) is 4 bytes
// total (opcode, wide-opcode, local:u16).
func decodeWide(code []byte, addr int) (Instruction, error) {
	if addr+2 > len(code) {
		return Instruction{}, classfile.ErrTruncated
	}
	sub := code[addr+1]
	subInfo := opcodeTable[sub]
	if sub == 0x84 { // iinc
		if addr+6 > len(code) {
			return Instruction{}, classfile.ErrTruncated
		}
		local := binary.BigEndian.Uint16(code[addr+2 : addr+4])
		delta := int32(int16(binary.BigEndian.Uint16(code[addr+4 : addr+6])))
		return Instruction{
			Address:    addr,
			Mnemonic:   subInfo.mnemonic,
			Size:       6,
			LocalIndex: local,
			IincDelta:  delta,
			Wide:       true,
		}, nil
	}
	if addr+4 > len(code) {
		return Instruction{}, classfile.ErrTruncated
	}
	local := binary.BigEndian.Uint16(code[addr+2 : addr+4])
	return Instruction{
		Address:    addr,
		Mnemonic:   subInfo.mnemonic,
		Size:       4,
		LocalIndex: local,
		Wide:       true,
	}, nil
}
