// Package bytecode decodes a JVM method body into a typed instruction
// stream. The opcode table assigns one mnemonic per opcode byte and
// defaults every unassigned byte to an "unknown" marker rather than
// failing the whole decode.
package bytecode

// operandKind classifies how an opcode's operand bytes (if any) are laid
// out, so decodeAt can compute width and fields uniformly instead of
// switching on 200+ individual mnemonics.
type operandKind int

const (
	operandNone          operandKind = iota // no operand bytes; width 1
	operandLocalIndex8                      // one unsigned byte: local variable index (iload, istore, ret, ...)
	operandConstIndex8                      // one unsigned byte: constant pool index (ldc)
	operandConstIndex16                     // two bytes, big-endian: constant pool index
	operandBranch16                         // two bytes, big-endian signed: branch offset
	operandBranch32                         // four bytes, big-endian signed: branch offset (goto_w, jsr_w)
	operandImmByte                          // one signed byte immediate (bipush)
	operandImmShort                         // two bytes, big-endian signed immediate (sipush)
	operandIinc                             // one unsigned byte local index + one signed byte delta
	operandNewarray                         // one unsigned byte: primitive array type code
	operandMultiANewArray                   // two bytes constant pool index + one unsigned byte dimension count
	operandInvokeInterface                  // two bytes constant pool index + one unsigned byte count + one reserved zero byte
	operandInvokeDynamic                    // two bytes constant pool index + two reserved zero bytes
	operandTableSwitch                      // variable width, 4-byte aligned; see decodeTableSwitch
	operandLookupSwitch                     // variable width, 4-byte aligned; see decodeLookupSwitch
	operandWide                             // variable width prefix; see decodeWide
)

type opcodeInfo struct {
	mnemonic string
	kind     operandKind
	// size is the instruction's fixed total byte width (including the
	// opcode byte itself) for every operandKind except the three
	// variable-width families, which compute their own width.
	size int
}

var opcodeTable [256]opcodeInfo

func op(b byte, mnemonic string, kind operandKind, size int) {
	opcodeTable[b] = opcodeInfo{mnemonic: mnemonic, kind: kind, size: size}
}

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = opcodeInfo{mnemonic: "unknown", kind: operandNone, size: 1}
	}

	op(0x00, "nop", operandNone, 1)
	op(0x01, "aconst_null", operandNone, 1)
	op(0x02, "iconst_m1", operandNone, 1)
	op(0x03, "iconst_0", operandNone, 1)
	op(0x04, "iconst_1", operandNone, 1)
	op(0x05, "iconst_2", operandNone, 1)
	op(0x06, "iconst_3", operandNone, 1)
	op(0x07, "iconst_4", operandNone, 1)
	op(0x08, "iconst_5", operandNone, 1)
	op(0x09, "lconst_0", operandNone, 1)
	op(0x0a, "lconst_1", operandNone, 1)
	op(0x0b, "fconst_0", operandNone, 1)
	op(0x0c, "fconst_1", operandNone, 1)
	op(0x0d, "fconst_2", operandNone, 1)
	op(0x0e, "dconst_0", operandNone, 1)
	op(0x0f, "dconst_1", operandNone, 1)
	op(0x10, "bipush", operandImmByte, 2)
	op(0x11, "sipush", operandImmShort, 3)
	op(0x12, "ldc", operandConstIndex8, 2)
	op(0x13, "ldc_w", operandConstIndex16, 3)
	op(0x14, "ldc2_w", operandConstIndex16, 3)
	op(0x15, "iload", operandLocalIndex8, 2)
	op(0x16, "lload", operandLocalIndex8, 2)
	op(0x17, "fload", operandLocalIndex8, 2)
	op(0x18, "dload", operandLocalIndex8, 2)
	op(0x19, "aload", operandLocalIndex8, 2)
	op(0x1a, "iload_0", operandNone, 1)
	op(0x1b, "iload_1", operandNone, 1)
	op(0x1c, "iload_2", operandNone, 1)
	op(0x1d, "iload_3", operandNone, 1)
	op(0x1e, "lload_0", operandNone, 1)
	op(0x1f, "lload_1", operandNone, 1)
	op(0x20, "lload_2", operandNone, 1)
	op(0x21, "lload_3", operandNone, 1)
	op(0x22, "fload_0", operandNone, 1)
	op(0x23, "fload_1", operandNone, 1)
	op(0x24, "fload_2", operandNone, 1)
	op(0x25, "fload_3", operandNone, 1)
	op(0x26, "dload_0", operandNone, 1)
	op(0x27, "dload_1", operandNone, 1)
	op(0x28, "dload_2", operandNone, 1)
	op(0x29, "dload_3", operandNone, 1)
	op(0x2a, "aload_0", operandNone, 1)
	op(0x2b, "aload_1", operandNone, 1)
	op(0x2c, "aload_2", operandNone, 1)
	op(0x2d, "aload_3", operandNone, 1)
	op(0x2e, "iaload", operandNone, 1)
	op(0x2f, "laload", operandNone, 1)
	op(0x30, "faload", operandNone, 1)
	op(0x31, "daload", operandNone, 1)
	op(0x32, "aaload", operandNone, 1)
	op(0x33, "baload", operandNone, 1)
	op(0x34, "caload", operandNone, 1)
	op(0x35, "saload", operandNone, 1)
	op(0x36, "istore", operandLocalIndex8, 2)
	op(0x37, "lstore", operandLocalIndex8, 2)
	op(0x38, "fstore", operandLocalIndex8, 2)
	op(0x39, "dstore", operandLocalIndex8, 2)
	op(0x3a, "astore", operandLocalIndex8, 2)
	op(0x3b, "istore_0", operandNone, 1)
	op(0x3c, "istore_1", operandNone, 1)
	op(0x3d, "istore_2", operandNone, 1)
	op(0x3e, "istore_3", operandNone, 1)
	op(0x3f, "lstore_0", operandNone, 1)
	op(0x40, "lstore_1", operandNone, 1)
	op(0x41, "lstore_2", operandNone, 1)
	op(0x42, "lstore_3", operandNone, 1)
	op(0x43, "fstore_0", operandNone, 1)
	op(0x44, "fstore_1", operandNone, 1)
	op(0x45, "fstore_2", operandNone, 1)
	op(0x46, "fstore_3", operandNone, 1)
	op(0x47, "dstore_0", operandNone, 1)
	op(0x48, "dstore_1", operandNone, 1)
	op(0x49, "dstore_2", operandNone, 1)
	op(0x4a, "dstore_3", operandNone, 1)
	op(0x4b, "astore_0", operandNone, 1)
	op(0x4c, "astore_1", operandNone, 1)
	op(0x4d, "astore_2", operandNone, 1)
	op(0x4e, "astore_3", operandNone, 1)
	op(0x4f, "iastore", operandNone, 1)
	op(0x50, "lastore", operandNone, 1)
	op(0x51, "fastore", operandNone, 1)
	op(0x52, "dastore", operandNone, 1)
	op(0x53, "aastore", operandNone, 1)
	op(0x54, "bastore", operandNone, 1)
	op(0x55, "castore", operandNone, 1)
	op(0x56, "sastore", operandNone, 1)
	op(0x57, "pop", operandNone, 1)
	op(0x58, "pop2", operandNone, 1)
	op(0x59, "dup", operandNone, 1)
	op(0x5a, "dup_x1", operandNone, 1)
	op(0x5b, "dup_x2", operandNone, 1)
	op(0x5c, "dup2", operandNone, 1)
	op(0x5d, "dup2_x1", operandNone, 1)
	op(0x5e, "dup2_x2", operandNone, 1)
	op(0x5f, "swap", operandNone, 1)
	op(0x60, "iadd", operandNone, 1)
	op(0x61, "ladd", operandNone, 1)
	op(0x62, "fadd", operandNone, 1)
	op(0x63, "dadd", operandNone, 1)
	op(0x64, "isub", operandNone, 1)
	op(0x65, "lsub", operandNone, 1)
	op(0x66, "fsub", operandNone, 1)
	op(0x67, "dsub", operandNone, 1)
	op(0x68, "imul", operandNone, 1)
	op(0x69, "lmul", operandNone, 1)
	op(0x6a, "fmul", operandNone, 1)
	op(0x6b, "dmul", operandNone, 1)
	op(0x6c, "idiv", operandNone, 1)
	op(0x6d, "ldiv", operandNone, 1)
	op(0x6e, "fdiv", operandNone, 1)
	op(0x6f, "ddiv", operandNone, 1)
	op(0x70, "irem", operandNone, 1)
	op(0x71, "lrem", operandNone, 1)
	op(0x72, "frem", operandNone, 1)
	op(0x73, "drem", operandNone, 1)
	op(0x74, "ineg", operandNone, 1)
	op(0x75, "lneg", operandNone, 1)
	op(0x76, "fneg", operandNone, 1)
	op(0x77, "dneg", operandNone, 1)
	op(0x78, "ishl", operandNone, 1)
	op(0x79, "lshl", operandNone, 1)
	op(0x7a, "ishr", operandNone, 1)
	op(0x7b, "lshr", operandNone, 1)
	op(0x7c, "iushr", operandNone, 1)
	op(0x7d, "lushr", operandNone, 1)
	op(0x7e, "iand", operandNone, 1)
	op(0x7f, "land", operandNone, 1)
	op(0x80, "ior", operandNone, 1)
	op(0x81, "lor", operandNone, 1)
	op(0x82, "ixor", operandNone, 1)
	op(0x83, "lxor", operandNone, 1)
	op(0x84, "iinc", operandIinc, 3)
	op(0x85, "i2l", operandNone, 1)
	op(0x86, "i2f", operandNone, 1)
	op(0x87, "i2d", operandNone, 1)
	op(0x88, "l2i", operandNone, 1)
	op(0x89, "l2f", operandNone, 1)
	op(0x8a, "l2d", operandNone, 1)
	op(0x8b, "f2i", operandNone, 1)
	op(0x8c, "f2l", operandNone, 1)
	op(0x8d, "f2d", operandNone, 1)
	op(0x8e, "d2i", operandNone, 1)
	op(0x8f, "d2l", operandNone, 1)
	op(0x90, "d2f", operandNone, 1)
	op(0x91, "i2b", operandNone, 1)
	op(0x92, "i2c", operandNone, 1)
	op(0x93, "i2s", operandNone, 1)
	op(0x94, "lcmp", operandNone, 1)
	op(0x95, "fcmpl", operandNone, 1)
	op(0x96, "fcmpg", operandNone, 1)
	op(0x97, "dcmpl", operandNone, 1)
	op(0x98, "dcmpg", operandNone, 1)
	op(0x99, "ifeq", operandBranch16, 3)
	op(0x9a, "ifne", operandBranch16, 3)
	op(0x9b, "iflt", operandBranch16, 3)
	op(0x9c, "ifge", operandBranch16, 3)
	op(0x9d, "ifgt", operandBranch16, 3)
	op(0x9e, "ifle", operandBranch16, 3)
	op(0x9f, "if_icmpeq", operandBranch16, 3)
	op(0xa0, "if_icmpne", operandBranch16, 3)
	op(0xa1, "if_icmplt", operandBranch16, 3)
	op(0xa2, "if_icmpge", operandBranch16, 3)
	op(0xa3, "if_icmpgt", operandBranch16, 3)
	op(0xa4, "if_icmple", operandBranch16, 3)
	op(0xa5, "if_acmpeq", operandBranch16, 3)
	op(0xa6, "if_acmpne", operandBranch16, 3)
	op(0xa7, "goto", operandBranch16, 3)
	op(0xa8, "jsr", operandBranch16, 3)
	op(0xa9, "ret", operandLocalIndex8, 2)
	op(0xaa, "tableswitch", operandTableSwitch, 0)
	op(0xab, "lookupswitch", operandLookupSwitch, 0)
	op(0xac, "ireturn", operandNone, 1)
	op(0xad, "lreturn", operandNone, 1)
	op(0xae, "freturn", operandNone, 1)
	op(0xaf, "dreturn", operandNone, 1)
	op(0xb0, "areturn", operandNone, 1)
	op(0xb1, "return", operandNone, 1)
	op(0xb2, "getstatic", operandConstIndex16, 3)
	op(0xb3, "putstatic", operandConstIndex16, 3)
	op(0xb4, "getfield", operandConstIndex16, 3)
	op(0xb5, "putfield", operandConstIndex16, 3)
	op(0xb6, "invokevirtual", operandConstIndex16, 3)
	op(0xb7, "invokespecial", operandConstIndex16, 3)
	op(0xb8, "invokestatic", operandConstIndex16, 3)
	op(0xb9, "invokeinterface", operandInvokeInterface, 5)
	op(0xba, "invokedynamic", operandInvokeDynamic, 5)
	op(0xbb, "new", operandConstIndex16, 3)
	op(0xbc, "newarray", operandNewarray, 2)
	op(0xbd, "anewarray", operandConstIndex16, 3)
	op(0xbe, "arraylength", operandNone, 1)
	op(0xbf, "athrow", operandNone, 1)
	op(0xc0, "checkcast", operandConstIndex16, 3)
	op(0xc1, "instanceof", operandConstIndex16, 3)
	op(0xc2, "monitorenter", operandNone, 1)
	op(0xc3, "monitorexit", operandNone, 1)
	op(0xc4, "wide", operandWide, 0)
	op(0xc5, "multianewarray", operandMultiANewArray, 4)
	op(0xc6, "ifnull", operandBranch16, 3)
	op(0xc7, "ifnonnull", operandBranch16, 3)
	op(0xc8, "goto_w", operandBranch32, 5)
	op(0xc9, "jsr_w", operandBranch32, 5)
	op(0xca, "breakpoint", operandNone, 1)
	op(0xfe, "impdep1", operandNone, 1)
	op(0xff, "impdep2", operandNone, 1)
}
