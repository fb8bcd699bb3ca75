package bytecode

import "testing"

func sumSizes(instrs []Instruction) int {
	total := 0
	for _, in := range instrs {
		total += in.Size
	}
	return total
}

func TestDisassembleSimpleSequence(t *testing.T) {
	// iconst_0 ; istore_1 ; iload_1 ; ireturn
	code := []byte{0x03, 0x3C, 0x1B, 0xAC}
	instrs, err := Disassemble(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(instrs) != 4 {
		t.Fatalf("expected 4 instructions, got %d", len(instrs))
	}
	want := []string{"iconst_0", "istore_1", "iload_1", "ireturn"}
	for i, m := range want {
		if instrs[i].Mnemonic != m {
			t.Errorf("instruction %d: expected %s, got %s", i, m, instrs[i].Mnemonic)
		}
	}
	if sumSizes(instrs) != len(code) {
		t.Errorf("expected size sum %d, got %d", len(code), sumSizes(instrs))
	}
}

func TestBipushSipushImmediates(t *testing.T) {
	code := []byte{0x10, 0xFF, 0x11, 0x01, 0x02}
	instrs, err := Disassemble(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if instrs[0].Mnemonic != "bipush" || instrs[0].IntImm != -1 {
		t.Errorf("expected bipush(-1), got %s(%d)", instrs[0].Mnemonic, instrs[0].IntImm)
	}
	if instrs[1].Mnemonic != "sipush" || instrs[1].IntImm != 0x0102 {
		t.Errorf("expected sipush(0x0102), got %s(%d)", instrs[1].Mnemonic, instrs[1].IntImm)
	}
}

func TestLdcFamilyWidths(t *testing.T) {
	code := []byte{0x12, 0x01, 0x13, 0x00, 0x02, 0x14, 0x00, 0x03}
	instrs, err := Disassemble(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if instrs[0].Size != 2 || instrs[0].ConstIndex != 1 {
		t.Errorf("unexpected ldc: %+v", instrs[0])
	}
	if instrs[1].Size != 3 || instrs[1].ConstIndex != 2 {
		t.Errorf("unexpected ldc_w: %+v", instrs[1])
	}
	if instrs[2].Size != 3 || instrs[2].ConstIndex != 3 {
		t.Errorf("unexpected ldc2_w: %+v", instrs[2])
	}
}

// tableswitchAt builds a minimal tableswitch instruction (default=0,
// low=0, high=0, one 4-byte offset) at the given starting address,
// prefixed by pad NOPs so the instruction itself begins at that address.
func tableswitchAt(addr int) []byte {
	code := make([]byte, addr)
	code = append(code, 0xAA) // tableswitch opcode
	padLen := (4 - (addr+1)%4) % 4
	code = append(code, make([]byte, padLen)...)
	code = append(code, 0, 0, 0, 0) // default = 0
	code = append(code, 0, 0, 0, 0) // low = 0
	code = append(code, 0, 0, 0, 0) // high = 0
	code = append(code, 0, 0, 0, 5) // one offset, target = addr+5
	return code
}

func TestTableSwitchAlignmentAtEveryOffset(t *testing.T) {
	for addr := 0; addr < 4; addr++ {
		code := tableswitchAt(addr)
		instrs, err := Disassemble(code)
		if err != nil {
			t.Fatalf("addr %d: unexpected error: %v", addr, err)
		}
		var sw *Instruction
		for i := range instrs {
			if instrs[i].Mnemonic == "tableswitch" {
				sw = &instrs[i]
			}
		}
		if sw == nil {
			t.Fatalf("addr %d: no tableswitch decoded", addr)
		}
		if sw.Low != 0 || sw.High != 0 {
			t.Errorf("addr %d: expected low=high=0, got low=%d high=%d", addr, sw.Low, sw.High)
		}
		if len(sw.MatchOffsets) != 1 {
			t.Errorf("addr %d: expected 1 match offset, got %d", addr, len(sw.MatchOffsets))
		}
		if sumSizes(instrs) != len(code) {
			t.Errorf("addr %d: size sum %d != code length %d", addr, sumSizes(instrs), len(code))
		}
	}
}

func TestTableSwitchRejectsNonZeroPadding(t *testing.T) {
	code := tableswitchAt(1)
	code[2] = 0x01 // corrupt a padding byte
	if _, err := Disassemble(code); err == nil {
		t.Error("expected an error for non-zero tableswitch padding")
	}
}

func lookupswitchAt(addr int) []byte {
	code := make([]byte, addr)
	code = append(code, 0xAB) // lookupswitch opcode
	padLen := (4 - (addr+1)%4) % 4
	code = append(code, make([]byte, padLen)...)
	code = append(code, 0, 0, 0, 0) // default = 0
	code = append(code, 0, 0, 0, 1) // npairs = 1
	code = append(code, 0, 0, 0, 7, 0, 0, 0, 3) // (match=7, offset=3)
	return code
}

func TestLookupSwitchAlignmentAtEveryOffset(t *testing.T) {
	for addr := 0; addr < 4; addr++ {
		code := lookupswitchAt(addr)
		instrs, err := Disassemble(code)
		if err != nil {
			t.Fatalf("addr %d: unexpected error: %v", addr, err)
		}
		var sw *Instruction
		for i := range instrs {
			if instrs[i].Mnemonic == "lookupswitch" {
				sw = &instrs[i]
			}
		}
		if sw == nil {
			t.Fatalf("addr %d: no lookupswitch decoded", addr)
		}
		if len(sw.Pairs) != 1 || sw.Pairs[0].Match != 7 {
			t.Errorf("addr %d: unexpected pairs: %+v", addr, sw.Pairs)
		}
		if sumSizes(instrs) != len(code) {
			t.Errorf("addr %d: size sum %d != code length %d", addr, sumSizes(instrs), len(code))
		}
	}
}

func TestWideIincWidthSix(t *testing.T) {
	code := []byte{0xC4, 0x84, 0x01, 0x00, 0xFF, 0xFF} // wide iinc #256, -1
	instrs, err := Disassemble(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(instrs) != 1 || instrs[0].Size != 6 {
		t.Fatalf("expected 1 instruction of width 6, got %+v", instrs)
	}
	if instrs[0].Mnemonic != "iinc" || !instrs[0].Wide {
		t.Errorf("expected a wide iinc, got %+v", instrs[0])
	}
	if instrs[0].LocalIndex != 0x0100 || instrs[0].IincDelta != -1 {
		t.Errorf("unexpected wide iinc payload: %+v", instrs[0])
	}
}

func TestWideIloadWidthFour(t *testing.T) {
	code := []byte{0xC4, 0x15, 0x01, 0x00} // wide iload #256
	instrs, err := Disassemble(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(instrs) != 1 || instrs[0].Size != 4 {
		t.Fatalf("expected 1 instruction of width 4, got %+v", instrs)
	}
	if instrs[0].Mnemonic != "iload" || instrs[0].LocalIndex != 0x0100 {
		t.Errorf("unexpected wide iload payload: %+v", instrs[0])
	}
}

func TestUnknownOpcodeDecodesToleratedWidthOne(t *testing.T) {
	// 0xCB is unassigned in the current JVM spec.
	code := []byte{0xCB, 0xB1}
	instrs, err := Disassemble(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(instrs) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(instrs))
	}
	if instrs[0].Mnemonic != "unknown" || instrs[0].Size != 1 {
		t.Errorf("expected a tolerated 1-byte unknown instruction, got %+v", instrs[0])
	}
}

func TestInvokeInterfaceAndInvokeDynamicWidths(t *testing.T) {
	code := []byte{
		0xB9, 0x00, 0x01, 0x02, 0x00, // invokeinterface
		0xBA, 0x00, 0x03, 0x00, 0x00, // invokedynamic
	}
	instrs, err := Disassemble(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if instrs[0].Size != 5 || instrs[0].ConstIndex != 1 || instrs[0].InterfaceCount != 2 {
		t.Errorf("unexpected invokeinterface decode: %+v", instrs[0])
	}
	if instrs[1].Size != 5 || instrs[1].ConstIndex != 3 {
		t.Errorf("unexpected invokedynamic decode: %+v", instrs[1])
	}
}
