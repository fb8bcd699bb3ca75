package classfile

import "testing"

func TestParseTypeObject(t *testing.T) {
	typ, n := ParseType("Ljava/lang/String;rest")
	if typ.Kind != KindObject || typ.Payload != "java/lang/String" {
		t.Errorf("unexpected type: %+v", typ)
	}
	if n != len("Ljava/lang/String;") {
		t.Errorf("expected consumed length %d, got %d", len("Ljava/lang/String;"), n)
	}
}

func TestParseTypeNestedArray(t *testing.T) {
	typ, n := ParseType("[[Ljava/lang/Object;")
	if typ.Kind != "[[L" {
		t.Errorf("expected kind [[L, got %q", typ.Kind)
	}
	if typ.Payload != "java/lang/Object" {
		t.Errorf("expected payload java/lang/Object, got %q", typ.Payload)
	}
	if n != len("[[Ljava/lang/Object;") {
		t.Errorf("expected full consumption, got %d", n)
	}
}

func TestParseTypePrimitive(t *testing.T) {
	typ, n := ParseType("I")
	if typ.Kind != "I" || n != 1 {
		t.Errorf("unexpected primitive parse: %+v n=%d", typ, n)
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	args, ret := ParseMethodDescriptor("(Ljava/lang/String;I)V")
	if len(args) != 2 || args[0] != "Ljava/lang/String;" || args[1] != "I" {
		t.Errorf("unexpected args: %v", args)
	}
	if ret != "V" {
		t.Errorf("expected return V, got %q", ret)
	}
}

func TestParseMethodDescriptorNoArgs(t *testing.T) {
	args, ret := ParseMethodDescriptor("()Ljava/lang/Object;")
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
	if ret != "Ljava/lang/Object;" {
		t.Errorf("unexpected return: %q", ret)
	}
}

func TestBoxedName(t *testing.T) {
	cases := map[string]string{
		KindByte: "java/lang/Byte",
		KindInt:  "java/lang/Integer",
		KindLong: "java/lang/Long",
	}
	for k, want := range cases {
		if got := BoxedName(k); got != want {
			t.Errorf("BoxedName(%q) = %q, want %q", k, got, want)
		}
	}
}

func TestClassNameOfArrayIsUnsupported(t *testing.T) {
	typ, _ := ParseType("[I")
	if ClassNameOf(typ) != "" {
		t.Errorf("expected array type to yield no class name, got %q", ClassNameOf(typ))
	}
}

func TestClassNameOfVoidIsEmpty(t *testing.T) {
	typ, _ := ParseType("V")
	if ClassNameOf(typ) != "" {
		t.Errorf("expected void to yield no class name, got %q", ClassNameOf(typ))
	}
}
