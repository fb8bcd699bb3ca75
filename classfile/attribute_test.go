package classfile

import "testing"

func cpWithUTF8(entries ...string) *ConstantPool {
	pool := make([]CPEntry, len(entries)+1)
	for i, s := range entries {
		pool[i+1] = CPEntry{Tag: TagUTF8, Utf8: s}
	}
	return &ConstantPool{Entries: pool, Classes: map[string]uint16{}}
}

func TestReadAttributeGenericShape(t *testing.T) {
	cp := cpWithUTF8("SomeAttribute")
	// name_idx=1, length=3, payload {0xDE, 0xAD, 0xBE}
	data := []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x03, 0xDE, 0xAD, 0xBE}
	a, err := readAttribute(NewReader(data), cp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Name != "SomeAttribute" {
		t.Errorf("expected name SomeAttribute, got %q", a.Name)
	}
	if len(a.Content) != 3 || a.Content[2] != 0xBE {
		t.Errorf("unexpected content: %v", a.Content)
	}
}

func TestReadAnnotationListWithStringElement(t *testing.T) {
	cp := cpWithUTF8("Lcom/google/inject/name/Named;", "tag-value")
	content := []byte{
		0x00, 0x01, // numAnnotations
		0x00, 0x01, // typeIdx -> entry 1
		0x00, 0x01, // numPairs
		0x00, 0x00, // elementNameIdx (unused by this test)
		's', 0x00, 0x02, // value: tag 's', constIndex 2
	}
	anns, err := readAnnotationList(NewReader(content), cp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(anns) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(anns))
	}
	if anns[0].Type.Payload != "com/google/inject/name/Named" {
		t.Errorf("unexpected annotation type: %+v", anns[0].Type)
	}
	v, ok := anns[0].NamedValue(cp)
	if !ok || v != "tag-value" {
		t.Errorf("expected NamedValue tag-value, got %q (ok=%v)", v, ok)
	}
}

func TestReadAnnotationNestedRecursion(t *testing.T) {
	cp := cpWithUTF8("Lcom/foo/Outer;", "Lcom/foo/Inner;")
	content := []byte{
		0x00, 0x01, // numAnnotations
		0x00, 0x01, // outer typeIdx
		0x00, 0x01, // numPairs
		0x00, 0x00, // elementNameIdx
		'@', 0x00, 0x02, 0x00, 0x00, // nested annotation: typeIdx=2, numPairs=0
	}
	anns, err := readAnnotationList(NewReader(content), cp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nested := anns[0].Pairs[0].Value.Nested
	if nested == nil {
		t.Fatal("expected a nested annotation")
	}
	if nested.Type.Payload != "com/foo/Inner" {
		t.Errorf("expected nested type com/foo/Inner, got %q", nested.Type.Payload)
	}
}

func TestReadElementValueArray(t *testing.T) {
	cp := cpWithUTF8("Lcom/foo/HasArray;")
	content := []byte{
		0x00, 0x01, // numAnnotations
		0x00, 0x01, // typeIdx
		0x00, 0x01, // numPairs
		0x00, 0x00, // elementNameIdx
		'[', 0x00, 0x02, // array of 2 values
		'I', 0x00, 0x01,
		'I', 0x00, 0x01,
	}
	anns, err := readAnnotationList(NewReader(content), cp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := anns[0].Pairs[0].Value.Array
	if len(arr) != 2 {
		t.Fatalf("expected 2 array elements, got %d", len(arr))
	}
	for _, v := range arr {
		if v.Tag != 'I' {
			t.Errorf("expected tag I, got %q", v.Tag)
		}
	}
}

func TestReadElementValueRejectsUnknownTag(t *testing.T) {
	cp := cpWithUTF8("Lcom/foo/Bad;")
	content := []byte{
		0x00, 0x01,
		0x00, 0x01,
		0x00, 0x01,
		0x00, 0x00,
		'?', 0x00, 0x00,
	}
	if _, err := readAnnotationList(NewReader(content), cp); err == nil {
		t.Error("expected an error for an unrecognized element value tag")
	}
}
