package resolver

import (
	"archive/zip"
	"bytes"

	"github.com/swenson/guicelint/classfile"
	"github.com/swenson/guicelint/loader"
)

// The helpers in this file hand-assemble minimal, valid .class byte
// streams for resolver fixtures, the same way classfile's own tests build
// raw byte slices rather than relying on a real javac-produced archive.

type cpBuilder struct {
	buf   []byte
	count int
}

func newCPBuilder() *cpBuilder { return &cpBuilder{count: 1} }

func (b *cpBuilder) next() uint16 {
	idx := uint16(b.count)
	b.count++
	return idx
}

func (b *cpBuilder) utf8(s string) uint16 {
	idx := b.next()
	b.buf = append(b.buf, byte(classfile.TagUTF8), byte(len(s)>>8), byte(len(s)))
	b.buf = append(b.buf, []byte(s)...)
	return idx
}

func (b *cpBuilder) class(name string) uint16 {
	nameIdx := b.utf8(name)
	idx := b.next()
	b.buf = append(b.buf, byte(classfile.TagClass), byte(nameIdx>>8), byte(nameIdx))
	return idx
}

func (b *cpBuilder) nameAndType(nameIdx, descIdx uint16) uint16 {
	idx := b.next()
	b.buf = append(b.buf, byte(classfile.TagNameAndType),
		byte(nameIdx>>8), byte(nameIdx), byte(descIdx>>8), byte(descIdx))
	return idx
}

// methodref interns name/desc UTF8 entries and the NameAndType entry for
// the caller, given a class name already present at classIdx.
func (b *cpBuilder) methodref(classIdx uint16, name, desc string) uint16 {
	nameIdx := b.utf8(name)
	descIdx := b.utf8(desc)
	natIdx := b.nameAndType(nameIdx, descIdx)
	idx := b.next()
	b.buf = append(b.buf, byte(classfile.TagMethodref),
		byte(classIdx>>8), byte(classIdx), byte(natIdx>>8), byte(natIdx))
	return idx
}

func u16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func u32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func attrBytes(nameIdx uint16, payload []byte) []byte {
	out := append([]byte{}, u16(nameIdx)...)
	out = append(out, u32(uint32(len(payload)))...)
	return append(out, payload...)
}

func codeAttrBytes(nameIdx uint16, maxStack, maxLocals uint16, code []byte) []byte {
	payload := append([]byte{}, u16(maxStack)...)
	payload = append(payload, u16(maxLocals)...)
	payload = append(payload, u32(uint32(len(code)))...)
	payload = append(payload, code...)
	payload = append(payload, u16(0)...) // exception_table_length
	payload = append(payload, u16(0)...) // attributes_count
	return attrBytes(nameIdx, payload)
}

// oneAnnotation encodes a single annotation with zero element-value pairs:
// enough to mark a method/field @Inject or @Provides, whose presence is
// all these fixtures need (no element payload to read back).
func oneAnnotation(typeIdx uint16) []byte {
	out := append([]byte{}, u16(typeIdx)...)
	out = append(out, u16(0)...) // numPairs
	return out
}

func runtimeVisibleAnnotationsAttr(nameIdx uint16, typeIdxs ...uint16) []byte {
	payload := append([]byte{}, u16(uint16(len(typeIdxs)))...)
	for _, t := range typeIdxs {
		payload = append(payload, oneAnnotation(t)...)
	}
	return attrBytes(nameIdx, payload)
}

func methodBytes(accessFlags, nameIdx, descIdx uint16, attrs [][]byte) []byte {
	out := append([]byte{}, u16(accessFlags)...)
	out = append(out, u16(nameIdx)...)
	out = append(out, u16(descIdx)...)
	out = append(out, u16(uint16(len(attrs)))...)
	for _, a := range attrs {
		out = append(out, a...)
	}
	return out
}

// classBytes assembles a complete class file: header, the already-built
// constant pool, access/this/super/zero-interfaces, zero fields, the
// given methods, and zero class attributes.
func classBytes(cp *cpBuilder, accessFlags, thisIdx, superIdx uint16, methods [][]byte) []byte {
	var b []byte
	b = append(b, 0xCA, 0xFE, 0xBA, 0xBE)
	b = append(b, 0x00, 0x00) // minor
	b = append(b, 0x00, 0x34) // major
	b = append(b, u16(uint16(cp.count))...)
	b = append(b, cp.buf...)
	b = append(b, u16(accessFlags)...)
	b = append(b, u16(thisIdx)...)
	b = append(b, u16(superIdx)...)
	b = append(b, u16(0)...) // interfaces_count
	b = append(b, u16(0)...) // fields_count
	b = append(b, u16(uint16(len(methods)))...)
	for _, m := range methods {
		b = append(b, m...)
	}
	b = append(b, u16(0)...) // class attributes_count
	return b
}

// buildArchive packs classes (internal name -> .class bytes) into an
// in-memory JAR with the given Main-Class, and returns a loader.Context
// ready to resolve against it.
func buildArchive(mainClass string, classes map[string][]byte) *loader.Context {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	manifest, _ := zw.Create("META-INF/MANIFEST.MF")
	manifest.Write([]byte("Manifest-Version: 1.0\nMain-Class: " + mainClass + "\n"))

	for name, data := range classes {
		f, _ := zw.Create(name + ".class")
		f.Write(data)
	}
	zw.Close()

	zr, _ := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	return loader.New(zr)
}
