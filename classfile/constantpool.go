package classfile

// Constant pool tags, the enumerated set the JVM format assigns to
// UTF8/numeric/class/string/ref/name-and-type entries.
const (
	TagUTF8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
)

// CPEntry is one constant-pool slot. Rather than a {Type, Slot} pair
// indirecting into per-kind side arrays (useful for repeated runtime
// lookups inside a live VM), this analyzer only ever decodes a class file
// once, so the tag and its payload live inline on the entry itself — see
// DESIGN.md, Open Question 1.
//
// A zero-value CPEntry (Tag == 0) represents the reserved placeholder slot
// that follows every Long/Double entry, and index 0 of the pool itself,
// which the JVM spec leaves unused.
type CPEntry struct {
	Tag uint8

	// Utf8 holds the decoded text for TagUTF8.
	Utf8 string

	// Int32 holds the value for TagInteger; Int64 holds it for TagLong.
	Int32 int32
	Int64 int64

	// Float32/Float64 hold the decoded value for TagFloat/TagDouble.
	Float32 float32
	Float64 float64

	// NameIndex is used by TagClass (points to a UTF8) and TagString
	// (points to a UTF8).
	NameIndex uint16

	// ClassIndex + NameAndTypeIndex are used by TagFieldref, TagMethodref,
	// and TagInterfaceMethodref.
	ClassIndex      uint16
	NameAndTypeIndex uint16

	// NATNameIndex + NATDescriptorIndex are used by TagNameAndType.
	NATNameIndex       uint16
	NATDescriptorIndex uint16
}

// ConstantPool is the 1-indexed table of constant-pool entries for one
// class file, plus a classes-by-internal-name projection
// ("classes[internal_name] -> constant_pool_index") used by lookups that
// need to find a class's own ClassRef entry without a linear scan.
type ConstantPool struct {
	Entries []CPEntry          // index 0 is unused; len(Entries) == constant_pool_count
	Classes map[string]uint16  // internal class name -> index of its ClassRef entry
}

// Get returns the entry at index, or false if the index is out of range.
func (cp *ConstantPool) Get(index uint16) (CPEntry, bool) {
	if int(index) <= 0 || int(index) >= len(cp.Entries) {
		return CPEntry{}, false
	}
	return cp.Entries[index], true
}

// UTF8 resolves index to its UTF-8 string, or "" if it does not point at
// a UTF8 entry.
func (cp *ConstantPool) UTF8(index uint16) string {
	e, ok := cp.Get(index)
	if !ok || e.Tag != TagUTF8 {
		return ""
	}
	return e.Utf8
}

// ClassName resolves index (expected to point at a TagClass entry) to the
// class's internal (slash-delimited) name.
func (cp *ConstantPool) ClassName(index uint16) (string, bool) {
	e, ok := cp.Get(index)
	if !ok || e.Tag != TagClass {
		return "", false
	}
	return cp.UTF8(e.NameIndex), true
}

// StringValue resolves index (expected to point at a TagString entry) to
// the referenced UTF-8 constant's text.
func (cp *ConstantPool) StringValue(index uint16) (string, bool) {
	e, ok := cp.Get(index)
	if !ok || e.Tag != TagString {
		return "", false
	}
	return cp.UTF8(e.NameIndex), true
}

// MethodRefName resolves a TagMethodref (or TagInterfaceMethodref) entry
// to (className, methodName, descriptor).
func (cp *ConstantPool) MethodRefName(index uint16) (className, methodName, descriptor string, ok bool) {
	e, found := cp.Get(index)
	if !found || (e.Tag != TagMethodref && e.Tag != TagInterfaceMethodref) {
		return "", "", "", false
	}
	classEntry, found := cp.Get(e.ClassIndex)
	if !found || classEntry.Tag != TagClass {
		return "", "", "", false
	}
	className = cp.UTF8(classEntry.NameIndex)
	natEntry, found := cp.Get(e.NameAndTypeIndex)
	if !found || natEntry.Tag != TagNameAndType {
		return "", "", "", false
	}
	methodName = cp.UTF8(natEntry.NATNameIndex)
	descriptor = cp.UTF8(natEntry.NATDescriptorIndex)
	return className, methodName, descriptor, true
}

// readConstantPool decodes entries 1..count-1, dispatching on the 1-byte
// tag and inserting a reserved placeholder slot after every Long/Double,
// and projects every ClassRef it sees into the classes-by-name table.
func readConstantPool(r *Reader, count int) (*ConstantPool, error) {
	cp := &ConstantPool{
		Entries: make([]CPEntry, count),
		Classes: make(map[string]uint16),
	}
	for i := 1; i < count; i++ {
		tag, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		entry := CPEntry{Tag: tag}
		wide := false
		switch tag {
		case TagUTF8:
			length, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			b, err := r.ReadBytes(int(length))
			if err != nil {
				return nil, err
			}
			entry.Utf8 = string(b)
		case TagInteger:
			v, err := r.ReadI32()
			if err != nil {
				return nil, err
			}
			entry.Int32 = v
		case TagFloat:
			v, err := r.ReadF32()
			if err != nil {
				return nil, err
			}
			entry.Float32 = v
		case TagLong:
			v, err := r.ReadI64()
			if err != nil {
				return nil, err
			}
			entry.Int64 = v
			wide = true
		case TagDouble:
			v, err := r.ReadF64()
			if err != nil {
				return nil, err
			}
			entry.Float64 = v
			wide = true
		case TagClass:
			v, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			entry.NameIndex = v
		case TagString:
			v, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			entry.NameIndex = v
		case TagFieldref, TagMethodref, TagInterfaceMethodref:
			classIdx, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			natIdx, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			entry.ClassIndex = classIdx
			entry.NameAndTypeIndex = natIdx
		case TagNameAndType:
			nameIdx, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			descIdx, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			entry.NATNameIndex = nameIdx
			entry.NATDescriptorIndex = descIdx
		default:
			return nil, decodeError(ErrUnexpectedTag, "unrecognized constant pool tag")
		}
		cp.Entries[i] = entry
		if wide {
			i++
			if i < count {
				cp.Entries[i] = CPEntry{} // reserved placeholder after a wide entry
			}
		}
	}
	// Resolve every ClassRef's UTF-8 name once the whole pool (including
	// any forward references) is in place.
	for i, e := range cp.Entries {
		if e.Tag != TagClass {
			continue
		}
		name := cp.UTF8(e.NameIndex)
		if name != "" {
			cp.Classes[name] = uint16(i)
		}
	}
	return cp, nil
}
