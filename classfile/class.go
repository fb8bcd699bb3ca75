package classfile

// Class is a fully decoded .class file.
type Class struct {
	MinorVersion uint16
	MajorVersion uint16

	ConstantPool *ConstantPool

	AccessFlags uint16
	ThisClass   string // internal name, e.g. "com/example/FooModule"
	SuperClass  string // "" for java/lang/Object

	Interfaces []string // internal names

	Fields  []Field
	Methods []Method

	Attributes []Attribute

	// MethodsByName indexes Methods by name for the common case of looking
	// up "configure", "<init>", or a @Provides-annotated method by name;
	// overloaded methods appear under the same key in declaration order.
	MethodsByName map[string][]*Method
}

// Field is one decoded field_info structure.
type Field struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []Attribute
}

// Method is one decoded method_info structure.
type Method struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []Attribute

	// Code is non-nil iff the method carries a Code attribute (i.e. is not
	// abstract or native).
	Code *Code
}

// Code is a decoded Code attribute: the method body plus its exception
// table.
type Code struct {
	MaxStack  uint16
	MaxLocals uint16

	Raw []byte // the method's raw bytecode, kept for callers needing re-decode with context

	ExceptionTable []ExceptionEntry
	Attributes     []Attribute // nested attributes (e.g. LineNumberTable), kept but not interpreted
}

// ExceptionEntry is one entry of a Code attribute's exception table.
type ExceptionEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType string // "" denotes a finally-style catch-all
}

// Parse decodes a complete .class file from data: header, constant
// pool, class-level fields, field table, method table, class attributes.
func Parse(data []byte) (*Class, error) {
	r := NewReader(data)

	magic, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if magic != 0xCAFEBABE {
		return nil, decodeError(ErrBadMagic, "bad magic number")
	}

	minor, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	major, err := r.ReadU16()
	if err != nil {
		return nil, err
	}

	cpCount, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	cp, err := readConstantPool(r, int(cpCount))
	if err != nil {
		return nil, err
	}

	accessFlags, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	thisIdx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	superIdx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	thisName, _ := cp.ClassName(thisIdx)
	superName := ""
	if superIdx != 0 {
		superName, _ = cp.ClassName(superIdx)
	}

	ifaceCount, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	interfaces := make([]string, 0, ifaceCount)
	for i := 0; i < int(ifaceCount); i++ {
		idx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		name, _ := cp.ClassName(idx)
		interfaces = append(interfaces, name)
	}

	fieldCount, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	fields := make([]Field, 0, fieldCount)
	for i := 0; i < int(fieldCount); i++ {
		f, err := readField(r, cp)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	methodCount, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	methods := make([]Method, 0, methodCount)
	for i := 0; i < int(methodCount); i++ {
		m, err := readMethod(r, cp)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}

	classAttrCount, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	classAttrs, err := readAttributes(r, cp, int(classAttrCount))
	if err != nil {
		return nil, err
	}

	c := &Class{
		MinorVersion:  minor,
		MajorVersion:  major,
		ConstantPool:  cp,
		AccessFlags:   accessFlags,
		ThisClass:     thisName,
		SuperClass:    superName,
		Interfaces:    interfaces,
		Fields:        fields,
		Methods:       methods,
		Attributes:    classAttrs,
		MethodsByName: make(map[string][]*Method),
	}
	for i := range c.Methods {
		m := &c.Methods[i]
		c.MethodsByName[m.Name] = append(c.MethodsByName[m.Name], m)
	}
	return c, nil
}

func readField(r *Reader, cp *ConstantPool) (Field, error) {
	accessFlags, err := r.ReadU16()
	if err != nil {
		return Field{}, err
	}
	nameIdx, err := r.ReadU16()
	if err != nil {
		return Field{}, err
	}
	descIdx, err := r.ReadU16()
	if err != nil {
		return Field{}, err
	}
	attrCount, err := r.ReadU16()
	if err != nil {
		return Field{}, err
	}
	attrs, err := readAttributes(r, cp, int(attrCount))
	if err != nil {
		return Field{}, err
	}
	return Field{
		AccessFlags: accessFlags,
		Name:        cp.UTF8(nameIdx),
		Descriptor:  cp.UTF8(descIdx),
		Attributes:  attrs,
	}, nil
}

func readMethod(r *Reader, cp *ConstantPool) (Method, error) {
	accessFlags, err := r.ReadU16()
	if err != nil {
		return Method{}, err
	}
	nameIdx, err := r.ReadU16()
	if err != nil {
		return Method{}, err
	}
	descIdx, err := r.ReadU16()
	if err != nil {
		return Method{}, err
	}
	attrCount, err := r.ReadU16()
	if err != nil {
		return Method{}, err
	}
	attrs, err := readAttributes(r, cp, int(attrCount))
	if err != nil {
		return Method{}, err
	}
	m := Method{
		AccessFlags: accessFlags,
		Name:        cp.UTF8(nameIdx),
		Descriptor:  cp.UTF8(descIdx),
		Attributes:  attrs,
	}
	for _, a := range attrs {
		if a.Name != "Code" {
			continue
		}
		code, err := readCode(NewReader(a.Content), cp)
		if err != nil {
			return Method{}, err
		}
		m.Code = code
	}
	return m, nil
}

// readCode decodes a Code attribute's payload: max_stack:u16,
// max_locals:u16, code_length:u32, code:[code_length]u8, exception table,
// then nested attributes.
func readCode(r *Reader, cp *ConstantPool) (*Code, error) {
	maxStack, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	maxLocals, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	codeLen, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	raw, err := r.ReadBytes(int(codeLen))
	if err != nil {
		return nil, err
	}

	excCount, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	excTable := make([]ExceptionEntry, 0, excCount)
	for i := 0; i < int(excCount); i++ {
		startPC, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		endPC, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		handlerPC, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		catchIdx, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		catchType := ""
		if catchIdx != 0 {
			catchType, _ = cp.ClassName(catchIdx)
		}
		excTable = append(excTable, ExceptionEntry{
			StartPC:   startPC,
			EndPC:     endPC,
			HandlerPC: handlerPC,
			CatchType: catchType,
		})
	}

	nestedCount, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	nested, err := readAttributes(r, cp, int(nestedCount))
	if err != nil {
		return nil, err
	}

	return &Code{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Raw:            raw,
		ExceptionTable: excTable,
		Attributes:     nested,
	}, nil
}
