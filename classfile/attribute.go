package classfile

// Attribute is the generic class-file attribute shape: name + raw
// payload, plus two structural overlays populated only when the
// attribute's name matches one of the two this analyzer cares about.
type Attribute struct {
	NameIndex uint16
	Name      string
	Content   []byte

	// Annotations is non-nil iff Name == "RuntimeVisibleAnnotations".
	Annotations []Annotation

	// ParameterAnnotations is non-nil iff Name == "RuntimeVisibleParameterAnnotations".
	// Order matches the method's declared parameter order.
	ParameterAnnotations [][]Annotation
}

// Annotation is a single annotation instance: its resolved type descriptor
// and its element-name/value pairs.
type Annotation struct {
	Type  Type
	Pairs []ElementPair
}

// ElementPair is one (name, value) entry inside an annotation.
type ElementPair struct {
	ElementNameIndex uint16
	Value            ElementValue
}

// ElementValue is the tagged variant for an annotation element's value,
// keyed by the single ASCII tag byte: 'B','C','D','F','I','J','S','Z','s'
// carry ConstIndex; 'e' carries EnumTypeNameIndex and EnumConstNameIndex;
// 'c' carries ConstIndex (a class-info UTF-8 index); '@' carries Nested;
// '[' carries Array.
type ElementValue struct {
	Tag byte

	ConstIndex uint16

	EnumTypeNameIndex  uint16
	EnumConstNameIndex uint16

	Nested *Annotation
	Array  []ElementValue
}

// readAttributes decodes count attributes starting at the reader's current
// position, each in the uniform attribute shape:
// name_idx:u16, length:u32, length bytes of payload.
func readAttributes(r *Reader, cp *ConstantPool, count int) ([]Attribute, error) {
	attrs := make([]Attribute, 0, count)
	for i := 0; i < count; i++ {
		a, err := readAttribute(r, cp)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func readAttribute(r *Reader, cp *ConstantPool) (Attribute, error) {
	nameIdx, err := r.ReadU16()
	if err != nil {
		return Attribute{}, err
	}
	length, err := r.ReadU32()
	if err != nil {
		return Attribute{}, err
	}
	content, err := r.ReadBytes(int(length))
	if err != nil {
		return Attribute{}, err
	}
	a := Attribute{
		NameIndex: nameIdx,
		Name:      cp.UTF8(nameIdx),
		Content:   content,
	}
	switch a.Name {
	case "RuntimeVisibleAnnotations":
		anns, err := readAnnotationList(NewReader(content), cp)
		if err != nil {
			return Attribute{}, err
		}
		a.Annotations = anns
	case "RuntimeVisibleParameterAnnotations":
		params, err := readParameterAnnotations(NewReader(content), cp)
		if err != nil {
			return Attribute{}, err
		}
		a.ParameterAnnotations = params
	}
	return a, nil
}

func readAnnotationList(r *Reader, cp *ConstantPool) ([]Annotation, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	anns := make([]Annotation, 0, count)
	for i := 0; i < int(count); i++ {
		a, err := readAnnotation(r, cp)
		if err != nil {
			return nil, err
		}
		anns = append(anns, a)
	}
	return anns, nil
}

func readParameterAnnotations(r *Reader, cp *ConstantPool) ([][]Annotation, error) {
	numParams, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	params := make([][]Annotation, 0, numParams)
	for p := 0; p < int(numParams); p++ {
		anns, err := readAnnotationList(r, cp)
		if err != nil {
			return nil, err
		}
		params = append(params, anns)
	}
	return params, nil
}

// readAnnotation decodes type_idx:u16, num_pairs:u16, then that many
// (element_name_idx, element_value) pairs.
func readAnnotation(r *Reader, cp *ConstantPool) (Annotation, error) {
	typeIdx, err := r.ReadU16()
	if err != nil {
		return Annotation{}, err
	}
	numPairs, err := r.ReadU16()
	if err != nil {
		return Annotation{}, err
	}
	typ, _ := ParseType(cp.UTF8(typeIdx))
	ann := Annotation{Type: typ}
	for i := 0; i < int(numPairs); i++ {
		nameIdx, err := r.ReadU16()
		if err != nil {
			return Annotation{}, err
		}
		val, err := readElementValue(r, cp)
		if err != nil {
			return Annotation{}, err
		}
		ann.Pairs = append(ann.Pairs, ElementPair{ElementNameIndex: nameIdx, Value: val})
	}
	return ann, nil
}

// readElementValue decodes one tagged element value. The '@' case
// recurses on the reader directly rather than re-slicing a buffer by
// hand — the reader's own cursor already tracks the remaining input
// correctly across nested annotations.
func readElementValue(r *Reader, cp *ConstantPool) (ElementValue, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return ElementValue{}, err
	}
	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		idx, err := r.ReadU16()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, ConstIndex: idx}, nil
	case 'e':
		typeNameIdx, err := r.ReadU16()
		if err != nil {
			return ElementValue{}, err
		}
		constNameIdx, err := r.ReadU16()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, EnumTypeNameIndex: typeNameIdx, EnumConstNameIndex: constNameIdx}, nil
	case '@':
		nested, err := readAnnotation(r, cp)
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, Nested: &nested}, nil
	case '[':
		numValues, err := r.ReadU16()
		if err != nil {
			return ElementValue{}, err
		}
		values := make([]ElementValue, 0, numValues)
		for i := 0; i < int(numValues); i++ {
			v, err := readElementValue(r, cp)
			if err != nil {
				return ElementValue{}, err
			}
			values = append(values, v)
		}
		return ElementValue{Tag: tag, Array: values}, nil
	default:
		return ElementValue{}, decodeError(ErrUnexpectedTag, "unknown annotation element tag")
	}
}

// NamedValue returns the string value of the first 's' (UTF-8 string)
// element of an annotation such as @Named("tag"), resolved through the
// constant pool. The element's name is not checked. Returns ("", false) if
// the annotation has no 's' element. Guice's @Named carries its tag as
// element "value".
func (a Annotation) NamedValue(cp *ConstantPool) (string, bool) {
	for _, p := range a.Pairs {
		if p.Value.Tag == 's' {
			return cp.UTF8(p.Value.ConstIndex), true
		}
	}
	return "", false
}
