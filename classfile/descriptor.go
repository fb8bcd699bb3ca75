package classfile

import "strings"

// Descriptor kinds: an object reference, an array, void, or one of the
// eight JVM primitives.
const (
	KindObject    = "L"
	KindArray     = "["
	KindByte      = "B"
	KindChar      = "C"
	KindDouble    = "D"
	KindFloat     = "F"
	KindInt       = "I"
	KindLong      = "J"
	KindShort     = "S"
	KindBoolean   = "Z"
	KindVoid      = "V"
)

// Type is a parsed JVM type descriptor. For KindObject, Payload is the
// internal class name (no surrounding L...;). For KindArray, Kind is the
// dimension prefix ("[", "[[", ...) concatenated with the element kind
// letter, and Payload is the element's class name if the element is an
// object type (empty otherwise).
type Type struct {
	Kind    string
	Payload string
}

// ParseType decodes one type descriptor from the start of s and reports
// how many bytes of s it consumed. It is a total function on well-formed
// JVM descriptors.
func ParseType(s string) (Type, int) {
	if s == "" {
		return Type{}, 0
	}
	tag := s[0]
	switch tag {
	case 'L':
		end := strings.IndexByte(s, ';')
		if end < 0 {
			// malformed; consume the rest as the payload rather than loop forever
			return Type{Kind: KindObject, Payload: s[1:]}, len(s)
		}
		name := s[1:end]
		return Type{Kind: KindObject, Payload: name}, end + 1
	case '[':
		levels := 0
		i := 0
		for i < len(s) && s[i] == '[' {
			levels++
			i++
		}
		inner, skip := ParseType(s[i:])
		kind := strings.Repeat("[", levels) + inner.Kind
		return Type{Kind: kind, Payload: inner.Payload}, i + skip
	default:
		return Type{Kind: string(tag)}, 1
	}
}

// ParseMethodDescriptor decodes a method descriptor of the form
// "(argdesc*)returndesc" into its argument descriptor strings (each kept
// in raw descriptor form, e.g. "Ljava/lang/String;" or "I") and its return
// type descriptor string.
func ParseMethodDescriptor(s string) (args []string, ret string) {
	if len(s) == 0 || s[0] != '(' {
		return nil, ""
	}
	i := 1
	for i < len(s) && s[i] != ')' {
		start := i
		_, skip := ParseType(s[i:])
		if skip == 0 {
			break
		}
		i += skip
		args = append(args, s[start:i])
	}
	if i < len(s) && s[i] == ')' {
		ret = s[i+1:]
	}
	return args, ret
}

// BoxedName maps a primitive type letter to its wrapper class's internal
// name. Array types yield "" — boxing an array type has no single wrapper
// class to name.
func BoxedName(primitive string) string {
	switch primitive {
	case KindByte:
		return "java/lang/Byte"
	case KindChar:
		return "java/lang/Character"
	case KindDouble:
		return "java/lang/Double"
	case KindFloat:
		return "java/lang/Float"
	case KindInt:
		return "java/lang/Integer"
	case KindLong:
		return "java/lang/Long"
	case KindShort:
		return "java/lang/Short"
	case KindBoolean:
		return "java/lang/Boolean"
	default:
		return ""
	}
}

// ClassNameOf returns the internal class name a descriptor denotes: the
// object payload for KindObject, the boxed wrapper name for a primitive,
// or "" for array types/void. Callers filtering demand classes rely on
// this returning "" rather than a synthetic name for unsupported shapes.
func ClassNameOf(t Type) string {
	switch t.Kind {
	case KindObject:
		return t.Payload
	case KindVoid:
		return ""
	default:
		if len(t.Kind) == 1 {
			return BoxedName(t.Kind)
		}
		return "" // array type: no single class names it
	}
}
