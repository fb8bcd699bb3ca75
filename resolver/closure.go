package resolver

import (
	"strings"

	"github.com/swenson/guicelint/classfile"
	"github.com/swenson/guicelint/loader"
)

// transitiveClosure walks the injection demand graph with a LIFO worklist.
// A class with a no-arg constructor (descriptor "()V"; its access flags
// are not checked) is satisfiable by Guice directly and stops the walk for
// that demand there, without examining its @Inject fields. A class with an
// @Inject constructor contributes its own provider entry, and its
// non-Guice constructor arguments become new demands. The class's @Inject
// fields (and, transitively, its superclass's) are folded in only when an
// @Inject constructor was found — never for the no-arg case.
func transitiveClosure(ctx *loader.Context, initial []Demand) (providers []Demand, allInjected []Demand) {
	todo := append([]Demand{}, initial...)
	done := make(map[Demand]bool)

	for len(todo) > 0 {
		d := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if done[d] {
			continue
		}
		done[d] = true
		allInjected = append(allInjected, d)

		cls, ok := ctx.Load(d.Class)
		if !ok {
			continue
		}
		if _, ok := cls.ConstantPool.Classes[d.Class]; !ok {
			continue
		}

		foundInjectCtor := false
		stoppedOnNoArgCtor := false
	ctorLoop:
		for _, m := range cls.MethodsByName["<init>"] {
			if m.Descriptor == "()V" {
				providers = append(providers, Demand{Class: d.Class})
				stoppedOnNoArgCtor = true
				break ctorLoop
			}
			var methodAnnotations []classfile.Annotation
			var paramAnnotations [][]classfile.Annotation
			for _, attr := range m.Attributes {
				if attr.Annotations != nil {
					methodAnnotations = attr.Annotations
				}
				if attr.ParameterAnnotations != nil {
					paramAnnotations = attr.ParameterAnnotations
				}
			}
			for _, ann := range methodAnnotations {
				if annotationPayload(ann) != annotationInject {
					continue
				}
				foundInjectCtor = true
				providers = append(providers, Demand{Class: d.Class})
				args := argumentDemands(m.Descriptor, paramAnnotations, cls.ConstantPool)
				allInjected = append(allInjected, args...)
				todo = append(todo, args...)
				break
			}
		}
		if stoppedOnNoArgCtor || !foundInjectCtor {
			continue
		}

		fieldDemands := findInjectedFields(ctx, d.Class)
		allInjected = append(allInjected, fieldDemands...)
		todo = append(todo, fieldDemands...)
	}
	return providers, allInjected
}

// argumentDemands parses a constructor descriptor's argument types,
// filters out anything under com/google/inject (the Injector itself, and
// similar framework plumbing that is never a demand), and pairs each
// remaining object-typed argument with its @Named value, if any, from the
// constructor's parameter-annotation table. A primitive argument is only a
// demand when it carries an @Named tag — Guice has no binding at all for
// an unqualified primitive, so an unnamed one (e.g. a plain int port) is
// never something a module could satisfy and is dropped rather than
// turned into an unsatisfiable boxed-class demand.
func argumentDemands(descriptor string, paramAnnotations [][]classfile.Annotation, cp *classfile.ConstantPool) []Demand {
	args, _ := classfile.ParseMethodDescriptor(descriptor)
	var demands []Demand
	for i, argDesc := range args {
		t, _ := classfile.ParseType(argDesc)
		name := classfile.ClassNameOf(t)
		if name == "" {
			continue
		}
		if strings.HasPrefix(name, "com/google/inject") {
			continue
		}
		tag := ""
		hasTag := false
		if i < len(paramAnnotations) {
			for _, ann := range paramAnnotations[i] {
				if annotationPayload(ann) == annotationNamed {
					if v, ok := ann.NamedValue(cp); ok {
						tag, hasTag = v, true
					}
				}
			}
		}
		if t.Kind != classfile.KindObject && !hasTag {
			continue
		}
		demands = append(demands, Demand{Class: name, Tag: tag, HasTag: hasTag})
	}
	return demands
}

// findInjectedFields walks className's @Inject-annotated fields, recursing
// into the direct superclass until it reaches the JDK boundary (any
// superclass name starting with "java"). As with constructor arguments, an
// unnamed primitive field is dropped rather than turned into a boxed-class
// demand.
func findInjectedFields(ctx *loader.Context, className string) []Demand {
	cls, ok := ctx.Load(className)
	if !ok {
		return nil
	}
	var needed []Demand
	for _, f := range cls.Fields {
		hasInject := false
		tag := ""
		hasTag := false
		for _, attr := range f.Attributes {
			for _, ann := range attr.Annotations {
				switch annotationPayload(ann) {
				case annotationInject:
					hasInject = true
				case annotationNamed:
					if v, ok := ann.NamedValue(cls.ConstantPool); ok {
						tag, hasTag = v, true
					}
				}
			}
		}
		if !hasInject {
			continue
		}
		t, _ := classfile.ParseType(f.Descriptor)
		name := classfile.ClassNameOf(t)
		if name == "" {
			continue
		}
		if t.Kind != classfile.KindObject && !hasTag {
			continue
		}
		needed = append(needed, Demand{Class: name, Tag: tag, HasTag: hasTag})
	}

	if strings.HasPrefix(cls.SuperClass, "java") || cls.SuperClass == "" {
		return needed
	}
	return append(needed, findInjectedFields(ctx, cls.SuperClass)...)
}
