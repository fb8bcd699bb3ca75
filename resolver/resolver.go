// Package resolver implements the bounded inter-procedural analysis that
// walks a decoded program from its entry point, discovers Guice module
// wiring, and computes which injection demands have no satisfying
// provider.
package resolver

import (
	"strings"

	"github.com/swenson/guicelint/bytecode"
	"github.com/swenson/guicelint/classfile"
	"github.com/swenson/guicelint/loader"
)

const (
	classAbstractModule = "com/google/inject/AbstractModule"
	classInjectorGet     = "com/google/inject/Injector.getInstance"
	bindingTo            = "com/google/inject/binder/AnnotatedBindingBuilder.to"
	bindingToInstance    = "com/google/inject/binder/AnnotatedBindingBuilder.toInstance"
	annotationProvides   = "com/google/inject/Provides"
	annotationInject     = "com/google/inject/Inject"
	annotationNamed      = "com/google/inject/name/Named"
)

// callGraphDepth is the number of call-graph generations explored from the
// entry method. 3 generations covers the common
// main -> createInjector -> module.configure bootstrap chain without
// walking the whole reachable call graph.
const callGraphDepth = 3

// Demand is a requested injection: a class, optionally qualified by an
// @Named tag. HasTag distinguishes an absent tag from an (unlikely) empty
// string tag, so report sorting and set equality can tell them apart —
// see DESIGN.md, Open Question 6.
type Demand struct {
	Class  string
	Tag    string
	HasTag bool
}

// Result is the outcome of one resolution run over an entry class.
type Result struct {
	Providers []Demand
	Injected  []Demand // the full transitive demand set, duplicates included
}

// Unsatisfied returns the demands in r.Injected with no matching entry in
// r.Providers, deduplicated by structural equality: set(injected) minus
// set(providers).
func (r Result) Unsatisfied() []Demand {
	provided := make(map[Demand]bool, len(r.Providers))
	for _, p := range r.Providers {
		provided[p] = true
	}
	seen := make(map[Demand]bool)
	var out []Demand
	for _, d := range r.Injected {
		if provided[d] || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// Resolve runs the five-phase analysis starting from mainClass's "main"
// method and returns the accumulated providers and injection demands.
func Resolve(ctx *loader.Context, mainClass string) Result {
	// Phase 1: bounded call-graph exploration.
	calledSet, seedInjected := exploreCallGraph(ctx, mainClass)

	// Phase 2: module discovery.
	modules := discoverModules(ctx, calledSet)

	// Phase 3 (+ phase 4 per module): binding and @Provides enumeration.
	moduleProviders, moduleInjected := enumerateModules(ctx, modules)

	providers := append([]Demand{}, moduleProviders...)
	injected := append([]Demand{}, seedInjected...)
	injected = append(injected, moduleInjected...)

	// Phase 5: transitive injection closure.
	closureProviders, allInjected := transitiveClosure(ctx, injected)
	providers = append(providers, closureProviders...)

	return Result{Providers: providers, Injected: allInjected}
}

// exploreCallGraph implements phase 1: three generations of "methods
// reachable by direct bytecode invocation" starting from mainClass.main,
// unioned into one set, plus every Injector.getInstance demand discovered
// along the way.
func exploreCallGraph(ctx *loader.Context, mainClass string) (calledSet map[string]bool, injected []Demand) {
	calledSet = make(map[string]bool)
	frontier := []string{mainClass + ".main"}
	for gen := 0; gen < callGraphDepth; gen++ {
		newCalled, newInjected := getAllCalled(ctx, frontier)
		for _, c := range newCalled {
			calledSet[c] = true
		}
		injected = append(injected, newInjected...)
		frontier = newCalled
	}
	return calledSet, injected
}

// getAllCalled resolves each "class.method" name in methodNames, scans
// every overload's bytecode for invoke-family instructions, and returns
// the called "class.method" targets plus any Injector.getInstance demands
// found via the one-instruction lookback.
func getAllCalled(ctx *loader.Context, methodNames []string) (called []string, injected []Demand) {
	for _, qualified := range methodNames {
		className, methodName, ok := splitQualified(qualified)
		if !ok {
			continue
		}
		cls, ok := ctx.Load(className)
		if !ok {
			continue
		}
		for _, m := range cls.MethodsByName[methodName] {
			if m.Code == nil {
				continue
			}
			instrs, err := bytecode.Disassemble(m.Code.Raw)
			if err != nil {
				continue
			}
			for idx, inst := range instrs {
				if !isInvoke(inst.Mnemonic) {
					continue
				}
				targetClass, targetMethod, _, ok := cls.ConstantPool.MethodRefName(inst.ConstIndex)
				if !ok {
					continue
				}
				call := targetClass + "." + targetMethod
				called = append(called, call)
				if call == classInjectorGet {
					if constIdx, ok := previousConstant(instrs, idx); ok {
						if name, ok2 := cls.ConstantPool.ClassName(constIdx); ok2 {
							injected = append(injected, Demand{Class: name})
						}
					}
				}
			}
		}
	}
	return called, injected
}

// discoverModules implements phase 2: for every "class.method" reachable
// in the call graph, load the class and confirm it directly subclasses
// AbstractModule.
func discoverModules(ctx *loader.Context, calledSet map[string]bool) []string {
	seen := make(map[string]bool)
	var modules []string
	for qualified := range calledSet {
		className, methodName, ok := splitQualified(qualified)
		if !ok || seen[className] {
			continue
		}
		cls, ok := ctx.Load(className)
		if !ok {
			continue
		}
		if _, hasMethod := cls.MethodsByName[methodName]; !hasMethod {
			continue
		}
		if cls.SuperClass == classAbstractModule {
			seen[className] = true
			modules = append(modules, className)
		}
	}
	return modules
}

// enumerateModules implements phases 3 and 4: a worklist over modules
// (newly discovered .install targets are pushed back onto it), scanning
// each module's configure method for bind/install/to/toInstance call
// sequences and each module's methods for @Provides.
func enumerateModules(ctx *loader.Context, modules []string) (providers []Demand, injected []Demand) {
	worklist := append([]string{}, modules...)
	done := make(map[string]bool)
	for len(worklist) > 0 {
		module := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if done[module] {
			continue
		}
		done[module] = true

		bindProviders, bindInjected, newModules := findBindings(ctx, module)
		providers = append(providers, bindProviders...)
		providers = append(providers, findProvides(ctx, module)...)
		injected = append(injected, bindInjected...)
		worklist = append(worklist, newModules...)
	}
	return providers, injected
}

// findBindings scans every "configure" method of module, tracking the
// current bind key across a one-instruction lookback. An
// AnnotatedBindingBuilder.to/.toInstance seen before any .bind has set a
// key has no binding to attach to and is skipped silently.
func findBindings(ctx *loader.Context, module string) (providers []Demand, injected []Demand, newModules []string) {
	cls, ok := ctx.Load(module)
	if !ok {
		return nil, nil, nil
	}
	for _, m := range cls.MethodsByName["configure"] {
		if m.Code == nil {
			continue
		}
		instrs, err := bytecode.Disassemble(m.Code.Raw)
		if err != nil {
			continue
		}
		bind := ""
		haveBind := false
		for idx, inst := range instrs {
			if !isInvoke(inst.Mnemonic) {
				continue
			}
			targetClass, targetMethod, _, ok := cls.ConstantPool.MethodRefName(inst.ConstIndex)
			if !ok {
				continue
			}
			call := targetClass + "." + targetMethod

			if strings.HasSuffix(call, ".install") {
				if idx > 0 && isInvoke(instrs[idx-1].Mnemonic) {
					if modClass, _, _, ok := cls.ConstantPool.MethodRefName(instrs[idx-1].ConstIndex); ok {
						newModules = append(newModules, modClass)
					}
				}
			}
			if strings.HasSuffix(call, ".bind") {
				if constIdx, ok := previousConstant(instrs, idx); ok {
					if name, ok2 := cls.ConstantPool.ClassName(constIdx); ok2 {
						bind = name
						haveBind = true
					}
				}
			}
			if call == bindingTo {
				if haveBind {
					providers = append(providers, Demand{Class: bind})
					if constIdx, ok := previousConstant(instrs, idx); ok {
						if name, ok2 := cls.ConstantPool.ClassName(constIdx); ok2 {
							injected = append(injected, Demand{Class: name})
						}
					}
				}
			}
			if call == bindingToInstance {
				if haveBind {
					providers = append(providers, Demand{Class: bind})
				}
			}
		}
	}
	return providers, injected, newModules
}

// findProvides implements phase 4: every method of module carrying a
// @Provides annotation contributes its return type (boxed if primitive)
// as a provider, qualified by any sibling @Named annotation.
func findProvides(ctx *loader.Context, module string) []Demand {
	cls, ok := ctx.Load(module)
	if !ok {
		return nil
	}
	var providers []Demand
	for i := range cls.Methods {
		m := &cls.Methods[i]
		provides := false
		tag := ""
		hasTag := false
		for _, attr := range m.Attributes {
			for _, ann := range attr.Annotations {
				switch annotationPayload(ann) {
				case annotationProvides:
					provides = true
				case annotationNamed:
					if v, ok := ann.NamedValue(cls.ConstantPool); ok {
						tag, hasTag = v, true
					}
				}
			}
		}
		if !provides {
			continue
		}
		_, ret := classfile.ParseMethodDescriptor(m.Descriptor)
		t, _ := classfile.ParseType(ret)
		name := classfile.ClassNameOf(t)
		if name == "" {
			continue
		}
		providers = append(providers, Demand{Class: name, Tag: tag, HasTag: hasTag})
	}
	return providers
}

func annotationPayload(a classfile.Annotation) string {
	if a.Type.Kind != classfile.KindObject {
		return ""
	}
	return a.Type.Payload
}

func splitQualified(s string) (class, method string, ok bool) {
	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
