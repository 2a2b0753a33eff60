// Package resolver turns every ParsedCall into a ResolvedCall or drops
// it, drop-rather-than-guess: each call site runs through a fixed sequence
// of classification rules against the cross-file SymbolTable, and is
// omitted when no rule yields a confident match.
package resolver

import (
	"strings"

	"github.com/crosslang/codegraph/internal/ir"
	"github.com/crosslang/codegraph/internal/langspec"
	"github.com/crosslang/codegraph/internal/symboltable"
)

// Resolver holds the read-only state every per-file resolve pass shares:
// the completed SymbolTable, the re-export index, and a class-hierarchy
// index (superClass/interfaces) the table itself doesn't retain. Safe for
// concurrent use by multiple workers in the resolve phase — nothing here
// is mutated after New returns.
type Resolver struct {
	table     *ir.SymbolTable
	reexports *ReexportIndex
	hierarchy map[string]*ir.ParsedClass
	fnFQNs    map[*ir.ParsedFunction]string
}

// New builds a Resolver from every parsed file and the table built from
// them.
func New(files []*ir.ParsedFile, table *ir.SymbolTable) *Resolver {
	r := &Resolver{
		table:     table,
		reexports: BuildReexportIndex(files),
		hierarchy: make(map[string]*ir.ParsedClass),
		fnFQNs:    symboltable.FunctionFQNs(files),
	}
	for _, file := range files {
		spec, ok := langspec.For(file.Language)
		if !ok {
			continue
		}
		root, sep := symboltable.ModuleRoot(file, spec)
		for i := range file.Classes {
			r.indexHierarchy(&file.Classes[i], root, sep)
		}
	}
	return r
}

func (r *Resolver) indexHierarchy(class *ir.ParsedClass, parentFQN string, sep byte) {
	fqn := symboltable.Join(parentFQN, class.Name, sep)
	r.hierarchy[fqn] = class
	for i := range class.NestedClasses {
		r.indexHierarchy(&class.NestedClasses[i], fqn, '.')
	}
	if class.CompanionObject != nil {
		r.hierarchy[symboltable.Join(fqn, "Companion", '.')] = class.CompanionObject
	}
}

// ResolveFile resolves every call in file, in source order, against the
// Resolver's table. It does no I/O and touches no other file's state.
func (r *Resolver) ResolveFile(file *ir.ParsedFile) ir.ResolvedFile {
	ctx, ok := newContext(file)
	if !ok {
		return ir.ResolvedFile{File: file}
	}

	var calls []ir.ResolvedCall
	for i := range file.TopLevelFunctions {
		calls = append(calls, r.resolveFunction(ctx, &file.TopLevelFunctions[i], "", false)...)
	}
	root, sep := symboltable.ModuleRoot(file, ctx.Spec)
	for i := range file.Classes {
		calls = append(calls, r.resolveClass(ctx, &file.Classes[i], root, sep)...)
	}

	return ir.ResolvedFile{File: file, ResolvedCalls: calls}
}

func (r *Resolver) resolveClass(ctx *Context, class *ir.ParsedClass, parentFQN string, sep byte) []ir.ResolvedCall {
	fqn := symboltable.Join(parentFQN, class.Name, sep)
	classCtx := ctx.withClass(fqn, class)

	var calls []ir.ResolvedCall
	for i := range class.Functions {
		calls = append(calls, r.resolveFunction(classCtx, &class.Functions[i], fqn, true)...)
	}
	for i := range class.NestedClasses {
		calls = append(calls, r.resolveClass(ctx, &class.NestedClasses[i], fqn, '.')...)
	}
	if class.CompanionObject != nil {
		companionFQN := symboltable.Join(fqn, "Companion", '.')
		companionCtx := ctx.withClass(companionFQN, class.CompanionObject)
		for i := range class.CompanionObject.Functions {
			calls = append(calls, r.resolveFunction(companionCtx, &class.CompanionObject.Functions[i], companionFQN, true)...)
		}
	}
	return calls
}

func (r *Resolver) resolveFunction(ctx *Context, fn *ir.ParsedFunction, declaringTypeFQN string, isMember bool) []ir.ResolvedCall {
	fnCtx := ctx.withFunction(fn)
	// Prefer the exact byFqn key the table builder assigned (overload
	// suffixes included); the plain concatenation below only covers a
	// function New never saw.
	fromFQN, known := r.fnFQNs[fn]
	if !known {
		fromFQN = fn.Name
		if isMember {
			fromFQN = declaringTypeFQN + "." + fn.Name
		} else if fnCtx.PackageRoot != "" {
			_, topSep := symboltable.ModuleRoot(fnCtx.File, fnCtx.Spec)
			fromFQN = symboltable.Join(fnCtx.PackageRoot, fn.Name, topSep)
		}
	}

	var calls []ir.ResolvedCall
	for _, call := range fn.Calls {
		toFQN, ok := r.resolveCall(fnCtx, call)
		if !ok {
			continue
		}
		calls = append(calls, ir.ResolvedCall{FromFQN: fromFQN, ToFQN: toFQN, Location: call.Location})
	}
	return calls
}

// resolveCall tries the call-classification rules in order, stopping at
// the first that yields a confident match.
func (r *Resolver) resolveCall(ctx *Context, call ir.ParsedCall) (string, bool) {
	if call.HasReceiver {
		if fqn, ok := r.ruleQualifiedKnownFQN(ctx, call); ok {
			return fqn, true
		}
		if fqn, ok := r.ruleEnumSynthetic(ctx, call); ok {
			return fqn, true
		}
	} else {
		if fqn, ok := r.ruleConstructorHeuristic(ctx, call); ok {
			return fqn, true
		}
	}
	if call.HasReceiver && !strings.Contains(call.Receiver, ".") {
		if fqn, ok := r.ruleTypedReceiver(ctx, call); ok {
			return fqn, true
		}
	}
	if call.HasReceiver && (call.Receiver == "this" || call.Receiver == "super") {
		if fqn, ok := r.ruleThisSuper(ctx, call); ok {
			return fqn, true
		}
	}
	if fqn, ok := r.ruleExtensionFunction(ctx, call); ok {
		return fqn, true
	}
	if !call.HasReceiver {
		if fqn, ok := r.ruleTopLevelFunction(ctx, call); ok {
			return fqn, true
		}
	}
	return "", false
}

// ruleQualifiedKnownFQN implements rule 1: receiver.name is itself a known
// FQN, receiver is a known type, or a static/companion path.
func (r *Resolver) ruleQualifiedKnownFQN(ctx *Context, call ir.ParsedCall) (string, bool) {
	direct := call.Receiver + "." + call.Name
	if _, ok := r.table.ByFQN[direct]; ok {
		return direct, true
	}

	receiverType, hasType := r.resolveReceiverType(ctx, call.Receiver)
	if !hasType {
		return "", false
	}

	if fqn, ok := r.selectFromDeclaringType(receiverType, call); ok {
		return fqn, true
	}
	companionType := receiverType + ".Companion"
	if fqn, ok := r.selectFromDeclaringType(companionType, call); ok {
		return fqn, true
	}
	return "", false
}

func (r *Resolver) selectFromDeclaringType(declaringType string, call ir.ParsedCall) (string, bool) {
	fns := r.table.FunctionsByName[call.Name]
	var candidates []ir.FunctionSymbol
	for _, f := range fns {
		if f.HasDeclaringType && f.DeclaringTypeFQN == declaringType {
			candidates = append(candidates, f)
		}
	}
	return scoreAndSelect(candidates, call)
}

// ruleEnumSynthetic implements rule 2.
func (r *Resolver) ruleEnumSynthetic(ctx *Context, call ir.ParsedCall) (string, bool) {
	if call.Name != "valueOf" && call.Name != "values" && call.Name != "entries" {
		return "", false
	}
	sym, ok := r.table.ByFQN[call.Receiver]
	if !ok {
		return "", false
	}
	cls, ok := sym.(ir.ClassSymbol)
	if !ok || cls.ClassKind != ir.ClassKindEnum {
		return "", false
	}
	return call.Receiver + "." + call.Name, true
}

// ruleConstructorHeuristic implements rule 3: a bare upper-camel-case call
// that resolves by name to a class/enum/annotation symbol.
func (r *Resolver) ruleConstructorHeuristic(ctx *Context, call ir.ParsedCall) (string, bool) {
	if call.Name == "" || !isUpper(call.Name[0]) {
		return "", false
	}
	sym, ok := r.resolveSimpleName(ctx, call.Name)
	if !ok {
		return "", false
	}
	cls, ok := sym.(ir.ClassSymbol)
	if !ok {
		return "", false
	}
	if cls.ClassKind != ir.ClassKindClass && cls.ClassKind != ir.ClassKindEnum && cls.ClassKind != ir.ClassKindAnnotation {
		return "", false
	}
	return cls.FQN + ".<init>", true
}

// ruleTypedReceiver implements rule 4: a single-identifier receiver whose
// type is known from localVariables or the current class's properties.
func (r *Resolver) ruleTypedReceiver(ctx *Context, call ir.ParsedCall) (string, bool) {
	var typeText string
	if t, ok := ctx.LocalVariables[call.Receiver]; ok {
		typeText = t
	} else if ctx.HasCurrentClass {
		if t, ok := propertyType(ctx.CurrentClass, call.Receiver); ok {
			typeText = t
		}
	}
	if typeText == "" {
		return "", false
	}

	typeName := normalizeType(typeText)
	typeFQN, ok := r.resolveSimpleName(ctx, typeName)
	if !ok {
		return "", false
	}
	cls, ok := typeFQN.(ir.ClassSymbol)
	if !ok {
		return "", false
	}

	visited := make(map[string]bool)
	return r.selectFromHierarchy(ctx, cls.FQN, call, visited)
}

// selectFromHierarchy tries declaringType, then ascends superClass and
// interfaces transitively. A superclass/interface is
// recorded on ParsedClass as raw source text (a simple name, or an already-
// dotted reference), so each ascent step re-resolves it through ctx via
// resolveSimpleName rather than treating the text as already being the
// target's FQN.
func (r *Resolver) selectFromHierarchy(ctx *Context, typeFQN string, call ir.ParsedCall, visited map[string]bool) (string, bool) {
	if visited[typeFQN] {
		return "", false
	}
	visited[typeFQN] = true

	if fqn, ok := r.selectFromDeclaringType(typeFQN, call); ok {
		return fqn, true
	}

	class, ok := r.hierarchy[typeFQN]
	if !ok {
		return "", false
	}
	if class.HasSuperClass {
		if superFQN, ok := r.resolveClassFQN(ctx, class.SuperClass); ok {
			if fqn, ok := r.selectFromHierarchy(ctx, superFQN, call, visited); ok {
				return fqn, true
			}
		}
	}
	for _, iface := range class.Interfaces {
		if ifaceFQN, ok := r.resolveClassFQN(ctx, iface); ok {
			if fqn, ok := r.selectFromHierarchy(ctx, ifaceFQN, call, visited); ok {
				return fqn, true
			}
		}
	}
	return "", false
}

// resolveClassFQN resolves raw supertype/interface text (a simple name or
// an already-dotted reference) to the FQN of the class symbol it names.
func (r *Resolver) resolveClassFQN(ctx *Context, raw string) (string, bool) {
	sym, ok := r.resolveSimpleName(ctx, normalizeType(raw))
	if !ok {
		return "", false
	}
	cls, ok := sym.(ir.ClassSymbol)
	if !ok {
		return "", false
	}
	return cls.FQN, true
}

// ruleThisSuper implements rule 5.
func (r *Resolver) ruleThisSuper(ctx *Context, call ir.ParsedCall) (string, bool) {
	if !ctx.HasCurrentClass {
		return "", false
	}
	if call.Receiver == "this" {
		return r.selectFromHierarchy(ctx, ctx.CurrentClassFQN, call, make(map[string]bool))
	}
	if !ctx.CurrentClass.HasSuperClass {
		return "", false
	}
	superFQN, ok := r.resolveClassFQN(ctx, ctx.CurrentClass.SuperClass)
	if !ok {
		return "", false
	}
	visited := map[string]bool{ctx.CurrentClassFQN: true}
	return r.selectFromHierarchy(ctx, superFQN, call, visited)
}

// ruleExtensionFunction implements rule 6.
func (r *Resolver) ruleExtensionFunction(ctx *Context, call ir.ParsedCall) (string, bool) {
	fns := r.table.FunctionsByName[call.Name]
	if len(fns) == 0 {
		return "", false
	}

	var receiverType string
	if call.HasReceiver {
		receiverType, _ = r.resolveReceiverType(ctx, call.Receiver)
	}

	var typed []ir.FunctionSymbol
	var any []ir.FunctionSymbol
	for _, f := range fns {
		if !f.IsExtension {
			continue
		}
		any = append(any, f)
		if receiverType == "" {
			continue
		}
		// f.ReceiverType is the raw declaration text ("Invoice"), while
		// receiverType is already a resolved FQN ("com.example.Invoice");
		// resolve the candidate's text the same way before comparing.
		if candidateFQN, ok := r.resolveClassFQN(ctx, f.ReceiverType); ok && candidateFQN == receiverType {
			typed = append(typed, f)
		} else if normalizeType(f.ReceiverType) == normalizeType(receiverType) {
			typed = append(typed, f)
		}
	}
	if len(typed) > 0 {
		return scoreAndSelect(typed, call)
	}
	if receiverType == "" && len(any) > 0 {
		return scoreAndSelect(any, call)
	}
	return "", false
}

// ruleTopLevelFunction implements rule 7.
func (r *Resolver) ruleTopLevelFunction(ctx *Context, call ir.ParsedCall) (string, bool) {
	sym, ok := r.resolveSimpleName(ctx, call.Name)
	if !ok {
		return "", false
	}
	if fn, ok := sym.(ir.FunctionSymbol); ok {
		return fn.FQN, true
	}
	return "", false
}

// resolveReceiverType infers a type FQN for a receiver expression: a typed
// local variable, a typed property on the current class, or the receiver
// text resolved directly as a type/package reference.
func (r *Resolver) resolveReceiverType(ctx *Context, receiver string) (string, bool) {
	if receiver == "this" && ctx.HasCurrentClass {
		return ctx.CurrentClassFQN, true
	}
	if receiver == "super" && ctx.HasCurrentClass && ctx.CurrentClass.HasSuperClass {
		if sym, ok := r.resolveSimpleName(ctx, normalizeType(ctx.CurrentClass.SuperClass)); ok {
			if cls, ok := sym.(ir.ClassSymbol); ok {
				return cls.FQN, true
			}
		}
	}
	if !strings.Contains(receiver, ".") {
		if t, ok := ctx.LocalVariables[receiver]; ok {
			if sym, ok := r.resolveSimpleName(ctx, normalizeType(t)); ok {
				if cls, ok := sym.(ir.ClassSymbol); ok {
					return cls.FQN, true
				}
			}
		}
		if ctx.HasCurrentClass {
			if t, ok := propertyType(ctx.CurrentClass, receiver); ok {
				if sym, ok := r.resolveSimpleName(ctx, normalizeType(t)); ok {
					if cls, ok := sym.(ir.ClassSymbol); ok {
						return cls.FQN, true
					}
				}
			}
		}
	}
	if sym, ok := r.resolveSimpleName(ctx, receiver); ok {
		if cls, ok := sym.(ir.ClassSymbol); ok {
			return cls.FQN, true
		}
	}
	return "", false
}

// resolveSimpleName resolves a bare name through imports, the current
// package, wildcard imports, a unique by-name hit, then the stdlib
// placeholder table.
func (r *Resolver) resolveSimpleName(ctx *Context, name string) (ir.Symbol, bool) {
	if fqn, ok := ctx.Imports[name]; ok {
		if sym, ok := r.table.ByFQN[fqn]; ok {
			return sym, true
		}
		if ctx.Spec.Separator == '/' {
			if sym, ok := r.resolveThroughReexports(fqn); ok {
				return sym, true
			}
		}
	}
	if ctx.PackageRoot != "" {
		candidate := symboltable.Join(ctx.PackageRoot, name, ctx.Spec.Separator)
		if sym, ok := r.table.ByFQN[candidate]; ok {
			return sym, true
		}
	}
	for _, p := range ctx.WildcardImports {
		candidate := p + "." + name
		if sym, ok := r.table.ByFQN[candidate]; ok {
			return sym, true
		}
	}
	if candidates := r.table.ByName[name]; len(candidates) == 1 {
		return candidates[0], true
	}
	if cls, ok := stdlibPlaceholder(ctx.Language, name); ok {
		return cls, true
	}
	return nil, false
}

// resolveThroughReexports handles the case where an import target FQN
// ("module/Name") names a module that only re-exports Name from elsewhere:
// it follows the chain via ReexportIndex and retries ByFQN at the resolved
// location.
func (r *Resolver) resolveThroughReexports(fqn string) (ir.Symbol, bool) {
	idx := strings.LastIndexByte(fqn, '/')
	if idx < 0 {
		return nil, false
	}
	module, name := fqn[:idx], fqn[idx+1:]
	resolvedModule, resolvedName := r.reexports.Resolve(module, name)
	if resolvedModule == module && resolvedName == name {
		return nil, false
	}
	sym, ok := r.table.ByFQN[symboltable.Join(resolvedModule, resolvedName, '/')]
	return sym, ok
}

func propertyType(class *ir.ParsedClass, name string) (string, bool) {
	for _, p := range class.Properties {
		if p.Name == name && p.HasType {
			return p.Type, true
		}
	}
	return "", false
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// normalizeType strips a trailing nullability marker and any generic
// argument list before type comparison.
func normalizeType(t string) string {
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "?")
	if i := strings.IndexByte(t, '<'); i >= 0 {
		t = t[:i]
	}
	if i := strings.IndexByte(t, '['); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}
