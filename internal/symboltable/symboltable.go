// Package symboltable builds one immutable SymbolTable from every parsed
// file's declarations, ready for the resolver to resolve calls against.
// The table is built once by a single writer and only read afterwards.
package symboltable

import (
	"fmt"

	"github.com/crosslang/codegraph/internal/ir"
	"github.com/crosslang/codegraph/internal/langspec"
)

// Build indexes every file's classes, functions, and properties into a
// single SymbolTable.
func Build(files []*ir.ParsedFile) *ir.SymbolTable {
	table := ir.NewSymbolTable()
	w := &writer{table: table}
	for _, file := range files {
		w.addFile(file)
	}
	return table
}

type writer struct {
	table  *ir.SymbolTable
	fnFQNs map[*ir.ParsedFunction]string
}

// FunctionFQNs replays the exact walk Build performs and returns the FQN
// assigned to every function declaration, keyed by the function's identity.
// The resolver uses this to attribute a call's fromFqn to the same
// (possibly overload-suffixed) byFqn key Build stored, instead of
// re-deriving a plain concatenation that an overload or a same-named
// property may have already claimed.
func FunctionFQNs(files []*ir.ParsedFile) map[*ir.ParsedFunction]string {
	w := &writer{table: ir.NewSymbolTable(), fnFQNs: make(map[*ir.ParsedFunction]string)}
	for _, file := range files {
		w.addFile(file)
	}
	return w.fnFQNs
}

func (w *writer) addFile(file *ir.ParsedFile) {
	spec, ok := langspec.For(file.Language)
	if !ok {
		return
	}
	root, topSep := ModuleRoot(file, spec)

	for i := range file.Classes {
		w.addClass(&file.Classes[i], file.FilePath, root, topSep, spec)
	}
	for i := range file.TopLevelFunctions {
		w.addFunction(&file.TopLevelFunctions[i], file.FilePath, root, topSep, spec, "", false)
	}
	for i := range file.TopLevelProperties {
		w.addProperty(&file.TopLevelProperties[i], file.FilePath, root, topSep, "")
	}
}

// ModuleRoot returns the FQN root a file's top-level declarations join
// onto, and the separator used for that one join ("/" between module and
// first type for slash-separated languages, "." for dot-separated
// languages throughout). Exported so internal/resolver can re-derive the
// same class FQNs this package assigned.
func ModuleRoot(file *ir.ParsedFile, spec langspec.Spec) (string, byte) {
	if spec.Separator == '.' {
		return file.PackageName, '.'
	}
	if file.HasModulePath {
		return file.ModulePath, '/'
	}
	return "", '/'
}

// Join builds a child FQN from a parent FQN and a name.
func Join(root, name string, sep byte) string {
	if root == "" {
		return name
	}
	return root + string(sep) + name
}

// memberSeparator is always "." once inside a type, for both dot- and
// slash-separated languages.
const memberSeparator byte = '.'

func (w *writer) addClass(class *ir.ParsedClass, filePath, parentFQN string, sep byte, spec langspec.Spec) {
	fqn := Join(parentFQN, class.Name, sep)
	w.insert(fqn, ir.ClassSymbol{
		SymbolBase: ir.SymbolBase{Name: class.Name, FQN: fqn, FilePath: filePath, Location: class.Location},
		ClassKind:  class.Kind,
	})

	for i := range class.Properties {
		w.addProperty(&class.Properties[i], filePath, fqn, memberSeparator, fqn)
	}
	for i := range class.Functions {
		w.addFunction(&class.Functions[i], filePath, fqn, memberSeparator, spec, fqn, true)
	}
	for i := range class.NestedClasses {
		w.addClass(&class.NestedClasses[i], filePath, fqn, memberSeparator, spec)
	}
	if class.CompanionObject != nil {
		w.addCompanion(class.CompanionObject, filePath, fqn, spec)
	}
}

// addCompanion indexes a Kotlin companion object at ContainingType.Companion,
// with its own members living at ContainingType.Companion.member.
func (w *writer) addCompanion(companion *ir.ParsedClass, filePath, containingFQN string, spec langspec.Spec) {
	companionFQN := Join(containingFQN, "Companion", memberSeparator)
	w.insert(companionFQN, ir.ClassSymbol{
		SymbolBase: ir.SymbolBase{Name: "Companion", FQN: companionFQN, FilePath: filePath, Location: companion.Location},
		ClassKind:  companion.Kind,
	})
	for i := range companion.Properties {
		w.addProperty(&companion.Properties[i], filePath, companionFQN, memberSeparator, companionFQN)
	}
	for i := range companion.Functions {
		w.addFunction(&companion.Functions[i], filePath, companionFQN, memberSeparator, spec, companionFQN, true)
	}
}

func (w *writer) addFunction(fn *ir.ParsedFunction, filePath, parentFQN string, sep byte, spec langspec.Spec, declaringTypeFQN string, isMember bool) {
	fqn := w.disambiguate(Join(parentFQN, fn.Name, sep))
	if w.fnFQNs != nil {
		w.fnFQNs[fn] = fqn
	}

	paramTypes := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		if p.HasType {
			paramTypes[i] = p.Type
		} else {
			paramTypes[i] = spec.DefaultParameterType
		}
	}

	sym := ir.FunctionSymbol{
		SymbolBase:      ir.SymbolBase{Name: fn.Name, FQN: fqn, FilePath: filePath, Location: fn.Location},
		PackageName:     parentFQN,
		ParameterTypes:  paramTypes,
		ReturnType:      fn.ReturnType,
		HasReturnType:   fn.HasReturnType,
		IsExtension:     fn.IsExtension,
		IsOperator:      fn.IsOperator,
		IsInfix:         fn.IsInfix,
		IsSuspend:       fn.IsSuspend,
		IsInline:        fn.IsInline,
		ReceiverType:    fn.ReceiverType,
		HasReceiverType: fn.IsExtension,
	}
	// DeclaringTypeFQN is set for members and companions; extension
	// functions set ReceiverType but keep DeclaringTypeFQN empty when they
	// are top-level.
	if isMember {
		sym.DeclaringTypeFQN = declaringTypeFQN
		sym.HasDeclaringType = true
	}

	w.table.ByFQN[fqn] = sym
	w.table.ByName[fn.Name] = append(w.table.ByName[fn.Name], sym)
	w.table.FunctionsByName[fn.Name] = append(w.table.FunctionsByName[fn.Name], sym)
}

func (w *writer) addProperty(prop *ir.ParsedProperty, filePath, parentFQN string, sep byte, declaringTypeFQN string) {
	fqn := w.disambiguate(Join(parentFQN, prop.Name, sep))
	sym := ir.PropertySymbol{
		SymbolBase: ir.SymbolBase{Name: prop.Name, FQN: fqn, FilePath: filePath, Location: prop.Location},
		Type:       prop.Type,
		IsVal:      prop.IsVal,
	}
	if declaringTypeFQN != "" {
		sym.DeclaringTypeFQN = declaringTypeFQN
		sym.HasDeclaringType = true
	}
	w.insert(fqn, sym)
}

// insert records a non-function symbol, keyed by its own (possibly
// disambiguated) FQN.
func (w *writer) insert(fqn string, sym ir.Symbol) {
	w.table.ByFQN[fqn] = sym
	w.table.ByName[sym.Base().Name] = append(w.table.ByName[sym.Base().Name], sym)
}

// disambiguate appends a "~N" suffix when fqn already exists in byFqn.
// The first declaration at a given FQN keeps the plain form; later ones
// get "~1", "~2", ... in declaration order. functionsByName/byName grouping is unaffected — callers there
// always use the un-suffixed simple name.
func (w *writer) disambiguate(fqn string) string {
	if _, exists := w.table.ByFQN[fqn]; !exists {
		return fqn
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s~%d", fqn, n)
		if _, exists := w.table.ByFQN[candidate]; !exists {
			return candidate
		}
	}
}
