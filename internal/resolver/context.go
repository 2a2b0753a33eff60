package resolver

import (
	"strings"

	"github.com/crosslang/codegraph/internal/ir"
	"github.com/crosslang/codegraph/internal/langspec"
	"github.com/crosslang/codegraph/internal/symboltable"
)

// Context is the per-file resolution state. It is built once per file and
// never shared across files or goroutines.
type Context struct {
	File            *ir.ParsedFile
	Language        ir.Language
	Spec            langspec.Spec
	Imports         map[string]string // simple name -> FQN (or, for TS/JS, a resolved module FQN)
	WildcardImports []string
	PackageRoot     string // PackageName (dot languages) or ModulePath (slash languages)

	CurrentClassFQN string
	CurrentClass    *ir.ParsedClass
	HasCurrentClass bool

	LocalVariables map[string]string // name -> raw type text
}

func newContext(file *ir.ParsedFile) (*Context, bool) {
	spec, ok := langspec.For(file.Language)
	if !ok {
		return nil, false
	}
	root, _ := symboltable.ModuleRoot(file, spec)

	ctx := &Context{
		File:            file,
		Language:        file.Language,
		Spec:            spec,
		Imports:         make(map[string]string),
		WildcardImports: append([]string(nil), spec.WildcardImports...),
		PackageRoot:     root,
		LocalVariables:  make(map[string]string),
	}

	for _, imp := range file.Imports {
		if imp.IsWildcard {
			if spec.Separator == '.' {
				pkg := strings.TrimSuffix(strings.TrimSuffix(imp.Path, ".*"), "/*")
				ctx.WildcardImports = append(ctx.WildcardImports, pkg)
			}
			continue
		}
		localName := imp.LocalName(spec.Separator)
		if localName == "" {
			continue
		}
		if spec.Separator == '.' {
			ctx.Imports[localName] = imp.Path
			continue
		}
		if target, ok := resolveRelativeImportPath(file.ModulePath, imp.Path); ok {
			name := imp.Name
			if name == "" {
				name = localName
			}
			ctx.Imports[localName] = symboltable.Join(target, name, '/')
		}
	}

	return ctx, true
}

// withClass returns a shallow copy of ctx scoped to class. LocalVariables is
// carried over unchanged; withFunction replaces it per function, seeded
// from that function's parameters.
func (ctx *Context) withClass(fqn string, class *ir.ParsedClass) *Context {
	clone := *ctx
	clone.CurrentClassFQN = fqn
	clone.CurrentClass = class
	clone.HasCurrentClass = true
	return &clone
}

// withFunction seeds LocalVariables with every parameter whose type is
// set, then extends it with fn.Locals. Locals entries take priority over
// same-named parameters, matching shadowing.
func (ctx *Context) withFunction(fn *ir.ParsedFunction) *Context {
	clone := *ctx
	locals := make(map[string]string, len(fn.Parameters)+len(fn.Locals))
	for _, p := range fn.Parameters {
		if p.HasType {
			locals[p.Name] = p.Type
		}
	}
	for _, l := range fn.Locals {
		locals[l.Name] = l.Type
	}
	clone.LocalVariables = locals
	return &clone
}
