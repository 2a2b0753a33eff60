// Package javascript implements the JavaScript language parser (JSX
// included), sharing declaration/call extraction with the TypeScript
// parser via internal/parser/ecmascript.
package javascript

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsjavascript "github.com/smacker/go-tree-sitter/javascript"

	"github.com/crosslang/codegraph/internal/astutil"
	"github.com/crosslang/codegraph/internal/ir"
	"github.com/crosslang/codegraph/internal/parser/ecmascript"
)

// Language implements parser.Language for JavaScript (including JSX).
type Language struct {
	// IncludeCommonJSRequires gates require() extraction (default true).
	// Dynamic import(...) extraction is never gated by this flag.
	IncludeCommonJSRequires bool
}

// New returns a JavaScript parser. includeCommonJSRequires mirrors
// codegraph.Options.IncludeCommonJSRequires; pass true unless the caller
// has explicitly disabled it.
func New(includeCommonJSRequires bool) Language {
	return Language{IncludeCommonJSRequires: includeCommonJSRequires}
}

func (Language) Name() ir.Language { return ir.LanguageJavaScript }

func (Language) Extensions() []string { return []string{".js", ".jsx", ".mjs", ".cjs"} }

func (l Language) Parse(source []byte, filePath string) (*ir.ParsedFile, error) {
	p := sitter.NewParser()
	p.SetLanguage(tsjavascript.GetLanguage())

	tree, err := p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("javascript: failed to parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	file := &ir.ParsedFile{FilePath: filePath, Language: ir.LanguageJavaScript}
	file.Imports, file.Reexports = ecmascript.ExtractImports(root, source)
	file.Imports = append(file.Imports, ecmascript.ExtractDynamicImports(root, source)...)
	if l.IncludeCommonJSRequires {
		file.Imports = append(file.Imports, ecmascript.ExtractCommonJSRequires(root, source)...)
	}

	ex := &ecmascript.Extractor{Source: source}
	top := ir.ParsedFunction{Name: "<top>", Visibility: ir.VisibilityPublic, Location: astutil.NodeLocation(root)}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		decl := unwrapExport(child)
		declareTopLevel(file, ex, decl, source)
		ex.AccumulateModuleScope(&top, decl)
	}
	if len(top.Calls) > 0 {
		file.TopLevelFunctions = append(file.TopLevelFunctions, top)
	}

	return file, nil
}

func unwrapExport(node *sitter.Node) *sitter.Node {
	if node.Type() != "export_statement" {
		return node
	}
	if decl := node.ChildByFieldName("declaration"); decl != nil {
		return decl
	}
	return node
}

func declareTopLevel(file *ir.ParsedFile, ex *ecmascript.Extractor, node *sitter.Node, source []byte) {
	switch node.Type() {
	case "class_declaration":
		file.Classes = append(file.Classes, ex.ExtractClass(node))
	case "function_declaration":
		file.TopLevelFunctions = append(file.TopLevelFunctions, ex.ExtractTopLevelFunction(node))
	case "lexical_declaration", "variable_declaration":
		functions, props, destructurings := extractTopLevelDeclarators(node, ex, source)
		file.TopLevelFunctions = append(file.TopLevelFunctions, functions...)
		file.TopLevelProperties = append(file.TopLevelProperties, props...)
		file.DestructuringDeclarations = append(file.DestructuringDeclarations, destructurings...)
	}
}

// extractTopLevelDeclarators splits a `const`/`let`/`var` statement's
// declarators into functions (`const f = () => {}` / `const f = function
// () {}`, the common CommonJS/ESM function-declaration idiom), plain
// properties, and destructuring bindings.
func extractTopLevelDeclarators(node *sitter.Node, ex *ecmascript.Extractor, source []byte) ([]ir.ParsedFunction, []ir.ParsedProperty, []ir.DestructuringDeclaration) {
	isConst := strings.HasPrefix(astutil.Content(node, source), "const")
	var functions []ir.ParsedFunction
	var props []ir.ParsedProperty
	var destructurings []ir.DestructuringDeclaration
	for _, decl := range astutil.FindChildrenByType(node, "variable_declarator") {
		if d, ok := ex.ExtractDestructuring(decl); ok {
			destructurings = append(destructurings, d)
			continue
		}
		name := decl.ChildByFieldName("name")
		if name == nil || name.Type() != "identifier" {
			continue
		}
		value := decl.ChildByFieldName("value")
		if value != nil && (value.Type() == "arrow_function" || value.Type() == "function_expression" || value.Type() == "function") {
			fn := ex.ExtractTopLevelFunction(value)
			fn.Name = astutil.Content(name, source)
			fn.Location = astutil.NodeLocation(decl)
			functions = append(functions, fn)
			continue
		}
		props = append(props, ir.ParsedProperty{
			Name:       astutil.Content(name, source),
			Visibility: ir.VisibilityPublic,
			IsVal:      isConst,
			Location:   astutil.NodeLocation(decl),
		})
	}
	return functions, props, destructurings
}
