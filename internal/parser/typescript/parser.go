// Package typescript implements the TypeScript/TSX language parser,
// selecting the tsx grammar for .tsx files and sharing declaration/call
// extraction with the JavaScript parser via internal/parser/ecmascript.
package typescript

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/crosslang/codegraph/internal/astutil"
	"github.com/crosslang/codegraph/internal/ir"
	"github.com/crosslang/codegraph/internal/parser/ecmascript"
)

// Language implements parser.Language for TypeScript and TSX.
type Language struct {
	// IncludeCommonJSRequires gates require() extraction (default true).
	// Dynamic import(...) extraction is never gated by this flag.
	IncludeCommonJSRequires bool
}

// New returns a TypeScript/TSX parser. includeCommonJSRequires mirrors
// codegraph.Options.IncludeCommonJSRequires; pass true unless the caller
// has explicitly disabled it.
func New(includeCommonJSRequires bool) Language {
	return Language{IncludeCommonJSRequires: includeCommonJSRequires}
}

func (Language) Name() ir.Language { return ir.LanguageTypeScript }

func (Language) Extensions() []string { return []string{".ts", ".tsx"} }

func (l Language) Parse(source []byte, filePath string) (*ir.ParsedFile, error) {
	grammar := typescript.GetLanguage()
	if strings.HasSuffix(filePath, ".tsx") {
		grammar = tsx.GetLanguage()
	}

	p := sitter.NewParser()
	p.SetLanguage(grammar)

	tree, err := p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("typescript: failed to parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	file := &ir.ParsedFile{FilePath: filePath, Language: ir.LanguageTypeScript}
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

// unwrapExport returns the wrapped declaration of an `export class Foo {}` /
// `export function f() {}` statement, or node itself if it isn't a wrapping
// export_statement (e.g. a bare class_declaration, or a re-export already
// consumed by ecmascript.ExtractImports).
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
	case "interface_declaration":
		file.Classes = append(file.Classes, extractInterface(node, source))
	case "function_declaration":
		file.TopLevelFunctions = append(file.TopLevelFunctions, ex.ExtractTopLevelFunction(node))
	case "enum_declaration":
		file.Classes = append(file.Classes, extractEnum(node, source))
	case "type_alias_declaration":
		file.TypeAliases = append(file.TypeAliases, extractTypeAlias(node, source))
	case "lexical_declaration", "variable_declaration":
		functions, props, destructurings := extractTopLevelDeclarators(node, ex, source)
		file.TopLevelFunctions = append(file.TopLevelFunctions, functions...)
		file.TopLevelProperties = append(file.TopLevelProperties, props...)
		file.DestructuringDeclarations = append(file.DestructuringDeclarations, destructurings...)
	}
}

func extractInterface(node *sitter.Node, source []byte) ir.ParsedClass {
	class := ir.ParsedClass{
		Kind:       ir.ClassKindInterface,
		Visibility: ir.VisibilityPublic,
		Location:   astutil.NodeLocation(node),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		class.Name = astutil.Content(name, source)
	}
	if ext := astutil.FindChildByType(node, "extends_type_clause"); ext != nil {
		for i := 0; i < int(ext.NamedChildCount()); i++ {
			class.Interfaces = append(class.Interfaces, astutil.ExtractFullTypeName(ext.NamedChild(i), source))
		}
	}
	return class
}

func extractEnum(node *sitter.Node, source []byte) ir.ParsedClass {
	class := ir.ParsedClass{
		Kind:       ir.ClassKindEnum,
		Visibility: ir.VisibilityPublic,
		Location:   astutil.NodeLocation(node),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		class.Name = astutil.Content(name, source)
	}
	if body := astutil.FindChildByType(node, "enum_body"); body != nil {
		for _, member := range astutil.FindChildrenByType(body, "property_identifier") {
			class.Properties = append(class.Properties, ir.ParsedProperty{
				Name:       astutil.Content(member, source),
				Visibility: ir.VisibilityPublic,
				IsVal:      true,
				Location:   astutil.NodeLocation(member),
			})
		}
	}
	return class
}

func extractTypeAlias(node *sitter.Node, source []byte) ir.TypeAlias {
	alias := ir.TypeAlias{Location: astutil.NodeLocation(node)}
	if name := node.ChildByFieldName("name"); name != nil {
		alias.Name = astutil.Content(name, source)
	}
	if value := node.ChildByFieldName("value"); value != nil {
		alias.AliasedType = astutil.ExtractFullTypeName(value, source)
	}
	return alias
}

// extractTopLevelDeclarators splits a `const`/`let`/`var` statement's
// declarators into functions (`const f = () => {}` / `const f = function
// () {}`), plain properties, and destructuring bindings, mirroring
// internal/parser/javascript.
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
		prop := ir.ParsedProperty{
			Name:       astutil.Content(name, source),
			Visibility: ir.VisibilityPublic,
			IsVal:      isConst,
			Location:   astutil.NodeLocation(decl),
		}
		if t := decl.ChildByFieldName("type"); t != nil {
			prop.Type = astutil.ExtractFullTypeName(t, source)
			prop.HasType = true
		}
		props = append(props, prop)
	}
	return functions, props, destructurings
}
