// Package ecmascript holds the import/export/class/call extraction shared
// by the TypeScript and JavaScript parsers. The two languages' tree-sitter
// grammars emit the same statement/expression node shapes for the subset
// this package walks; only the grammar module passed in at parse time
// differs between internal/parser/typescript and
// internal/parser/javascript.
package ecmascript

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/crosslang/codegraph/internal/astutil"
	"github.com/crosslang/codegraph/internal/ir"
)

// ExtractImports walks top-level import_statement/export_statement nodes,
// splitting plain imports from re-exports.
func ExtractImports(root *sitter.Node, source []byte) ([]ir.ParsedImport, []ir.ParsedReexport) {
	var imports []ir.ParsedImport
	var reexports []ir.ParsedReexport

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "import_statement":
			imports = append(imports, parseImportStatement(child, source)...)
		case "export_statement":
			reexports = append(reexports, parseExportStatement(child, source)...)
		}
	}
	return imports, reexports
}

// ExtractDynamicImports walks the whole file for `import(expr)` dynamic
// imports, found anywhere, function bodies included. Path is the
// string-literal content, or the raw template text with IsTemplateLiteral
// set for a template-literal specifier.
func ExtractDynamicImports(root *sitter.Node, source []byte) []ir.ParsedImport {
	var imports []ir.ParsedImport
	astutil.TraverseNode(root, func(node *sitter.Node) bool {
		if node.Type() != "call_expression" {
			return true
		}
		fn := node.ChildByFieldName("function")
		if fn == nil || fn.Type() != "import" {
			return true
		}
		imp := ir.ParsedImport{IsDynamic: true}
		if args := node.ChildByFieldName("arguments"); args != nil && args.NamedChildCount() > 0 {
			arg := args.NamedChild(0)
			switch arg.Type() {
			case "string":
				imp.Path = cleanStringLiteral(astutil.Content(arg, source))
			case "template_string":
				imp.IsTemplateLiteral = true
				imp.Path = astutil.Content(arg, source)
			default:
				imp.Path = astutil.Content(arg, source)
			}
		}
		imports = append(imports, imp)
		return true
	})
	return imports
}

// ExtractCommonJSRequires walks the whole file for `require("x")` calls,
// found anywhere. When the call is the sole initializer of a
// single-variable declarator ("const x = require('x')"), Name binds to
// that variable's identifier.
func ExtractCommonJSRequires(root *sitter.Node, source []byte) []ir.ParsedImport {
	var imports []ir.ParsedImport
	astutil.TraverseNode(root, func(node *sitter.Node) bool {
		if node.Type() != "call_expression" {
			return true
		}
		fn := node.ChildByFieldName("function")
		if fn == nil || fn.Type() != "identifier" || astutil.Content(fn, source) != "require" {
			return true
		}
		args := node.ChildByFieldName("arguments")
		if args == nil || args.NamedChildCount() == 0 {
			return true
		}
		arg := args.NamedChild(0)
		if arg.Type() != "string" {
			return true
		}
		imp := ir.ParsedImport{Path: cleanStringLiteral(astutil.Content(arg, source))}
		if name, ok := enclosingSingleDeclaratorName(node, source); ok {
			imp.Name = name
		}
		imports = append(imports, imp)
		return true
	})
	return imports
}

// enclosingSingleDeclaratorName reports the bound variable name when call is
// the value of a variable_declarator that is the only declarator in its
// declaration statement, e.g. "const x = require('y')" but not
// "const a = f(), b = require('y')".
func enclosingSingleDeclaratorName(call *sitter.Node, source []byte) (string, bool) {
	declarator := call.Parent()
	if declarator == nil || declarator.Type() != "variable_declarator" {
		return "", false
	}
	value := declarator.ChildByFieldName("value")
	if value == nil || value.StartByte() != call.StartByte() {
		return "", false
	}
	name := declarator.ChildByFieldName("name")
	if name == nil || name.Type() != "identifier" {
		return "", false
	}
	declaration := declarator.Parent()
	if declaration == nil || len(astutil.FindChildrenByType(declaration, "variable_declarator")) != 1 {
		return "", false
	}
	return astutil.Content(name, source), true
}

func isTypeOnly(n *sitter.Node, source []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && astutil.Content(child, source) == "type" {
			return true
		}
	}
	return false
}

func importSource(n *sitter.Node, source []byte) (string, bool) {
	str := n.ChildByFieldName("source")
	if str == nil {
		return "", false
	}
	return cleanStringLiteral(astutil.Content(str, source)), true
}

func cleanStringLiteral(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), "'\"`")
}

func parseImportStatement(node *sitter.Node, source []byte) []ir.ParsedImport {
	path, ok := importSource(node, source)
	if !ok {
		return nil
	}

	clause := astutil.FindChildByType(node, "import_clause")
	if clause == nil {
		// Side-effect import: import "module";
		return []ir.ParsedImport{{Path: path, IsTemplateLiteral: isTemplateLiteral(node, source)}}
	}

	var out []ir.ParsedImport
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		part := clause.NamedChild(i)
		switch part.Type() {
		case "identifier":
			// default import
			out = append(out, ir.ParsedImport{Path: path, Name: astutil.Content(part, source)})
		case "namespace_import":
			if id := astutil.FindChildByType(part, "identifier"); id != nil {
				out = append(out, ir.ParsedImport{Path: path, IsWildcard: true, Alias: astutil.Content(id, source), HasAlias: true})
			}
		case "named_imports":
			out = append(out, parseNamedImports(part, path, source)...)
		}
	}
	if len(out) == 0 {
		out = append(out, ir.ParsedImport{Path: path})
	}
	return out
}

func parseNamedImports(named *sitter.Node, path string, source []byte) []ir.ParsedImport {
	var out []ir.ParsedImport
	for _, spec := range astutil.FindChildrenByType(named, "import_specifier") {
		imp := ir.ParsedImport{Path: path}
		name := spec.ChildByFieldName("name")
		alias := spec.ChildByFieldName("alias")
		if name != nil {
			imp.Name = astutil.Content(name, source)
		}
		if alias != nil {
			imp.Alias = astutil.Content(alias, source)
			imp.HasAlias = true
		}
		out = append(out, imp)
	}
	return out
}

func isTemplateLiteral(node *sitter.Node, source []byte) bool {
	return astutil.HasChildOfType(node, "template_string")
}

// parseExportStatement returns one ParsedReexport per named specifier for
// "export { a, b } from '...'", or a single wildcard/namespace entry. It
// returns nil for a local export declaration (handled by the caller as an
// ordinary top-level declaration).
func parseExportStatement(node *sitter.Node, source []byte) []ir.ParsedReexport {
	path, ok := importSource(node, source)
	if !ok {
		return nil
	}
	base := ir.ParsedReexport{SourcePath: path, IsTypeOnly: isTypeOnly(node, source)}

	if astutil.HasChildOfType(node, "namespace_export") {
		base.IsNamespaceReexport = true
		return []ir.ParsedReexport{base}
	}

	clause := astutil.FindChildByType(node, "export_clause")
	if clause == nil {
		base.IsWildcard = true
		return []ir.ParsedReexport{base}
	}

	specifiers := astutil.FindChildrenByType(clause, "export_specifier")
	if len(specifiers) == 0 {
		base.IsWildcard = true
		return []ir.ParsedReexport{base}
	}

	out := make([]ir.ParsedReexport, 0, len(specifiers))
	for _, spec := range specifiers {
		re := base
		if name := spec.ChildByFieldName("name"); name != nil {
			re.OriginalName = astutil.Content(name, source)
			re.HasOriginalName = true
		}
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			re.ExportedName = astutil.Content(alias, source)
			re.HasExportedName = true
		}
		out = append(out, re)
	}
	return out
}

// Extractor walks class/function/call declarations shared by TS and JS.
type Extractor struct {
	Source []byte
}

func (e *Extractor) content(n *sitter.Node) string {
	return astutil.Content(n, e.Source)
}

// ExtractClass handles class_declaration / class nodes.
func (e *Extractor) ExtractClass(node *sitter.Node) ir.ParsedClass {
	class := ir.ParsedClass{
		Kind:       ir.ClassKindClass,
		Visibility: ir.VisibilityPublic,
		Location:   astutil.NodeLocation(node),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		class.Name = e.content(name)
	}
	if heritage := astutil.FindChildByType(node, "class_heritage"); heritage != nil {
		if ext := astutil.FindChildByType(heritage, "extends_clause"); ext != nil {
			if t := ext.NamedChild(0); t != nil {
				class.SuperClass = astutil.ExtractFullTypeName(t, e.Source)
				class.HasSuperClass = true
			}
		} else if t := heritage.NamedChild(0); t != nil && t.Type() != "implements_clause" {
			// JavaScript's class_heritage holds the extended expression directly.
			class.SuperClass = astutil.ExtractFullTypeName(t, e.Source)
			class.HasSuperClass = true
		}
		if impl := astutil.FindChildByType(heritage, "implements_clause"); impl != nil {
			for i := 0; i < int(impl.NamedChildCount()); i++ {
				class.Interfaces = append(class.Interfaces, astutil.ExtractFullTypeName(impl.NamedChild(i), e.Source))
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		body = astutil.FindChildByType(node, "class_body")
	}
	if body != nil {
		e.populateClassBody(&class, body)
	}
	return class
}

func (e *Extractor) populateClassBody(class *ir.ParsedClass, body *sitter.Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "method_definition":
			class.Functions = append(class.Functions, e.extractMethod(child))
		case "public_field_definition", "field_definition", "class_property_definition":
			class.Properties = append(class.Properties, e.extractField(child))
		}
	}
}

func (e *Extractor) extractMethod(node *sitter.Node) ir.ParsedFunction {
	fn := ir.ParsedFunction{
		Visibility: visibilityFromNode(node, e.Source),
		Location:   astutil.NodeLocation(node),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		fn.Name = e.content(name)
	}
	fn.IsSuspend = hasKeywordChild(node, e.Source, "async")
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Parameters = e.extractParameters(params)
	}
	if t := node.ChildByFieldName("return_type"); t != nil {
		fn.ReturnType = astutil.ExtractFullTypeName(t, e.Source)
		fn.HasReturnType = true
	}
	if body := node.ChildByFieldName("body"); body != nil {
		fn.Calls = e.ExtractCalls(body)
		fn.Locals = e.ExtractLocals(body)
	}
	return fn
}

func (e *Extractor) extractField(node *sitter.Node) ir.ParsedProperty {
	prop := ir.ParsedProperty{
		Visibility: visibilityFromNode(node, e.Source),
		IsVal:      hasKeywordChild(node, e.Source, "readonly"),
		Location:   astutil.NodeLocation(node),
	}
	if name := node.ChildByFieldName("property"); name != nil {
		prop.Name = e.content(name)
	} else if name := node.ChildByFieldName("name"); name != nil {
		prop.Name = e.content(name)
	}
	if t := node.ChildByFieldName("type"); t != nil {
		prop.Type = astutil.ExtractFullTypeName(t, e.Source)
		prop.HasType = true
	}
	return prop
}

func (e *Extractor) extractParameters(params *sitter.Node) []ir.ParsedParameter {
	var out []ir.ParsedParameter
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		param := ir.ParsedParameter{}
		target := p
		switch p.Type() {
		case "required_parameter", "optional_parameter":
			if pat := p.ChildByFieldName("pattern"); pat != nil {
				target = pat
			}
			if t := p.ChildByFieldName("type"); t != nil {
				param.Type = astutil.ExtractFullTypeName(t, e.Source)
				param.HasType = true
			}
			if v := p.ChildByFieldName("value"); v != nil {
				param.DefaultValue = e.content(v)
				param.HasDefault = true
			}
		case "assignment_pattern":
			if left := p.ChildByFieldName("left"); left != nil {
				target = left
			}
			if right := p.ChildByFieldName("right"); right != nil {
				param.DefaultValue = e.content(right)
				param.HasDefault = true
			}
		}
		if target != nil && target.Type() == "identifier" {
			param.Name = e.content(target)
		} else if target != nil {
			param.Name = e.content(target)
		}
		out = append(out, param)
	}
	return out
}

// ExtractTopLevelFunction handles a function_declaration node.
func (e *Extractor) ExtractTopLevelFunction(node *sitter.Node) ir.ParsedFunction {
	fn := ir.ParsedFunction{Visibility: ir.VisibilityPublic, Location: astutil.NodeLocation(node)}
	if name := node.ChildByFieldName("name"); name != nil {
		fn.Name = e.content(name)
	}
	fn.IsSuspend = hasKeywordChild(node, e.Source, "async")
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Parameters = e.extractParameters(params)
	}
	if t := node.ChildByFieldName("return_type"); t != nil {
		fn.ReturnType = astutil.ExtractFullTypeName(t, e.Source)
		fn.HasReturnType = true
	}
	if body := node.ChildByFieldName("body"); body != nil {
		fn.Calls = e.ExtractCalls(body)
		fn.Locals = e.ExtractLocals(body)
	}
	return fn
}

// ExtractCalls walks a function/method body pre-order emitting one
// ParsedCall per call_expression/new_expression.
func (e *Extractor) ExtractCalls(body *sitter.Node) []ir.ParsedCall {
	var calls []ir.ParsedCall
	astutil.TraverseNode(body, func(node *sitter.Node) bool {
		switch node.Type() {
		case "call_expression":
			calls = append(calls, e.parseCallExpression(node))
		case "new_expression":
			calls = append(calls, e.parseNewExpression(node))
		}
		return true
	})
	return calls
}

// ExtractLocals collects the typed/constructor-inferred local variables
// bound directly in body's top-level statements. Nested blocks are not
// walked: attributing them would need the flow analysis the resolver
// deliberately avoids.
func (e *Extractor) ExtractLocals(body *sitter.Node) []ir.LocalVariable {
	var locals []ir.LocalVariable
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() != "lexical_declaration" && child.Type() != "variable_declaration" {
			continue
		}
		_, ls := e.declarationCallsAndLocals(child)
		locals = append(locals, ls...)
	}
	return locals
}

// AccumulateModuleScope folds one already-unwrapped top-level node into the
// synthetic "<top>" scope: calls made directly at module level, plus any
// local-variable types a later top-level statement's receiver lookup
// needs. Declaration kinds
// handled elsewhere by declareTopLevel (classes, interfaces, named
// functions, enums, type aliases) contribute nothing here, since their own
// bodies are already walked under their own declaration.
func (e *Extractor) AccumulateModuleScope(top *ir.ParsedFunction, node *sitter.Node) {
	switch node.Type() {
	case "class_declaration", "interface_declaration", "function_declaration",
		"enum_declaration", "type_alias_declaration":
		return
	case "lexical_declaration", "variable_declaration":
		calls, locals := e.declarationCallsAndLocals(node)
		top.Calls = append(top.Calls, calls...)
		top.Locals = append(top.Locals, locals...)
	default:
		top.Calls = append(top.Calls, e.ExtractCalls(node)...)
	}
}

// declarationCallsAndLocals extracts calls and inferred locals from a single
// `const`/`let`/`var` statement's non-function-valued declarators (a
// function-valued declarator, e.g. `const f = () => {}`, is already
// extracted as its own ParsedFunction by extractTopLevelDeclarators and
// must not be double-counted here).
func (e *Extractor) declarationCallsAndLocals(node *sitter.Node) ([]ir.ParsedCall, []ir.LocalVariable) {
	var calls []ir.ParsedCall
	var locals []ir.LocalVariable
	for _, decl := range astutil.FindChildrenByType(node, "variable_declarator") {
		value := decl.ChildByFieldName("value")
		if value != nil && (value.Type() == "arrow_function" || value.Type() == "function_expression" || value.Type() == "function") {
			continue
		}
		if value != nil {
			calls = append(calls, e.ExtractCalls(value)...)
		}
		name := decl.ChildByFieldName("name")
		if name == nil || name.Type() != "identifier" {
			continue
		}
		if t := decl.ChildByFieldName("type"); t != nil {
			locals = append(locals, ir.LocalVariable{Name: e.content(name), Type: astutil.ExtractFullTypeName(t, e.Source)})
		} else if value != nil && value.Type() == "new_expression" {
			if ctor := value.ChildByFieldName("constructor"); ctor != nil {
				locals = append(locals, ir.LocalVariable{Name: e.content(name), Type: astutil.ExtractFullTypeName(ctor, e.Source)})
			}
		}
	}
	return calls, locals
}

// ExtractDestructuring returns the destructuring binding of a
// variable_declarator whose name is an object_pattern/array_pattern
// (`const {a, b} = obj`, `const [x, y] = arr`), or false for a plain
// identifier declarator.
func (e *Extractor) ExtractDestructuring(decl *sitter.Node) (ir.DestructuringDeclaration, bool) {
	name := decl.ChildByFieldName("name")
	if name == nil || (name.Type() != "object_pattern" && name.Type() != "array_pattern") {
		return ir.DestructuringDeclaration{}, false
	}
	out := ir.DestructuringDeclaration{Location: astutil.NodeLocation(decl)}
	astutil.TraverseNode(name, func(n *sitter.Node) bool {
		switch n.Type() {
		case "shorthand_property_identifier_pattern", "identifier":
			out.Names = append(out.Names, e.content(n))
			return false
		case "pair_pattern":
			if v := n.ChildByFieldName("value"); v != nil && v.Type() == "identifier" {
				out.Names = append(out.Names, e.content(v))
				return false
			}
		}
		return true
	})
	if value := decl.ChildByFieldName("value"); value != nil {
		out.Source = strings.TrimSpace(e.content(value))
	}
	return out, true
}

func (e *Extractor) parseCallExpression(node *sitter.Node) ir.ParsedCall {
	call := ir.ParsedCall{Location: astutil.NodeLocation(node)}
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return call
	}
	switch fn.Type() {
	case "identifier":
		call.Name = e.content(fn)
	case "member_expression":
		call.Name, call.Receiver, call.HasReceiver, call.IsSafeCall = e.splitMemberExpression(fn)
	default:
		call.Name = e.content(fn)
	}
	if args := node.ChildByFieldName("arguments"); args != nil {
		e.fillArguments(&call, args)
	}
	return call
}

func (e *Extractor) splitMemberExpression(node *sitter.Node) (name, receiver string, hasReceiver, safe bool) {
	prop := node.ChildByFieldName("property")
	obj := node.ChildByFieldName("object")
	if prop != nil {
		name = e.content(prop)
	}
	if obj != nil {
		receiver = e.content(obj)
		hasReceiver = true
	}
	safe = astutil.HasChildOfType(node, "optional_chain")
	return
}

func (e *Extractor) parseNewExpression(node *sitter.Node) ir.ParsedCall {
	call := ir.ParsedCall{IsConstructorCall: true, Location: astutil.NodeLocation(node)}
	if ctor := node.ChildByFieldName("constructor"); ctor != nil {
		call.Name = astutil.ExtractFullTypeName(ctor, e.Source)
	}
	if args := node.ChildByFieldName("arguments"); args != nil {
		e.fillArguments(&call, args)
	}
	return call
}

func (e *Extractor) fillArguments(call *ir.ParsedCall, args *sitter.Node) {
	call.ArgumentCount = int(args.NamedChildCount())
	for i := 0; i < int(args.NamedChildCount()); i++ {
		call.ArgumentTypes = append(call.ArgumentTypes, e.inferArgumentType(args.NamedChild(i)))
	}
}

func (e *Extractor) inferArgumentType(arg *sitter.Node) string {
	switch arg.Type() {
	case "number":
		return "number"
	case "string", "template_string":
		return "string"
	case "true", "false":
		return "boolean"
	case "null":
		return "null"
	case "undefined":
		return "undefined"
	case "arrow_function", "function", "function_expression":
		return "Function"
	case "array":
		return "Collection"
	case "object":
		return "Object"
	case "new_expression":
		if ctor := arg.ChildByFieldName("constructor"); ctor != nil {
			return astutil.ExtractFullTypeName(ctor, e.Source)
		}
	}
	return "Unknown"
}

func hasKeywordChild(n *sitter.Node, source []byte, keyword string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && astutil.Content(child, source) == keyword {
			return true
		}
	}
	return false
}

func visibilityFromNode(n *sitter.Node, source []byte) ir.Visibility {
	if mod := astutil.FindChildByType(n, "accessibility_modifier"); mod != nil {
		switch astutil.Content(mod, source) {
		case "private":
			return ir.VisibilityPrivate
		case "protected":
			return ir.VisibilityProtected
		}
	}
	return ir.VisibilityPublic
}
