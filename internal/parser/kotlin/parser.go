// Package kotlin implements the Kotlin language parser: it walks a
// tree-sitter Kotlin syntax tree into a uniform ir.ParsedFile — package
// header, imports, declarations, properties, and call sites.
package kotlin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	tskotlin "github.com/smacker/go-tree-sitter/kotlin"

	"github.com/crosslang/codegraph/internal/astutil"
	"github.com/crosslang/codegraph/internal/ir"
)

// Language implements parser.Language for Kotlin.
type Language struct{}

func New() Language { return Language{} }

func (Language) Name() ir.Language { return ir.LanguageKotlin }

func (Language) Extensions() []string { return []string{".kt", ".kts"} }

func (Language) Parse(source []byte, filePath string) (*ir.ParsedFile, error) {
	p := sitter.NewParser()
	p.SetLanguage(tskotlin.GetLanguage())

	tree, err := p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("kotlin: failed to parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	file := &ir.ParsedFile{
		FilePath: filePath,
		Language: ir.LanguageKotlin,
	}

	if pkg := findPackageHeader(root, source); pkg != "" {
		file.PackageName = pkg
		file.HasPackageName = true
	}

	file.Imports = extractImports(root, source)

	ex := &extractor{source: source}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "class_declaration", "object_declaration":
			file.Classes = append(file.Classes, ex.extractClass(child))
		case "function_declaration":
			file.TopLevelFunctions = append(file.TopLevelFunctions, ex.extractFunction(child))
		case "property_declaration":
			file.TopLevelProperties = append(file.TopLevelProperties, ex.extractProperty(child))
		case "type_alias":
			file.TypeAliases = append(file.TypeAliases, ex.extractTypeAlias(child))
		}
	}

	// Destructuring declarations and anonymous objects only occur inside
	// bodies, so they are collected with a whole-tree walk rather than the
	// top-level loop above.
	file.DestructuringDeclarations = ex.extractDestructuringDeclarations(root)
	file.ObjectExpressions = ex.extractObjectExpressions(root)

	return file, nil
}

func findPackageHeader(root *sitter.Node, source []byte) string {
	header := astutil.FindChildByType(root, "package_header")
	if header == nil {
		return ""
	}
	id := astutil.FindChildByType(header, "identifier")
	if id == nil {
		return ""
	}
	return strings.TrimSpace(astutil.Content(id, source))
}

func extractImports(root *sitter.Node, source []byte) []ir.ParsedImport {
	var imports []ir.ParsedImport
	list := astutil.FindChildByType(root, "import_list")
	if list == nil {
		return imports
	}
	for _, header := range astutil.FindChildrenByType(list, "import_header") {
		id := astutil.FindChildByType(header, "identifier")
		if id == nil {
			continue
		}
		path := strings.TrimSpace(astutil.Content(id, source))
		isWildcard := astutil.FindChildByType(header, "wildcard_import") != nil
		imp := ir.ParsedImport{Path: path, IsWildcard: isWildcard}

		if alias := astutil.FindChildByType(header, "import_alias"); alias != nil {
			if name := astutil.FindChildByType(alias, "type_identifier"); name != nil {
				imp.Alias = strings.TrimSpace(astutil.Content(name, source))
				imp.HasAlias = true
			} else if name := astutil.FindChildByType(alias, "simple_identifier"); name != nil {
				imp.Alias = strings.TrimSpace(astutil.Content(name, source))
				imp.HasAlias = true
			}
		}
		imports = append(imports, imp)
	}
	return imports
}

// extractor carries the source buffer across a single file's extraction.
// Nested classes and companion objects are extracted by recursing into the
// same visitor.
type extractor struct {
	source []byte
}

func (e *extractor) extractClass(node *sitter.Node) ir.ParsedClass {
	modifiers := astutil.FindChildByType(node, "modifiers")
	class := ir.ParsedClass{
		Name:        e.declarationName(node),
		Kind:        classKind(node, modifiers, e.source),
		Visibility:  visibilityFromModifiers(modifiers, e.source),
		IsAbstract:  hasModifierKeyword(modifiers, e.source, "abstract"),
		IsSealed:    hasModifierKeyword(modifiers, e.source, "sealed"),
		IsData:      hasModifierKeyword(modifiers, e.source, "data"),
		Annotations: e.extractAnnotations(modifiers),
		Location:    astutil.NodeLocation(node),
	}

	if ctor := astutil.FindChildByType(node, "primary_constructor"); ctor != nil {
		class.Properties = append(class.Properties, e.extractPrimaryConstructorProperties(ctor)...)
	}

	// The grammar inlines delegation_specifier nodes as direct children of
	// the declaration; a delegation_specifiers wrapper is used when present.
	delegations := astutil.FindChildByType(node, "delegation_specifiers")
	if delegations == nil {
		delegations = node
	}
	if super, interfaces := e.extractSupertypes(delegations); super != "" || len(interfaces) > 0 {
		if super != "" {
			class.SuperClass = super
			class.HasSuperClass = true
		}
		class.Interfaces = interfaces
	}

	if body := astutil.FindChildByType(node, "class_body"); body != nil {
		e.populateClassBody(&class, body)
	}
	if body := astutil.FindChildByType(node, "enum_class_body"); body != nil {
		e.populateClassBody(&class, body)
	}

	return class
}

func (e *extractor) populateClassBody(class *ir.ParsedClass, body *sitter.Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "function_declaration":
			class.Functions = append(class.Functions, e.extractFunction(child))
		case "property_declaration":
			class.Properties = append(class.Properties, e.extractProperty(child))
		case "class_declaration", "object_declaration":
			class.NestedClasses = append(class.NestedClasses, e.extractClass(child))
		case "companion_object":
			companion := e.extractClass(child)
			companion.Name = companionName(child, e.source)
			companion.Kind = ir.ClassKindObject
			class.CompanionObject = &companion
		case "secondary_constructor":
			class.SecondaryCtors = append(class.SecondaryCtors, e.extractSecondaryConstructor(child))
		}
	}
}

func companionName(node *sitter.Node, source []byte) string {
	if id := astutil.FindChildByType(node, "type_identifier"); id != nil {
		return strings.TrimSpace(astutil.Content(id, source))
	}
	return "Companion"
}

func (e *extractor) extractSecondaryConstructor(node *sitter.Node) ir.ParsedConstructor {
	ctor := ir.ParsedConstructor{Location: astutil.NodeLocation(node)}
	if params := astutil.FindChildByType(node, "function_value_parameters"); params != nil {
		ctor.Parameters = e.extractParameters(params)
	}
	if delegation := astutil.FindChildByType(node, "constructor_delegation_call"); delegation != nil {
		text := astutil.Content(delegation, e.source)
		switch {
		case strings.HasPrefix(strings.TrimSpace(text), "this"):
			ctor.Delegation = ir.DelegationThis
		case strings.HasPrefix(strings.TrimSpace(text), "super"):
			ctor.Delegation = ir.DelegationSuper
		}
	}
	return ctor
}

func (e *extractor) extractPrimaryConstructorProperties(ctor *sitter.Node) []ir.ParsedProperty {
	var props []ir.ParsedProperty
	for _, param := range astutil.FindChildrenByType(ctor, "class_parameter") {
		binding := astutil.FindChildByType(param, "binding_pattern_kind")
		isProperty := binding != nil
		if !isProperty {
			continue
		}
		isVal := !strings.Contains(astutil.Content(binding, e.source), "var")

		paramModifiers := astutil.FindChildByType(param, "modifiers")
		prop := ir.ParsedProperty{
			IsVal:       isVal,
			Visibility:  visibilityFromModifiers(paramModifiers, e.source),
			Annotations: e.extractAnnotations(paramModifiers),
			Location:    astutil.NodeLocation(param),
		}
		if id := astutil.FindChildByType(param, "simple_identifier"); id != nil {
			prop.Name = strings.TrimSpace(astutil.Content(id, e.source))
		}
		if t := astutil.FindChildByType(param, "user_type"); t != nil {
			prop.Type = astutil.ExtractFullTypeName(t, e.source)
			prop.HasType = true
		} else if t := astutil.FindChildByType(param, "nullable_type"); t != nil {
			prop.Type = astutil.ExtractFullTypeName(t, e.source)
			prop.HasType = true
		}
		props = append(props, prop)
	}
	return props
}

func (e *extractor) extractSupertypes(node *sitter.Node) (string, []string) {
	var super string
	var interfaces []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		entry := node.NamedChild(i)
		var typeNode *sitter.Node
		switch entry.Type() {
		case "delegation_specifier", "constructor_invocation", "explicit_delegation":
			typeNode = astutil.FindChildByType(entry, "user_type")
			if inv := astutil.FindChildByType(entry, "constructor_invocation"); typeNode == nil && inv != nil {
				typeNode = astutil.FindChildByType(inv, "user_type")
			}
		case "user_type":
			typeNode = entry
		}
		if typeNode == nil {
			continue
		}
		name := astutil.ExtractFullTypeName(typeNode, e.source)
		hasCallSuffix := strings.Contains(astutil.Content(entry, e.source), "(")
		if super == "" && hasCallSuffix {
			super = name
			continue
		}
		interfaces = append(interfaces, name)
	}
	return super, interfaces
}

func (e *extractor) extractFunction(node *sitter.Node) ir.ParsedFunction {
	modifiers := astutil.FindChildByType(node, "modifiers")
	fn := ir.ParsedFunction{
		Name:        e.declarationName(node),
		Visibility:  visibilityFromModifiers(modifiers, e.source),
		IsAbstract:  hasModifierKeyword(modifiers, e.source, "abstract"),
		IsSuspend:   hasModifierKeyword(modifiers, e.source, "suspend"),
		IsInline:    hasModifierKeyword(modifiers, e.source, "inline"),
		IsInfix:     hasModifierKeyword(modifiers, e.source, "infix"),
		IsOperator:  hasModifierKeyword(modifiers, e.source, "operator"),
		Annotations: e.extractAnnotations(modifiers),
		Location:    astutil.NodeLocation(node),
	}

	if receiver := e.extensionReceiver(node); receiver != "" {
		fn.IsExtension = true
		fn.ReceiverType = receiver
	}

	if params := astutil.FindChildByType(node, "function_value_parameters"); params != nil {
		fn.Parameters = e.extractParameters(params)
	}

	if typeParams := astutil.FindChildByType(node, "type_parameters"); typeParams != nil {
		fn.TypeParameters = e.extractTypeParameters(typeParams)
	}

	if ret := e.returnTypeNode(node); ret != nil {
		fn.ReturnType = astutil.ExtractFullTypeName(ret, e.source)
		fn.HasReturnType = true
	}

	if body := astutil.FindChildByType(node, "function_body"); body != nil {
		fn.Calls = e.extractCalls(body)
		fn.Locals = e.extractLocals(body)
	}

	return fn
}

// extractLocals collects the explicitly typed `val`/`var` bindings made
// directly in a function body's top-level statements. Untyped bindings are
// skipped: inferring their type would need the flow analysis the resolver
// deliberately avoids.
func (e *extractor) extractLocals(body *sitter.Node) []ir.LocalVariable {
	statements := astutil.FindChildByType(body, "statements")
	if statements == nil {
		return nil
	}
	var locals []ir.LocalVariable
	for _, decl := range astutil.FindChildrenByType(statements, "property_declaration") {
		v := astutil.FindChildByType(decl, "variable_declaration")
		if v == nil {
			continue
		}
		id := astutil.FindChildByType(v, "simple_identifier")
		if id == nil {
			continue
		}
		for _, typeKind := range []string{"user_type", "nullable_type", "function_type"} {
			if t := astutil.FindChildByType(v, typeKind); t != nil {
				locals = append(locals, ir.LocalVariable{
					Name: strings.TrimSpace(astutil.Content(id, e.source)),
					Type: astutil.ExtractFullTypeName(t, e.source),
				})
				break
			}
		}
	}
	return locals
}

// extensionReceiver finds the "T." prefix before a function name, if any:
// in the Kotlin grammar this shows up as a user_type/nullable_type/
// function_type named child that precedes the simple_identifier and is
// followed by a "." token.
func (e *extractor) extensionReceiver(node *sitter.Node) string {
	nameIdx := -1
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() == "simple_identifier" {
			nameIdx = i
			break
		}
	}
	if nameIdx <= 0 {
		return ""
	}
	candidate := node.NamedChild(nameIdx - 1)
	switch candidate.Type() {
	case "user_type", "nullable_type", "function_type":
		return astutil.ExtractFullTypeName(candidate, e.source)
	}
	return ""
}

// returnTypeNode locates the type node between the parameter list and the
// function body: the only position a return-type annotation can occupy
// (the extension-receiver type, if any, sits before the name instead).
func (e *extractor) returnTypeNode(node *sitter.Node) *sitter.Node {
	params := astutil.FindChildByType(node, "function_value_parameters")
	if params == nil {
		return nil
	}
	foundParams := false
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == params {
			foundParams = true
			continue
		}
		if !foundParams {
			continue
		}
		switch child.Type() {
		case "user_type", "nullable_type", "function_type":
			return child
		case "function_body":
			return nil
		}
	}
	return nil
}

func (e *extractor) extractParameters(params *sitter.Node) []ir.ParsedParameter {
	var out []ir.ParsedParameter
	for _, param := range astutil.FindChildrenByType(params, "parameter") {
		p := ir.ParsedParameter{}
		if id := astutil.FindChildByType(param, "simple_identifier"); id != nil {
			p.Name = strings.TrimSpace(astutil.Content(id, e.source))
		}
		for _, typeKind := range []string{"user_type", "nullable_type", "function_type"} {
			if t := astutil.FindChildByType(param, typeKind); t != nil {
				p.Type = astutil.ExtractFullTypeName(t, e.source)
				p.HasType = true
				break
			}
		}
		out = append(out, p)
	}
	return out
}

func (e *extractor) extractTypeParameters(node *sitter.Node) []ir.ParsedTypeParameter {
	var out []ir.ParsedTypeParameter
	for _, tp := range astutil.FindChildrenByType(node, "type_parameter") {
		param := ir.ParsedTypeParameter{}
		if id := astutil.FindChildByType(tp, "type_identifier"); id != nil {
			param.Name = strings.TrimSpace(astutil.Content(id, e.source))
		}
		text := astutil.Content(tp, e.source)
		switch {
		case strings.HasPrefix(strings.TrimSpace(text), "out "):
			param.Variance = "out"
		case strings.HasPrefix(strings.TrimSpace(text), "in "):
			param.Variance = "in"
		}
		param.IsReified = strings.Contains(text, "reified")
		for _, bound := range []string{"user_type", "nullable_type"} {
			if t := astutil.FindChildByType(tp, bound); t != nil {
				param.Bounds = append(param.Bounds, astutil.ExtractFullTypeName(t, e.source))
			}
		}
		out = append(out, param)
	}
	return out
}

func (e *extractor) extractProperty(node *sitter.Node) ir.ParsedProperty {
	modifiers := astutil.FindChildByType(node, "modifiers")
	header := astutil.Content(node, e.source)
	if idx := strings.IndexAny(header, "=\n"); idx >= 0 {
		header = header[:idx]
	}
	prop := ir.ParsedProperty{
		Visibility:  visibilityFromModifiers(modifiers, e.source),
		IsVal:       !containsWord(header, "var"),
		Annotations: e.extractAnnotations(modifiers),
		Location:    astutil.NodeLocation(node),
	}

	decl := astutil.FindChildByType(node, "variable_declaration")
	if decl == nil {
		decl = node
	}
	if id := astutil.FindChildByType(decl, "simple_identifier"); id != nil {
		prop.Name = strings.TrimSpace(astutil.Content(id, e.source))
	}
	for _, typeKind := range []string{"user_type", "nullable_type", "function_type"} {
		if t := astutil.FindChildByType(decl, typeKind); t != nil {
			prop.Type = astutil.ExtractFullTypeName(t, e.source)
			prop.HasType = true
			break
		}
	}
	return prop
}

func (e *extractor) extractTypeAlias(node *sitter.Node) ir.TypeAlias {
	alias := ir.TypeAlias{Location: astutil.NodeLocation(node)}
	if id := astutil.FindChildByType(node, "type_identifier"); id != nil {
		alias.Name = strings.TrimSpace(astutil.Content(id, e.source))
	}
	for _, typeKind := range []string{"user_type", "nullable_type", "function_type"} {
		if t := astutil.FindChildByType(node, typeKind); t != nil {
			alias.AliasedType = astutil.ExtractFullTypeName(t, e.source)
			break
		}
	}
	return alias
}

func (e *extractor) declarationName(node *sitter.Node) string {
	if id := astutil.FindChildByType(node, "type_identifier"); id != nil {
		return strings.TrimSpace(astutil.Content(id, e.source))
	}
	if id := astutil.FindChildByType(node, "simple_identifier"); id != nil {
		return strings.TrimSpace(astutil.Content(id, e.source))
	}
	return ""
}

// extractAnnotations reads the annotation entries of a modifiers node.
// Named arguments keep their name as the key; positional arguments use
// "_0", "_1", ... except the single-value shorthand, which is keyed
// "value".
func (e *extractor) extractAnnotations(modifiers *sitter.Node) []ir.ParsedAnnotation {
	if modifiers == nil {
		return nil
	}
	var out []ir.ParsedAnnotation
	for _, node := range astutil.FindChildrenByType(modifiers, "annotation") {
		ann := ir.ParsedAnnotation{}
		target := node
		if inv := astutil.FindDescendantByType(node, "constructor_invocation"); inv != nil {
			target = inv
		}
		if t := astutil.FindChildByType(target, "user_type"); t != nil {
			ann.Name = astutil.ExtractFullTypeName(t, e.source)
		} else {
			ann.Name = strings.TrimPrefix(strings.TrimSpace(astutil.Content(node, e.source)), "@")
		}
		if args := astutil.FindDescendantByType(node, "value_arguments"); args != nil {
			ann.Arguments = e.annotationArguments(args)
		}
		out = append(out, ann)
	}
	return out
}

func (e *extractor) annotationArguments(args *sitter.Node) map[string]string {
	argNodes := astutil.FindChildrenByType(args, "value_argument")
	if len(argNodes) == 0 {
		return nil
	}
	arguments := make(map[string]string, len(argNodes))
	positional := 0
	for _, arg := range argNodes {
		text := strings.TrimSpace(astutil.Content(arg, e.source))
		if name, value, ok := strings.Cut(text, "="); ok && !strings.ContainsAny(name, "\"'(") {
			arguments[strings.TrimSpace(name)] = strings.TrimSpace(value)
			continue
		}
		if len(argNodes) == 1 {
			arguments["value"] = text
			continue
		}
		arguments[fmt.Sprintf("_%d", positional)] = text
		positional++
	}
	return arguments
}

// extractDestructuringDeclarations collects `val (a, b) = pair` bindings
// anywhere in the tree — Kotlin only allows them in local scope, so the
// top-level declaration loop never sees one.
func (e *extractor) extractDestructuringDeclarations(root *sitter.Node) []ir.DestructuringDeclaration {
	var out []ir.DestructuringDeclaration
	astutil.TraverseNode(root, func(node *sitter.Node) bool {
		if node.Type() != "property_declaration" {
			return true
		}
		multi := astutil.FindChildByType(node, "multi_variable_declaration")
		if multi == nil {
			return true
		}
		decl := ir.DestructuringDeclaration{Location: astutil.NodeLocation(node)}
		for _, v := range astutil.FindChildrenByType(multi, "variable_declaration") {
			if id := astutil.FindChildByType(v, "simple_identifier"); id != nil {
				decl.Names = append(decl.Names, strings.TrimSpace(astutil.Content(id, e.source)))
			}
		}
		if _, init, ok := strings.Cut(astutil.Content(node, e.source), "="); ok {
			decl.Source = strings.TrimSpace(init)
		}
		out = append(out, decl)
		return false
	})
	return out
}

// extractObjectExpressions collects anonymous `object : X { ... }`
// expressions anywhere in the tree.
func (e *extractor) extractObjectExpressions(root *sitter.Node) []ir.ObjectExpression {
	var out []ir.ObjectExpression
	astutil.TraverseNode(root, func(node *sitter.Node) bool {
		if node.Type() != "object_literal" {
			return true
		}
		obj := ir.ObjectExpression{Location: astutil.NodeLocation(node)}
		delegations := astutil.FindChildByType(node, "delegation_specifiers")
		if delegations == nil {
			delegations = node
		}
		if super, interfaces := e.extractSupertypes(delegations); super != "" || len(interfaces) > 0 {
			if super != "" {
				obj.SuperClass = super
				obj.HasSuperClass = true
			}
			obj.Interfaces = interfaces
		}
		if body := astutil.FindChildByType(node, "class_body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				child := body.NamedChild(i)
				switch child.Type() {
				case "function_declaration":
					obj.Functions = append(obj.Functions, e.extractFunction(child))
				case "property_declaration":
					obj.Properties = append(obj.Properties, e.extractProperty(child))
				}
			}
		}
		out = append(out, obj)
		return false
	})
	return out
}

// extractCalls walks a function body pre-order and emits one ParsedCall
// per call-like node.
func (e *extractor) extractCalls(body *sitter.Node) []ir.ParsedCall {
	var calls []ir.ParsedCall
	astutil.TraverseNode(body, func(node *sitter.Node) bool {
		switch node.Type() {
		case "call_expression":
			if call, ok := e.parseCallExpression(node); ok {
				calls = append(calls, call)
			}
		}
		return true
	})
	return calls
}

func (e *extractor) parseCallExpression(node *sitter.Node) (ir.ParsedCall, bool) {
	callee := node.NamedChild(0)
	if callee == nil {
		return ir.ParsedCall{}, false
	}

	call := ir.ParsedCall{Location: astutil.NodeLocation(node)}

	switch callee.Type() {
	case "simple_identifier":
		name := strings.TrimSpace(astutil.Content(callee, e.source))
		call.Name = name
		call.IsConstructorCall = isUpperCamel(name)
	case "navigation_expression":
		receiver, name, isSafe := e.splitNavigation(callee)
		if name == "" {
			return ir.ParsedCall{}, false
		}
		call.Name = name
		if receiver != "" {
			call.Receiver = receiver
			call.HasReceiver = true
		}
		call.IsSafeCall = isSafe
	default:
		return ir.ParsedCall{}, false
	}

	if args := astutil.FindChildByType(node, "value_arguments"); args != nil {
		argNodes := astutil.FindChildrenByType(args, "value_argument")
		call.ArgumentCount = len(argNodes)
		if len(argNodes) > 0 {
			for _, arg := range argNodes {
				call.ArgumentTypes = append(call.ArgumentTypes, e.inferArgumentType(arg))
			}
		}
	}

	return call, true
}

// splitNavigation collects a dotted navigation chain left-to-right; the
// last identifier is the call name, the join of the rest is the receiver.
func (e *extractor) splitNavigation(node *sitter.Node) (receiver, name string, isSafe bool) {
	var segments []string
	cur := node
	for cur != nil && cur.Type() == "navigation_expression" {
		suffix := astutil.FindChildByType(cur, "navigation_suffix")
		if suffix == nil {
			break
		}
		if strings.Contains(astutil.Content(suffix, e.source), "?.") {
			isSafe = true
		}
		id := astutil.FindChildByType(suffix, "simple_identifier")
		segText := ""
		if id != nil {
			segText = strings.TrimSpace(astutil.Content(id, e.source))
		}
		segments = append([]string{segText}, segments...)
		cur = cur.NamedChild(0)
	}
	if cur != nil {
		leaf := strings.TrimSpace(astutil.Content(cur, e.source))
		segments = append([]string{leaf}, segments...)
	}
	if len(segments) == 0 {
		return "", "", false
	}
	name = segments[len(segments)-1]
	receiver = strings.Join(segments[:len(segments)-1], ".")
	return receiver, name, isSafe
}

func (e *extractor) inferArgumentType(arg *sitter.Node) string {
	text := strings.TrimSpace(astutil.Content(arg, e.source))
	switch arg.Type() {
	case "integer_literal":
		return "Int"
	case "long_literal":
		return "Long"
	case "real_literal":
		if strings.HasSuffix(strings.ToLower(text), "f") {
			return "Float"
		}
		return "Double"
	case "string_literal":
		return "String"
	case "character_literal":
		return "Char"
	case "boolean_literal":
		return "Boolean"
	case "null_literal":
		return "Nothing?"
	case "lambda_literal", "anonymous_function":
		return "Function"
	case "collection_literal":
		return "Collection"
	}
	// value_argument wraps the real expression as its sole named child.
	if child := node0(arg); child != nil && child != arg {
		return e.inferArgumentType(child)
	}
	if _, err := strconv.Atoi(text); err == nil {
		return "Int"
	}
	return "Unknown"
}

func node0(n *sitter.Node) *sitter.Node {
	if n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}

func isUpperCamel(name string) bool {
	if name == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func classKind(node *sitter.Node, modifiers *sitter.Node, source []byte) ir.ClassKind {
	switch node.Type() {
	case "object_declaration":
		return ir.ClassKindObject
	}
	text := astutil.Content(node, source)
	switch {
	case strings.Contains(firstLine(text), "interface"):
		return ir.ClassKindInterface
	case strings.Contains(firstLine(text), "enum"):
		return ir.ClassKindEnum
	case modifiers != nil && hasModifierKeyword(modifiers, source, "annotation"):
		return ir.ClassKindAnnotation
	default:
		return ir.ClassKindClass
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	if idx := strings.IndexByte(s, '{'); idx >= 0 {
		return s[:idx]
	}
	return s
}

func hasModifierKeyword(modifiers *sitter.Node, source []byte, keyword string) bool {
	if modifiers == nil {
		return false
	}
	text := astutil.Content(modifiers, source)
	for _, field := range strings.Fields(text) {
		if field == keyword {
			return true
		}
	}
	return false
}

func visibilityFromModifiers(modifiers *sitter.Node, source []byte) ir.Visibility {
	if modifiers == nil {
		return ir.VisibilityPublic
	}
	text := astutil.Content(modifiers, source)
	switch {
	case containsWord(text, "private"):
		return ir.VisibilityPrivate
	case containsWord(text, "protected"):
		return ir.VisibilityProtected
	case containsWord(text, "internal"):
		return ir.VisibilityInternal
	default:
		return ir.VisibilityPublic
	}
}

func containsWord(text, word string) bool {
	for _, field := range strings.Fields(text) {
		if field == word {
			return true
		}
	}
	return false
}
