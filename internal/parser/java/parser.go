// Package java implements the Java language parser: it walks a
// tree-sitter Java syntax tree into a uniform ir.ParsedFile, including
// record components, permits clauses, and method call sites.
package java

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsjava "github.com/smacker/go-tree-sitter/java"

	"github.com/crosslang/codegraph/internal/astutil"
	"github.com/crosslang/codegraph/internal/ir"
)

// Language implements parser.Language for Java.
type Language struct{}

func New() Language { return Language{} }

func (Language) Name() ir.Language { return ir.LanguageJava }

func (Language) Extensions() []string { return []string{".java"} }

var classLikeTypes = map[string]ir.ClassKind{
	"class_declaration":           ir.ClassKindClass,
	"interface_declaration":       ir.ClassKindInterface,
	"enum_declaration":            ir.ClassKindEnum,
	"record_declaration":          ir.ClassKindClass,
	"annotation_type_declaration": ir.ClassKindAnnotation,
}

func (Language) Parse(source []byte, filePath string) (*ir.ParsedFile, error) {
	p := sitter.NewParser()
	p.SetLanguage(tsjava.GetLanguage())

	tree, err := p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("java: failed to parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	file := &ir.ParsedFile{FilePath: filePath, Language: ir.LanguageJava}

	if pkg := findPackageName(root, source); pkg != "" {
		file.PackageName = pkg
		file.HasPackageName = true
	}

	file.Imports = extractImports(root, source)

	ex := &extractor{source: source}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if _, ok := classLikeTypes[child.Type()]; ok {
			file.Classes = append(file.Classes, ex.extractClass(child))
		}
	}

	return file, nil
}

func findPackageName(root *sitter.Node, source []byte) string {
	decl := astutil.FindChildByType(root, "package_declaration")
	if decl == nil {
		return ""
	}
	if id := astutil.FindChildByType(decl, "scoped_identifier"); id != nil {
		return strings.TrimSpace(astutil.Content(id, source))
	}
	if id := astutil.FindChildByType(decl, "identifier"); id != nil {
		return strings.TrimSpace(astutil.Content(id, source))
	}
	return ""
}

func extractImports(root *sitter.Node, source []byte) []ir.ParsedImport {
	var imports []ir.ParsedImport
	for _, decl := range astutil.FindChildrenByType(root, "import_declaration") {
		text := strings.TrimSpace(astutil.Content(decl, source))
		isWildcard := strings.Contains(text, ".*")
		var path string
		if id := astutil.FindChildByType(decl, "scoped_identifier"); id != nil {
			path = strings.TrimSpace(astutil.Content(id, source))
		} else if id := astutil.FindChildByType(decl, "identifier"); id != nil {
			path = strings.TrimSpace(astutil.Content(id, source))
		}
		if path == "" {
			continue
		}
		if isWildcard && !strings.HasSuffix(path, ".*") {
			path += ".*"
		}
		imports = append(imports, ir.ParsedImport{Path: path, IsWildcard: isWildcard})
	}
	return imports
}

type extractor struct {
	source []byte
}

func (e *extractor) extractClass(node *sitter.Node) ir.ParsedClass {
	modifiers := astutil.FindChildByType(node, "modifiers")
	class := ir.ParsedClass{
		Name:        e.declarationName(node),
		Kind:        classLikeTypes[node.Type()],
		Visibility:  visibilityFromModifiers(modifiers, e.source),
		IsAbstract:  hasModifier(modifiers, e.source, "abstract"),
		IsSealed:    hasModifier(modifiers, e.source, "sealed"),
		IsData:      node.Type() == "record_declaration",
		Annotations: e.extractAnnotations(modifiers),
		Location:    astutil.NodeLocation(node),
	}

	if ext := astutil.FindChildByType(node, "superclass"); ext != nil {
		if t := firstTypeNode(ext); t != nil {
			class.SuperClass = astutil.ExtractFullTypeName(t, e.source)
			class.HasSuperClass = true
		}
	}
	if impl := astutil.FindChildByType(node, "super_interfaces"); impl != nil {
		if list := astutil.FindChildByType(impl, "type_list"); list != nil {
			for i := 0; i < int(list.NamedChildCount()); i++ {
				class.Interfaces = append(class.Interfaces, astutil.ExtractFullTypeName(list.NamedChild(i), e.source))
			}
		}
	}
	if permits := astutil.FindChildByType(node, "permits"); permits != nil {
		list := permits
		if tl := astutil.FindChildByType(permits, "type_list"); tl != nil {
			list = tl
		}
		for i := 0; i < int(list.NamedChildCount()); i++ {
			class.Permits = append(class.Permits, astutil.ExtractFullTypeName(list.NamedChild(i), e.source))
		}
	}

	if node.Type() == "record_declaration" {
		if params := astutil.FindChildByType(node, "formal_parameters"); params != nil {
			class.Properties = append(class.Properties, e.recordComponents(params)...)
		}
	}

	if body := e.classBody(node); body != nil {
		e.populateBody(&class, body)
	}

	return class
}

func (e *extractor) classBody(node *sitter.Node) *sitter.Node {
	for _, bodyType := range []string{"class_body", "interface_body", "enum_body", "annotation_type_body"} {
		if body := astutil.FindChildByType(node, bodyType); body != nil {
			return body
		}
	}
	return nil
}

func (e *extractor) recordComponents(params *sitter.Node) []ir.ParsedProperty {
	var props []ir.ParsedProperty
	for _, param := range astutil.FindChildrenByType(params, "formal_parameter") {
		p := ir.ParsedProperty{
			Visibility: ir.VisibilityPrivate,
			IsVal:      true,
			Location:   astutil.NodeLocation(param),
		}
		if id := astutil.FindChildByType(param, "identifier"); id != nil {
			p.Name = strings.TrimSpace(astutil.Content(id, e.source))
		}
		if t := firstTypeNode(param); t != nil {
			p.Type = astutil.ExtractFullTypeName(t, e.source)
			p.HasType = true
		}
		props = append(props, p)
	}
	return props
}

func (e *extractor) populateBody(class *ir.ParsedClass, body *sitter.Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "method_declaration", "constructor_declaration":
			class.Functions = append(class.Functions, e.extractMethod(child))
		case "field_declaration":
			class.Properties = append(class.Properties, e.extractFields(child)...)
		case "enum_constant":
			class.Properties = append(class.Properties, ir.ParsedProperty{
				Name:       e.declarationName(child),
				Visibility: ir.VisibilityPublic,
				IsVal:      true,
				Location:   astutil.NodeLocation(child),
			})
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration", "annotation_type_declaration":
			class.NestedClasses = append(class.NestedClasses, e.extractClass(child))
		}
	}
}

func (e *extractor) extractFields(node *sitter.Node) []ir.ParsedProperty {
	modifiers := astutil.FindChildByType(node, "modifiers")
	visibility := visibilityFromModifiers(modifiers, e.source)
	annotations := e.extractAnnotations(modifiers)
	var typeNode *sitter.Node
	if t := firstTypeNode(node); t != nil {
		typeNode = t
	}
	var props []ir.ParsedProperty
	for _, declarator := range astutil.FindChildrenByType(node, "variable_declarator") {
		prop := ir.ParsedProperty{
			Visibility:  visibility,
			IsVal:       hasModifier(modifiers, e.source, "final"),
			Annotations: annotations,
			Location:    astutil.NodeLocation(declarator),
		}
		if id := astutil.FindChildByType(declarator, "identifier"); id != nil {
			prop.Name = strings.TrimSpace(astutil.Content(id, e.source))
		}
		if typeNode != nil {
			prop.Type = astutil.ExtractFullTypeName(typeNode, e.source)
			prop.HasType = true
		}
		props = append(props, prop)
	}
	return props
}

// firstTypeNode returns the first child that looks like a type reference:
// a generic/array/scoped type, a type_identifier, or a primitive type.
func firstTypeNode(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "generic_type", "array_type", "scoped_type_identifier", "type_identifier",
			"integral_type", "floating_point_type", "boolean_type", "void_type":
			return child
		}
	}
	return nil
}

func (e *extractor) extractMethod(node *sitter.Node) ir.ParsedFunction {
	modifiers := astutil.FindChildByType(node, "modifiers")
	fn := ir.ParsedFunction{
		Name:        e.methodName(node),
		Visibility:  visibilityFromModifiers(modifiers, e.source),
		IsAbstract:  hasModifier(modifiers, e.source, "abstract"),
		Annotations: e.extractAnnotations(modifiers),
		Location:    astutil.NodeLocation(node),
	}

	if params := astutil.FindChildByType(node, "formal_parameters"); params != nil {
		fn.Parameters = e.extractParameters(params)
	}
	if typeParams := astutil.FindChildByType(node, "type_parameters"); typeParams != nil {
		fn.TypeParameters = e.extractTypeParameters(typeParams)
	}
	if node.Type() == "method_declaration" {
		if t := node.ChildByFieldName("type"); t != nil {
			fn.ReturnType = astutil.ExtractFullTypeName(t, e.source)
			fn.HasReturnType = true
		}
	}

	if body := astutil.FindChildByType(node, "block"); body != nil {
		fn.Calls = e.extractCalls(body)
		fn.Locals = e.extractLocals(body)
	}

	return fn
}

// extractLocals collects the typed local variables declared directly in a
// method body's top-level statements (nested blocks are not walked).
func (e *extractor) extractLocals(body *sitter.Node) []ir.LocalVariable {
	var locals []ir.LocalVariable
	for _, decl := range astutil.FindChildrenByType(body, "local_variable_declaration") {
		t := firstTypeNode(decl)
		if t == nil {
			continue
		}
		typeText := astutil.ExtractFullTypeName(t, e.source)
		for _, d := range astutil.FindChildrenByType(decl, "variable_declarator") {
			if id := astutil.FindChildByType(d, "identifier"); id != nil {
				locals = append(locals, ir.LocalVariable{
					Name: strings.TrimSpace(astutil.Content(id, e.source)),
					Type: typeText,
				})
			}
		}
	}
	return locals
}

func (e *extractor) extractParameters(params *sitter.Node) []ir.ParsedParameter {
	var out []ir.ParsedParameter
	for _, kind := range []string{"formal_parameter", "spread_parameter"} {
		for _, param := range astutil.FindChildrenByType(params, kind) {
			p := ir.ParsedParameter{}
			if id := astutil.FindChildByType(param, "identifier"); id != nil {
				p.Name = strings.TrimSpace(astutil.Content(id, e.source))
			}
			if t := firstTypeNode(param); t != nil {
				typeText := astutil.ExtractFullTypeName(t, e.source)
				if kind == "spread_parameter" {
					typeText += "[]"
				}
				p.Type = typeText
				p.HasType = true
			}
			out = append(out, p)
		}
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
		if bound := astutil.FindChildByType(tp, "type_bound"); bound != nil {
			for i := 0; i < int(bound.NamedChildCount()); i++ {
				param.Bounds = append(param.Bounds, astutil.ExtractFullTypeName(bound.NamedChild(i), e.source))
			}
		}
		out = append(out, param)
	}
	return out
}

func (e *extractor) declarationName(node *sitter.Node) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return strings.TrimSpace(astutil.Content(name, e.source))
	}
	if id := astutil.FindChildByType(node, "identifier"); id != nil {
		return strings.TrimSpace(astutil.Content(id, e.source))
	}
	return ""
}

func (e *extractor) methodName(node *sitter.Node) string {
	return e.declarationName(node)
}

// extractCalls walks a method body pre-order, emitting one ParsedCall per
// method_invocation/object_creation_expression.
func (e *extractor) extractCalls(body *sitter.Node) []ir.ParsedCall {
	var calls []ir.ParsedCall
	astutil.TraverseNode(body, func(node *sitter.Node) bool {
		switch node.Type() {
		case "method_invocation":
			calls = append(calls, e.parseMethodInvocation(node))
		case "object_creation_expression":
			if call, ok := e.parseObjectCreation(node); ok {
				calls = append(calls, call)
			}
		}
		return true
	})
	return calls
}

func (e *extractor) parseMethodInvocation(node *sitter.Node) ir.ParsedCall {
	call := ir.ParsedCall{Location: astutil.NodeLocation(node)}
	if name := node.ChildByFieldName("name"); name != nil {
		call.Name = strings.TrimSpace(astutil.Content(name, e.source))
	} else if id := astutil.FindChildByType(node, "identifier"); id != nil {
		call.Name = strings.TrimSpace(astutil.Content(id, e.source))
	}
	if obj := node.ChildByFieldName("object"); obj != nil {
		text := strings.TrimSpace(astutil.Content(obj, e.source))
		call.Receiver = text
		call.HasReceiver = true
	}
	if args := astutil.FindChildByType(node, "argument_list"); args != nil {
		e.fillArguments(&call, args)
	}
	return call
}

func (e *extractor) parseObjectCreation(node *sitter.Node) (ir.ParsedCall, bool) {
	var typeNode *sitter.Node
	for _, t := range []string{"generic_type", "scoped_type_identifier", "type_identifier"} {
		if n := astutil.FindChildByType(node, t); n != nil {
			typeNode = n
			break
		}
	}
	if typeNode == nil {
		return ir.ParsedCall{}, false
	}
	call := ir.ParsedCall{
		Name:              astutil.ExtractFullTypeName(typeNode, e.source),
		IsConstructorCall: true,
		Location:          astutil.NodeLocation(node),
	}
	if args := astutil.FindChildByType(node, "argument_list"); args != nil {
		e.fillArguments(&call, args)
	}
	return call, true
}

// extractAnnotations reads marker_annotation/annotation entries off a
// modifiers node. element_value_pair arguments keep their key; the
// single-value shorthand (`@Retention(RUNTIME)`) is keyed "value";
// positional values use "_0", "_1", ...
func (e *extractor) extractAnnotations(modifiers *sitter.Node) []ir.ParsedAnnotation {
	if modifiers == nil {
		return nil
	}
	var out []ir.ParsedAnnotation
	for i := 0; i < int(modifiers.NamedChildCount()); i++ {
		node := modifiers.NamedChild(i)
		if node.Type() != "marker_annotation" && node.Type() != "annotation" {
			continue
		}
		ann := ir.ParsedAnnotation{}
		if name := node.ChildByFieldName("name"); name != nil {
			ann.Name = strings.TrimSpace(astutil.Content(name, e.source))
		}
		if args := node.ChildByFieldName("arguments"); args != nil {
			ann.Arguments = e.annotationArguments(args)
		}
		out = append(out, ann)
	}
	return out
}

func (e *extractor) annotationArguments(args *sitter.Node) map[string]string {
	if args.NamedChildCount() == 0 {
		return nil
	}
	arguments := make(map[string]string, args.NamedChildCount())
	positional := 0
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() == "element_value_pair" {
			key := arg.ChildByFieldName("key")
			value := arg.ChildByFieldName("value")
			if key != nil && value != nil {
				arguments[strings.TrimSpace(astutil.Content(key, e.source))] = strings.TrimSpace(astutil.Content(value, e.source))
			}
			continue
		}
		text := strings.TrimSpace(astutil.Content(arg, e.source))
		if args.NamedChildCount() == 1 {
			arguments["value"] = text
			continue
		}
		arguments[fmt.Sprintf("_%d", positional)] = text
		positional++
	}
	return arguments
}

func (e *extractor) fillArguments(call *ir.ParsedCall, args *sitter.Node) {
	call.ArgumentCount = int(args.NamedChildCount())
	if call.ArgumentCount == 0 {
		return
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		call.ArgumentTypes = append(call.ArgumentTypes, e.inferArgumentType(args.NamedChild(i)))
	}
}

func (e *extractor) inferArgumentType(arg *sitter.Node) string {
	text := strings.TrimSpace(astutil.Content(arg, e.source))
	switch arg.Type() {
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal":
		if strings.HasSuffix(strings.ToLower(text), "l") {
			return "Long"
		}
		return "int"
	case "decimal_floating_point_literal":
		if strings.HasSuffix(strings.ToLower(text), "f") {
			return "Float"
		}
		return "double"
	case "string_literal":
		return "String"
	case "character_literal":
		return "char"
	case "true", "false":
		return "boolean"
	case "null_literal":
		return "null"
	case "lambda_expression", "method_reference":
		return "Function"
	case "array_initializer":
		return "Collection"
	}
	return "Unknown"
}

func hasModifier(modifiers *sitter.Node, source []byte, keyword string) bool {
	if modifiers == nil {
		return false
	}
	for _, field := range strings.Fields(astutil.Content(modifiers, source)) {
		if field == keyword {
			return true
		}
	}
	return false
}

func visibilityFromModifiers(modifiers *sitter.Node, source []byte) ir.Visibility {
	if modifiers == nil {
		return ir.VisibilityInternal
	}
	text := astutil.Content(modifiers, source)
	fields := strings.Fields(text)
	for _, f := range fields {
		switch f {
		case "public":
			return ir.VisibilityPublic
		case "private":
			return ir.VisibilityPrivate
		case "protected":
			return ir.VisibilityProtected
		}
	}
	return ir.VisibilityInternal
}
