package ir

// ParsedAnnotation is a single annotation/decorator applied to a declaration.
//
// Positional arguments are keyed "_0", "_1", ...; the single-value shorthand
// (`@Foo("bar")`) is keyed "value".
type ParsedAnnotation struct {
	Name      string
	Arguments map[string]string
}

// ParsedTypeParameter is one entry of a declaration's type-parameter list.
type ParsedTypeParameter struct {
	Name      string
	Bounds    []string
	Variance  string // "", "in", "out"
	IsReified bool
}

// ParsedParameter is one function/constructor parameter.
type ParsedParameter struct {
	Name         string
	Type         string
	HasType      bool
	DefaultValue string
	HasDefault   bool
	Annotations  []ParsedAnnotation
}

// ParsedProperty is a field/property declaration.
type ParsedProperty struct {
	Name        string
	Type        string
	HasType     bool
	Visibility  Visibility
	IsVal       bool
	Initializer string
	HasInit     bool
	Annotations []ParsedAnnotation
	Location    SourceLocation
}

// ParsedCall is one unresolved call site discovered inside a function body.
//
// Receiver is the free-form textual prefix of the call: "this", "super", a
// single identifier, or a dotted chain "a.b.c". It is empty for a bare
// direct call.
type ParsedCall struct {
	Name              string
	Receiver          string
	HasReceiver       bool
	ReceiverType      string
	HasReceiverType   bool
	ArgumentCount     int
	ArgumentTypes     []string
	IsSafeCall        bool
	IsConstructorCall bool
	Location          SourceLocation
}

// ConstructorDelegation identifies what a secondary constructor delegates to.
type ConstructorDelegation int

const (
	DelegationNone ConstructorDelegation = iota
	DelegationThis
	DelegationSuper
)

// ParsedConstructor is a secondary (non-primary) constructor. Kotlin's
// `this(...)`/`super(...)` delegation is captured here, never emitted as a
// ParsedCall.
type ParsedConstructor struct {
	Parameters  []ParsedParameter
	Delegation  ConstructorDelegation
	Annotations []ParsedAnnotation
	Location    SourceLocation
}

// LocalVariable is a local binding whose type is known without flow
// analysis: a typed declaration ("let x: T") or one inferred from a bare
// constructor-call initializer ("const x = new X()"). Only bindings made
// directly in a function's top-level statements are tracked; nothing
// inside a nested block is attributed here.
type LocalVariable struct {
	Name string
	Type string
}

// ParsedFunction is a function, method, or top-level function declaration.
// "<top>" is the name reserved for the synthetic scope holding a TS/JS
// file's module-level executable statements (see
// internal/parser/ecmascript.AccumulateModuleScope) — no real declaration
// can use it, since it isn't a valid identifier.
type ParsedFunction struct {
	Name            string
	Visibility      Visibility
	Parameters      []ParsedParameter
	ReturnType      string
	HasReturnType   bool
	IsAbstract      bool
	IsSuspend       bool
	IsExtension     bool
	ReceiverType    string
	IsInline        bool
	IsInfix         bool
	IsOperator      bool
	TypeParameters  []ParsedTypeParameter
	Annotations     []ParsedAnnotation
	Location        SourceLocation
	Calls           []ParsedCall
	Locals          []LocalVariable
}

// ClassKind is the closed set of declaration shapes a ParsedClass can take.
type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindObject     ClassKind = "object"
	ClassKindAnnotation ClassKind = "annotation"
)

// ParsedClass is a class/interface/enum/object/annotation-type declaration.
type ParsedClass struct {
	Name               string
	Kind               ClassKind
	Visibility         Visibility
	IsAbstract         bool
	IsData             bool
	IsSealed           bool
	SuperClass         string
	HasSuperClass      bool
	Interfaces         []string
	TypeParameters     []ParsedTypeParameter
	Annotations        []ParsedAnnotation
	Properties         []ParsedProperty
	Functions          []ParsedFunction
	NestedClasses      []ParsedClass
	CompanionObject    *ParsedClass
	SecondaryCtors     []ParsedConstructor
	Permits            []string
	Location           SourceLocation
}

// ObjectExpression is an anonymous object/class expression found inside a
// function body (Kotlin `object : X {}`, TS/JS object literal with methods).
type ObjectExpression struct {
	SuperClass    string
	HasSuperClass bool
	Interfaces    []string
	Functions     []ParsedFunction
	Properties    []ParsedProperty
	Location      SourceLocation
}

// DestructuringDeclaration is a Kotlin `val (a, b) = pair` / TS/JS
// `const {a, b} = obj` binding.
type DestructuringDeclaration struct {
	Names    []string
	Source   string
	Location SourceLocation
}

// TypeAlias is a `typealias`/`type X = ...` declaration.
type TypeAlias struct {
	Name           string
	AliasedType    string
	TypeParameters []ParsedTypeParameter
	Location       SourceLocation
}

// ParsedFile is the uniform output of every language parser.
type ParsedFile struct {
	FilePath                  string
	Language                  Language
	PackageName               string
	HasPackageName            bool
	ModulePath                string
	HasModulePath             bool
	Imports                   []ParsedImport
	Reexports                 []ParsedReexport
	Classes                   []ParsedClass
	TopLevelFunctions         []ParsedFunction
	TopLevelProperties        []ParsedProperty
	TypeAliases               []TypeAlias
	DestructuringDeclarations []DestructuringDeclaration
	ObjectExpressions         []ObjectExpression
	ResolvedCalls             []ResolvedCall
}
