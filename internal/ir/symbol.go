package ir

// SymbolKind discriminates the Symbol variants.
type SymbolKind string

const (
	SymbolKindClass    SymbolKind = "class"
	SymbolKindFunction SymbolKind = "function"
	SymbolKindProperty SymbolKind = "property"
	SymbolKindPackage  SymbolKind = "package"
)

// SymbolBase is the common header every Symbol variant carries.
type SymbolBase struct {
	Name     string
	FQN      string
	FilePath string
	Location SourceLocation
}

// Symbol is the tagged-union interface implemented by ClassSymbol,
// FunctionSymbol, PropertySymbol, and PackageSymbol. Go has no native
// tagged unions; a small interface over four concrete structs stands in.
type Symbol interface {
	Kind() SymbolKind
	Base() SymbolBase
}

// ClassSymbol indexes a class/interface/enum/object/annotation declaration.
type ClassSymbol struct {
	SymbolBase
	ClassKind ClassKind
}

func (s ClassSymbol) Kind() SymbolKind { return SymbolKindClass }
func (s ClassSymbol) Base() SymbolBase { return s.SymbolBase }

// FunctionSymbol indexes a function/method declaration.
type FunctionSymbol struct {
	SymbolBase
	DeclaringTypeFQN string
	HasDeclaringType bool
	ReceiverType     string
	HasReceiverType  bool
	PackageName      string
	ParameterTypes   []string
	ReturnType       string
	HasReturnType    bool
	IsExtension      bool
	IsOperator       bool
	IsInfix          bool
	IsSuspend        bool
	IsInline         bool
}

func (s FunctionSymbol) Kind() SymbolKind { return SymbolKindFunction }
func (s FunctionSymbol) Base() SymbolBase { return s.SymbolBase }

// PropertySymbol indexes a field/property declaration.
type PropertySymbol struct {
	SymbolBase
	DeclaringTypeFQN string
	HasDeclaringType bool
	Type             string
	IsVal            bool
}

func (s PropertySymbol) Kind() SymbolKind { return SymbolKindProperty }
func (s PropertySymbol) Base() SymbolBase { return s.SymbolBase }

// PackageSymbol indexes a package/module node. symboltable.Build does not
// create package symbols.
type PackageSymbol struct {
	SymbolBase
}

func (s PackageSymbol) Kind() SymbolKind { return SymbolKindPackage }
func (s PackageSymbol) Base() SymbolBase { return s.SymbolBase }

// SymbolTable holds the three lookup maps the symbol-table builder
// produces.
type SymbolTable struct {
	ByFQN           map[string]Symbol
	ByName          map[string][]Symbol
	FunctionsByName map[string][]FunctionSymbol
}

// NewSymbolTable returns an empty, ready-to-populate table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		ByFQN:           make(map[string]Symbol),
		ByName:          make(map[string][]Symbol),
		FunctionsByName: make(map[string][]FunctionSymbol),
	}
}

// ResolvedCall is one resolved FQN-to-FQN call edge.
type ResolvedCall struct {
	FromFQN  string
	ToFQN    string
	Location SourceLocation
}

// ResolvedFile wraps a ParsedFile with its resolved calls. It is created
// once by the resolver and never mutated afterward.
type ResolvedFile struct {
	File          *ParsedFile
	ResolvedCalls []ResolvedCall
}
