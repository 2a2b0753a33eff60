package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosslang/codegraph/internal/ir"
	"github.com/crosslang/codegraph/internal/symboltable"
)

func resolveFirst(t *testing.T, files []*ir.ParsedFile, target string) ir.ResolvedFile {
	t.Helper()
	table := symboltable.Build(files)
	r := New(files, table)
	var targetFile *ir.ParsedFile
	for _, f := range files {
		if f.FilePath == target {
			targetFile = f
		}
	}
	require.NotNil(t, targetFile, "fixture must include a file at %s", target)
	return r.ResolveFile(targetFile)
}

func callsByTo(rf ir.ResolvedFile) map[string]ir.ResolvedCall {
	out := make(map[string]ir.ResolvedCall, len(rf.ResolvedCalls))
	for _, c := range rf.ResolvedCalls {
		out[c.ToFQN] = c
	}
	return out
}

func TestResolveFile_ConstructorHeuristic(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "Animal.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{Name: "Dog", Kind: ir.ClassKindClass},
			},
		},
		{
			FilePath:       "Main.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			TopLevelFunctions: []ir.ParsedFunction{
				{
					Name: "main",
					Calls: []ir.ParsedCall{
						{Name: "Dog", IsConstructorCall: true},
					},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "Main.kt")
	calls := callsByTo(rf)
	call, ok := calls["com.example.Dog.<init>"]
	require.True(t, ok, "expected a resolved call to Dog's constructor, got %+v", rf.ResolvedCalls)
	assert.Equal(t, "com.example.main", call.FromFQN)
}

func TestResolveFile_TopLevelFunctionFallback(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "Helpers.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			TopLevelFunctions: []ir.ParsedFunction{
				{Name: "helper"},
			},
		},
		{
			FilePath:       "Main.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			TopLevelFunctions: []ir.ParsedFunction{
				{
					Name:  "main",
					Calls: []ir.ParsedCall{{Name: "helper"}},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "Main.kt")
	calls := callsByTo(rf)
	_, ok := calls["com.example.helper"]
	assert.True(t, ok, "expected a resolved call to the top-level helper, got %+v", rf.ResolvedCalls)
}

// TestResolveFile_TypedReceiverAscendsHierarchy exercises rule 4: a call
// through a typed local variable against a method declared on a superclass
// in another file, across a non-empty package root. This is the exact case
// selectFromHierarchy used to get wrong by treating the raw SuperClass text
// as if it were already an FQN.
func TestResolveFile_TypedReceiverAscendsHierarchy(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "Animal.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{
					Name: "Animal",
					Kind: ir.ClassKindClass,
					Functions: []ir.ParsedFunction{
						{Name: "speak"},
					},
				},
			},
		},
		{
			FilePath:       "Dog.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{
					Name:          "Dog",
					Kind:          ir.ClassKindClass,
					SuperClass:    "Animal",
					HasSuperClass: true,
					Functions: []ir.ParsedFunction{
						{Name: "bark"},
					},
				},
			},
		},
		{
			FilePath:       "Main.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			TopLevelFunctions: []ir.ParsedFunction{
				{
					Name: "main",
					Parameters: []ir.ParsedParameter{
						{Name: "d", Type: "Dog", HasType: true},
					},
					Calls: []ir.ParsedCall{
						{Name: "speak", Receiver: "d", HasReceiver: true},
					},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "Main.kt")
	calls := callsByTo(rf)
	_, ok := calls["com.example.Animal.speak"]
	assert.True(t, ok, "expected speak() called through a Dog-typed receiver to resolve via Animal, got %+v", rf.ResolvedCalls)
}

// TestResolveFile_ThisAscendsHierarchy exercises rule 5 for an inherited,
// non-overridden method invoked through `this`.
func TestResolveFile_ThisAscendsHierarchy(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "Animal.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{
					Name: "Animal",
					Kind: ir.ClassKindClass,
					Functions: []ir.ParsedFunction{
						{Name: "speak"},
					},
				},
			},
		},
		{
			FilePath:       "Dog.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{
					Name:          "Dog",
					Kind:          ir.ClassKindClass,
					SuperClass:    "Animal",
					HasSuperClass: true,
					Functions: []ir.ParsedFunction{
						{
							Name: "greet",
							Calls: []ir.ParsedCall{
								{Name: "speak", Receiver: "this", HasReceiver: true},
							},
						},
					},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "Dog.kt")
	calls := callsByTo(rf)
	_, ok := calls["com.example.Animal.speak"]
	assert.True(t, ok, "expected this.speak() to resolve through Dog's superclass, got %+v", rf.ResolvedCalls)
}

func TestResolveFile_SuperDelegatesToSuperclass(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "Animal.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{
					Name: "Animal",
					Kind: ir.ClassKindClass,
					Functions: []ir.ParsedFunction{
						{Name: "speak"},
					},
				},
			},
		},
		{
			FilePath:       "Dog.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{
					Name:          "Dog",
					Kind:          ir.ClassKindClass,
					SuperClass:    "Animal",
					HasSuperClass: true,
					Functions: []ir.ParsedFunction{
						{
							Name: "speak",
							Calls: []ir.ParsedCall{
								{Name: "speak", Receiver: "super", HasReceiver: true},
							},
						},
					},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "Dog.kt")
	calls := callsByTo(rf)
	_, ok := calls["com.example.Animal.speak"]
	assert.True(t, ok, "expected super.speak() to resolve to Animal.speak, got %+v", rf.ResolvedCalls)
}

func TestResolveFile_EnumSyntheticValues(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "Color.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{Name: "Color", Kind: ir.ClassKindEnum},
			},
		},
		{
			FilePath:       "Main.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			TopLevelFunctions: []ir.ParsedFunction{
				{
					Name: "main",
					Calls: []ir.ParsedCall{
						{Name: "values", Receiver: "com.example.Color", HasReceiver: true},
					},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "Main.kt")
	calls := callsByTo(rf)
	_, ok := calls["com.example.Color.values"]
	assert.True(t, ok, "expected Color.values() to resolve as enum synthetic, got %+v", rf.ResolvedCalls)
}

func TestResolveFile_ExtensionFunctionDispatchesOnReceiverType(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "Invoice.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{Name: "Invoice", Kind: ir.ClassKindClass},
			},
		},
		{
			FilePath:       "Extensions.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			TopLevelFunctions: []ir.ParsedFunction{
				{Name: "total", IsExtension: true, ReceiverType: "Invoice"},
			},
		},
		{
			FilePath:       "Main.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			TopLevelFunctions: []ir.ParsedFunction{
				{
					Name: "main",
					Parameters: []ir.ParsedParameter{
						{Name: "inv", Type: "Invoice", HasType: true},
					},
					Calls: []ir.ParsedCall{
						{Name: "total", Receiver: "inv", HasReceiver: true},
					},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "Main.kt")
	calls := callsByTo(rf)
	_, ok := calls["com.example.total"]
	assert.True(t, ok, "expected inv.total() to dispatch to the Invoice extension function, got %+v", rf.ResolvedCalls)
}

func TestResolveFile_WildcardImportResolvesSimpleName(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "Invoice.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example.billing",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{Name: "Invoice", Kind: ir.ClassKindClass},
			},
		},
		{
			FilePath:       "Main.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example.app",
			HasPackageName: true,
			Imports: []ir.ParsedImport{
				{Path: "com.example.billing.*", IsWildcard: true},
			},
			TopLevelFunctions: []ir.ParsedFunction{
				{
					Name:  "main",
					Calls: []ir.ParsedCall{{Name: "Invoice", IsConstructorCall: true}},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "Main.kt")
	calls := callsByTo(rf)
	_, ok := calls["com.example.billing.Invoice.<init>"]
	assert.True(t, ok, "expected Invoice() to resolve through the wildcard import, got %+v", rf.ResolvedCalls)
}

func TestResolveFile_UniqueByNameFallbackAcrossPackages(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "Invoice.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example.billing",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{Name: "Invoice", Kind: ir.ClassKindClass},
			},
		},
		{
			FilePath:       "Main.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example.app",
			HasPackageName: true,
			TopLevelFunctions: []ir.ParsedFunction{
				{
					Name:  "main",
					Calls: []ir.ParsedCall{{Name: "Invoice", IsConstructorCall: true}},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "Main.kt")
	calls := callsByTo(rf)
	_, ok := calls["com.example.billing.Invoice.<init>"]
	assert.True(t, ok, "expected the unique Invoice symbol across packages to resolve without an import, got %+v", rf.ResolvedCalls)
}

func TestResolveFile_AmbiguousNameWithoutImportDropsRatherThanGuesses(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "billing/Invoice.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example.billing",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{Name: "Invoice", Kind: ir.ClassKindClass},
			},
		},
		{
			FilePath:       "shipping/Invoice.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example.shipping",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{Name: "Invoice", Kind: ir.ClassKindClass},
			},
		},
		{
			FilePath:       "Main.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example.app",
			HasPackageName: true,
			TopLevelFunctions: []ir.ParsedFunction{
				{
					Name:  "main",
					Calls: []ir.ParsedCall{{Name: "Invoice", IsConstructorCall: true}},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "Main.kt")
	assert.Empty(t, rf.ResolvedCalls, "an ambiguous name with no import must be dropped, not guessed")
}

// TestResolveFile_StdlibTypedReceiverDropsRatherThanMisresolves exercises the
// stdlib placeholder (the last step of resolveSimpleName): a receiver typed as a
// known stdlib type like String resolves its type identity but, lacking any
// real declaration for its methods, must drop the call rather than guess by
// falling through to an unrelated unique-by-name match.
func TestResolveFile_StdlibTypedReceiverDropsRatherThanMisresolves(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "Main.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			TopLevelFunctions: []ir.ParsedFunction{
				{
					Name: "main",
					Parameters: []ir.ParsedParameter{
						{Name: "s", Type: "String", HasType: true},
					},
					Calls: []ir.ParsedCall{
						{Name: "length", Receiver: "s", HasReceiver: true},
					},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "Main.kt")
	assert.Empty(t, rf.ResolvedCalls, "a call through a stdlib-typed receiver with no modeled declaration must be dropped")
}

// TestResolveFile_SlashLanguageTopLevelFunctionAcrossModules exercises
// resolveSimpleName's import step for a "/"-separated language: a relative
// import's target module and the imported name must join with "/", not ".".
func TestResolveFile_SlashLanguageTopLevelFunctionAcrossModules(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "src/billing/invoice.ts",
			Language:       ir.LanguageTypeScript,
			ModulePath:     "src/billing/invoice",
			HasModulePath:  true,
			TopLevelFunctions: []ir.ParsedFunction{
				{Name: "total"},
			},
		},
		{
			FilePath:       "src/billing/main.ts",
			Language:       ir.LanguageTypeScript,
			ModulePath:     "src/billing/main",
			HasModulePath:  true,
			Imports: []ir.ParsedImport{
				{Path: "./invoice", Name: "total"},
			},
			TopLevelFunctions: []ir.ParsedFunction{
				{
					Name:  "run",
					Calls: []ir.ParsedCall{{Name: "total"}},
				},
			},
		},
	}

	rf := resolveFirst(t, files, "src/billing/main.ts")
	calls := callsByTo(rf)
	_, ok := calls["src/billing/invoice/total"]
	assert.True(t, ok, "expected the imported total() to resolve to its slash-joined FQN, got %+v", rf.ResolvedCalls)
}

// TestResolveFile_OverloadedFromFunctionKeepsItsDisambiguatedFQN pins the
// fromFqn attribution for a function whose plain FQN was already claimed:
// here a property named "total" takes "com.example.Invoice.total", so the
// function's byFqn key is the "~1"-suffixed form — and its calls must be
// attributed to that key, not to the property's.
func TestResolveFile_OverloadedFromFunctionKeepsItsDisambiguatedFQN(t *testing.T) {
	files := []*ir.ParsedFile{
		{
			FilePath:       "Helpers.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			TopLevelFunctions: []ir.ParsedFunction{
				{Name: "helper"},
			},
		},
		{
			FilePath:       "Invoice.kt",
			Language:       ir.LanguageKotlin,
			PackageName:    "com.example",
			HasPackageName: true,
			Classes: []ir.ParsedClass{
				{
					Name: "Invoice",
					Kind: ir.ClassKindClass,
					Properties: []ir.ParsedProperty{
						{Name: "total", HasType: true, Type: "Double", IsVal: true},
					},
					Functions: []ir.ParsedFunction{
						{
							Name:  "total",
							Calls: []ir.ParsedCall{{Name: "helper"}},
						},
					},
				},
			},
		},
	}

	table := symboltable.Build(files)
	_, isFunction := table.ByFQN["com.example.Invoice.total~1"].(ir.FunctionSymbol)
	require.True(t, isFunction, "fixture assumes the property claims the plain FQN first")

	rf := resolveFirst(t, files, "Invoice.kt")
	calls := callsByTo(rf)
	call, ok := calls["com.example.helper"]
	require.True(t, ok, "expected a resolved call to the top-level helper, got %+v", rf.ResolvedCalls)
	assert.Equal(t, "com.example.Invoice.total~1", call.FromFQN)
}
