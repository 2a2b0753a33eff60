package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosslang/codegraph/internal/ir"
)

func TestParse_ExtractsImportsAndReexports(t *testing.T) {
	src := `
import { Money } from "./shared";
export { Invoice } from "./invoice";
`
	file, err := New(true).Parse([]byte(src), "billing.ts")
	require.NoError(t, err)
	require.Len(t, file.Imports, 1)
	assert.Equal(t, "Money", file.Imports[0].Name)
	require.Len(t, file.Reexports, 1)
	assert.Equal(t, "Invoice", file.Reexports[0].OriginalName)
}

func TestParse_ExtractsExportedClassWithInterfaceHeritage(t *testing.T) {
	src := `
export class Dog extends Animal implements Walkable {
    bark(): void {}
}
`
	file, err := New(true).Parse([]byte(src), "dog.ts")
	require.NoError(t, err)
	require.Len(t, file.Classes, 1)
	dog := file.Classes[0]
	assert.Equal(t, "Dog", dog.Name)
	assert.True(t, dog.HasSuperClass)
	assert.Equal(t, "Animal", dog.SuperClass)
	assert.Contains(t, dog.Interfaces, "Walkable")
	require.Len(t, dog.Functions, 1)
	assert.Equal(t, "bark", dog.Functions[0].Name)
}

func TestParse_ExtractsInterfaceDeclaration(t *testing.T) {
	src := `
export interface Walkable extends Movable {
    walk(): void;
}
`
	file, err := New(true).Parse([]byte(src), "walkable.ts")
	require.NoError(t, err)
	require.Len(t, file.Classes, 1)
	assert.Equal(t, ir.ClassKindInterface, file.Classes[0].Kind)
	assert.Equal(t, "Walkable", file.Classes[0].Name)
	assert.Contains(t, file.Classes[0].Interfaces, "Movable")
}

func TestParse_ExtractsEnumDeclaration(t *testing.T) {
	src := `
export enum Color {
    Red,
    Green,
    Blue,
}
`
	file, err := New(true).Parse([]byte(src), "color.ts")
	require.NoError(t, err)
	require.Len(t, file.Classes, 1)
	assert.Equal(t, ir.ClassKindEnum, file.Classes[0].Kind)
	assert.Len(t, file.Classes[0].Properties, 3)
}

func TestParse_ExtractsTypeAlias(t *testing.T) {
	src := `export type Total = number;`
	file, err := New(true).Parse([]byte(src), "total.ts")
	require.NoError(t, err)
	require.Len(t, file.TypeAliases, 1)
	assert.Equal(t, "Total", file.TypeAliases[0].Name)
	assert.Equal(t, "number", file.TypeAliases[0].AliasedType)
}

func TestParse_ExtractsArrowFunctionConstAsTopLevelFunction(t *testing.T) {
	src := `export const total = (invoice: Invoice): number => { return invoice.amount(); };`
	file, err := New(true).Parse([]byte(src), "total.ts")
	require.NoError(t, err)
	require.Len(t, file.TopLevelFunctions, 1)
	fn := file.TopLevelFunctions[0]
	assert.Equal(t, "total", fn.Name)
	require.Len(t, fn.Parameters, 1)
	assert.Equal(t, "invoice", fn.Parameters[0].Name)
	assert.Equal(t, "Invoice", fn.Parameters[0].Type)
}

func TestParse_ExtractsTopLevelConstAsProperty(t *testing.T) {
	src := `export const MAX_TOTAL: number = 100;`
	file, err := New(true).Parse([]byte(src), "constants.ts")
	require.NoError(t, err)
	require.Len(t, file.TopLevelProperties, 1)
	prop := file.TopLevelProperties[0]
	assert.Equal(t, "MAX_TOTAL", prop.Name)
	assert.True(t, prop.IsVal)
	assert.Equal(t, "number", prop.Type)
}

func TestParse_CommonJSRequiresGatedByOption(t *testing.T) {
	src := `const invoice = require("./invoice");`

	withRequires, err := New(true).Parse([]byte(src), "a.ts")
	require.NoError(t, err)
	assert.Len(t, withRequires.Imports, 1)

	withoutRequires, err := New(false).Parse([]byte(src), "b.ts")
	require.NoError(t, err)
	assert.Empty(t, withoutRequires.Imports)
}

func TestParse_SelectsTSXGrammarForTsxExtension(t *testing.T) {
	src := `export const view = () => <div>Invoice</div>;`
	file, err := New(true).Parse([]byte(src), "view.tsx")
	require.NoError(t, err)
	assert.Equal(t, "view.tsx", file.FilePath)
}

func TestName_ReturnsTypeScript(t *testing.T) {
	assert.Equal(t, ir.LanguageTypeScript, New(true).Name())
}

func TestExtensions_IncludesTsAndTsx(t *testing.T) {
	assert.ElementsMatch(t, []string{".ts", ".tsx"}, New(true).Extensions())
}

func TestParse_ExtractsTopLevelDestructuringDeclaration(t *testing.T) {
	src := `const { total, tax } = computeTotals();`
	file, err := New(true).Parse([]byte(src), "totals.ts")
	require.NoError(t, err)
	require.Len(t, file.DestructuringDeclarations, 1)

	decl := file.DestructuringDeclarations[0]
	assert.Equal(t, []string{"total", "tax"}, decl.Names)
	assert.Equal(t, "computeTotals()", decl.Source)
	assert.Empty(t, file.TopLevelProperties)
}
