package javascript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosslang/codegraph/internal/ir"
)

func TestParse_ExtractsClassWithSuperclass(t *testing.T) {
	src := `
class Dog extends Animal {
    bark() {
        super.bark();
    }
}
`
	file, err := New(true).Parse([]byte(src), "dog.js")
	require.NoError(t, err)
	require.Len(t, file.Classes, 1)
	dog := file.Classes[0]
	assert.Equal(t, "Dog", dog.Name)
	assert.True(t, dog.HasSuperClass)
	assert.Equal(t, "Animal", dog.SuperClass)
	require.Len(t, dog.Functions, 1)
	require.Len(t, dog.Functions[0].Calls, 1)
	assert.Equal(t, "bark", dog.Functions[0].Calls[0].Name)
	assert.Equal(t, "super", dog.Functions[0].Calls[0].Receiver)
}

func TestParse_ExportedClassIsUnwrapped(t *testing.T) {
	src := `export class Invoice { total() {} }`
	file, err := New(true).Parse([]byte(src), "invoice.js")
	require.NoError(t, err)
	require.Len(t, file.Classes, 1)
	assert.Equal(t, "Invoice", file.Classes[0].Name)
}

func TestParse_FunctionDeclarationTopLevel(t *testing.T) {
	src := `
function main() {
    const invoice = new Invoice();
    invoice.total();
}
`
	file, err := New(true).Parse([]byte(src), "main.js")
	require.NoError(t, err)
	require.Len(t, file.TopLevelFunctions, 1)
	assert.Equal(t, "main", file.TopLevelFunctions[0].Name)
	require.Len(t, file.TopLevelFunctions[0].Calls, 2)
}

func TestParse_ArrowFunctionConstBecomesTopLevelFunction(t *testing.T) {
	src := `const total = (invoice) => invoice.amount();`
	file, err := New(true).Parse([]byte(src), "total.js")
	require.NoError(t, err)
	require.Len(t, file.TopLevelFunctions, 1)
	assert.Equal(t, "total", file.TopLevelFunctions[0].Name)
}

func TestParse_PlainConstBecomesTopLevelProperty(t *testing.T) {
	src := `const MAX_TOTAL = 100;`
	file, err := New(true).Parse([]byte(src), "constants.js")
	require.NoError(t, err)
	require.Len(t, file.TopLevelProperties, 1)
	assert.Equal(t, "MAX_TOTAL", file.TopLevelProperties[0].Name)
	assert.True(t, file.TopLevelProperties[0].IsVal)
}

func TestParse_CommonJSRequireNameBinding(t *testing.T) {
	src := `const invoice = require("./invoice");`
	file, err := New(true).Parse([]byte(src), "main.js")
	require.NoError(t, err)
	require.Len(t, file.Imports, 1)
	assert.Equal(t, "invoice", file.Imports[0].Name)
	assert.Equal(t, "./invoice", file.Imports[0].Path)
}

func TestParse_DynamicImportExtractedRegardlessOfCommonJSOption(t *testing.T) {
	src := `async function load() { await import("./invoice"); }`
	file, err := New(false).Parse([]byte(src), "main.js")
	require.NoError(t, err)
	require.Len(t, file.Imports, 1)
	assert.True(t, file.Imports[0].IsDynamic)
}

func TestName_ReturnsJavaScript(t *testing.T) {
	assert.Equal(t, ir.LanguageJavaScript, New(true).Name())
}

func TestExtensions_IncludesJsVariants(t *testing.T) {
	assert.ElementsMatch(t, []string{".js", ".jsx", ".mjs", ".cjs"}, New(true).Extensions())
}

func TestParse_LetDeclarationIsNotVal(t *testing.T) {
	src := `let counter = 0;
const limit = 10;`
	file, err := New(true).Parse([]byte(src), "counter.js")
	require.NoError(t, err)
	require.Len(t, file.TopLevelProperties, 2)
	assert.False(t, file.TopLevelProperties[0].IsVal)
	assert.True(t, file.TopLevelProperties[1].IsVal)
}

func TestParse_ArrayDestructuringBecomesDestructuringDeclaration(t *testing.T) {
	src := `const [head, tail] = parts;`
	file, err := New(true).Parse([]byte(src), "parts.js")
	require.NoError(t, err)
	require.Len(t, file.DestructuringDeclarations, 1)
	assert.Equal(t, []string{"head", "tail"}, file.DestructuringDeclarations[0].Names)
	assert.Equal(t, "parts", file.DestructuringDeclarations[0].Source)
}
