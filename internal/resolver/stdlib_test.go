package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosslang/codegraph/internal/ir"
)

func TestStdlibPlaceholder_KnownKotlinType(t *testing.T) {
	sym, ok := stdlibPlaceholder(ir.LanguageKotlin, "String")
	require.True(t, ok)
	assert.Equal(t, "kotlin.String", sym.FQN)
	assert.Empty(t, sym.FilePath, "placeholders are never written back as real declarations")
}

func TestStdlibPlaceholder_KnownJavaCollectionType(t *testing.T) {
	sym, ok := stdlibPlaceholder(ir.LanguageJava, "ArrayList")
	require.True(t, ok)
	assert.Equal(t, "java.util.ArrayList", sym.FQN)
}

func TestStdlibPlaceholder_TypeScriptAndJavaScriptShareArrayEntry(t *testing.T) {
	ts, ok := stdlibPlaceholder(ir.LanguageTypeScript, "Array")
	require.True(t, ok)
	js, ok := stdlibPlaceholder(ir.LanguageJavaScript, "Array")
	require.True(t, ok)
	assert.Equal(t, ts.FQN, js.FQN)
}

func TestStdlibPlaceholder_UnknownNameReturnsFalse(t *testing.T) {
	_, ok := stdlibPlaceholder(ir.LanguageKotlin, "NotARealStdlibType")
	assert.False(t, ok)
}

func TestStdlibPlaceholder_UnknownLanguageReturnsFalse(t *testing.T) {
	_, ok := stdlibPlaceholder(ir.Language("cobol"), "String")
	assert.False(t, ok)
}

func TestStdlibPlaceholder_FunctionNamesAreNeverStdlibTypes(t *testing.T) {
	_, ok := stdlibPlaceholder(ir.LanguageKotlin, "println")
	assert.False(t, ok, "stdlibNames only maps type names, never free functions")
}
