package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbol_KindAndBaseDispatchPerVariant(t *testing.T) {
	base := SymbolBase{Name: "Invoice", FQN: "com.example.Invoice"}

	var symbols = []Symbol{
		ClassSymbol{SymbolBase: base, ClassKind: ClassKindClass},
		FunctionSymbol{SymbolBase: base},
		PropertySymbol{SymbolBase: base},
		PackageSymbol{SymbolBase: base},
	}
	wantKinds := []SymbolKind{SymbolKindClass, SymbolKindFunction, SymbolKindProperty, SymbolKindPackage}

	for i, sym := range symbols {
		assert.Equal(t, wantKinds[i], sym.Kind())
		assert.Equal(t, base, sym.Base())
	}
}

func TestNewSymbolTable_StartsWithEmptyReadyMaps(t *testing.T) {
	table := NewSymbolTable()
	assert.NotNil(t, table.ByFQN)
	assert.NotNil(t, table.ByName)
	assert.NotNil(t, table.FunctionsByName)
	assert.Empty(t, table.ByFQN)
}
