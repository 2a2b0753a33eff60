package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosslang/codegraph/internal/ir"
)

func fn(fqn string, paramTypes ...string) ir.FunctionSymbol {
	return ir.FunctionSymbol{SymbolBase: ir.SymbolBase{FQN: fqn}, ParameterTypes: paramTypes}
}

func TestScoreAndSelect_SingleCandidateShortCircuits(t *testing.T) {
	candidates := []ir.FunctionSymbol{fn("a.f", "String")}
	fqn, ok := scoreAndSelect(candidates, ir.ParsedCall{ArgumentCount: 9})
	require.True(t, ok)
	assert.Equal(t, "a.f", fqn)
}

func TestScoreAndSelect_ExactArityBeatsArityMismatch(t *testing.T) {
	candidates := []ir.FunctionSymbol{
		fn("a.f~1", "String", "Int"),
		fn("a.f~2", "String"),
	}
	call := ir.ParsedCall{ArgumentCount: 1, ArgumentTypes: []string{"string"}}
	fqn, ok := scoreAndSelect(candidates, call)
	require.True(t, ok)
	assert.Equal(t, "a.f~2", fqn)
}

func TestScoreAndSelect_ExactTypeMatchBeatsCompatibleWidening(t *testing.T) {
	candidates := []ir.FunctionSymbol{
		fn("a.f~1", "Number"),
		fn("a.f~2", "Int"),
	}
	call := ir.ParsedCall{ArgumentCount: 1, ArgumentTypes: []string{"Int"}}
	fqn, ok := scoreAndSelect(candidates, call)
	require.True(t, ok)
	assert.Equal(t, "a.f~2", fqn)
}

func TestScoreAndSelect_NumericWidensToNumberParameter(t *testing.T) {
	candidates := []ir.FunctionSymbol{fn("a.f", "Number")}
	call := ir.ParsedCall{ArgumentCount: 1, ArgumentTypes: []string{"Double"}}
	fqn, ok := scoreAndSelect(candidates, call)
	require.True(t, ok)
	assert.Equal(t, "a.f", fqn)
}

func TestScoreAndSelect_UnknownArgumentTypeIsNeutral(t *testing.T) {
	candidates := []ir.FunctionSymbol{
		fn("a.f~1", "String"),
		fn("a.f~2", "Int"),
	}
	call := ir.ParsedCall{ArgumentCount: 1, ArgumentTypes: []string{"Unknown"}}
	_, ok := scoreAndSelect(candidates, call)
	require.True(t, ok)
}

func TestScoreAndSelect_TieAmongExactArityCandidatesExcludesLongerOverload(t *testing.T) {
	candidates := []ir.FunctionSymbol{
		fn("a.f~1", "String"),
		fn("a.f~2", "Int"),
		fn("a.f~3", "String", "Int"),
	}
	call := ir.ParsedCall{ArgumentCount: 1, ArgumentTypes: []string{"Unknown"}}
	fqn, ok := scoreAndSelect(candidates, call)
	require.True(t, ok)
	assert.Contains(t, []string{"a.f~1", "a.f~2"}, fqn)
	assert.NotEqual(t, "a.f~3", fqn)
}

func TestScoreAndSelect_AllArityMismatchFallsBackToFirstCandidate(t *testing.T) {
	candidates := []ir.FunctionSymbol{
		fn("a.f~1", "String", "Int", "Double"),
		fn("a.f~2", "String", "Int", "Boolean"),
	}
	call := ir.ParsedCall{ArgumentCount: 9}
	fqn, ok := scoreAndSelect(candidates, call)
	require.True(t, ok)
	assert.Equal(t, "a.f~1", fqn)
}

func TestScoreAndSelect_FewerParametersThanArgsIsIneligible(t *testing.T) {
	candidates := []ir.FunctionSymbol{
		fn("a.f~1"),
		fn("a.f~2", "String", "Int"),
	}
	call := ir.ParsedCall{ArgumentCount: 2, ArgumentTypes: []string{"string", "Int"}}
	fqn, ok := scoreAndSelect(candidates, call)
	require.True(t, ok)
	assert.Equal(t, "a.f~2", fqn)
}
