package resolver

import "github.com/crosslang/codegraph/internal/ir"

// scoreAndSelect picks one overload candidate by arity and positional type
// scoring. It is deterministic and total: given a non-empty candidate set
// it always returns one.
func scoreAndSelect(candidates []ir.FunctionSymbol, call ir.ParsedCall) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	if len(candidates) == 1 {
		return candidates[0].FQN, true
	}

	best := -1
	bestScore := minScore
	tieCount := 0
	for i, c := range candidates {
		score := scoreCandidate(c, call)
		if score < 0 {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = i
			tieCount = 1
		} else if score == bestScore {
			tieCount++
		}
	}

	if best == -1 {
		return candidates[0].FQN, true
	}
	if tieCount > 1 {
		if fqn, ok := uniqueArityMatch(candidates, call.ArgumentCount); ok {
			return fqn, true
		}
		return candidates[best].FQN, true
	}
	return candidates[best].FQN, true
}

const minScore = -1 << 30

func scoreCandidate(c ir.FunctionSymbol, call ir.ParsedCall) int {
	k := call.ArgumentCount
	n := len(c.ParameterTypes)

	var score int
	switch {
	case n == k:
		score = 100
	case n > k:
		score = 50
	default:
		return minScore
	}

	for i := 0; i < k && i < n; i++ {
		argType := "Unknown"
		if i < len(call.ArgumentTypes) {
			argType = call.ArgumentTypes[i]
		}
		score += scorePositional(normalizeType(c.ParameterTypes[i]), argType)
	}
	return score
}

func scorePositional(paramType, argType string) int {
	if argType == "" || argType == "Unknown" {
		return 0
	}
	argNorm := normalizeType(argType)
	if paramType == argNorm {
		return 50
	}
	if isCompatible(paramType, argNorm) {
		return 25
	}
	return -10
}

var numericTypes = map[string]bool{
	"Int": true, "Long": true, "Short": true, "Byte": true,
	"Float": true, "Double": true, "number": true,
}

// isCompatible implements the widening/nullability rules: numeric types
// widen to Number/number. normalizeType strips the nullable
// marker before parameter types reach here, so "null compatible with any
// nullable parameter type" collapses to "null compatible with any
// parameter type" — nullability isn't retained past normalization.
func isCompatible(paramType, argType string) bool {
	if numericTypes[argType] && (paramType == "Number" || paramType == "number") {
		return true
	}
	if argType == "null" {
		return true
	}
	return false
}

func uniqueArityMatch(candidates []ir.FunctionSymbol, k int) (string, bool) {
	match := -1
	count := 0
	for i, c := range candidates {
		if len(c.ParameterTypes) == k {
			count++
			match = i
		}
	}
	if count == 1 {
		return candidates[match].FQN, true
	}
	return "", false
}
