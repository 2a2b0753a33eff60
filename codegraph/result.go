package codegraph

import (
	"github.com/crosslang/codegraph/internal/diagnostics"
	"github.com/crosslang/codegraph/internal/domain"
	"github.com/crosslang/codegraph/internal/ir"
)

// AnalysisResult is what Analyze hands its consumer (a graph writer, an
// MCP tool layer). The consumer reads it and never mutates it — every
// field is built once by Analyze and returned as-is.
type AnalysisResult struct {
	Parsed      []ir.ResolvedFile
	Table       *ir.SymbolTable
	Domains     []domain.Domain
	Diagnostics []diagnostics.Diagnostic
}
