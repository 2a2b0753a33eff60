// Package diagnostics implements per-file error reporting: ParseError,
// InvariantViolation, and IOError are collected per file and returned
// alongside the analysis result; nothing here aborts the whole run. An
// unresolved call site is deliberately not a diagnostic — the resolver
// simply omits the ResolvedCall.
package diagnostics

import "fmt"

// Kind discriminates the three diagnostic kinds the core surfaces.
type Kind string

const (
	KindParseError        Kind = "parse_error"
	KindInvariantViolation Kind = "invariant_violation"
	KindIOError           Kind = "io_error"
)

// Diagnostic is one per-file error report. The run continues past every
// Diagnostic; only cancellation aborts the whole pipeline.
type Diagnostic struct {
	Kind     Kind
	FilePath string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.FilePath, d.Message)
}

// ParseError reports a file whose grammar could not produce a tree. The
// file is omitted from the result; the run continues.
func ParseError(filePath string, err error) Diagnostic {
	return Diagnostic{Kind: KindParseError, FilePath: filePath, Message: err.Error()}
}

// InvariantViolation reports a fatal-within-that-file condition (e.g. two
// symbols with identical FQN after disambiguation). The file's declarations
// are dropped; the run continues.
func InvariantViolation(filePath, message string) Diagnostic {
	return Diagnostic{Kind: KindInvariantViolation, FilePath: filePath, Message: message}
}

// IOError reports a source file that could not be read.
func IOError(filePath string, err error) Diagnostic {
	return Diagnostic{Kind: KindIOError, FilePath: filePath, Message: err.Error()}
}

// Collector gathers diagnostics from concurrent parse/resolve workers. The
// zero value is ready to use; Add is safe only from a single goroutine at a
// time per shard — callers that parallelize should use one Collector per
// worker and Merge the results, mirroring the resolver's per-file
// no-shared-mutable-state discipline.
type Collector struct {
	items []Diagnostic
}

// Add appends one diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.items = append(c.items, d)
}

// Merge appends every diagnostic from other into c.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.items = append(c.items, other.items...)
}

// Items returns every collected diagnostic, in append order.
func (c *Collector) Items() []Diagnostic {
	return append([]Diagnostic(nil), c.items...)
}
