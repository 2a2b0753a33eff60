// Package langspec encapsulates the handful of facts that differ per
// language (default untyped-parameter type, FQN separator, implicit
// wildcard imports) in one struct passed to the symbol-table builder and
// resolver, instead of runtime string-sniffing on file extensions.
package langspec

import "github.com/crosslang/codegraph/internal/ir"

// Maturity is the support level reported per language, purely descriptive
// metadata for the `languages` subcommand.
type Maturity int

const (
	MaturityUntested Maturity = iota
	MaturityBasicTests
	MaturityActivelyTested
	MaturityStable
)

func (m Maturity) String() string { return m.DisplayName() }

// DisplayName is the long-form name shown in the `languages` subcommand's
// legend.
func (m Maturity) DisplayName() string {
	switch m {
	case MaturityUntested:
		return "Untested"
	case MaturityBasicTests:
		return "Basic Tests"
	case MaturityActivelyTested:
		return "Actively Tested"
	case MaturityStable:
		return "Stable"
	default:
		return "Unknown"
	}
}

// Symbol is the one-glyph marker printed next to each language's name.
func (m Maturity) Symbol() string {
	switch m {
	case MaturityUntested:
		return "○"
	case MaturityBasicTests:
		return "◐"
	case MaturityActivelyTested:
		return "●"
	case MaturityStable:
		return "✓"
	default:
		return "?"
	}
}

// MaturityLevels returns the ordered set of known maturity levels, for the
// `languages` subcommand's legend.
func MaturityLevels() []Maturity {
	return []Maturity{MaturityUntested, MaturityBasicTests, MaturityActivelyTested, MaturityStable}
}

// Spec carries the per-language facts the symbol-table builder and
// resolver need.
type Spec struct {
	Language Language

	// Separator joins a parent FQN to a child name: "." for dot languages,
	// "/" between module and first type (then "." thereafter) for
	// slash languages.
	Separator byte

	// DefaultParameterType is substituted for an untyped parameter when
	// building a FunctionSymbol.ParameterTypes entry.
	DefaultParameterType string

	// WildcardImports are the language's implicit default wildcard imports,
	// always present in a resolution context in addition to any `a.b.*`
	// import found in the file.
	WildcardImports []string

	Maturity Maturity
}

// Language is an alias of ir.Language, the language a Spec describes.
type Language = ir.Language

var specs = map[ir.Language]Spec{
	ir.LanguageKotlin: {
		Language:             ir.LanguageKotlin,
		Separator:            '.',
		DefaultParameterType: "Any",
		WildcardImports: []string{
			"kotlin", "kotlin.collections", "kotlin.io", "kotlin.text",
			"kotlin.ranges", "kotlin.sequences",
		},
		Maturity: MaturityActivelyTested,
	},
	ir.LanguageJava: {
		Language:             ir.LanguageJava,
		Separator:            '.',
		DefaultParameterType: "Object",
		WildcardImports:      []string{"java.lang"},
		Maturity:             MaturityActivelyTested,
	},
	ir.LanguageTypeScript: {
		Language:             ir.LanguageTypeScript,
		Separator:            '/',
		DefaultParameterType: "any",
		WildcardImports:      nil,
		Maturity:             MaturityActivelyTested,
	},
	ir.LanguageJavaScript: {
		Language:             ir.LanguageJavaScript,
		Separator:            '/',
		DefaultParameterType: "any",
		WildcardImports:      nil,
		Maturity:             MaturityBasicTests,
	},
}

// For returns the Spec for a language. The boolean is false for an unknown
// language (callers should treat that as a programming error, not data).
func For(language ir.Language) (Spec, bool) {
	s, ok := specs[language]
	return s, ok
}

// IsDotSeparated reports whether language builds FQNs with "." throughout
// (Kotlin, Java) as opposed to a leading "/" module boundary (TS/JS).
func IsDotSeparated(language ir.Language) bool {
	s, ok := specs[language]
	return ok && s.Separator == '.'
}
