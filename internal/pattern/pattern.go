// Package pattern implements glob-style matching for dot- and
// slash-separated FQNs, used by domain inference's generated patterns and
// by any caller that needs to test a package/module string against a glob.
//
// Matching is direct recursive segment matching, not a compiled regex. A
// single `*` matches one or more segments, trying every split via
// backtracking — the same as `**` except it may never match zero. That is
// what lets a generated "*.seg.*" pattern match packages whose significant
// segment sits at any depth, instead of only at pattern position 1.
package pattern

import "strings"

// Match reports whether name satisfies pattern. The separator is detected
// from the pattern: any '/' selects '/', else '.'. A single '*' matches
// one or more segments; '**' matches zero or more segments (separators
// included). The match is full-string anchored.
func Match(pattern, name string) bool {
	sep := byte('.')
	if strings.IndexByte(pattern, '/') >= 0 {
		sep = '/'
	}
	patternSegments := strings.Split(pattern, string(sep))
	nameSegments := strings.Split(name, string(sep))
	return matchSegments(patternSegments, nameSegments)
}

func matchSegments(pattern, name []string) bool {
	if len(pattern) == 0 {
		return len(name) == 0
	}
	switch pattern[0] {
	case "**":
		if matchSegments(pattern[1:], name) {
			return true
		}
		if len(name) == 0 {
			return false
		}
		return matchSegments(pattern, name[1:])
	case "*":
		for consumed := 1; consumed <= len(name); consumed++ {
			if matchSegments(pattern[1:], name[consumed:]) {
				return true
			}
		}
		return false
	default:
		if len(name) == 0 || pattern[0] != name[0] {
			return false
		}
		return matchSegments(pattern[1:], name[1:])
	}
}
