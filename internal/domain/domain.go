// Package domain infers domain clusters from the set of package/module
// paths discovered across a parsed tree: packages sharing a significant
// path segment are grouped under a capitalized domain name with generated
// glob patterns.
package domain

import (
	"sort"
	"strings"

	"github.com/crosslang/codegraph/internal/ir"
	"github.com/crosslang/codegraph/internal/langspec"
	"github.com/crosslang/codegraph/internal/pattern"
)

// Domain is one inferred or user-supplied cluster.
type Domain struct {
	Name            string
	Patterns        []string
	MatchedPackages []string
}

var stopSet = map[string]bool{
	"domain": true, "application": true, "infrastructure": true,
	"presentation": true, "api": true, "impl": true, "internal": true,
}

// defaultSegmentIndex returns the language-dependent default index (dot: 2,
// slash: 1).
func defaultSegmentIndex(spec langspec.Spec) int {
	if spec.Separator == '.' {
		return 2
	}
	return 1
}

// Infer discovers domain clusters from every package/module path present
// across files, grouping packages that share a significant segment.
// segmentIndex, when non-nil, overrides the per-language default
// (codegraph.Options.DomainSegmentIndex).
func Infer(files []*ir.ParsedFile, segmentIndex *int) []Domain {
	type cluster struct {
		name     string
		packages map[string]bool
		dot      bool
	}
	clusters := make(map[string]*cluster)
	var order []string

	for _, file := range files {
		spec, ok := langspec.For(file.Language)
		if !ok {
			continue
		}
		pkg, ok := packagePath(file, spec)
		if !ok {
			continue
		}
		idx := defaultSegmentIndex(spec)
		if segmentIndex != nil {
			idx = *segmentIndex
		}
		segment, ok := significantSegment(pkg, spec.Separator, idx)
		if !ok {
			continue
		}
		name := capitalize(segment)
		c, exists := clusters[name]
		if !exists {
			c = &cluster{name: name, packages: make(map[string]bool), dot: spec.Separator == '.'}
			clusters[name] = c
			order = append(order, name)
		}
		if !c.packages[pkg] {
			c.packages[pkg] = true
		}
	}

	domains := make([]Domain, 0, len(order))
	for _, name := range order {
		c := clusters[name]
		seg := strings.ToLower(name)
		var patterns []string
		if c.dot {
			patterns = []string{"*." + seg + ".*", "*." + seg}
		} else {
			patterns = []string{"**/" + seg + "/**", "**/" + seg}
		}
		packages := make([]string, 0, len(c.packages))
		for p := range c.packages {
			packages = append(packages, p)
		}
		sort.Strings(packages)
		domains = append(domains, Domain{Name: name, Patterns: patterns, MatchedPackages: packages})
	}
	return domains
}

// packagePath returns the package/module path clustering runs on:
// PackageName for dot languages, ModulePath for slash languages.
func packagePath(file *ir.ParsedFile, spec langspec.Spec) (string, bool) {
	if spec.Separator == '.' {
		if !file.HasPackageName {
			return "", false
		}
		return file.PackageName, true
	}
	if !file.HasModulePath {
		return "", false
	}
	return file.ModulePath, true
}

// significantSegment takes the segment at idx, skipping segments in
// stopSet and advancing one at a time.
func significantSegment(pkg string, sep byte, idx int) (string, bool) {
	segments := strings.Split(pkg, string(sep))
	for idx < len(segments) {
		seg := segments[idx]
		if seg == "" {
			idx++
			continue
		}
		if stopSet[seg] {
			idx++
			continue
		}
		return seg, true
	}
	return "", false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Merge combines inferred domains with a user-supplied list
// (codegraph.Options may carry one). The merge is case-insensitive on
// name: an inferred domain whose name already exists in user is dropped.
func Merge(inferred, user []Domain) []Domain {
	seen := make(map[string]bool, len(user))
	for _, d := range user {
		seen[strings.ToLower(d.Name)] = true
	}
	merged := append([]Domain(nil), user...)
	for _, d := range inferred {
		if seen[strings.ToLower(d.Name)] {
			continue
		}
		merged = append(merged, d)
	}
	return merged
}

// MatchPackages reports which of packages match any of domain's patterns,
// via internal/pattern's glob matcher.
func MatchPackages(d Domain, packages []string) []string {
	var matched []string
	for _, pkg := range packages {
		for _, p := range d.Patterns {
			if pattern.Match(p, pkg) {
				matched = append(matched, pkg)
				break
			}
		}
	}
	return matched
}
