// Package modulepath derives a stable slash-joined module FQN for a TS/JS
// file from its filesystem path: the extension is stripped, a trailing
// index segment is collapsed, and recognized source roots are kept as a
// leading segment.
package modulepath

import (
	"path"
	"strings"
)

var stripExtensions = []string{".tsx", ".ts", ".jsx", ".js", ".mjs", ".cjs"}

// Resolver derives a modulePath for a file path relative to a project root.
// Recognized source-root directories (src, lib, ...) are deliberately kept
// as a leading segment rather than stripped — this mirrors common
// `tsconfig.json` baseUrl layouts where `src/foo/bar.ts` and
// `foo/bar.ts` (no src root) are two distinct module identities.
type Resolver struct {
	projectRoot string
}

// New builds a Resolver. projectRoot is stripped from the front of every
// file path before module-path derivation.
func New(projectRoot string) *Resolver {
	return &Resolver{projectRoot: filepathToSlash(projectRoot)}
}

// Resolve implements parser.ModulePathResolver.
func (r *Resolver) Resolve(filePath string) string {
	rel := filepathToSlash(filePath)
	if r.projectRoot != "" {
		rel = strings.TrimPrefix(rel, r.projectRoot)
		rel = strings.TrimPrefix(rel, "/")
	}
	return StripExtensionAndIndex(rel)
}

// StripExtensionAndIndex strips the extension and collapses a trailing
// `index` segment on an already project-relative slash path. Exported so
// internal/resolver can derive a relative import's target module the same
// way this package derives a file's own ModulePath.
func StripExtensionAndIndex(rel string) string {
	rel = stripExtension(rel)
	segments := strings.Split(rel, "/")
	if len(segments) > 0 && segments[len(segments)-1] == "index" {
		segments = segments[:len(segments)-1]
	}
	return strings.Join(segments, "/")
}

func stripExtension(p string) string {
	for _, ext := range stripExtensions {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}

func filepathToSlash(p string) string {
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}
