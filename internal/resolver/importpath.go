package resolver

import (
	"path"
	"strings"

	"github.com/crosslang/codegraph/internal/modulepath"
)

// resolveRelativeImportPath turns a TS/JS relative import ("./foo",
// "../bar/baz") into the module FQN it targets, using the same
// extension/index rules internal/modulepath uses for a file's own
// ModulePath.
// The relative path is resolved against the *current file's own modulePath*
// rather than its filesystem path — modulePath is already project-root
// relative, which the resolver has no other access to. Non-relative imports
// (bare package specifiers) are left to the stdlib/external-collaborator
// path and return false.
func resolveRelativeImportPath(currentModulePath, importPath string) (string, bool) {
	if !strings.HasPrefix(importPath, "./") && !strings.HasPrefix(importPath, "../") {
		return "", false
	}
	dir := path.Dir(currentModulePath)
	target := path.Clean(path.Join(dir, importPath))
	return modulepath.StripExtensionAndIndex(strings.TrimPrefix(target, "/")), true
}
