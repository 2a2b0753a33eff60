// Package source is the file-discovery layer that feeds the parsers:
// walking a root directory, applying the excluded-directory set and the
// parser registry's extension map, and tagging each discovered file with
// per-language test-file recognition. The test tag is surfaced to the
// caller and never causes exclusion.
package source

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/crosslang/codegraph/internal/ir"
)

// ContentReader reads file content given a file path — the pipeline is
// driven equally from a real filesystem walk or from an in-memory fixture
// (tests supply a map-backed reader).
type ContentReader func(filePath string) ([]byte, error)

// DefaultExcludedDirectories is the fixed excluded-directory set, augmented
// (never replaced) by codegraph.Options.ExcludedDirectories.
var DefaultExcludedDirectories = []string{
	"node_modules", "build", "target", "dist", ".git", "out",
	".gradle", ".idea", ".vscode", "__pycache__",
}

// File is one discovered source file, not yet parsed.
type File struct {
	Path       string
	Extension  string
	Language   ir.Language
	IsTestFile bool
}

// isTestFile recognizes a per-language test-file convention by path alone.
// The tag is informational; a test file is still parsed and indexed.
func isTestFile(language ir.Language, path string) bool {
	base := filepath.Base(path)
	slashPath := filepath.ToSlash(path)
	switch language {
	case ir.LanguageKotlin:
		return strings.HasSuffix(base, "Test.kt") || strings.Contains(slashPath, "src/test/") ||
			strings.Contains(slashPath, "/test/")
	case ir.LanguageJava:
		return strings.HasSuffix(base, "Test.java") || strings.HasSuffix(base, "Tests.java") ||
			strings.Contains(slashPath, "src/test/java")
	case ir.LanguageTypeScript, ir.LanguageJavaScript:
		return strings.HasSuffix(base, ".test.ts") || strings.HasSuffix(base, ".test.tsx") ||
			strings.HasSuffix(base, ".test.js") || strings.HasSuffix(base, ".test.jsx") ||
			strings.HasSuffix(base, ".spec.ts") || strings.HasSuffix(base, ".spec.tsx") ||
			strings.HasSuffix(base, ".spec.js") || strings.Contains(slashPath, "__tests__/")
	default:
		return false
	}
}

// Languages is the minimal registry surface Discover needs: resolving an
// extension to a language tag. internal/parser.Registry satisfies this via
// its own ForExtension plus a small adapter (see
// codegraph.Pipeline.LanguageForExtension).
type Languages interface {
	LanguageForExtension(ext string) (ir.Language, bool)
}

// Discover walks root with walkFS, returning every file whose extension
// Languages recognizes and whose path does not fall under an excluded
// directory. excludedDirs augments DefaultExcludedDirectories; it never
// replaces it.
func Discover(walkFS fs.FS, root string, langs Languages, excludedDirs []string) ([]File, error) {
	excluded := make(map[string]bool, len(DefaultExcludedDirectories)+len(excludedDirs))
	for _, d := range DefaultExcludedDirectories {
		excluded[d] = true
	}
	for _, d := range excludedDirs {
		excluded[d] = true
	}

	var files []File
	err := fs.WalkDir(walkFS, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && excluded[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(path)
		lang, ok := langs.LanguageForExtension(ext)
		if !ok {
			return nil
		}
		files = append(files, File{
			Path:       path,
			Extension:  ext,
			Language:   lang,
			IsTestFile: isTestFile(lang, path),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
