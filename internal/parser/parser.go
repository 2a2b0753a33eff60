// Package parser is the parsing driver: it owns the Language interface
// every per-language parser implements, an immutable Registry built once
// from a static list at construction, and the location/module-path
// back-fill every ParsedFile goes through before reaching the resolver.
package parser

import (
	"fmt"

	"github.com/crosslang/codegraph/internal/ir"
	"github.com/crosslang/codegraph/internal/langspec"
)

// Language is implemented once per supported language.
type Language interface {
	Name() ir.Language
	Extensions() []string
	Parse(source []byte, filePath string) (*ir.ParsedFile, error)
}

// ModulePathResolver fills in ParsedFile.ModulePath for slash-path
// languages; implemented by internal/modulepath.
type ModulePathResolver interface {
	Resolve(filePath string) string
}

// Registry is an immutable extension -> Language map built once from a
// static slice; nothing registers into it at runtime.
type Registry struct {
	languages   []Language
	byExtension map[string]Language
}

// NewRegistry builds a registry from a fixed list of languages. Later
// entries do not override earlier ones for a shared extension.
func NewRegistry(languages ...Language) *Registry {
	byExt := make(map[string]Language)
	for _, lang := range languages {
		for _, ext := range lang.Extensions() {
			if _, exists := byExt[ext]; !exists {
				byExt[ext] = lang
			}
		}
	}
	return &Registry{
		languages:   append([]Language(nil), languages...),
		byExtension: byExt,
	}
}

// Languages returns the registered languages in registration order.
func (r *Registry) Languages() []Language {
	return append([]Language(nil), r.languages...)
}

// ForExtension returns the parser registered for ext (including the leading
// dot, e.g. ".kt"), or false if none is registered.
func (r *Registry) ForExtension(ext string) (Language, bool) {
	lang, ok := r.byExtension[ext]
	return lang, ok
}

// Parse runs the extension-appropriate parser over source, then applies
// the driver's two cross-cutting steps: back-filling FilePath on every
// SourceLocation, and (for slash-path languages) deriving ModulePath via
// modulePaths.
func Parse(r *Registry, ext string, source []byte, filePath string, modulePaths ModulePathResolver) (*ir.ParsedFile, error) {
	lang, ok := r.ForExtension(ext)
	if !ok {
		return nil, fmt.Errorf("parser: no language registered for extension %q", ext)
	}

	file, err := lang.Parse(source, filePath)
	if err != nil {
		return nil, fmt.Errorf("parser: %s: %w", filePath, err)
	}

	backfillFilePath(file, filePath)

	if !langspec.IsDotSeparated(lang.Name()) && modulePaths != nil {
		file.ModulePath = modulePaths.Resolve(filePath)
		file.HasModulePath = true
	}

	return file, nil
}
