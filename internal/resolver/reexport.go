package resolver

import "github.com/crosslang/codegraph/internal/ir"

// ReexportIndex supports the re-export transparency walk: resolving an
// imported name whose source module only re-exports it from
// somewhere else, by following `export ... from` chains to the module that
// actually defines the symbol.
type ReexportIndex struct {
	byModule map[string][]ir.ParsedReexport
}

// BuildReexportIndex collects every file's Reexports keyed by the file's own
// ModulePath. A reexport's SourcePath is normalized against the declaring
// file's ModulePath the same way context.go normalizes import specifiers
// ("./b" -> "b"), so Resolve and resolveThroughReexports key off the same
// module FQNs the rest of the resolver uses — otherwise a relative
// SourcePath never matches a real ByFQN entry and re-export transparency
// silently does nothing for the dominant relative-specifier case.
func BuildReexportIndex(files []*ir.ParsedFile) *ReexportIndex {
	idx := &ReexportIndex{byModule: make(map[string][]ir.ParsedReexport)}
	for _, file := range files {
		if !file.HasModulePath || len(file.Reexports) == 0 {
			continue
		}
		reexports := make([]ir.ParsedReexport, len(file.Reexports))
		for i, re := range file.Reexports {
			if normalized, ok := resolveRelativeImportPath(file.ModulePath, re.SourcePath); ok {
				re.SourcePath = normalized
			}
			reexports[i] = re
		}
		idx.byModule[file.ModulePath] = append(idx.byModule[file.ModulePath], reexports...)
	}
	return idx
}

// Resolve walks the re-export chain starting at (module, name), returning
// the module/name pair where the symbol is actually defined. The walk
// terminates on fixpoint (no re-export in the current module covers name)
// or when it revisits a (module, name) pair already seen, which makes
// cycles benign.
func (idx *ReexportIndex) Resolve(module, name string) (string, string) {
	visited := make(map[string]bool)
	for {
		key := module + "#" + name
		if visited[key] {
			return module, name
		}
		visited[key] = true

		reexports := idx.byModule[module]
		next, nextName, ok := idx.step(reexports, name)
		if !ok {
			return module, name
		}
		module, name = next, nextName
	}
}

func (idx *ReexportIndex) step(reexports []ir.ParsedReexport, name string) (string, string, bool) {
	for _, re := range reexports {
		if re.IsWildcard || re.IsNamespaceReexport {
			return re.SourcePath, name, true
		}
		exported := re.OriginalName
		if re.HasExportedName {
			exported = re.ExportedName
		}
		if exported != name {
			continue
		}
		originalName := name
		if re.HasOriginalName {
			originalName = re.OriginalName
		}
		return re.SourcePath, originalName, true
	}
	return "", "", false
}
