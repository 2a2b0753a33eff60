package codegraph

import (
	"context"
	"os"
	"path/filepath"

	"github.com/crosslang/codegraph/internal/source"
)

// AnalyzeDir is the common case of Analyze: walk root on the real
// filesystem, apply the excluded-directory set (augmented by
// Options.ExcludedDirectories) and the Pipeline's registered extensions,
// and analyze every file discovered. It is a thin convenience wrapper —
// cmd/codegraph and tests that want an in-memory fixture call
// internal/source.Discover and Analyze directly instead.
func (p *Pipeline) AnalyzeDir(ctx context.Context, root string) (*AnalysisResult, error) {
	files, err := source.Discover(os.DirFS(root), ".", p, p.options.ExcludedDirectories)
	if err != nil {
		return nil, err
	}
	for i := range files {
		files[i].Path = filepath.Join(root, files[i].Path)
	}
	return p.Analyze(ctx, files, ReadFile)
}

// ReadFile is the filesystem-backed source.ContentReader.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
