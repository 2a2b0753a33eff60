package codegraph

import (
	"context"
	"runtime"
	"sync"

	"github.com/crosslang/codegraph/internal/diagnostics"
	"github.com/crosslang/codegraph/internal/domain"
	"github.com/crosslang/codegraph/internal/ir"
	"github.com/crosslang/codegraph/internal/mcplogdlog"
	"github.com/crosslang/codegraph/internal/modulepath"
	"github.com/crosslang/codegraph/internal/parser"
	"github.com/crosslang/codegraph/internal/parser/java"
	"github.com/crosslang/codegraph/internal/parser/javascript"
	"github.com/crosslang/codegraph/internal/parser/kotlin"
	"github.com/crosslang/codegraph/internal/parser/typescript"
	"github.com/crosslang/codegraph/internal/resolver"
	"github.com/crosslang/codegraph/internal/source"
	"github.com/crosslang/codegraph/internal/symboltable"
)

// Pipeline builds an immutable parser.Registry once at construction and
// drives Analyze over any number of file sets using it, in three phases:
//
//  1. Parse phase: files are parsed concurrently, each producing an
//     independent ParsedFile with no shared mutable state.
//  2. Table-build phase: a single writer consumes every ParsedFile and
//     produces the SymbolTable; readers never observe a partial table.
//  3. Resolve phase: any number of workers read the completed SymbolTable
//     concurrently, each resolving one file into its own ResolvedFile.
type Pipeline struct {
	registry    *parser.Registry
	projectRoot string
	options     Options
}

// New builds a Pipeline rooted at projectRoot (used only for TS/JS
// module-path derivation) with the given Options.
func New(projectRoot string, options Options) *Pipeline {
	registry := parser.NewRegistry(
		kotlin.New(),
		java.New(),
		typescript.New(options.IncludeCommonJSRequires),
		javascript.New(options.IncludeCommonJSRequires),
	)
	return &Pipeline{registry: registry, projectRoot: projectRoot, options: options}
}

// LanguageForExtension implements internal/source.Languages, so
// source.Discover can classify a file's language without depending on
// parser.Registry directly.
func (p *Pipeline) LanguageForExtension(ext string) (ir.Language, bool) {
	lang, ok := p.registry.ForExtension(ext)
	if !ok {
		return "", false
	}
	return lang.Name(), true
}

// Registry exposes the Pipeline's parser registry, e.g. for
// cmd/codegraph's `languages` subcommand.
func (p *Pipeline) Registry() *parser.Registry { return p.registry }

// Analyze runs the full three-phase pipeline over files, reading their
// content with read. ctx is observed before each file's parse and before
// each file's resolve; a cancelled run discards partial results and
// returns ctx.Err() — the core writes no durable state either way.
func (p *Pipeline) Analyze(ctx context.Context, files []source.File, read source.ContentReader) (*AnalysisResult, error) {
	mcplogdlog.Debug("analyze starting", map[string]any{"fileCount": len(files)})
	modulePaths := modulepath.New(p.projectRoot)

	parsed, diags, err := p.parsePhase(ctx, files, read, modulePaths)
	if err != nil {
		mcplogdlog.Error("parse phase failed", map[string]any{"error": err.Error()})
		return nil, err
	}
	if len(diags) > 0 {
		mcplogdlog.Warn("parse phase produced diagnostics", map[string]any{"count": len(diags)})
	}

	table := symboltable.Build(parsed)

	resolved, err := p.resolvePhase(ctx, parsed, table)
	if err != nil {
		mcplogdlog.Error("resolve phase failed", map[string]any{"error": err.Error()})
		return nil, err
	}

	inferred := domain.Infer(parsed, p.options.DomainSegmentIndex)
	userDomains := make([]domain.Domain, len(p.options.Domains))
	for i, d := range p.options.Domains {
		userDomains[i] = domain.Domain{Name: d.Name, Patterns: d.Patterns}
	}
	domains := domain.Merge(inferred, userDomains)

	return &AnalysisResult{
		Parsed:      resolved,
		Table:       table,
		Domains:     domains,
		Diagnostics: diags,
	}, nil
}

type parseOutcome struct {
	file *ir.ParsedFile
	diag *diagnostics.Diagnostic
}

// parsePhase runs every file through its parser on a bounded worker pool.
// Each worker's outcome is written to its own index, so no mutex is
// needed; the fan-in below re-collects results in input order purely for
// deterministic output.
func (p *Pipeline) parsePhase(ctx context.Context, files []source.File, read source.ContentReader, modulePaths *modulepath.Resolver) ([]*ir.ParsedFile, []diagnostics.Diagnostic, error) {
	outcomes := make([]parseOutcome, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workerCount(len(files)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = p.parseOne(ctx, files[i], read, modulePaths)
			}
		}()
	}

	if err := feedAndWait(ctx, len(files), jobs, &wg); err != nil {
		return nil, nil, err
	}

	var parsedFiles []*ir.ParsedFile
	var diags []diagnostics.Diagnostic
	for _, o := range outcomes {
		if o.file != nil {
			parsedFiles = append(parsedFiles, o.file)
		}
		if o.diag != nil {
			diags = append(diags, *o.diag)
		}
	}
	return parsedFiles, diags, nil
}

func (p *Pipeline) parseOne(ctx context.Context, f source.File, read source.ContentReader, modulePaths *modulepath.Resolver) parseOutcome {
	if ctx.Err() != nil {
		return parseOutcome{}
	}
	content, err := read(f.Path)
	if err != nil {
		d := diagnostics.IOError(f.Path, err)
		return parseOutcome{diag: &d}
	}
	file, err := parser.Parse(p.registry, f.Extension, content, f.Path, modulePaths)
	if err != nil {
		d := diagnostics.ParseError(f.Path, err)
		return parseOutcome{diag: &d}
	}
	return parseOutcome{file: file}
}

// resolvePhase resolves every parsed file's calls on a bounded worker
// pool. Resolver and Context are read-only/per-file respectively, so
// concurrent workers never share mutable state.
func (p *Pipeline) resolvePhase(ctx context.Context, parsed []*ir.ParsedFile, table *ir.SymbolTable) ([]ir.ResolvedFile, error) {
	res := resolver.New(parsed, table)
	results := make([]ir.ResolvedFile, len(parsed))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workerCount(len(parsed)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results[i] = res.ResolveFile(parsed[i])
			}
		}()
	}

	if err := feedAndWait(ctx, len(parsed), jobs, &wg); err != nil {
		return nil, err
	}
	return results, nil
}

// feedAndWait sends indices 0..n-1 to jobs, observing ctx between sends, then
// closes jobs and waits for every worker to drain it.
func feedAndWait(ctx context.Context, n int, jobs chan<- int, wg *sync.WaitGroup) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return ctx.Err()
}

func workerCount(n int) int {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if n > 0 && workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
