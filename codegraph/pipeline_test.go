package codegraph

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosslang/codegraph/internal/source"
)

func fixtureFiles() map[string][]byte {
	return map[string][]byte{
		"Invoice.kt": []byte(`
package com.example.billing

class Invoice {
    fun total(): Double {
        return 0.0
    }
}
`),
		"Main.java": []byte(`
package com.example.billing;

public class Main {
    public void run() {
        Invoice invoice = new Invoice();
    }
}
`),
		"invoice.ts": []byte(`
export class Invoice {
    total(): number {
        return 0;
    }
}
`),
		"main.js": []byte(`
const invoice = require("./invoice");

function run() {
    return invoice.total();
}
`),
	}
}

func sourceFiles(contents map[string][]byte) []source.File {
	files := make([]source.File, 0, len(contents))
	for path := range contents {
		files = append(files, source.File{Path: path, Extension: filepath.Ext(path)})
	}
	return files
}

func readFromMap(contents map[string][]byte) source.ContentReader {
	return func(path string) ([]byte, error) {
		data, ok := contents[path]
		if !ok {
			return nil, errors.New("no such fixture file: " + path)
		}
		return data, nil
	}
}

func TestAnalyze_ParsesAndResolvesAcrossAllFourLanguages(t *testing.T) {
	contents := fixtureFiles()
	p := New("", DefaultOptions())

	result, err := p.Analyze(context.Background(), sourceFiles(contents), readFromMap(contents))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Empty(t, result.Diagnostics)
	assert.Len(t, result.Parsed, len(contents))
	assert.NotNil(t, result.Table)
}

func TestAnalyze_UnreadableFileProducesDiagnosticNotError(t *testing.T) {
	p := New("", DefaultOptions())
	files := []source.File{{Path: "Missing.kt", Extension: ".kt"}}

	result, err := p.Analyze(context.Background(), files, readFromMap(nil))
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Empty(t, result.Parsed)
}

func TestAnalyze_UnparseableExtensionProducesDiagnostic(t *testing.T) {
	p := New("", DefaultOptions())
	contents := map[string][]byte{"notes.txt": []byte("not code")}
	files := []source.File{{Path: "notes.txt", Extension: ".txt"}}

	result, err := p.Analyze(context.Background(), files, readFromMap(contents))
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
}

func TestAnalyze_CancelledContextReturnsContextError(t *testing.T) {
	p := New("", DefaultOptions())
	contents := fixtureFiles()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Analyze(ctx, sourceFiles(contents), readFromMap(contents))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_ResolvesConstructorCallAcrossKotlinAndJavaFiles(t *testing.T) {
	contents := fixtureFiles()
	p := New("", DefaultOptions())

	result, err := p.Analyze(context.Background(), sourceFiles(contents), readFromMap(contents))
	require.NoError(t, err)

	found := false
	for _, rf := range result.Parsed {
		if rf.File.FilePath != "Main.java" {
			continue
		}
		for _, c := range rf.ResolvedCalls {
			if c.ToFQN == "com.example.billing.Invoice.<init>" {
				found = true
			}
		}
	}
	assert.True(t, found, "Main.java's `new Invoice()` should resolve to the Kotlin-declared Invoice class's constructor")
}

// TestAnalyze_ReexportChainResolvesTopLevelCallsThroughToTheDefiningModule
// exercises re-export transparency end to end: a.ts
// re-exports X from b.ts, b.ts defines X, and c.ts imports X from a.ts and
// both constructs and calls it at module level (no enclosing function).
// Both call sites must resolve to b.ts's declarations, attributed to c.ts's
// synthetic "<top>" scope.
func TestAnalyze_ReexportChainResolvesTopLevelCallsThroughToTheDefiningModule(t *testing.T) {
	contents := map[string][]byte{
		"a.ts": []byte(`export { X } from './b';` + "\n"),
		"b.ts": []byte("export class X {\n    run() {}\n}\n"),
		"c.ts": []byte("import { X } from './a';\n\nconst x = new X();\nx.run();\n"),
	}
	p := New("", DefaultOptions())

	result, err := p.Analyze(context.Background(), sourceFiles(contents), readFromMap(contents))
	require.NoError(t, err)

	_, ok := result.Table.ByFQN["b/X"]
	require.True(t, ok, "byFqn should contain the re-exported class's real defining FQN")
	_, ok = result.Table.ByFQN["b/X.run"]
	require.True(t, ok, "byFqn should contain the re-exported class's method FQN")

	var cCalls []string
	for _, rf := range result.Parsed {
		if rf.File.FilePath != "c.ts" {
			continue
		}
		for _, c := range rf.ResolvedCalls {
			cCalls = append(cCalls, c.FromFQN+" -> "+c.ToFQN)
			_, ok := result.Table.ByFQN[c.FromFQN]
			assert.True(t, ok, "fromFqn %q must itself be a byFqn key", c.FromFQN)
		}
	}
	assert.ElementsMatch(t, []string{"c/<top> -> b/X.<init>", "c/<top> -> b/X.run"}, cCalls)
}

func TestLanguageForExtension_DelegatesToRegistry(t *testing.T) {
	p := New("", DefaultOptions())
	lang, ok := p.LanguageForExtension(".kt")
	require.True(t, ok)
	assert.Equal(t, "kotlin", string(lang))

	_, ok = p.LanguageForExtension(".unknown")
	assert.False(t, ok)
}

func TestDefaultOptions_EnablesCommonJSRequiresByDefault(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.IncludeCommonJSRequires)
	assert.Nil(t, opts.DomainSegmentIndex)
	assert.Empty(t, opts.ExcludedDirectories)
	assert.Empty(t, opts.Domains)
}
