package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtureTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Animal.kt"), []byte(`
open class Animal {
    open fun speak() {}
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Invoice.kt"), []byte(`
class Invoice : Animal() {
    fun charge() {
        speak()
    }
}
`), 0o644))
	return dir
}

func TestGraphCommand_DefaultDotFormatWritesToStdout(t *testing.T) {
	dir := writeFixtureTree(t)
	cmd := newGraphCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "digraph codegraph {")
}

func TestGraphCommand_JSONFormat(t *testing.T) {
	dir := writeFixtureTree(t)
	cmd := newGraphCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{dir, "--format", "json"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"nodes"`)
}

func TestGraphCommand_UnknownFormatReturnsError(t *testing.T) {
	dir := writeFixtureTree(t)
	cmd := newGraphCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{dir, "--format", "yaml"})

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestGraphCommand_OutputFlagWritesToFile(t *testing.T) {
	dir := writeFixtureTree(t)
	outFile := filepath.Join(t.TempDir(), "graph.dot")
	cmd := newGraphCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{dir, "--output", outFile})

	require.NoError(t, cmd.Execute())
	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph codegraph {")
}

func TestLanguagesCommand_ListsAllFourLanguages(t *testing.T) {
	cmd := newLanguagesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	text := out.String()
	assert.Contains(t, text, "kotlin")
	assert.Contains(t, text, "java")
	assert.Contains(t, text, "typescript")
	assert.Contains(t, text, "javascript")
}

func TestLanguagesCommand_PrintsMaturityLegend(t *testing.T) {
	cmd := newLanguagesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "----------------------------------------------------")
}

func TestRootCommand_RegistersAllSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["graph"])
	assert.True(t, names["languages"])
	assert.True(t, names["watch"])
}
