package modulepath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_StripsProjectRootAndExtension(t *testing.T) {
	r := New("/repo")
	assert.Equal(t, "src/billing/invoice", r.Resolve("/repo/src/billing/invoice.ts"))
}

func TestResolve_CollapsesTrailingIndexSegment(t *testing.T) {
	r := New("/repo")
	assert.Equal(t, "src/billing", r.Resolve("/repo/src/billing/index.ts"))
}

func TestResolve_HandlesWindowsStyleSeparators(t *testing.T) {
	r := New(`C:\repo`)
	assert.Equal(t, "src/billing/invoice", r.Resolve(`C:\repo\src\billing\invoice.tsx`))
}

func TestStripExtensionAndIndex_KeepsSrcRootSegment(t *testing.T) {
	assert.Equal(t, "src/foo/bar", StripExtensionAndIndex("src/foo/bar.js"))
	assert.Equal(t, "foo/bar", StripExtensionAndIndex("foo/bar.mjs"))
}

func TestStripExtensionAndIndex_NonIndexFileNameIsUnaffected(t *testing.T) {
	assert.Equal(t, "src/indexer", StripExtensionAndIndex("src/indexer.ts"))
}
