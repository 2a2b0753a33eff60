package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch_SingleStarMatchesOneOrMoreSegments(t *testing.T) {
	assert.True(t, Match("com.example.*", "com.example.billing"))
	// A trailing "*" also absorbs more than one segment when that's the
	// only way the rest of the pattern can still line up.
	assert.True(t, Match("com.example.*", "com.example.billing.invoices"))
	assert.False(t, Match("com.example.*", "com.example"))
}

// TestMatch_SingleStarSpansMultipleSegments pins the multi-segment star
// semantics: a lone "*" either side of a literal segment must be able to
// absorb more than one name segment, not just exactly one, or "*.seg.*"
// could never match a package where seg sits deeper than position 1 —
// which is exactly the shape domain inference's generated patterns use.
func TestMatch_SingleStarSpansMultipleSegments(t *testing.T) {
	assert.True(t, Match("*.seg.*", "a.seg.b"))
	assert.True(t, Match("*.seg.*", "a.b.seg.c"))
	assert.False(t, Match("*.seg.*", "a.b"))
	assert.False(t, Match("*.seg.*", "a.SEG.b"))
}

func TestMatch_DoubleStarMatchesZeroOrMoreSegments(t *testing.T) {
	assert.True(t, Match("com.example.**", "com.example"))
	assert.True(t, Match("com.example.**", "com.example.billing"))
	assert.True(t, Match("com.example.**", "com.example.billing.invoices"))
}

func TestMatch_SlashSeparatorDetectedFromPattern(t *testing.T) {
	assert.True(t, Match("**/billing/**", "src/billing/invoices/service"))
	assert.False(t, Match("**/billing/**", "src.billing.invoices"))
}

func TestMatch_LiteralSegmentsMustMatchExactly(t *testing.T) {
	assert.True(t, Match("com.example.billing", "com.example.billing"))
	assert.False(t, Match("com.example.billing", "com.example.invoicing"))
}

func TestMatch_DoubleStarInMiddleOfPattern(t *testing.T) {
	assert.True(t, Match("com.**.billing", "com.example.internal.billing"))
	assert.True(t, Match("com.**.billing", "com.billing"))
	assert.False(t, Match("com.**.billing", "com.billing.invoices"))
}

func TestMatch_EmptyPatternOnlyMatchesEmptyName(t *testing.T) {
	assert.True(t, Match("", ""))
	assert.False(t, Match("", "com"))
}
