package diagnostics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError_SetsKindAndMessage(t *testing.T) {
	d := ParseError("a.kt", errors.New("unexpected token"))
	assert.Equal(t, KindParseError, d.Kind)
	assert.Equal(t, "a.kt", d.FilePath)
	assert.Equal(t, "unexpected token", d.Message)
}

func TestInvariantViolation_SetsKindAndMessage(t *testing.T) {
	d := InvariantViolation("a.kt", "duplicate FQN")
	assert.Equal(t, KindInvariantViolation, d.Kind)
	assert.Equal(t, "duplicate FQN", d.Message)
}

func TestIOError_SetsKindAndMessage(t *testing.T) {
	d := IOError("a.kt", errors.New("permission denied"))
	assert.Equal(t, KindIOError, d.Kind)
	assert.Equal(t, "permission denied", d.Message)
}

func TestDiagnostic_StringIncludesKindPathAndMessage(t *testing.T) {
	d := ParseError("a.kt", errors.New("boom"))
	s := d.String()
	assert.Contains(t, s, "parse_error")
	assert.Contains(t, s, "a.kt")
	assert.Contains(t, s, "boom")
}

func TestCollector_AddAccumulatesInAppendOrder(t *testing.T) {
	var c Collector
	c.Add(ParseError("a.kt", errors.New("e1")))
	c.Add(IOError("b.kt", errors.New("e2")))

	items := c.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, "a.kt", items[0].FilePath)
	assert.Equal(t, "b.kt", items[1].FilePath)
}

func TestCollector_MergeAppendsOtherItems(t *testing.T) {
	var c1, c2 Collector
	c1.Add(ParseError("a.kt", errors.New("e1")))
	c2.Add(IOError("b.kt", errors.New("e2")))

	c1.Merge(&c2)

	assert.Len(t, c1.Items(), 2)
}

func TestCollector_MergeWithNilIsNoOp(t *testing.T) {
	var c Collector
	c.Add(ParseError("a.kt", errors.New("e1")))

	c.Merge(nil)

	assert.Len(t, c.Items(), 1)
}

func TestCollector_ItemsReturnsACopyNotTheBackingSlice(t *testing.T) {
	var c Collector
	c.Add(ParseError("a.kt", errors.New("e1")))

	items := c.Items()
	items[0].FilePath = "mutated.kt"

	assert.Equal(t, "a.kt", c.Items()[0].FilePath, "mutating the returned slice must not affect the collector")
}

func TestCollector_ZeroValueIsReadyToUse(t *testing.T) {
	var c Collector
	assert.Empty(t, c.Items())
}
