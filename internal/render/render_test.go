package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkurosawa/aidesk/internal/markup"
	"github.com/mkurosawa/aidesk/internal/transcript"
)

func TestBlocksPlainParagraph(t *testing.T) {
	out := Blocks(markup.Render("hello world"))
	assert.Equal(t, "hello world", out)
}

func TestBlocksCodeFence(t *testing.T) {
	out := Blocks(markup.Render("```go\nx := 1\n```"))
	assert.Contains(t, out, "```go")
	assert.Contains(t, out, "x := 1")
}

func TestBlocksOrderedListNumbering(t *testing.T) {
	body := "1. first\n2. second\n\n7. restarts"
	out := Blocks(markup.Render(body))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  1. first", lines[0])
	assert.Equal(t, "  2. second", lines[1])
	assert.Equal(t, "", lines[2])
	// numbering restarts after the separator regardless of source digits
	assert.Equal(t, "  1. restarts", lines[3])
}

func TestBlocksHeadingAndBullets(t *testing.T) {
	out := Blocks(markup.Render("## Plan\n- a\n- b"))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "## Plan")
	assert.Equal(t, "  - a", lines[1])
	assert.Equal(t, "  - b", lines[2])
}

func TestHighlightKeywords(t *testing.T) {
	out := highlightKeywords("find the needle here", "needle")
	assert.Contains(t, out, colorBoldRed+"needle"+colorReset)

	// FTS operators are not highlighted
	same := highlightKeywords("x AND y", "AND")
	assert.Equal(t, "x AND y", same)

	// case-insensitive, original casing preserved
	out = highlightKeywords("Needle at start", "needle")
	assert.Contains(t, out, colorBoldRed+"Needle"+colorReset)
}

func TestWrapLinePlain(t *testing.T) {
	got := wrapLine("abcdefghij", 4)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, got)
}

func TestWrapLineSkipsANSI(t *testing.T) {
	line := colorDim + "abcd" + colorReset
	got := wrapLine(line, 4)
	require.Len(t, got, 1)
	assert.Equal(t, line, got[0])
}

func TestWrapLineZeroWidthNoWrap(t *testing.T) {
	got := wrapLine("anything at all", 0)
	assert.Equal(t, []string{"anything at all"}, got)
}

func TestWrapLineWideRunes(t *testing.T) {
	// two-column runes must not split past the width
	got := wrapLine("ああa", 2)
	assert.Equal(t, []string{"あ", "あ", "a"}, got)
}

func TestSequenceRendering(t *testing.T) {
	seq := &transcript.Sequence{Messages: []transcript.Message{
		{Role: "user", Content: "hi `there`", Timestamp: "2026-03-01T10:00:00Z"},
		{Role: "assistant", Content: "# Answer\nok"},
	}}

	out := Sequence(seq, "demo.jsonl", Options{})
	assert.Contains(t, out, "demo.jsonl")
	assert.Contains(t, out, "2 messages: 1 user, 1 assistant")
	assert.Contains(t, out, "USER")
	assert.Contains(t, out, "ASST")
	assert.Contains(t, out, "there")
	assert.Contains(t, out, "# Answer")
}

func TestSequenceEmpty(t *testing.T) {
	out := Sequence(&transcript.Sequence{}, "empty.jsonl", Options{})
	assert.Contains(t, out, "no messages found")
}

func TestSequenceRawSkipsMarkup(t *testing.T) {
	seq := &transcript.Sequence{Messages: []transcript.Message{
		{Role: "user", Content: "- item"},
	}}
	out := Sequence(seq, "x", Options{Raw: true})
	assert.Contains(t, out, "  - item")
	assert.NotContains(t, out, colorCode)
}
