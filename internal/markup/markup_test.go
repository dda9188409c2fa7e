package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlainTextSingleParagraph(t *testing.T) {
	blocks := Render("just some plain prose")
	require.Len(t, blocks, 1)
	assert.Equal(t, KindParagraph, blocks[0].Kind)
	require.Len(t, blocks[0].Spans, 1)
	assert.Equal(t, "just some plain prose", blocks[0].Spans[0].Text)
	assert.False(t, blocks[0].Spans[0].Code)
}

func TestRenderFencedCodeBlock(t *testing.T) {
	body := strings.Join([]string{
		"before",
		"```go",
		"func main() {",
		"\tprintln(\"hi\")",
		"}",
		"```",
		"after",
	}, "\n")

	blocks := Render(body)
	require.Len(t, blocks, 3)
	assert.Equal(t, KindParagraph, blocks[0].Kind)

	code := blocks[1]
	assert.Equal(t, KindCodeBlock, code.Kind)
	assert.Equal(t, "go", code.Lang)
	assert.Equal(t, []string{"func main() {", "\tprintln(\"hi\")", "}"}, code.Lines)

	assert.Equal(t, KindParagraph, blocks[2].Kind)
}

func TestRenderMultipleFences(t *testing.T) {
	body := "```\na\n```\n```python\nb\n```"
	blocks := Render(body)
	require.Len(t, blocks, 2)
	assert.Equal(t, "", blocks[0].Lang)
	assert.Equal(t, []string{"a"}, blocks[0].Lines)
	assert.Equal(t, "python", blocks[1].Lang)
	assert.Equal(t, []string{"b"}, blocks[1].Lines)
}

func TestRenderUnterminatedFence(t *testing.T) {
	body := "```sh\necho one\necho two"
	blocks := Render(body)
	require.Len(t, blocks, 1)
	assert.Equal(t, KindCodeBlock, blocks[0].Kind)
	assert.Equal(t, "sh", blocks[0].Lang)
	assert.Equal(t, []string{"echo one", "echo two"}, blocks[0].Lines)
}

func TestRenderFenceSwallowsMarkup(t *testing.T) {
	body := "```\n# not a heading\n- not a list\n```"
	blocks := Render(body)
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"# not a heading", "- not a list"}, blocks[0].Lines)
}

func TestRenderHeadings(t *testing.T) {
	tests := []struct {
		line  string
		level int
		text  string
	}{
		{"# Title", 1, "Title"},
		{"## Sub", 2, "Sub"},
		{"###### Deep", 6, "Deep"},
		{"#######Title", 6, "Title"},
		{"#no space", 1, "no space"},
	}
	for _, tt := range tests {
		blocks := Render(tt.line)
		require.Len(t, blocks, 1, "line %q", tt.line)
		assert.Equal(t, KindHeading, blocks[0].Kind, "line %q", tt.line)
		assert.Equal(t, tt.level, blocks[0].Level, "line %q", tt.line)
		assert.Equal(t, tt.text, blocks[0].Text, "line %q", tt.line)
	}
}

func TestRenderListItems(t *testing.T) {
	body := "- dash item\n* star item\n  - indented\n3. third\n10. tenth"
	blocks := Render(body)
	require.Len(t, blocks, 5)

	for i, want := range []struct {
		ordered bool
		text    string
	}{
		{false, "dash item"},
		{false, "star item"},
		{false, "indented"},
		{true, "third"},
		{true, "tenth"},
	} {
		assert.Equal(t, KindListItem, blocks[i].Kind)
		assert.Equal(t, want.ordered, blocks[i].Ordered, "item %d", i)
		assert.Equal(t, want.text, blocks[i].Text, "item %d", i)
	}
}

func TestRenderDashWithoutSpaceIsParagraph(t *testing.T) {
	blocks := Render("-not a list")
	require.Len(t, blocks, 1)
	assert.Equal(t, KindParagraph, blocks[0].Kind)
}

func TestRenderSeparators(t *testing.T) {
	blocks := Render("a\n\n   \nb")
	require.Len(t, blocks, 4)
	assert.Equal(t, KindParagraph, blocks[0].Kind)
	assert.Equal(t, KindSeparator, blocks[1].Kind)
	assert.Equal(t, KindSeparator, blocks[2].Kind)
	assert.Equal(t, KindParagraph, blocks[3].Kind)
}

func TestRenderInlineCode(t *testing.T) {
	blocks := Render("run `go test` in `./...` now")
	require.Len(t, blocks, 1)
	require.Equal(t, KindParagraph, blocks[0].Kind)

	want := []Span{
		{Text: "run "},
		{Text: "go test", Code: true},
		{Text: " in "},
		{Text: "./...", Code: true},
		{Text: " now"},
	}
	assert.Equal(t, want, blocks[0].Spans)
}

func TestRenderUnpairedBacktickStaysPlain(t *testing.T) {
	blocks := Render("a `code` and a stray ` tail")
	require.Len(t, blocks, 1)

	want := []Span{
		{Text: "a "},
		{Text: "code", Code: true},
		{Text: " and a stray ` tail"},
	}
	assert.Equal(t, want, blocks[0].Spans)
}

func TestRenderInlineCodeBeatsHeading(t *testing.T) {
	// backtick handling has priority over heading detection
	blocks := Render("# heading with `code`")
	require.Len(t, blocks, 1)
	assert.Equal(t, KindParagraph, blocks[0].Kind)
}

func TestRenderFenceLanguageTagTrimmed(t *testing.T) {
	blocks := Render("```  rust  \nfn main() {}\n```")
	require.Len(t, blocks, 1)
	assert.Equal(t, "rust", blocks[0].Lang)
}

func TestRenderEmptyBody(t *testing.T) {
	blocks := Render("")
	require.Len(t, blocks, 1)
	assert.Equal(t, KindSeparator, blocks[0].Kind)
}
