package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanIDEPreamble(t *testing.T) {
	in := "# Context from my IDE setup:\nfoo\n## My request for Claude:\nReal question"
	out, ok := Clean(in)
	require.True(t, ok)
	assert.Equal(t, "Real question", out)
}

func TestCleanIDEPreambleCodex(t *testing.T) {
	in := "# Context from my IDE setup:\nstuff\nmore stuff\n## My request for Codex:\nDo the thing"
	out, ok := Clean(in)
	require.True(t, ok)
	assert.Equal(t, "Do the thing", out)
}

func TestCleanUnclosedPreambleLeftIntact(t *testing.T) {
	in := "# Context from my IDE setup:\nfoo\nbar"
	out, ok := Clean(in)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestCleanEnvironmentContext(t *testing.T) {
	in := "before\n<environment_context>\nos: linux\nshell: zsh\n</environment_context>\nafter"
	out, ok := Clean(in)
	require.True(t, ok)
	assert.Equal(t, "before\n\nafter", out)
}

func TestCleanMultipleEnvironmentContexts(t *testing.T) {
	in := "<environment_context>a</environment_context>keep<environment_context>b</environment_context>"
	out, ok := Clean(in)
	require.True(t, ok)
	assert.Equal(t, "keep", out)
}

func TestCleanActiveAndOpenFileSections(t *testing.T) {
	in := "ask\n\n## Active file:\n/src/main.go\n\n## Open files:\n/src/a.go\n/src/b.go\n\ntail"
	out, ok := Clean(in)
	require.True(t, ok)
	assert.Equal(t, "ask\n\ntail", out)
}

func TestCleanOpenFilesToEndOfText(t *testing.T) {
	in := "ask\n\n## Open files:\n/src/a.go\n/src/b.go"
	out, ok := Clean(in)
	require.True(t, ok)
	assert.Equal(t, "ask", out)
}

func TestCleanCollapsesBlankRuns(t *testing.T) {
	out, ok := Clean("a\n\n\n\n\nb")
	require.True(t, ok)
	assert.Equal(t, "a\n\nb", out)
}

func TestCleanEmptyResult(t *testing.T) {
	for _, in := range []string{
		"",
		"   \n\t\n",
		"<environment_context>everything</environment_context>",
		"## Active file:\n/src/main.go",
	} {
		out, ok := Clean(in)
		assert.False(t, ok, "input %q", in)
		assert.Equal(t, "", out)
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"plain text, nothing to strip",
		"before\n<environment_context>x</environment_context>\nafter",
		"# Context from my IDE setup:\nfoo\n## My request for Claude:\nquestion\n\n\n\nwith gaps",
		"ask\n\n## Active file:\nmain.go\n\ntail",
	}
	for _, in := range inputs {
		once, ok := Clean(in)
		require.True(t, ok)
		twice, ok := Clean(once)
		require.True(t, ok)
		assert.Equal(t, once, twice, "input %q", in)
	}
}
