package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractClaudeBasic(t *testing.T) {
	text := `{"type":"user","message":{"content":[{"type":"text","text":"Hello"}]}}`

	seq := Extract(text, FormatClaude)
	require.Equal(t, 1, seq.Len())
	assert.Equal(t, "user", seq.Messages[0].Role)
	assert.Equal(t, "Hello", seq.Messages[0].Content)
	assert.Equal(t, 1, seq.Messages[0].Line)
}

func TestExtractCodexBasic(t *testing.T) {
	text := `{"type":"response_item","payload":{"type":"message","role":"assistant","content":[{"type":"output_text","text":"Hi there"}]}}`

	seq := Extract(text, FormatCodex)
	require.Equal(t, 1, seq.Len())
	assert.Equal(t, "assistant", seq.Messages[0].Role)
	assert.Equal(t, "Hi there", seq.Messages[0].Content)
}

func TestExtractSkipsMalformedLines(t *testing.T) {
	text := strings.Join([]string{
		`{"type":"user","message":{"content":[{"type":"text","text":"first"}]}}`,
		`{broken json`,
		``,
		`   `,
		`{"type":"assistant","message":{"content":[{"type":"text","text":"second"}]}}`,
	}, "\n")

	seq := Extract(text, FormatClaude)
	require.Equal(t, 2, seq.Len())
	assert.Equal(t, "first", seq.Messages[0].Content)
	assert.Equal(t, "second", seq.Messages[1].Content)
	assert.Equal(t, 1, seq.Messages[0].Line)
	assert.Equal(t, 5, seq.Messages[1].Line)
}

func TestExtractNeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"not json at all",
		`{"type":"user"}`,
		`{"type":"user","message":null}`,
		`{"type":"user","message":{"content":"plain string body"}}`,
		`{"type":"user","message":{"content":42}}`,
		`{"type":"response_item"}`,
		`{"type":"response_item","payload":{"type":"function_call"}}`,
		`[1,2,3]`,
		`"just a string"`,
	}
	for _, in := range inputs {
		for _, f := range []Format{FormatClaude, FormatCodex} {
			seq := Extract(in, f)
			assert.Equal(t, 0, seq.Len(), "input %q format %s", in, f)
		}
	}
}

func TestExtractClaudeIgnoresOtherRecordTypes(t *testing.T) {
	text := strings.Join([]string{
		`{"type":"summary","summary":"a session"}`,
		`{"type":"system","message":{"content":[{"type":"text","text":"nope"}]}}`,
		`{"type":"assistant","message":{"content":[{"type":"tool_use","name":"Bash"},{"type":"text","text":"done"}]}}`,
	}, "\n")

	seq := Extract(text, FormatClaude)
	require.Equal(t, 1, seq.Len())
	assert.Equal(t, "assistant", seq.Messages[0].Role)
	assert.Equal(t, "done", seq.Messages[0].Content)
}

func TestExtractClaudeJoinsContentItems(t *testing.T) {
	text := `{"type":"assistant","timestamp":"2026-02-11T09:30:00Z","message":{"content":[{"type":"text","text":"one"},{"type":"image","text":"skip"},{"type":"text","text":"two"}]}}`

	seq := Extract(text, FormatClaude)
	require.Equal(t, 1, seq.Len())
	assert.Equal(t, "one\ntwo", seq.Messages[0].Content)
	assert.Equal(t, "2026-02-11T09:30:00Z", seq.Messages[0].Timestamp)
}

func TestExtractCodexRoleMapping(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"user", "user"},
		{"assistant", "assistant"},
		{"system", "assistant"},
		{"", "assistant"},
	}
	for _, tt := range tests {
		text := `{"type":"response_item","payload":{"type":"message","role":"` + tt.role + `","content":[{"type":"text","text":"x"}]}}`
		seq := Extract(text, FormatCodex)
		require.Equal(t, 1, seq.Len(), "role %q", tt.role)
		assert.Equal(t, tt.want, seq.Messages[0].Role, "role %q", tt.role)
	}
}

func TestExtractCodexSkipsNonMessageRecords(t *testing.T) {
	text := strings.Join([]string{
		`{"type":"session_meta","payload":{"id":"abc","cwd":"/tmp"}}`,
		`{"type":"event_msg","payload":{"type":"user_message","message":"hi"}}`,
		`{"type":"response_item","payload":{"type":"function_call","name":"shell"}}`,
		`{"type":"response_item","payload":{"type":"message","role":"user","content":[{"type":"input_text","text":"real"}]}}`,
	}, "\n")

	seq := Extract(text, FormatCodex)
	require.Equal(t, 1, seq.Len())
	assert.Equal(t, "user", seq.Messages[0].Role)
	assert.Equal(t, "real", seq.Messages[0].Content)
	assert.Equal(t, 4, seq.Messages[0].Line)
}

func TestExtractDropsWhitespaceOnlyMessages(t *testing.T) {
	text := `{"type":"user","message":{"content":[{"type":"text","text":"   \n\t  "}]}}`

	seq := Extract(text, FormatClaude)
	assert.Equal(t, 0, seq.Len())
}

func TestExtractPreservesOrderAndRepeats(t *testing.T) {
	line := `{"type":"user","message":{"content":[{"type":"text","text":"same"}]}}`
	text := line + "\n" + line

	seq := Extract(text, FormatClaude)
	require.Equal(t, 2, seq.Len())
	assert.Equal(t, seq.Messages[0].Content, seq.Messages[1].Content)
}

func TestSequenceCounts(t *testing.T) {
	seq := &Sequence{Messages: []Message{
		{Role: "user", Content: "a"},
		{Role: "assistant", Content: "b"},
		{Role: "assistant", Content: "c"},
	}}
	user, assistant := seq.Counts()
	assert.Equal(t, 1, user)
	assert.Equal(t, 2, assistant)
	assert.Equal(t, 3, seq.Len())
}
