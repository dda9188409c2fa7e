package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkurosawa/aidesk/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmp := t.TempDir()
	return &config.Config{
		ClaudeHome: filepath.Join(tmp, "claude"),
		CodexHome:  filepath.Join(tmp, "codex"),
		DBPath:     filepath.Join(tmp, "aidesk.db"),
	}
}

func TestClaudeRulesRoundTrip(t *testing.T) {
	cfg := testConfig(t)

	content, err := ReadClaude(cfg)
	require.NoError(t, err)
	assert.Equal(t, "", content, "missing file reads as empty")

	require.NoError(t, WriteClaude(cfg, "# Always\n\n- be brief\n"))

	content, err = ReadClaude(cfg)
	require.NoError(t, err)
	assert.Equal(t, "# Always\n\n- be brief\n", content)
}

func TestCodexRulesRoundTrip(t *testing.T) {
	cfg := testConfig(t)

	rulesOut, err := ListCodex(cfg)
	require.NoError(t, err)
	assert.Empty(t, rulesOut)

	require.NoError(t, WriteCodex(cfg, "style.md", "no passive voice\n", []string{"writing", "tone"}))
	require.NoError(t, WriteCodex(cfg, "git.md", "rebase, don't merge\n", nil))

	rulesOut, err = ListCodex(cfg)
	require.NoError(t, err)
	require.Len(t, rulesOut, 2)
	assert.Equal(t, "git.md", rulesOut[0].Name)
	assert.Empty(t, rulesOut[0].Tags)
	assert.Equal(t, "style.md", rulesOut[1].Name)
	assert.Equal(t, []string{"writing", "tone"}, rulesOut[1].Tags)
	assert.Equal(t, "no passive voice\n", rulesOut[1].Content)

	content, err := ReadCodex(cfg, "git.md")
	require.NoError(t, err)
	assert.Equal(t, "rebase, don't merge\n", content)
}

func TestWriteCodexReplacesExistingEntry(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, WriteCodex(cfg, "style.md", "v1\n", []string{"old"}))
	require.NoError(t, WriteCodex(cfg, "style.md", "v2\n", []string{"new"}))

	rulesOut, err := ListCodex(cfg)
	require.NoError(t, err)
	require.Len(t, rulesOut, 1)
	assert.Equal(t, "v2\n", rulesOut[0].Content)
	assert.Equal(t, []string{"new"}, rulesOut[0].Tags)

	tags, err := registeredTags(cfg)
	require.NoError(t, err)
	require.Len(t, tags, 1, "registry must not accumulate duplicates")
}

func TestDeleteCodex(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, WriteCodex(cfg, "a.md", "a\n", []string{"x"}))
	require.NoError(t, WriteCodex(cfg, "b.md", "b\n", nil))

	require.NoError(t, DeleteCodex(cfg, "a.md"))

	rulesOut, err := ListCodex(cfg)
	require.NoError(t, err)
	require.Len(t, rulesOut, 1)
	assert.Equal(t, "b.md", rulesOut[0].Name)

	tags, err := registeredTags(cfg)
	require.NoError(t, err)
	_, ok := tags["a.md"]
	assert.False(t, ok, "deleted rule must leave the registry")

	assert.Error(t, DeleteCodex(cfg, "a.md"))
}

func TestRegistryPreservesForeignSections(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.CodexHome, 0o755))
	seed := "model = \"gpt-5\"\n\n[mcp_servers.files]\ncommand = \"mcp-files\"\n"
	require.NoError(t, os.WriteFile(cfg.CodexConfigPath(), []byte(seed), 0o644))

	require.NoError(t, WriteCodex(cfg, "style.md", "x\n", []string{"tone"}))

	data, err := os.ReadFile(cfg.CodexConfigPath())
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "model = ")
	assert.Contains(t, text, "mcp_servers")
	assert.Contains(t, text, "style.md")
}

func TestListCodexIgnoresNonMarkdown(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, WriteCodex(cfg, "keep.md", "k\n", nil))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.CodexRulesDir(), "notes.txt"), []byte("skip"), 0o644))

	rulesOut, err := ListCodex(cfg)
	require.NoError(t, err)
	require.Len(t, rulesOut, 1)
	assert.Equal(t, "keep.md", rulesOut[0].Name)
}

func TestFormatTags(t *testing.T) {
	assert.Equal(t, "-", FormatTags(nil))
	assert.Equal(t, "a,b", FormatTags([]string{"a", "b"}))
}
