// Package rules manages the global rule files both assistants consult:
// Claude keeps a single CLAUDE.md, Codex keeps markdown files under rules/
// registered with optional tags in its config.toml [rules] section.
package rules

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mkurosawa/aidesk/internal/config"
)

// Rule is one Codex rule file together with the tags registered for it.
type Rule struct {
	Name    string
	Path    string
	Tags    []string
	Content string
}

// ReadClaude returns the Claude global rules, or "" when the file does not
// exist yet.
func ReadClaude(cfg *config.Config) (string, error) {
	data, err := os.ReadFile(cfg.ClaudeRulesPath())
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read claude rules: %w", err)
	}
	return string(data), nil
}

// WriteClaude replaces the Claude global rules, creating the directory if
// needed.
func WriteClaude(cfg *config.Config, content string) error {
	path := cfg.ClaudeRulesPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create claude dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write claude rules: %w", err)
	}
	return nil
}

// ListCodex returns all Codex rule files with their registered tags, sorted
// by name.
func ListCodex(cfg *config.Config) ([]Rule, error) {
	dir := cfg.CodexRulesDir()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read codex rules dir: %w", err)
	}

	tags, _ := registeredTags(cfg) // a broken config.toml just means no tags

	var rulesOut []Rule
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read rule %s: %w", e.Name(), err)
		}
		rulesOut = append(rulesOut, Rule{
			Name:    e.Name(),
			Path:    path,
			Tags:    tags[e.Name()],
			Content: string(data),
		})
	}

	sort.Slice(rulesOut, func(i, j int) bool { return rulesOut[i].Name < rulesOut[j].Name })
	return rulesOut, nil
}

// ReadCodex returns the content of one Codex rule file.
func ReadCodex(cfg *config.Config, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(cfg.CodexRulesDir(), name))
	if err != nil {
		return "", fmt.Errorf("read rule %s: %w", name, err)
	}
	return string(data), nil
}

// WriteCodex writes a Codex rule file and registers it (with tags) in
// config.toml.
func WriteCodex(cfg *config.Config, name, content string, tags []string) error {
	dir := cfg.CodexRulesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create codex rules dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write rule %s: %w", name, err)
	}
	return updateRegistry(cfg, name, tags)
}

// DeleteCodex removes a Codex rule file and deregisters it from config.toml.
func DeleteCodex(cfg *config.Config, name string) error {
	path := filepath.Join(cfg.CodexRulesDir(), name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("rule not found: %s", name)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete rule %s: %w", name, err)
	}
	return removeFromRegistry(cfg, name)
}

// config.toml handling. The file belongs to Codex and may carry arbitrary
// other sections, so edits go through a generic map and rewrite only
// rules.global.

func loadCodexConfig(cfg *config.Config) (map[string]interface{}, error) {
	root := map[string]interface{}{}
	data, err := os.ReadFile(cfg.CodexConfigPath())
	if os.IsNotExist(err) {
		return root, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read codex config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return root, nil
	}
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse codex config: %w", err)
	}
	return root, nil
}

func saveCodexConfig(cfg *config.Config, root map[string]interface{}) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(root); err != nil {
		return fmt.Errorf("encode codex config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.CodexConfigPath()), 0o755); err != nil {
		return fmt.Errorf("create codex dir: %w", err)
	}
	if err := os.WriteFile(cfg.CodexConfigPath(), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write codex config: %w", err)
	}
	return nil
}

// globalRules pulls the [rules].global array out of the decoded config.
func globalRules(root map[string]interface{}) []map[string]interface{} {
	rulesTable, ok := root["rules"].(map[string]interface{})
	if !ok {
		return nil
	}
	arr, ok := rulesTable["global"].([]map[string]interface{})
	if ok {
		return arr
	}
	// toml decodes arrays of tables as []map[string]interface{}, but be
	// lenient about []interface{} from hand-edited files
	generic, ok := rulesTable["global"].([]interface{})
	if !ok {
		return nil
	}
	var out []map[string]interface{}
	for _, item := range generic {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

func setGlobalRules(root map[string]interface{}, entries []map[string]interface{}) {
	rulesTable, ok := root["rules"].(map[string]interface{})
	if !ok {
		rulesTable = map[string]interface{}{}
		root["rules"] = rulesTable
	}
	rulesTable["global"] = entries
}

func entryName(entry map[string]interface{}) string {
	path, _ := entry["path"].(string)
	return filepath.Base(path)
}

func entryTags(entry map[string]interface{}) []string {
	var tags []string
	switch v := entry["tags"].(type) {
	case []string:
		tags = v
	case []interface{}:
		for _, t := range v {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}
	}
	return tags
}

// registeredTags maps rule file names to the tags registered in config.toml.
func registeredTags(cfg *config.Config) (map[string][]string, error) {
	root, err := loadCodexConfig(cfg)
	if err != nil {
		return nil, err
	}
	tags := make(map[string][]string)
	for _, entry := range globalRules(root) {
		if name := entryName(entry); name != "." {
			tags[name] = entryTags(entry)
		}
	}
	return tags, nil
}

func updateRegistry(cfg *config.Config, name string, tags []string) error {
	root, err := loadCodexConfig(cfg)
	if err != nil {
		return err
	}

	entry := map[string]interface{}{
		"path": filepath.Join(cfg.CodexRulesDir(), name),
	}
	if len(tags) > 0 {
		entry["tags"] = tags
	}

	entries := globalRules(root)
	replaced := false
	for i, e := range entries {
		if entryName(e) == name {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	setGlobalRules(root, entries)
	return saveCodexConfig(cfg, root)
}

func removeFromRegistry(cfg *config.Config, name string) error {
	root, err := loadCodexConfig(cfg)
	if err != nil {
		return err
	}

	entries := globalRules(root)
	kept := entries[:0]
	for _, e := range entries {
		if entryName(e) != name {
			kept = append(kept, e)
		}
	}

	setGlobalRules(root, kept)
	return saveCodexConfig(cfg, root)
}

// FormatTags renders a tag list for display.
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ",")
}
