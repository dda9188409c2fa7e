package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config locates the two assistant home directories and the index database.
// claude_home and codex_home override the default install locations, the
// same way the desktop tools allow relocating their data directories.
type Config struct {
	ClaudeHome string `toml:"claude_home"`
	CodexHome  string `toml:"codex_home"`
	DBPath     string `toml:"db_path"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ClaudeHome: filepath.Join(home, ".claude"),
		CodexHome:  filepath.Join(home, ".codex"),
		DBPath:     filepath.Join(home, ".config", "aidesk", "aidesk.db"),
	}

	cfgPath := filepath.Join(home, ".config", "aidesk", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	cfg.ClaudeHome = expandHome(cfg.ClaudeHome, home)
	cfg.CodexHome = expandHome(cfg.CodexHome, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	return cfg, nil
}

// ClaudeProjectsDir is the root of Claude Code transcripts, one directory
// per project.
func (c *Config) ClaudeProjectsDir() string {
	return filepath.Join(c.ClaudeHome, "projects")
}

// CodexSessionsDir is the root of Codex transcripts, laid out year/month/day.
func (c *Config) CodexSessionsDir() string {
	return filepath.Join(c.CodexHome, "sessions")
}

// ClaudeRulesPath is the Claude global rules file.
func (c *Config) ClaudeRulesPath() string {
	return filepath.Join(c.ClaudeHome, "CLAUDE.md")
}

// CodexRulesDir holds Codex rule markdown files.
func (c *Config) CodexRulesDir() string {
	return filepath.Join(c.CodexHome, "rules")
}

// CodexConfigPath is the Codex config.toml, which registers rule files and
// their tags under [rules].
func (c *Config) CodexConfigPath() string {
	return filepath.Join(c.CodexHome, "config.toml")
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
