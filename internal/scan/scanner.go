package scan

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mkurosawa/aidesk/internal/transcript"
)

// Conversation describes one transcript file on disk, before any parsing of
// its message content.
type Conversation struct {
	ID        string // file stem
	Source    string // "claude" or "codex"
	Path      string
	Project   string // claude: project directory name
	SessionID string // codex: id from the session_meta record
	Mtime     int64
	Size      int64
}

// Format maps the conversation source onto the transcript schema tag.
func (c Conversation) Format() transcript.Format {
	if c.Source == "codex" {
		return transcript.FormatCodex
	}
	return transcript.FormatClaude
}

// ScanRoots lists all transcript files under both roots, newest first.
// A missing root is not an error, it just contributes nothing.
func ScanRoots(claudeRoot, codexRoot string) ([]Conversation, error) {
	var convs []Conversation

	if claudeRoot != "" {
		cf, err := scanClaude(claudeRoot)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		convs = append(convs, cf...)
	}

	if codexRoot != "" {
		cf, err := scanCodex(codexRoot)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		convs = append(convs, cf...)
	}

	sort.Slice(convs, func(i, j int) bool { return convs[i].Mtime > convs[j].Mtime })
	return convs, nil
}

func scanClaude(root string) ([]Conversation, error) {
	var convs []Conversation
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entries are not fatal
		}
		if info.IsDir() {
			base := filepath.Base(path)
			if path != root && strings.HasPrefix(base, ".") {
				return filepath.SkipDir
			}
			if base == "subagents" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".jsonl" {
			return nil
		}
		if strings.Contains(filepath.Base(path), "sessions-index") {
			return nil
		}
		convs = append(convs, Conversation{
			ID:      strings.TrimSuffix(filepath.Base(path), ".jsonl"),
			Source:  "claude",
			Path:    path,
			Project: filepath.Base(filepath.Dir(path)),
			Mtime:   info.ModTime().Unix(),
			Size:    info.Size(),
		})
		return nil
	})
	return convs, err
}

func scanCodex(root string) ([]Conversation, error) {
	var convs []Conversation
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".jsonl" {
			return nil
		}
		convs = append(convs, Conversation{
			ID:        strings.TrimSuffix(filepath.Base(path), ".jsonl"),
			Source:    "codex",
			Path:      path,
			SessionID: codexSessionID(path),
			Mtime:     info.ModTime().Unix(),
			Size:      info.Size(),
		})
		return nil
	})
	return convs, err
}

// codexSessionID reads only the first record of a Codex transcript, which
// carries the session id in its session_meta payload.
func codexSessionID(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	if !sc.Scan() {
		return ""
	}

	var rec struct {
		Type    string `json:"type"`
		Payload struct {
			ID string `json:"id"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
		return ""
	}
	if rec.Type != "session_meta" {
		return ""
	}
	return rec.Payload.ID
}
