package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkurosawa/aidesk/internal/scan"
	"github.com/mkurosawa/aidesk/internal/transcript"
)

const maxIndexedText = 8 * 1024 // keep FTS rows bounded

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// IndexAll scans both roots and brings the index up to date. Files whose
// mtime and size are unchanged are skipped; sessions whose files vanished
// are pruned.
func IndexAll(db *DB, claudeRoot, codexRoot string) (Stats, error) {
	var stats Stats

	convs, err := scan.ScanRoots(claudeRoot, codexRoot)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(convs)

	// keys still present on disk, the rest gets pruned
	seenKeys := make(map[string]struct{})

	for _, conv := range convs {
		key := SessionKey(conv, claudeRoot, codexRoot)
		seenKeys[key] = struct{}{}

		needs, err := needsUpdate(db, key, conv.Mtime, conv.Size)
		if err != nil {
			stats.Errors++
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		raw, err := os.ReadFile(conv.Path)
		if err != nil {
			stats.Errors++
			fmt.Fprintf(os.Stderr, "  WARN: read %s: %v\n", conv.Path, err)
			continue
		}

		seq := transcript.Extract(string(raw), conv.Format())
		if err := indexSession(db, key, conv, seq); err != nil {
			stats.Errors++
			fmt.Fprintf(os.Stderr, "  WARN: index %s: %v\n", conv.Path, err)
			continue
		}
		stats.Updated++
	}

	pruned, err := pruneSessions(db, seenKeys)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

// SessionKey derives the stable key for a conversation from its path
// relative to its root.
func SessionKey(conv scan.Conversation, claudeRoot, codexRoot string) string {
	root := claudeRoot
	if conv.Source == "codex" {
		root = codexRoot
	}
	rel, err := filepath.Rel(root, conv.Path)
	if err != nil {
		rel = conv.Path
	}
	return conv.Source + ":" + strings.TrimSuffix(rel, ".jsonl")
}

func needsUpdate(db *DB, sessionKey string, mtime, size int64) (bool, error) {
	info, err := db.GetSessionInfo(sessionKey)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // not indexed yet
	}
	return info.Mtime != mtime || info.Size != size, nil
}

func indexSession(db *DB, key string, conv scan.Conversation, seq *transcript.Sequence) error {
	// replace, never merge
	if err := db.DeleteSession(key); err != nil {
		return err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	userCount, assistantCount := seq.Counts()
	resumeID := conv.SessionID
	if resumeID == "" {
		resumeID = conv.ID
	}

	var createdAt, updatedAt string
	if n := len(seq.Messages); n > 0 {
		createdAt = normalizeTimestamp(seq.Messages[0].Timestamp)
		updatedAt = normalizeTimestamp(seq.Messages[n-1].Timestamp)
	}

	_, err = tx.Exec(
		`INSERT INTO sessions (session_key, source, file_path, project, resume_id, created_at, updated_at, summary, user_count, assistant_count, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key,
		conv.Source,
		conv.Path,
		conv.Project,
		resumeID,
		createdAt,
		updatedAt,
		summarize(seq),
		userCount,
		assistantCount,
		conv.Mtime,
		conv.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (session_key, msg_id, ts, role, text, line_number)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range seq.Messages {
		text := m.Content
		if len(text) > maxIndexedText {
			text = text[:maxIndexedText]
		}
		if _, err := stmt.Exec(key, i, normalizeTimestamp(m.Timestamp), m.Role, text, m.Line); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// summarize picks the first message as the session summary line.
func summarize(seq *transcript.Sequence) string {
	if len(seq.Messages) == 0 {
		return ""
	}
	s := seq.Messages[0].Content
	if len(s) > 200 {
		s = s[:200]
	}
	return strings.ReplaceAll(s, "\n", " ")
}

// normalizeTimestamp reformats a record timestamp for lexicographic
// comparison in SQL. Unparseable values pass through verbatim.
func normalizeTimestamp(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	return s
}

func pruneSessions(db *DB, seenKeys map[string]struct{}) (int, error) {
	allKeys, err := db.AllSessionKeys()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for key := range allKeys {
		if _, ok := seenKeys[key]; !ok {
			if err := db.DeleteSession(key); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}
