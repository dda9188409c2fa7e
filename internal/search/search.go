package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/mkurosawa/aidesk/internal/index"
)

type Result struct {
	SessionKey string
	MsgID      int
	UpdatedAt  string
	Source     string
	Project    string
	Summary    string
	Snippet    string
	Role       string
	Rank       float64
}

type Options struct {
	Query  string
	Source string // "claude" or "codex", empty for both
	Role   string // "user" or "assistant", empty for both
	Since  string // YYYY-MM-DD
	Limit  int
}

// containsCJK reports whether the query needs substring matching; the
// unicode61 tokenizer cannot segment CJK text for FTS.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts text around the first occurrence of query, wrapped
// in the >>> <<< hit markers the renderers colorize.
func makeSnippet(text, query string, contextChars int) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	byteIdx := strings.Index(lowerText, lowerQuery)
	if byteIdx < 0 {
		// no literal hit, fall back to a prefix
		runes := []rune(text)
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}

	runes := []rune(text)
	runePos := len([]rune(text[:byteIdx]))
	qRunes := []rune(query)

	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	// Fetch more results before dedup so we still have enough after
	origLimit := opts.Limit
	opts.Limit = origLimit * 3

	var results []Result
	var err error
	if containsCJK(opts.Query) {
		results, err = searchLike(db, opts)
	} else {
		results, err = searchFTS(db, opts)
	}
	if err != nil {
		return nil, err
	}

	// Deduplicate: keep only the best-ranked result per session
	seen := make(map[string]bool)
	var deduped []Result
	for _, r := range results {
		if seen[r.SessionKey] {
			continue
		}
		seen[r.SessionKey] = true
		deduped = append(deduped, r)
		if len(deduped) >= origLimit {
			break
		}
	}
	return deduped, nil
}

// ListAll returns every indexed session newest first, without a text match.
func ListAll(db *index.DB, opts Options) ([]Result, error) {
	var conditions []string
	var args []interface{}

	conditions = append(conditions, "1=1")
	if opts.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, opts.Source)
	}
	if opts.Since != "" {
		conditions = append(conditions, "updated_at >= ?")
		args = append(args, opts.Since)
	}

	query := fmt.Sprintf(`
		SELECT session_key, updated_at, source, project, summary
		FROM sessions
		WHERE %s
		ORDER BY updated_at DESC, mtime DESC
	`, strings.Join(conditions, " AND "))

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r := Result{MsgID: -1}
		if err := rows.Scan(&r.SessionKey, &r.UpdatedAt, &r.Source, &r.Project, &r.Summary); err != nil {
			return nil, err
		}
		r.Snippet = r.Summary
		results = append(results, r)
	}
	return results, rows.Err()
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	var conditions []string
	var args []interface{}

	conditions = append(conditions, "messages_fts MATCH ?")
	args = append(args, opts.Query)

	if opts.Source != "" {
		conditions = append(conditions, "s.source = ?")
		args = append(args, opts.Source)
	}
	if opts.Role != "" {
		conditions = append(conditions, "m.role = ?")
		args = append(args, opts.Role)
	}
	if opts.Since != "" {
		conditions = append(conditions, "s.updated_at >= ?")
		args = append(args, opts.Since)
	}

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			m.session_key,
			m.msg_id,
			s.updated_at,
			s.source,
			s.project,
			s.summary,
			snippet(messages_fts, 0, '>>>','<<<', '...', 40) as snip,
			m.role,
			bm25(messages_fts, 1.0) as rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		JOIN sessions s ON m.session_key = s.session_key
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	var conditions []string
	var args []interface{}

	conditions = append(conditions, "m.text LIKE ?")
	args = append(args, "%"+opts.Query+"%")

	if opts.Source != "" {
		conditions = append(conditions, "s.source = ?")
		args = append(args, opts.Source)
	}
	if opts.Role != "" {
		conditions = append(conditions, "m.role = ?")
		args = append(args, opts.Role)
	}
	if opts.Since != "" {
		conditions = append(conditions, "s.updated_at >= ?")
		args = append(args, opts.Since)
	}

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			m.session_key,
			m.msg_id,
			s.updated_at,
			s.source,
			s.project,
			s.summary,
			m.text,
			m.role
		FROM messages m
		JOIN sessions s ON m.session_key = s.session_key
		WHERE %s
		ORDER BY s.updated_at DESC
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullText string
		if err := rows.Scan(
			&r.SessionKey, &r.MsgID, &r.UpdatedAt,
			&r.Source, &r.Project, &r.Summary,
			&fullText, &r.Role,
		); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(fullText, opts.Query, 30)
		r.Rank = 0
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.SessionKey, &r.MsgID, &r.UpdatedAt,
			&r.Source, &r.Project, &r.Summary,
			&r.Snippet, &r.Role, &r.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
