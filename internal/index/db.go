package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS sessions (
    session_key     TEXT PRIMARY KEY,
    source          TEXT NOT NULL,
    file_path       TEXT NOT NULL,
    project         TEXT NOT NULL DEFAULT '',
    resume_id       TEXT NOT NULL DEFAULT '',
    created_at      TEXT NOT NULL DEFAULT '',
    updated_at      TEXT NOT NULL DEFAULT '',
    summary         TEXT NOT NULL DEFAULT '',
    user_count      INTEGER NOT NULL DEFAULT 0,
    assistant_count INTEGER NOT NULL DEFAULT 0,
    mtime           INTEGER NOT NULL DEFAULT 0,
    size            INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
    session_key TEXT NOT NULL,
    msg_id      INTEGER NOT NULL,
    ts          TEXT NOT NULL DEFAULT '',
    role        TEXT NOT NULL,
    text        TEXT NOT NULL,
    line_number INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (session_key, msg_id)
);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    text,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, text) VALUES (new.rowid, new.text);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, text) VALUES('delete', old.rowid, old.text);
END;

CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, text) VALUES('delete', old.rowid, old.text);
    INSERT INTO messages_fts(rowid, text) VALUES (new.rowid, new.text);
END;

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	d := &DB{db: db}
	d.migrateSchemaVersion()
	return d, nil
}

// schemaVersion should be bumped whenever message extraction or cleaning
// changes, to force a full re-index.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		// zero out mtime/size so the next index pass rewrites every session
		d.db.Exec("UPDATE sessions SET mtime = 0, size = 0")
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type SessionInfo struct {
	Mtime int64
	Size  int64
}

func (d *DB) GetSessionInfo(sessionKey string) (*SessionInfo, error) {
	var info SessionInfo
	err := d.db.QueryRow(
		"SELECT mtime, size FROM sessions WHERE session_key = ?",
		sessionKey,
	).Scan(&info.Mtime, &info.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *DB) AllSessionKeys() (map[string]struct{}, error) {
	rows, err := d.db.Query("SELECT session_key FROM sessions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys[k] = struct{}{}
	}
	return keys, rows.Err()
}

func (d *DB) DeleteSession(sessionKey string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE session_key = ?", sessionKey); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE session_key = ?", sessionKey); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) SessionCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n)
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

type SessionRow struct {
	SessionKey     string
	Source         string
	FilePath       string
	Project        string
	ResumeID       string
	CreatedAt      string
	UpdatedAt      string
	Summary        string
	UserCount      int
	AssistantCount int
}

func (d *DB) GetSessionByKey(sessionKey string) (*SessionRow, error) {
	var s SessionRow
	err := d.db.QueryRow(
		`SELECT session_key, source, file_path, project, resume_id, created_at, updated_at, summary, user_count, assistant_count
		 FROM sessions WHERE session_key = ?`,
		sessionKey,
	).Scan(&s.SessionKey, &s.Source, &s.FilePath, &s.Project, &s.ResumeID,
		&s.CreatedAt, &s.UpdatedAt, &s.Summary, &s.UserCount, &s.AssistantCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type MessageRow struct {
	SessionKey string
	MsgID      int
	Ts         string
	Role       string
	Text       string
	LineNumber int
}

func (d *DB) GetMessages(sessionKey string) ([]MessageRow, error) {
	rows, err := d.db.Query(
		"SELECT session_key, msg_id, ts, role, text, line_number FROM messages WHERE session_key = ? ORDER BY msg_id",
		sessionKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []MessageRow
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.SessionKey, &m.MsgID, &m.Ts, &m.Role, &m.Text, &m.LineNumber); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// GetMessageWindow returns a window of messages around a hit, loading only
// the needed rows. startPos is the number of messages before the window,
// totalCount the session total.
func (d *DB) GetMessageWindow(sessionKey string, hitMsgID, context int) (msgs []MessageRow, hitIdx int, startPos int, totalCount int, err error) {
	err = d.db.QueryRow(
		"SELECT COUNT(*) FROM messages WHERE session_key = ?", sessionKey,
	).Scan(&totalCount)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	// find the 0-based position of the hit message
	hitPos := -1
	if hitMsgID >= 0 {
		err = d.db.QueryRow(`
			SELECT pos FROM (
				SELECT msg_id, ROW_NUMBER() OVER (ORDER BY msg_id) - 1 AS pos
				FROM messages WHERE session_key = ?
			) WHERE msg_id = ?`,
			sessionKey, hitMsgID,
		).Scan(&hitPos)
		if err == sql.ErrNoRows {
			hitPos = -1
			err = nil
		} else if err != nil {
			return nil, -1, 0, 0, err
		}
	}

	startPos = 0
	limit := totalCount
	if hitPos >= 0 {
		startPos = hitPos - context
		if startPos < 0 {
			startPos = 0
		}
		endPos := hitPos + context + 1
		if endPos > totalCount {
			endPos = totalCount
		}
		limit = endPos - startPos
	}

	rows, err := d.db.Query(
		"SELECT session_key, msg_id, ts, role, text, line_number FROM messages WHERE session_key = ? ORDER BY msg_id LIMIT ? OFFSET ?",
		sessionKey, limit, startPos,
	)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	defer rows.Close()

	var result []MessageRow
	localHitIdx := -1
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.SessionKey, &m.MsgID, &m.Ts, &m.Role, &m.Text, &m.LineNumber); err != nil {
			return nil, -1, 0, 0, err
		}
		if m.MsgID == hitMsgID {
			localHitIdx = len(result)
		}
		result = append(result, m)
	}
	return result, localHitIdx, startPos, totalCount, rows.Err()
}
