package sqlitestore

import "database/sql"

const schema = `
CREATE TABLE IF NOT EXISTS directory (
    phone         TEXT PRIMARY KEY,
    id            TEXT NOT NULL,
    country_code  TEXT NOT NULL,
    full_name     TEXT NOT NULL,
    created_at    TEXT NOT NULL,
    session_token TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS current_identity (
    slot          INTEGER PRIMARY KEY CHECK (slot = 1),
    id            TEXT NOT NULL,
    phone         TEXT,
    country_code  TEXT,
    full_name     TEXT NOT NULL,
    created_at    TEXT NOT NULL,
    session_token TEXT NOT NULL,
    is_guest      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
    seq            INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id        TEXT NOT NULL,
    id             TEXT NOT NULL,
    text           TEXT NOT NULL,
    sender         TEXT NOT NULL,
    citations      TEXT NOT NULL,
    ts             TEXT NOT NULL,
    used_retrieval INTEGER NOT NULL,
    is_fallback    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_user_seq ON messages(user_id, seq);
`

func applySchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
