// Package sqlitestore is the durable Store implementation. One SQLite file
// holds all three collections, mirroring the single local-storage area the
// assistant's state occupied historically.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Osisami00/Nelfund-Project/internal/model"
	"github.com/Osisami00/Nelfund-Project/internal/store"
)

// Store implements store.Store on modernc.org/sqlite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the state database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Directory() store.Directory     { return &directory{db: s.db} }
func (s *Store) Current() store.Current         { return &current{db: s.db} }
func (s *Store) Transcripts() store.Transcripts { return &transcripts{db: s.db} }

type directory struct{ db *sql.DB }

func (d *directory) Put(ctx context.Context, u *model.User) error {
	if u.Phone == nil || u.CountryCode == nil {
		return model.ErrValidation
	}
	_, err := d.db.ExecContext(ctx, `
        INSERT INTO directory (phone, id, country_code, full_name, created_at, session_token)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(phone) DO UPDATE SET
            id = excluded.id,
            country_code = excluded.country_code,
            full_name = excluded.full_name,
            created_at = excluded.created_at,
            session_token = excluded.session_token`,
		*u.Phone, u.ID, *u.CountryCode, u.FullName,
		u.CreatedAt.UTC().Format(time.RFC3339Nano), u.SessionToken)
	return err
}

func (d *directory) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	row := d.db.QueryRowContext(ctx, `
        SELECT phone, id, country_code, full_name, created_at, session_token
        FROM directory WHERE phone = ?`, phone)
	return scanDirectoryUser(row)
}

func (d *directory) All(ctx context.Context) ([]*model.User, error) {
	rows, err := d.db.QueryContext(ctx, `
        SELECT phone, id, country_code, full_name, created_at, session_token
        FROM directory ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.User
	for rows.Next() {
		u, err := scanDirectoryUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDirectoryUser(r rowScanner) (*model.User, error) {
	var (
		u         model.User
		phone, cc string
		createdAt string
	)
	err := r.Scan(&phone, &u.ID, &cc, &u.FullName, &createdAt, &u.SessionToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Phone = &phone
	u.CountryCode = &cc
	u.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

type current struct{ db *sql.DB }

func (c *current) Set(ctx context.Context, u *model.User) error {
	var phone, cc sql.NullString
	if u.Phone != nil {
		phone = sql.NullString{String: *u.Phone, Valid: true}
	}
	if u.CountryCode != nil {
		cc = sql.NullString{String: *u.CountryCode, Valid: true}
	}
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO current_identity (slot, id, phone, country_code, full_name, created_at, session_token, is_guest)
        VALUES (1, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(slot) DO UPDATE SET
            id = excluded.id,
            phone = excluded.phone,
            country_code = excluded.country_code,
            full_name = excluded.full_name,
            created_at = excluded.created_at,
            session_token = excluded.session_token,
            is_guest = excluded.is_guest`,
		u.ID, phone, cc, u.FullName,
		u.CreatedAt.UTC().Format(time.RFC3339Nano), u.SessionToken, boolToInt(u.IsGuest))
	return err
}

func (c *current) Get(ctx context.Context) (*model.User, error) {
	row := c.db.QueryRowContext(ctx, `
        SELECT id, phone, country_code, full_name, created_at, session_token, is_guest
        FROM current_identity WHERE slot = 1`)

	var (
		u         model.User
		phone, cc sql.NullString
		createdAt string
		isGuest   int
	)
	err := row.Scan(&u.ID, &phone, &cc, &u.FullName, &createdAt, &u.SessionToken, &isGuest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if cc.Valid {
		u.CountryCode = &cc.String
	}
	u.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}
	u.IsGuest = isGuest != 0
	return &u, nil
}

func (c *current) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM current_identity WHERE slot = 1`)
	return err
}

type transcripts struct{ db *sql.DB }

func (t *transcripts) Append(ctx context.Context, userID string, m *model.Message) error {
	citations, err := json.Marshal(m.Citations)
	if err != nil {
		return err
	}
	_, err = t.db.ExecContext(ctx, `
        INSERT INTO messages (user_id, id, text, sender, citations, ts, used_retrieval, is_fallback)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, m.ID, m.Text, string(m.Sender), string(citations),
		m.Timestamp.UTC().Format(time.RFC3339Nano), boolToInt(m.UsedRetrieval), boolToInt(m.IsFallback))
	return err
}

func (t *transcripts) List(ctx context.Context, userID string) ([]*model.Message, error) {
	rows, err := t.db.QueryContext(ctx, `
        SELECT id, text, sender, citations, ts, used_retrieval, is_fallback
        FROM messages WHERE user_id = ? ORDER BY seq`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]*model.Message, 0)
	for rows.Next() {
		var (
			m             model.Message
			sender        string
			citations, ts string
			usedRet, fb   int
		)
		if err := rows.Scan(&m.ID, &m.Text, &sender, &citations, &ts, &usedRet, &fb); err != nil {
			return nil, err
		}
		m.Sender = model.Sender(sender)
		if err := json.Unmarshal([]byte(citations), &m.Citations); err != nil {
			return nil, err
		}
		m.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, err
		}
		m.UsedRetrieval = usedRet != 0
		m.IsFallback = fb != 0
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (t *transcripts) Clear(ctx context.Context, userID string) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM messages WHERE user_id = ?`, userID)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
