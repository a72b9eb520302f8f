package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/mockmate/interview-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS users (
	email      TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	education  TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS interviews (
	id           TEXT PRIMARY KEY,
	email        TEXT NOT NULL REFERENCES users(email),
	record       TEXT NOT NULL,
	submitted_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_interviews_email ON interviews(email);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetUser(ctx context.Context, email string) (*model.UserProfile, error) {
	profile := &model.UserProfile{Email: email}

	row := s.db.QueryRowContext(ctx,
		`SELECT name, education FROM users WHERE email = ?`, email)
	err := row.Scan(&profile.Name, &profile.Education)
	if err == sql.ErrNoRows {
		// First authenticated fetch creates the profile with defaults.
		now := time.Now().UTC()
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO users (email, name, education, created_at, updated_at) VALUES (?, '', '', ?, ?)
			 ON CONFLICT(email) DO NOTHING`,
			email, now, now,
		); err != nil {
			return nil, eris.Wrapf(err, "sqlite: create user %s", email)
		}
		profile.PastInterviews = []model.InterviewRecord{}
		return profile, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get user %s", email)
	}

	records, err := s.ListInterviews(ctx, email)
	if err != nil {
		return nil, err
	}
	profile.PastInterviews = records
	return profile, nil
}

func (s *SQLiteStore) UpdateProfile(ctx context.Context, email string, update model.ProfileUpdate) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, name, education, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET name = excluded.name, education = excluded.education, updated_at = excluded.updated_at`,
		email, update.Name, update.Education, now, now,
	)
	return eris.Wrapf(err, "sqlite: update profile %s", email)
}

func (s *SQLiteStore) AppendInterview(ctx context.Context, email string, record model.InterviewRecord) error {
	if record.Date.IsZero() {
		record.Date = time.Now().UTC()
	}
	if err := record.Validate(); err != nil {
		return err
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal record")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin append")
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (email, name, education, created_at, updated_at) VALUES (?, '', '', ?, ?)
		 ON CONFLICT(email) DO NOTHING`,
		email, now, now,
	); err != nil {
		return eris.Wrapf(err, "sqlite: ensure user %s", email)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO interviews (id, email, record, submitted_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), email, string(recordJSON), record.Date,
	); err != nil {
		return eris.Wrapf(err, "sqlite: append interview for %s", email)
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit append")
}

func (s *SQLiteStore) ListInterviews(ctx context.Context, email string) ([]model.InterviewRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM interviews WHERE email = ? ORDER BY rowid`, email)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list interviews for %s", email)
	}
	defer rows.Close()

	records := []model.InterviewRecord{}
	for rows.Next() {
		var recordJSON string
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan interview")
		}
		var r model.InterviewRecord
		if err := json.Unmarshal([]byte(recordJSON), &r); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal interview")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list interviews iterate")
}
