package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/mockmate/interview-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store relies on. Keeping it narrow
// lets pgxmock stand in for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS users (
	email      TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	education  TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS interviews (
	id           TEXT PRIMARY KEY,
	seq          BIGSERIAL,
	email        TEXT NOT NULL REFERENCES users(email),
	record       JSONB NOT NULL,
	submitted_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_interviews_email ON interviews(email);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, email string) (*model.UserProfile, error) {
	profile := &model.UserProfile{Email: email}

	row := s.pool.QueryRow(ctx,
		`SELECT name, education FROM users WHERE email = $1`, email)
	err := row.Scan(&profile.Name, &profile.Education)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO users (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`,
			email,
		); err != nil {
			return nil, eris.Wrapf(err, "postgres: create user %s", email)
		}
		profile.PastInterviews = []model.InterviewRecord{}
		return profile, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get user %s", email)
	}

	records, err := s.ListInterviews(ctx, email)
	if err != nil {
		return nil, err
	}
	profile.PastInterviews = records
	return profile, nil
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, email string, update model.ProfileUpdate) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (email, name, education) VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, education = EXCLUDED.education, updated_at = now()`,
		email, update.Name, update.Education,
	)
	return eris.Wrapf(err, "postgres: update profile %s", email)
}

func (s *PostgresStore) AppendInterview(ctx context.Context, email string, record model.InterviewRecord) error {
	if record.Date.IsZero() {
		record.Date = time.Now().UTC()
	}
	if err := record.Validate(); err != nil {
		return err
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal record")
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO users (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`,
		email,
	); err != nil {
		return eris.Wrapf(err, "postgres: ensure user %s", email)
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO interviews (id, email, record, submitted_at) VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), email, recordJSON, record.Date,
	); err != nil {
		return eris.Wrapf(err, "postgres: append interview for %s", email)
	}
	return nil
}

func (s *PostgresStore) ListInterviews(ctx context.Context, email string) ([]model.InterviewRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT record FROM interviews WHERE email = $1 ORDER BY seq`, email)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list interviews for %s", email)
	}
	defer rows.Close()

	records := []model.InterviewRecord{}
	for rows.Next() {
		var recordJSON []byte
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, eris.Wrap(err, "postgres: scan interview")
		}
		var r model.InterviewRecord
		if err := json.Unmarshal(recordJSON, &r); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal interview")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list interviews iterate")
}
