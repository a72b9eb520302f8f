package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/mockmate/interview-cli/internal/config"
	"github.com/mockmate/interview-cli/internal/model"
)

// Store defines the persistence interface for user profiles and their
// appended interview history.
type Store interface {
	// GetUser fetches the profile for an email, creating it with default
	// empty fields on first access.
	GetUser(ctx context.Context, email string) (*model.UserProfile, error)

	// UpdateProfile sets the user-editable fields. The caller validates the
	// update first; a rejected update never reaches the store.
	UpdateProfile(ctx context.Context, email string, update model.ProfileUpdate) error

	// AppendInterview validates the record and appends it to the user's
	// history, creating the profile row if absent. A zero Date is assigned
	// at submission time.
	AppendInterview(ctx context.Context, email string, record model.InterviewRecord) error

	// ListInterviews returns the user's records in insertion order.
	ListInterviews(ctx context.Context, email string) ([]model.InterviewRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// New opens the store selected by config.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL, &PoolConfig{MaxConns: cfg.MaxConns, MinConns: cfg.MinConns})
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
