package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/mockmate/interview-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.New(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "cmd: open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "cmd: migrate store")
	}
	return st, nil
}
