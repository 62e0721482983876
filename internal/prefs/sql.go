package prefs

import (
	"context"

	"github.com/minuteclass/minuteclass/internal/store"
)

// SQLStore keeps preferences in the application database.
type SQLStore struct {
	repo store.PreferenceRepo
}

func NewSQLStore(repo store.PreferenceRepo) *SQLStore {
	return &SQLStore{repo: repo}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.repo.Get(ctx, key)
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

func (s *SQLStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.repo.Keys(ctx, prefix)
}

// Close is a no-op; the database is closed by its owner.
func (s *SQLStore) Close() error { return nil }
