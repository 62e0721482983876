package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/minuteclass/minuteclass/internal/logging"
)

// FileStore keeps preferences in a single JSON object on disk. The whole
// file is rewritten on every Set.
type FileStore struct {
	path   string
	log    *logging.Logger
	mu     sync.RWMutex
	values map[string]string
}

// NewFileStore loads path if it exists. A missing file is an empty store.
// A file that does not decode is moved to <path>.corrupt and the store
// starts empty.
func NewFileStore(path string, log *logging.Logger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("json preferences need a file path")
	}
	if log == nil {
		log = logging.Nop()
	}
	s := &FileStore{path: path, log: log, values: make(map[string]string)}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[key]
	s.values[key] = value
	if err := s.persistLocked(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[key]
	if !had {
		return nil
	}
	delete(s.values, key)
	if err := s.persistLocked(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

func (s *FileStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return keysWithPrefix(s.values, prefix), nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read preferences: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		aside := s.path + ".corrupt"
		if rerr := os.Rename(s.path, aside); rerr != nil {
			aside = ""
			s.log.Warn("move corrupt preferences aside", "path", s.path, "error", rerr)
		}
		s.log.Warn("corrupt preferences file, starting empty", "path", s.path, "moved_to", aside, "error", err)
		return nil
	}
	if values != nil {
		s.values = values
	}
	return nil
}

func (s *FileStore) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return os.Rename(tmpPath, s.path)
}
