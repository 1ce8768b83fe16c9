package searchcache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

// FileStore is a Store backed by one JSON file of the form
//
//	{"<normalized query>": [{"food_id": ..., "name": ..., "calories": ...}]}
//
// The whole document is rewritten on every Put through a temp file and
// rename, so readers never observe a partial write. A missing or corrupt
// file reads as an empty cache.
type FileStore struct {
	path string

	mu      sync.RWMutex
	loaded  bool
	entries map[string][]domain.FoodItem
}

// NewFileStore returns a FileStore at path. The parent directory is created
// on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(ctx context.Context, key string) ([]domain.FoodItem, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	if s.loaded {
		foods, ok := s.entries[key]
		s.mu.RUnlock()
		return clone(foods), ok, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, false, err
	}
	foods, ok := s.entries[key]
	return clone(foods), ok, nil
}

func (s *FileStore) Put(ctx context.Context, key string, foods []domain.FoodItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if foods == nil {
		foods = []domain.FoodItem{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return err
	}
	next := make(map[string][]domain.FoodItem, len(s.entries)+1)
	for k, v := range s.entries {
		next[k] = v
	}
	next[key] = clone(foods)
	if err := s.writeLocked(next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	s.entries = map[string][]domain.FoodItem{}
	s.loaded = true
	return nil
}

func (s *FileStore) loadLocked() error {
	if s.loaded {
		return nil
	}
	s.entries = map[string][]domain.FoodItem{}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return err
	}
	if len(b) > 0 {
		var m map[string][]domain.FoodItem
		if json.Unmarshal(b, &m) == nil && m != nil {
			s.entries = m
		}
	}
	s.loaded = true
	return nil
}

func (s *FileStore) writeLocked(m map[string][]domain.FoodItem) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".searchcache-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func clone(in []domain.FoodItem) []domain.FoodItem {
	if in == nil {
		return nil
	}
	out := make([]domain.FoodItem, len(in))
	copy(out, in)
	return out
}
