// Package file реализует хранилище сохранений в одном локальном
// JSON-файле, аналоге пользовательских настроек движка на диске.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store реализует saves.Store поверх JSON-файла.
// Каждая запись сразу сбрасывается на диск (write-through), файл
// заменяется атомарно через временный файл и rename.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// New открывает хранилище по пути path, создавая его при отсутствии
func New(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: make(map[string]string),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("saves file: failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("saves file: malformed save file %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.flushLocked()
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return s.flushLocked()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.flushLocked()
}

// flushLocked пишет весь снимок на диск; вызывается под мьютексом
func (s *Store) flushLocked() error {
	payload, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("saves file: failed to marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("saves file: failed to create save directory: %w", err)
	}
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("saves file: failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("saves file: failed to replace %s: %w", s.path, err)
	}
	return nil
}
