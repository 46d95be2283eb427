// Package prefs is the key-value preference store that persists user flags
// such as the theme between runs.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/iburimskiy/neuralbg/internal/config"
	"github.com/spf13/viper"
)

// Store gets and sets single string values.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

const fileName = "prefs.yaml"

// DefaultPath returns <user config dir>/neuralbg/prefs.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, config.AppName, fileName), nil
}

// FileStore keeps preferences in a YAML file through a private viper
// instance. The file is read once at open and rewritten on every Set.
type FileStore struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// OpenFile opens the store at path. A missing file is an empty store.
func OpenFile(path string) (*FileStore, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read prefs %s: %w", path, err)
		}
	}

	return &FileStore{v: v, path: path}, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.v.IsSet(key) {
		return "", false
	}
	return s.v.GetString(key), true
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	s.v.Set(key, value)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write prefs %s: %w", s.path, err)
	}
	return nil
}

// Path is the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// MemoryStore is a non-persistent Store.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.writes++
	return nil
}

// Writes counts Set calls.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
