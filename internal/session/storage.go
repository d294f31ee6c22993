/**
* Name: 			storage.go
* Description: 		클라이언트 영속 저장소 (쿠키/로컬스토리지 대응)
* Workflow: 		키-값 + 만료시각 저장, 만료된 항목은 읽을 때 제거
 */
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// 저장소 키
const (
	KeyAuthToken     = "authToken"
	KeySavedUsername = "savedUsername"
)

// Storage persists client-side values across process restarts.
// A zero expiry means the entry never expires.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string, expires time.Time) error
	Remove(key string) error
}

type entry struct {
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitzero"`
}

func (e entry) expired(now time.Time) bool {
	return !e.Expires.IsZero() && !now.Before(e.Expires)
}

// MemoryStorage keeps entries in process memory.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]entry), now: time.Now}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return "", false
	}
	return e.Value, true
}

func (m *MemoryStorage) Set(key, value string, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{Value: value, Expires: expires}
	return nil
}

func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// FileStorage keeps entries in a JSON file readable only by the owner.
type FileStorage struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFileStorage stores entries in dir/state.json, creating dir when missing.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStorage{path: filepath.Join(dir, "state.json"), now: time.Now}, nil
}

// DefaultStateDir returns ~/.siack.
func DefaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".siack"), nil
}

func (f *FileStorage) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries, err := f.load()
	if err != nil {
		return "", false
	}
	e, ok := entries[key]
	if !ok {
		return "", false
	}
	if e.expired(f.now()) {
		delete(entries, key)
		_ = f.save(entries)
		return "", false
	}
	return e.Value, true
}

func (f *FileStorage) Set(key, value string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries, err := f.load()
	if err != nil {
		return err
	}
	entries[key] = entry{Value: value, Expires: expires}
	return f.save(entries)
}

func (f *FileStorage) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return f.save(entries)
}

func (f *FileStorage) load() (map[string]entry, error) {
	entries := make(map[string]entry)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return entries, nil
}

func (f *FileStorage) save(entries map[string]entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
