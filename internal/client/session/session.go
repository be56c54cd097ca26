// Package session keeps the client's local state on disk: the bearer token
// and a legacy task cache, both under the user config directory.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"taskdeck/internal/domain/model"
)

const (
	tokenFile = "session.json"

	// Versioned like the pre-API local cache it replaces. Written through
	// after every fetch for backward compatibility, never read while a
	// session is active.
	legacyCacheFile = "tasks_cache_v1.0.0.json"
)

type Store struct {
	dir string
}

// NewStore places session files under the OS user config directory.
func NewStore() (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(filepath.Join(configDir, "taskdeck"))
}

// NewStoreAt uses an explicit directory; tests point this at a temp dir.
func NewStoreAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

type sessionFile struct {
	Token string `json:"token"`
}

func (s *Store) SaveToken(token string) error {
	data, err := json.MarshalIndent(sessionFile{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, tokenFile), data, 0600)
}

// LoadToken returns the persisted token, or "" when no session exists. The
// token is not checked for expiry here; an expired one surfaces as a 401 on
// the first API call.
func (s *Store) LoadToken() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return "", err
	}
	return sf.Token, nil
}

func (s *Store) ClearToken() error {
	err := os.Remove(filepath.Join(s.dir, tokenFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) CacheTasks(tasks []model.Task) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, legacyCacheFile), data, 0644)
}

func (s *Store) LoadCachedTasks() ([]model.Task, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, legacyCacheFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, err
	}
	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
