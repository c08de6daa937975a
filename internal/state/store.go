package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// ErrFileMissing is returned when the state file does not exist. Creating
// it is a setup precondition (roles set), not something a mutating workflow
// recovers from at runtime.
var ErrFileMissing = errors.New(config.ErrStateFileMissing)

// Store persists the TeamRoles record as JSON at a fixed path. The file is
// treated as exclusively owned by one process at a time; a single scheduled
// job per role is assumed, so no locking is done.
type Store struct {
	Path string
}

// NewStore returns a store for the given path, defaulting to
// team-roles.json in the working directory.
func NewStore(path string) *Store {
	if path == "" {
		path = config.DefaultStatePath
	}
	return &Store{Path: path}
}

// Read loads the persisted record. A missing file yields ErrFileMissing.
func (s *Store) Read() (*TeamRoles, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, s.Path)
		}
		return nil, fmt.Errorf("%s: %w", config.ErrStateLoad, err)
	}

	var roles TeamRoles
	if err := json.Unmarshal(data, &roles); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStateLoad, err)
	}
	return &roles, nil
}

// Write replaces the whole record atomically: the JSON is written to a
// temporary file in the same directory and renamed over the target, so a
// failed run never leaves a half-written state file behind.
func (s *Store) Write(roles *TeamRoles) error {
	data, err := json.MarshalIndent(roles, "", config.StateIndent)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStateWrite, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), config.StateTempPattern)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStateWrite, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrStateWrite, err)
	}
	if err := tmp.Chmod(config.FilePermUserRW); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrStateWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStateWrite, err)
	}

	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStateWrite, err)
	}

	slog.Info(config.MsgWroteState,
		config.LogKeyComponent, config.CompState,
		config.LogKeyFile, s.Path,
	)
	return nil
}
