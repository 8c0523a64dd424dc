// Package prefstore persists per-user preference blobs as a single JSON file.
// The file is hydrated once at startup and flushed on every mutation; loads
// always yield a complete Preferences object with missing keys defaulted.
package prefstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/milhasapp/pontos-bff-go/internal/domain"

	"go.uber.org/zap"
)

// storedPrefs mirrors domain.Preferences with pointer fields so we can tell
// "absent" from "false" when merging a partially-written file over defaults.
type storedPrefs struct {
	ReduceMotion  *bool             `json:"reduceMotion,omitempty"`
	HideValues    *bool             `json:"hideValues,omitempty"`
	Theme         *string           `json:"theme,omitempty"`
	Notifications *storedNotifPrefs `json:"notifications,omitempty"`
}

type storedNotifPrefs struct {
	Promocoes     *bool `json:"promocoes,omitempty"`
	Movimentacoes *bool `json:"movimentacoes,omitempty"`
	ResumoMensal  *bool `json:"resumoMensal,omitempty"`
}

// FileStore is a PreferenceStore backed by one JSON file holding a map of
// user -> preferences. Access is serialized with a mutex; writes rewrite the
// whole file atomically via a temp file rename.
type FileStore struct {
	mu     sync.Mutex
	path   string
	users  map[string]storedPrefs
	logger *zap.Logger
}

// NewFileStore hydrates the store from path. A missing file is not an error;
// a corrupt file is logged and replaced on the next write.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		users:  make(map[string]storedPrefs),
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read preferences file: %w", err)
	}

	if err := json.Unmarshal(data, &s.users); err != nil {
		logger.Warn("preferences file corrupt, starting from defaults",
			zap.String("path", path),
			zap.Error(err),
		)
		s.users = make(map[string]storedPrefs)
	}
	return s, nil
}

// Load returns the user's preferences merged key-by-key over the hard-coded
// defaults, including the nested notification toggles.
func (s *FileStore) Load(user string) (domain.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := domain.DefaultPreferences()
	stored, ok := s.users[user]
	if !ok {
		return prefs, nil
	}

	if stored.ReduceMotion != nil {
		prefs.ReduceMotion = *stored.ReduceMotion
	}
	if stored.HideValues != nil {
		prefs.HideValues = *stored.HideValues
	}
	if stored.Theme != nil && domain.ValidTheme(*stored.Theme) {
		prefs.Theme = *stored.Theme
	}
	if n := stored.Notifications; n != nil {
		if n.Promocoes != nil {
			prefs.Notifications.Promocoes = *n.Promocoes
		}
		if n.Movimentacoes != nil {
			prefs.Notifications.Movimentacoes = *n.Movimentacoes
		}
		if n.ResumoMensal != nil {
			prefs.Notifications.ResumoMensal = *n.ResumoMensal
		}
	}
	return prefs, nil
}

// Save persists the complete preferences object for the user and flushes the
// file immediately.
func (s *FileStore) Save(user string, prefs domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user] = storedPrefs{
		ReduceMotion: &prefs.ReduceMotion,
		HideValues:   &prefs.HideValues,
		Theme:        &prefs.Theme,
		Notifications: &storedNotifPrefs{
			Promocoes:     &prefs.Notifications.Promocoes,
			Movimentacoes: &prefs.Notifications.Movimentacoes,
			ResumoMensal:  &prefs.Notifications.ResumoMensal,
		},
	}
	return s.flush()
}

// Delete removes the user's stored blob; subsequent loads return defaults.
func (s *FileStore) Delete(user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, user)
	return s.flush()
}

// flush writes the whole map to disk. Caller must hold the mutex.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace preferences file: %w", err)
	}
	return nil
}
