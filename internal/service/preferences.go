package service

import (
	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/port"

	"go.uber.org/zap"
)

// PreferenceService holds per-user display and notification preferences.
// Preferences are gateway-local: the loyalty backend knows nothing about
// them, so a corrupt or missing store degrades to defaults instead of
// failing requests.
type PreferenceService struct {
	store  port.PreferenceStore
	logger *zap.Logger
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(store port.PreferenceStore, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{store: store, logger: logger}
}

// Get returns the user's preferences, complete with defaults for anything
// never saved.
func (s *PreferenceService) Get(user string) domain.Preferences {
	prefs, err := s.store.Load(user)
	if err != nil {
		s.logger.Warn("preference load failed, using defaults", zap.Error(err))
		return domain.DefaultPreferences()
	}
	return prefs
}

// Update validates and persists the user's preferences.
func (s *PreferenceService) Update(user string, prefs domain.Preferences) (domain.Preferences, error) {
	if !domain.ValidTheme(prefs.Theme) {
		return domain.Preferences{}, &domain.ErrValidation{Field: "theme", Message: "deve ser light, dark ou system"}
	}
	if err := s.store.Save(user, prefs); err != nil {
		return domain.Preferences{}, err
	}
	return prefs, nil
}

// Reset removes the user's saved preferences, restoring defaults.
func (s *PreferenceService) Reset(user string) (domain.Preferences, error) {
	if err := s.store.Delete(user); err != nil {
		return domain.Preferences{}, err
	}
	return domain.DefaultPreferences(), nil
}
