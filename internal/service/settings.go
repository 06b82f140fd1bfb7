package service

import (
	"go.uber.org/zap"

	"github.com/aarogyavani/companion/internal/security"
	"github.com/aarogyavani/companion/internal/store"
)

// SettingsService persists the user's API key and theme preference. The key
// is encrypted at rest when an encryptor is configured; settings are read
// once at startup and passed into constructors rather than cached globally.
type SettingsService struct {
	store     *store.Store
	encryptor *security.Encryptor // nil means plaintext storage
	logger    *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(st *store.Store, enc *security.Encryptor, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		store:     st,
		encryptor: enc,
		logger:    logger,
	}
}

// APIKey returns the stored Gemini API key, or "" when none is configured
// or the stored value cannot be decrypted.
func (s *SettingsService) APIKey() string {
	stored := store.Load(s.store, store.KeyAPIKey, "")
	if stored == "" || s.encryptor == nil {
		return stored
	}

	key, err := s.encryptor.Decrypt(stored)
	if err != nil {
		s.logger.Warn("stored API key could not be decrypted, treating as unset", zap.Error(err))
		return ""
	}
	return key
}

// SetAPIKey stores the API key, encrypting it when an encryptor is configured.
func (s *SettingsService) SetAPIKey(key string) error {
	stored := key
	if s.encryptor != nil {
		var err error
		stored, err = s.encryptor.Encrypt(key)
		if err != nil {
			return err
		}
	}
	store.Save(s.store, store.KeyAPIKey, stored)
	s.logger.Info("API key updated", zap.Bool("encrypted", s.encryptor != nil))
	return nil
}

// DarkMode returns the stored theme preference, defaulting to false.
func (s *SettingsService) DarkMode() bool {
	return store.Load(s.store, store.KeyDarkMode, false)
}

// SetDarkMode stores the theme preference.
func (s *SettingsService) SetDarkMode(on bool) {
	store.Save(s.store, store.KeyDarkMode, on)
}
