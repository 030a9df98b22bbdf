package application

import (
	"strings"

	"pronostico/internal/repository"
)

type KeyServiceImpl struct {
	settings   repository.Settings
	defaultKey string
}

func NewKeyServiceImpl(settings repository.Settings, defaultKey string) *KeyServiceImpl {
	return &KeyServiceImpl{
		settings:   settings,
		defaultKey: strings.TrimSpace(defaultKey),
	}
}

// GetAPIKey returns the saved key, falling back to the configured default.
func (s *KeyServiceImpl) GetAPIKey() (string, error) {
	key, err := s.settings.GetSetting(apiKeySetting)
	if err != nil {
		return "", err
	}
	if key == "" {
		return s.defaultKey, nil
	}
	return key, nil
}

func (s *KeyServiceImpl) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return &ValidationError{Field: "api_key", Message: "La API key no puede estar vacía."}
	}
	return s.settings.SetSetting(apiKeySetting, key)
}
