package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/repository"
)

// CredentialKey is the settings key holding the Gemini API key.
const CredentialKey = "gemini_api_key"

// ErrEmptyCredential is returned when saving a blank key.
var ErrEmptyCredential = errors.New("API key must not be empty")

type credentialService struct {
	settings repository.SettingsRepo
}

func NewCredentialService(settings repository.SettingsRepo) CredentialService {
	return &credentialService{settings: settings}
}

func (s *credentialService) Credential(ctx context.Context) (string, error) {
	key, err := s.settings.Get(ctx, CredentialKey)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *credentialService) Set(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyCredential
	}
	if err := s.settings.Set(ctx, CredentialKey, key); err != nil {
		return fmt.Errorf("saving API key: %w", err)
	}
	return nil
}

func (s *credentialService) Clear(ctx context.Context) error {
	if err := s.settings.Delete(ctx, CredentialKey); err != nil {
		return fmt.Errorf("clearing API key: %w", err)
	}
	return nil
}

// MaskCredential hides all but the last four characters of key.
func MaskCredential(key string) string {
	if key == "" {
		return ""
	}
	r := []rune(key)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}
