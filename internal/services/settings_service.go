package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/repository"
	"github.com/ryotashiba/project-management-api/internal/utils"
)

var (
	ErrSettingKeyRequired = errors.New("setting key is required")
	ErrProviderRequired   = errors.New("provider is required")
)

// SettingsService handles app settings and stored API keys.
type SettingsService struct {
	tenants  *TenantService
	settings repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(tenants *TenantService, settings repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		tenants:  tenants,
		settings: settings,
	}
}

// UpsertSetting writes a key/value pair into the caller's scope.
func (s *SettingsService) UpsertSetting(userID uint64, key, value string) (*models.AppSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrSettingKeyRequired
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	setting, err := s.settings.UpsertSetting(t, key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}
	return setting, nil
}

// ListSettings returns the tenant's settings.
func (s *SettingsService) ListSettings(userID uint64) ([]models.AppSetting, error) {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.ListSettings(t)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// DeleteSetting removes a setting by key within the tenant scope.
func (s *SettingsService) DeleteSetting(userID uint64, key string) error {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.settings.DeleteSetting(t, strings.TrimSpace(key))
}

// CreateAPIKey stores a provider credential. The generated secret is present
// on the returned row; this is the only time it leaves the service in full.
func (s *SettingsService) CreateAPIKey(userID uint64, provider, label string) (*models.ApiKey, error) {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return nil, ErrProviderRequired
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	secret, err := utils.GenerateAPIKeySecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}

	key := &models.ApiKey{
		KeyID:          uuid.NewString(),
		Provider:       provider,
		Label:          label,
		Secret:         secret,
		OrganizationID: t.OrganizationID,
		UserID:         t.UserID,
	}

	if err := s.settings.CreateAPIKey(key); err != nil {
		return nil, fmt.Errorf("failed to create api key: %w", err)
	}
	return key, nil
}

// ListAPIKeys returns the tenant's stored keys; secrets stay redacted at the
// DTO layer.
func (s *SettingsService) ListAPIKeys(userID uint64) ([]models.ApiKey, error) {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	keys, err := s.settings.ListAPIKeys(t)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	return keys, nil
}

// DeleteAPIKey removes a stored key within the tenant scope.
func (s *SettingsService) DeleteAPIKey(userID, keyID uint64) error {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.settings.DeleteAPIKey(t, keyID)
}
