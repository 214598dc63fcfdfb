package dto

import (
	"time"

	"github.com/ryotashiba/project-management-api/internal/constants"
	"github.com/ryotashiba/project-management-api/internal/models"
)

// ApiKeyDTO represents a stored API key in API responses. Secret is only set
// by the create response; lists carry the redacted suffix instead.
type ApiKeyDTO struct {
	ID           uint64    `json:"id"`
	KeyID        string    `json:"key_id"`
	Provider     string    `json:"provider"`
	Label        string    `json:"label"`
	Secret       string    `json:"secret,omitempty"`
	SecretSuffix string    `json:"secret_suffix,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToApiKeyDTO converts an ApiKey model to ApiKeyDTO. includeSecret must only
// be true in the create path.
func ToApiKeyDTO(key models.ApiKey, includeSecret bool) ApiKeyDTO {
	dto := ApiKeyDTO{
		ID:        key.ID,
		KeyID:     key.KeyID,
		Provider:  key.Provider,
		Label:     key.Label,
		CreatedAt: key.CreatedAt,
	}

	if includeSecret {
		dto.Secret = key.Secret
	} else if n := len(key.Secret); n > constants.APIKeySecretSuffixLen {
		dto.SecretSuffix = key.Secret[n-constants.APIKeySecretSuffixLen:]
	}

	return dto
}
