package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ryotashiba/project-management-api/internal/dto"
	apierrors "github.com/ryotashiba/project-management-api/internal/errors"
	"github.com/ryotashiba/project-management-api/internal/middleware"
	"github.com/ryotashiba/project-management-api/internal/services"
)

// SettingsHandler coordinates settings and API key HTTP handlers.
type SettingsHandler struct {
	settingsService *services.SettingsService
	log             zerolog.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService *services.SettingsService, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		log:             log,
	}
}

// UpsertSetting writes a key/value pair into the caller's scope.
func (h *SettingsHandler) UpsertSetting(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SettingRequest struct {
		Value string `json:"value"`
	}

	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	setting, err := h.settingsService.UpsertSetting(userID, c.Param("key"), req.Value)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, setting)
}

// ListSettings returns the caller's settings.
func (h *SettingsHandler) ListSettings(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	settings, err := h.settingsService.ListSettings(userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, settings)
}

// DeleteSetting removes a setting by key.
func (h *SettingsHandler) DeleteSetting(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.settingsService.DeleteSetting(userID, c.Param("key")); err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, gin.H{"key": c.Param("key")})
}

// CreateAPIKey stores a provider credential. This is the only response that
// ever carries the full secret.
func (h *SettingsHandler) CreateAPIKey(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateRequest struct {
		Provider string `json:"provider" binding:"required"`
		Label    string `json:"label"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	key, err := h.settingsService.CreateAPIKey(userID, req.Provider, req.Label)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusCreated, dto.ToApiKeyDTO(*key, true))
}

// ListAPIKeys returns the caller's stored keys with redacted secrets.
func (h *SettingsHandler) ListAPIKeys(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	keys, err := h.settingsService.ListAPIKeys(userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]dto.ApiKeyDTO, len(keys))
	for i, key := range keys {
		out[i] = dto.ToApiKeyDTO(key, false)
	}

	apierrors.RespondData(c, http.StatusOK, out)
}

// DeleteAPIKey removes a stored key.
func (h *SettingsHandler) DeleteAPIKey(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	keyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.settingsService.DeleteAPIKey(userID, keyID); err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondID(c, http.StatusOK, keyID)
}
