package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ryotashiba/project-management-api/internal/auth"
	"github.com/ryotashiba/project-management-api/internal/dto"
	apierrors "github.com/ryotashiba/project-management-api/internal/errors"
	"github.com/ryotashiba/project-management-api/internal/middleware"
	"github.com/ryotashiba/project-management-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	tokens      *auth.TokenManager
	oauth       *auth.OAuthManager
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokens *auth.TokenManager, oauth *auth.OAuthManager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		oauth:       oauth,
		log:         log,
	}
}

// Signup registers a new user and returns a bearer token.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name"`
		Password string `json:"password" binding:"required"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.authService.Signup(services.SignupInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusCreated, dto.AuthResponse{
		User:  dto.ToUserDTO(*user),
		Token: token,
	})
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, dto.AuthResponse{
		User:  dto.ToUserDTO(*user),
		Token: token,
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, dto.ToUserDTO(*user))
}

// OAuthRedirect sends the browser to the provider's consent screen.
func (h *AuthHandler) OAuthRedirect(c *gin.Context) {
	provider := c.Param("provider")

	state, err := h.tokens.IssueState(provider)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	url, err := h.oauth.AuthURL(provider, state)
	if err != nil {
		apierrors.NotFound(c, "Unknown provider")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}

// OAuthCallback exchanges the authorization code, upserts the user and
// returns a bearer token.
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")

	if err := h.tokens.VerifyState(provider, c.Query("state")); err != nil {
		apierrors.Unauthorized(c, "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, "Missing authorization code")
		return
	}

	profile, err := h.oauth.Exchange(c.Request.Context(), provider, code)
	if err != nil {
		h.log.Error().Err(err).Str("provider", provider).Msg("oauth exchange failed")
		apierrors.UpstreamError(c, "OAuth exchange failed")
		return
	}

	user, token, err := h.authService.OAuthLogin(profile)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, dto.AuthResponse{
		User:  dto.ToUserDTO(*user),
		Token: token,
	})
}
