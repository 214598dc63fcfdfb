package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ryotashiba/project-management-api/internal/auth"
	"github.com/ryotashiba/project-management-api/internal/constants"
	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrEmailRequired        = errors.New("email is required")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Email    string
	Name     string
	Password string
}

// Signup creates a new user in personal mode and returns a bearer token.
func (s *AuthService) Signup(input SignupInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, "", ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleMember,
	}

	if err := s.users.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the user with a bearer token.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	user, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if user.PasswordHash == "" {
		// OAuth-only account.
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// OAuthLogin upserts a user from a provider profile and returns a bearer
// token. The row is keyed by provider + external id; a matching email links
// an existing password account to the provider.
func (s *AuthService) OAuthLogin(profile *auth.Profile) (*models.User, string, error) {
	user, err := s.users.FindByProvider(profile.Provider, profile.ProviderID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to look up provider identity: %w", err)
	}

	if errors.Is(err, repository.ErrNotFound) {
		email := strings.ToLower(strings.TrimSpace(profile.Email))
		if email == "" {
			return nil, "", ErrEmailRequired
		}

		existing, ferr := s.users.FindByEmail(email)
		switch {
		case ferr == nil:
			existing.Provider = profile.Provider
			existing.ProviderID = profile.ProviderID
			if err := s.users.Update(existing); err != nil {
				return nil, "", fmt.Errorf("failed to link provider identity: %w", err)
			}
			user = existing
		case errors.Is(ferr, repository.ErrNotFound):
			user = &models.User{
				Email:      email,
				Name:       profile.Name,
				Role:       models.RoleMember,
				Provider:   profile.Provider,
				ProviderID: profile.ProviderID,
			}
			if err := s.users.Create(user); err != nil {
				return nil, "", fmt.Errorf("failed to create user: %w", err)
			}
		default:
			return nil, "", fmt.Errorf("failed to check email: %w", ferr)
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}
