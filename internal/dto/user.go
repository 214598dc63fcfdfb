package dto

import "github.com/ryotashiba/project-management-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64          `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Role           models.UserRole `json:"role"`
	OrganizationID *uint64         `json:"organization_id"`
}

// AuthResponse carries a user plus a freshly issued bearer token.
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	}
}
