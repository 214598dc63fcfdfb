package dto

import "github.com/ryotashiba/project-management-api/internal/models"

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	OwnerID        uint64    `json:"owner_id"`
	WorkHoursStart string    `json:"work_hours_start"`
	WorkHoursEnd   string    `json:"work_hours_end"`
	Members        []UserDTO `json:"members,omitempty"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	dto := OrganizationDTO{
		ID:             org.ID,
		Name:           org.Name,
		OwnerID:        org.OwnerID,
		WorkHoursStart: org.WorkHoursStart,
		WorkHoursEnd:   org.WorkHoursEnd,
	}

	if len(org.Members) > 0 {
		dto.Members = make([]UserDTO, len(org.Members))
		for i, member := range org.Members {
			dto.Members[i] = ToUserDTO(member)
		}
	}

	return dto
}
