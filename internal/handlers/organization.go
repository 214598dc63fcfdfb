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

// OrganizationHandler coordinates organization HTTP handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
	log        zerolog.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService, log zerolog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
		log:        log,
	}
}

// Create creates an organization with the caller as owner.
func (h *OrganizationHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.CreateOrganization(userID, req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusCreated, dto.ToOrganizationDTO(*org))
}

// GetCurrent returns the caller's organization with members.
func (h *OrganizationHandler) GetCurrent(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	org, err := h.orgService.GetCurrent(userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, dto.ToOrganizationDTO(*org))
}

// UpdateCurrent updates organization settings. Owner only.
func (h *OrganizationHandler) UpdateCurrent(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateRequest struct {
		Name           *string `json:"name"`
		WorkHoursStart *string `json:"work_hours_start"`
		WorkHoursEnd   *string `json:"work_hours_end"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.UpdateCurrent(userID, services.UpdateCurrentInput{
		Name:           req.Name,
		WorkHoursStart: req.WorkHoursStart,
		WorkHoursEnd:   req.WorkHoursEnd,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, dto.ToOrganizationDTO(*org))
}

// Invite moves an existing personal-mode user into the organization.
func (h *OrganizationHandler) Invite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type InviteRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invitee, err := h.orgService.InviteUser(userID, req.Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, dto.ToUserDTO(*invitee))
}

// Leave returns the caller to personal mode.
func (h *OrganizationHandler) Leave(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.orgService.Leave(userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondID(c, http.StatusOK, userID)
}

// DeleteCurrent deletes the caller's organization. Owner only.
func (h *OrganizationHandler) DeleteCurrent(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.orgService.DeleteCurrent(userID); err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondID(c, http.StatusOK, userID)
}
