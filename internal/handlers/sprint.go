package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apierrors "github.com/ryotashiba/project-management-api/internal/errors"
	"github.com/ryotashiba/project-management-api/internal/middleware"
	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/services"
)

// SprintHandler coordinates sprint HTTP handlers.
type SprintHandler struct {
	sprintService *services.SprintService
	log           zerolog.Logger
}

// NewSprintHandler creates a new SprintHandler.
func NewSprintHandler(sprintService *services.SprintService, log zerolog.Logger) *SprintHandler {
	return &SprintHandler{
		sprintService: sprintService,
		log:           log,
	}
}

// Create creates a sprint.
func (h *SprintHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateRequest struct {
		Name      string     `json:"name" binding:"required"`
		ProjectID *uint64    `json:"project_id"`
		StartsOn  *time.Time `json:"starts_on"`
		EndsOn    *time.Time `json:"ends_on"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	sprint, err := h.sprintService.Create(userID, services.CreateSprintInput{
		Name:      req.Name,
		ProjectID: req.ProjectID,
		StartsOn:  req.StartsOn,
		EndsOn:    req.EndsOn,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusCreated, sprint)
}

// List returns the caller's sprints, optionally filtered by project.
func (h *SprintHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var projectID *uint64
	if v := c.Query("project_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		projectID = &id
	}

	sprints, err := h.sprintService.List(userID, projectID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, sprints)
}

// Update patches a sprint.
func (h *SprintHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	sprintID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateRequest struct {
		Name     *string              `json:"name"`
		Status   *models.SprintStatus `json:"status"`
		StartsOn *time.Time           `json:"starts_on"`
		EndsOn   *time.Time           `json:"ends_on"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	sprint, err := h.sprintService.Update(userID, sprintID, services.UpdateSprintInput{
		Name:     req.Name,
		Status:   req.Status,
		StartsOn: req.StartsOn,
		EndsOn:   req.EndsOn,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, sprint)
}

// Delete removes a sprint. Tasks in it are detached, not deleted.
func (h *SprintHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	sprintID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.sprintService.Delete(userID, sprintID); err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondID(c, http.StatusOK, sprintID)
}
