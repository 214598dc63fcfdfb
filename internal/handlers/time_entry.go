package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apierrors "github.com/ryotashiba/project-management-api/internal/errors"
	"github.com/ryotashiba/project-management-api/internal/middleware"
	"github.com/ryotashiba/project-management-api/internal/repository"
	"github.com/ryotashiba/project-management-api/internal/services"
)

// TimeEntryHandler coordinates time tracking HTTP handlers.
type TimeEntryHandler struct {
	timeEntryService *services.TimeEntryService
	log              zerolog.Logger
}

// NewTimeEntryHandler creates a new TimeEntryHandler.
func NewTimeEntryHandler(timeEntryService *services.TimeEntryService, log zerolog.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{
		timeEntryService: timeEntryService,
		log:              log,
	}
}

// Create logs time.
func (h *TimeEntryHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateRequest struct {
		TaskID  *uint64   `json:"task_id"`
		Date    time.Time `json:"date" binding:"required"`
		Minutes int       `json:"minutes" binding:"required"`
		Note    string    `json:"note"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.timeEntryService.Create(userID, services.CreateTimeEntryInput{
		TaskID:  req.TaskID,
		Date:    req.Date,
		Minutes: req.Minutes,
		Note:    req.Note,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusCreated, entry)
}

// List returns the caller's time entries, newest date first.
func (h *TimeEntryHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	filter := repository.TimeEntryFilter{}
	if v := c.Query("task_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task_id")
			return
		}
		filter.TaskID = &id
	}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid from date")
			return
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid to date")
			return
		}
		filter.To = &to
	}

	entries, err := h.timeEntryService.List(userID, filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, entries)
}

// Update patches a time entry.
func (h *TimeEntryHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateRequest struct {
		Date    *time.Time `json:"date"`
		Minutes *int       `json:"minutes"`
		Note    *string    `json:"note"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.timeEntryService.Update(userID, entryID, services.UpdateTimeEntryInput{
		Date:    req.Date,
		Minutes: req.Minutes,
		Note:    req.Note,
	}); err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondID(c, http.StatusOK, entryID)
}

// Delete removes a time entry. Hard delete; there is no recovery path.
func (h *TimeEntryHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.timeEntryService.Delete(userID, entryID); err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondID(c, http.StatusOK, entryID)
}
