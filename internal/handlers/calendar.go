package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apierrors "github.com/ryotashiba/project-management-api/internal/errors"
	"github.com/ryotashiba/project-management-api/internal/middleware"
	"github.com/ryotashiba/project-management-api/internal/services"
)

// CalendarHandler coordinates meeting and appointment HTTP handlers.
type CalendarHandler struct {
	calendarService *services.CalendarService
	log             zerolog.Logger
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService *services.CalendarService, log zerolog.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		log:             log,
	}
}

type createEventRequest struct {
	Title    string    `json:"title" binding:"required"`
	Agenda   string    `json:"agenda"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
	Location string    `json:"location"`
}

type updateEventRequest struct {
	Title    *string    `json:"title"`
	Agenda   *string    `json:"agenda"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Location *string    `json:"location"`
}

// CreateMeeting creates a meeting organized by the caller.
func (h *CalendarHandler) CreateMeeting(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	meeting, err := h.calendarService.CreateMeeting(userID, services.CreateEventInput{
		Title:    req.Title,
		Agenda:   req.Agenda,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Location: req.Location,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusCreated, meeting)
}

// ListMeetings returns the caller's meetings by start time.
func (h *CalendarHandler) ListMeetings(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	meetings, err := h.calendarService.ListMeetings(userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, meetings)
}

// UpdateMeeting patches a meeting.
func (h *CalendarHandler) UpdateMeeting(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	meetingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.calendarService.UpdateMeeting(userID, meetingID, services.UpdateEventInput{
		Title:    req.Title,
		Agenda:   req.Agenda,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Location: req.Location,
	}); err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondID(c, http.StatusOK, meetingID)
}

// DeleteMeeting removes a meeting.
func (h *CalendarHandler) DeleteMeeting(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	meetingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.calendarService.DeleteMeeting(userID, meetingID); err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondID(c, http.StatusOK, meetingID)
}

// CreateAppointment creates an appointment.
func (h *CalendarHandler) CreateAppointment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	appointment, err := h.calendarService.CreateAppointment(userID, services.CreateEventInput{
		Title:    req.Title,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Location: req.Location,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusCreated, appointment)
}

// ListAppointments returns the caller's appointments by start time.
func (h *CalendarHandler) ListAppointments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	appointments, err := h.calendarService.ListAppointments(userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, appointments)
}

// UpdateAppointment patches an appointment.
func (h *CalendarHandler) UpdateAppointment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.calendarService.UpdateAppointment(userID, appointmentID, services.UpdateEventInput{
		Title:    req.Title,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Location: req.Location,
	}); err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondID(c, http.StatusOK, appointmentID)
}

// DeleteAppointment removes an appointment.
func (h *CalendarHandler) DeleteAppointment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.calendarService.DeleteAppointment(userID, appointmentID); err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondID(c, http.StatusOK, appointmentID)
}
