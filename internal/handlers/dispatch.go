package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apierrors "github.com/ryotashiba/project-management-api/internal/errors"
	"github.com/ryotashiba/project-management-api/internal/middleware"
	"github.com/ryotashiba/project-management-api/internal/services"
)

// DispatchHandler forwards AI prompts to the inference server.
type DispatchHandler struct {
	dispatcher *services.Dispatcher
	log        zerolog.Logger
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(dispatcher *services.Dispatcher, log zerolog.Logger) *DispatchHandler {
	return &DispatchHandler{
		dispatcher: dispatcher,
		log:        log,
	}
}

// Dispatch resolves the agent type to a model and forwards the prompt.
func (h *DispatchHandler) Dispatch(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type DispatchRequest struct {
		AgentType string `json:"agent_type" binding:"required"`
		Prompt    string `json:"prompt" binding:"required"`
	}

	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.dispatcher.Dispatch(c.Request.Context(), req.AgentType, req.Prompt)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	apierrors.RespondData(c, http.StatusOK, gin.H{
		"agent_type": req.AgentType,
		"response":   response,
	})
}
