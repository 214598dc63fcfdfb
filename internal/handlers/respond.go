package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apierrors "github.com/ryotashiba/project-management-api/internal/errors"
	"github.com/ryotashiba/project-management-api/internal/repository"
	"github.com/ryotashiba/project-management-api/internal/services"
)

// validationErrs are service sentinels that map to a 400.
var validationErrs = []error{
	services.ErrEmailRequired,
	services.ErrPasswordTooShort,
	services.ErrOrganizationNameRequired,
	services.ErrInvalidWorkHours,
	services.ErrProjectNameRequired,
	services.ErrInvalidProjectStatus,
	services.ErrNoFieldsToUpdate,
	services.ErrTitleRequired,
	services.ErrInvalidTaskStatus,
	services.ErrInvalidTaskPriority,
	services.ErrCommentBodyRequired,
	services.ErrSprintNameRequired,
	services.ErrInvalidSprintStatus,
	services.ErrSprintDatesInverted,
	services.ErrMinutesNotPositive,
	services.ErrDateRequired,
	services.ErrEventTitleRequired,
	services.ErrEventTimesInverted,
	services.ErrSettingKeyRequired,
	services.ErrProviderRequired,
	services.ErrUnknownAgentType,
	services.ErrPromptRequired,
}

// conflictErrs are service sentinels that map to a 409.
var conflictErrs = []error{
	services.ErrEmailTaken,
	services.ErrAlreadyInOrganization,
	services.ErrInviteeAlreadyMember,
	services.ErrOwnerCannotLeave,
}

// respondError maps service and repository sentinels to HTTP responses.
// Anything unrecognized is logged with its cause and answered as a bare 500;
// clients never see internals and never learn whether an out-of-scope row
// exists.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.Unauthorized(c, "Unknown user")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, services.ErrNotInOrganization),
		errors.Is(err, services.ErrInviteeNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, services.ErrNotOrganizationOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrDispatchNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrDispatchFailed):
		apierrors.UpstreamError(c, "")
	case matchAny(err, validationErrs):
		apierrors.BadRequest(c, err.Error())
	case matchAny(err, conflictErrs):
		apierrors.Conflict(c, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		apierrors.InternalError(c, "")
	}
}

// parseIDParam reads a numeric path parameter. A malformed id answers 400
// and reports false.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func matchAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
