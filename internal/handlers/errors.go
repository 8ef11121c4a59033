package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tracker-api/internal/authz"
	"github.com/yukikurage/tracker-api/internal/constants"
	apierrors "github.com/yukikurage/tracker-api/internal/errors"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/middleware"
	"github.com/yukikurage/tracker-api/internal/services"
	"github.com/yukikurage/tracker-api/internal/utils"
)

var sentinelCodes = []struct {
	err  error
	code string
}{
	{services.ErrEmailRequired, apierrors.ErrCodeEmailRequired},
	{services.ErrEmailTaken, apierrors.ErrCodeEmailExists},
	{services.ErrUsernameTaken, apierrors.ErrCodeUsernameExists},
	{services.ErrInvalidCredentials, apierrors.ErrCodeInvalidCredentials},
	{services.ErrInvalidCredential, apierrors.ErrCodeInvalidCredential},
	{services.ErrSessionRevoked, apierrors.ErrCodeSessionRevoked},
	{services.ErrUserNotFound, apierrors.ErrCodeUserNotFound},
	{services.ErrProjectNotFound, apierrors.ErrCodeProjectNotFound},
	{services.ErrTaskNotFound, apierrors.ErrCodeTaskNotFound},
	{services.ErrLogTimeNotFound, apierrors.ErrCodeModelNotFound},
	{services.ErrMemberNotFound, apierrors.ErrCodeMemberNotFound},
	{services.ErrTargetVersionNotFound, apierrors.ErrCodeTargetVersionNotFound},
	{services.ErrInvalidProjectName, apierrors.ErrCodeInvalidInput},
	{services.ErrTitleRequired, apierrors.ErrCodeInvalidInput},
	{services.ErrTextRequired, apierrors.ErrCodeInvalidInput},
	{services.ErrNameRequired, apierrors.ErrCodeInvalidInput},
	{services.ErrAINoTasksGenerated, apierrors.ErrCodeInvalidInput},
	{services.ErrAINoValidTasks, apierrors.ErrCodeInvalidInput},
	{services.ErrAIServiceNotConfigured, apierrors.ErrCodeServiceUnavailable},
}

// respondError writes the error envelope for err. Denials keep the code the
// authorizer chose. Anything unrecognised is logged and reported as UNKNOWN.
func respondError(c *gin.Context, log logging.Logger, err error) {
	var (
		denial   *authz.Denial
		fieldErr *utils.FieldError
		inputErr *services.InputError
	)
	switch {
	case errors.As(err, &denial):
		apierrors.Respond(c, apierrors.NewAPIError(denial.Code, denial.Message))
		return
	case errors.As(err, &fieldErr):
		apierrors.FieldInvalid(c, fieldErr.Fields)
		return
	case errors.As(err, &inputErr):
		apierrors.Respond(c, apierrors.NewAPIError(inputErr.Code, inputErr.Message))
		return
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.Respond(c, apierrors.NewAPIError(apierrors.ErrCodePasswordTooShort,
			fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength)))
		return
	}

	for _, s := range sentinelCodes {
		if errors.Is(err, s.err) {
			apierrors.Respond(c, apierrors.NewAPIError(s.code, s.err.Error()))
			return
		}
	}

	log.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	apierrors.InternalError(c)
}

// requireIdentity returns the authenticated caller or answers 401.
func requireIdentity(c *gin.Context) (authz.Identity, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return id, ok
}

// pathID returns the id path parameter or answers 400.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, ok := middleware.GetIDParam(c, name)
	if !ok {
		apierrors.BadRequest(c, "Invalid "+name)
	}
	return id, ok
}

// bindUpdate decodes a PATCH body into a field map.
func bindUpdate(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return nil, false
	}
	return body, true
}
