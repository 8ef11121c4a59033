package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredential  = "INVALID_CREDENTIAL"
	ErrCodeSessionRevoked     = "SESSION_REVOKED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeProjectAccessDenied  = "PROJECT_ACCESS_DENIED"
	ErrCodeTaskAccessDenied     = "TASK_ACCESS_DENIED"
	ErrCodeTaskPermissionDenied = "TASK_PERMISSION_DENIED"
	ErrCodeAccessDenied         = "ACCESS_DENIED"
	ErrCodeAlreadyAdded         = "ALREADY_ADD"

	// Validation errors
	ErrCodeFieldInvalid         = "FIELD_INVALID"
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeEmailRequired        = "EMAIL_REQUIRED"
	ErrCodeEmailExists          = "EMAIL_EXIST"
	ErrCodeUsernameExists       = "USERNAME_EXIST"
	ErrCodePasswordTooShort     = "PASSWORD_TOO_SHORT"
	ErrCodeTaskAssigneeNotFound = "TASK_ASSIGNEE_NOT_FOUND"

	// Resource errors
	ErrCodeModelNotFound         = "MODEL_NOT_FOUND"
	ErrCodeProjectNotFound       = "PROJECT_NOT_FOUND"
	ErrCodeTaskNotFound          = "TASK_NOT_FOUND"
	ErrCodeUserNotFound          = "USER_NOT_FOUND"
	ErrCodeMemberNotFound        = "MEMBER_NOT_FOUND"
	ErrCodeTargetVersionNotFound = "TARGET_VERSION_NOT_FOUND"
	ErrCodeURLNotFound           = "URL_NOT_FOUND"

	// Service errors
	ErrCodeUnknown            = "UNKNOWN"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

var codeStatus = map[string]int{
	ErrCodeUnauthorized:          http.StatusUnauthorized,
	ErrCodeInvalidCredential:     http.StatusUnauthorized,
	ErrCodeSessionRevoked:        http.StatusUnauthorized,
	ErrCodeInvalidCredentials:    http.StatusUnauthorized,
	ErrCodeProjectAccessDenied:   http.StatusForbidden,
	ErrCodeTaskAccessDenied:      http.StatusForbidden,
	ErrCodeTaskPermissionDenied:  http.StatusForbidden,
	ErrCodeAccessDenied:          http.StatusForbidden,
	ErrCodeAlreadyAdded:          http.StatusForbidden,
	ErrCodeFieldInvalid:          http.StatusBadRequest,
	ErrCodeInvalidInput:          http.StatusBadRequest,
	ErrCodeEmailRequired:         http.StatusBadRequest,
	ErrCodeEmailExists:           http.StatusBadRequest,
	ErrCodeUsernameExists:        http.StatusBadRequest,
	ErrCodePasswordTooShort:      http.StatusBadRequest,
	ErrCodeTaskAssigneeNotFound:  http.StatusBadRequest,
	ErrCodeModelNotFound:         http.StatusNotFound,
	ErrCodeProjectNotFound:       http.StatusNotFound,
	ErrCodeTaskNotFound:          http.StatusNotFound,
	ErrCodeUserNotFound:          http.StatusNotFound,
	ErrCodeMemberNotFound:        http.StatusNotFound,
	ErrCodeTargetVersionNotFound: http.StatusNotFound,
	ErrCodeURLNotFound:           http.StatusNotFound,
	ErrCodeUnknown:               http.StatusInternalServerError,
	ErrCodeServiceUnavailable:    http.StatusServiceUnavailable,
}

// StatusForCode returns the HTTP status for an error code.
//
// Denials raised by the authorizer are not all listed here; any code this
// table does not know is treated as a 403.
func StatusForCode(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusForbidden
}

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Respond sends err with the status registered for its code.
func Respond(c *gin.Context, err *APIError) {
	RespondWithError(c, StatusForCode(err.Code), err)
}

// Abort sends err and stops the handler chain. Used by middleware.
func Abort(c *gin.Context, err *APIError) {
	c.AbortWithStatusJSON(StatusForCode(err.Code), err)
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	Respond(c, NewAPIError(ErrCodeUnauthorized, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	Respond(c, NewAPIError(ErrCodeInvalidInput, message))
}

// FieldInvalid sends a 400 response listing the rejected fields
func FieldInvalid(c *gin.Context, fields []string) {
	Respond(c, NewAPIErrorWithDetails(ErrCodeFieldInvalid, "Invalid updates", fields))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context) {
	Respond(c, NewAPIError(ErrCodeUnknown, "Internal server error"))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	Respond(c, NewAPIError(ErrCodeServiceUnavailable, message))
}

// URLNotFound is the fallback for unknown routes
func URLNotFound(c *gin.Context) {
	Respond(c, NewAPIError(ErrCodeURLNotFound, "URL Not found"))
}
