package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	apierrors "github.com/yukikurage/tracker-api/internal/errors"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrProjectNotFound        = errors.New("project not found")
	ErrTaskNotFound           = errors.New("task not found")
	ErrLogTimeNotFound        = errors.New("time log not found")
	ErrMemberNotFound         = errors.New("project member not found")
	ErrTargetVersionNotFound  = errors.New("target version not found")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
)

// InputError is a rejected request value. Code is FIELD_INVALID for values
// outside an allowed set and INVALID_INPUT otherwise.
type InputError struct {
	Code    string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func invalidInput(format string, args ...any) error {
	return &InputError{Code: apierrors.ErrCodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func invalidField(format string, args ...any) error {
	return &InputError{Code: apierrors.ErrCodeFieldInvalid, Message: fmt.Sprintf(format, args...)}
}

// Helpers for PATCH bodies decoded into map[string]any.

func stringField(body map[string]any, key string) (string, error) {
	s, ok := body[key].(string)
	if !ok {
		return "", invalidInput("%s must be a string", key)
	}
	return s, nil
}

// optionalString treats null as the empty string.
func optionalString(body map[string]any, key string) (string, error) {
	if body[key] == nil {
		return "", nil
	}
	return stringField(body, key)
}

func numberField(body map[string]any, key string) (float64, error) {
	switch v := body[key].(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return f, nil
		}
	}
	return 0, invalidInput("%s must be a number", key)
}

func idField(body map[string]any, key string) (uint64, error) {
	f, err := numberField(body, key)
	if err != nil || f <= 0 || f > math.MaxInt64 || f != math.Trunc(f) {
		return 0, invalidInput("%s must be a positive integer id", key)
	}
	return uint64(f), nil
}
