package utils

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Updatable fields per resource.
var (
	ProjectUpdateFields = []string{"name", "startDate", "endDate"}
	TaskUpdateFields    = []string{"title", "status", "description", "assignee", "priority", "targetVersion", "estimate", "tag", "type"}
	LogTimeUpdateFields = []string{"time", "date", "note"}
	UserUpdateFields    = []string{"username", "email", "password", "phone_number", "firstName", "lastName"}
)

// FieldError lists the keys of an update body that are not allowed.
type FieldError struct {
	Fields []string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid update fields: %s", strings.Join(e.Fields, ", "))
}

// ValidateUpdateFields rejects the whole body if any key is outside allowed.
// An empty body is rejected as well.
func ValidateUpdateFields(body map[string]any, allowed []string) error {
	if len(body) == 0 {
		return &FieldError{}
	}

	permitted := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		permitted[f] = struct{}{}
	}

	var bad []string
	for key := range body {
		if _, ok := permitted[key]; !ok {
			bad = append(bad, key)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return &FieldError{Fields: bad}
	}
	return nil
}

var ErrInvalidDate = errors.New("invalid date")

// ParseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
