package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/tracker-api/internal/errors"
)

const paramKeyPrefix = "param_"

// RequireIDParam parses the named path parameter as a positive integer id and
// stores it for GetIDParam. Malformed ids are rejected with 400.
func RequireIDParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(name), 10, 64)
		if err != nil || id == 0 {
			apierrors.Abort(c, apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, "Invalid "+name))
			return
		}
		c.Set(paramKeyPrefix+name, id)
		c.Next()
	}
}

// GetIDParam returns an id stored by RequireIDParam, falling back to parsing
// the raw path parameter.
func GetIDParam(c *gin.Context, name string) (uint64, bool) {
	if v, ok := c.Get(paramKeyPrefix + name); ok {
		id, ok := v.(uint64)
		return id, ok
	}
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
