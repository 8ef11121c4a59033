package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tracker-api/internal/constants"
	"github.com/yukikurage/tracker-api/internal/dto"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/middleware"
	"github.com/yukikurage/tracker-api/internal/services"
)

// SiteHandler serves public site information.
type SiteHandler struct {
	authService *services.AuthService
	siteName    string
	log         logging.Logger
}

func NewSiteHandler(authService *services.AuthService, siteName string, log logging.Logger) *SiteHandler {
	return &SiteHandler{authService: authService, siteName: siteName, log: log}
}

// GetSite answers anonymous callers too. When a token was presented the
// caller's user record is included.
func (h *SiteHandler) GetSite(c *gin.Context) {
	resp := gin.H{
		"name":    h.siteName,
		"version": constants.SiteVersion,
	}

	if id, ok := middleware.GetIdentity(c); ok {
		user, err := h.authService.GetUser(c.Request.Context(), id.UserID)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		resp["user"] = dto.ToUserDTO(*user)
	}

	c.JSON(http.StatusOK, resp)
}
