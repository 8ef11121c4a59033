package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tracker-api/internal/dto"
	apierrors "github.com/yukikurage/tracker-api/internal/errors"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/services"
	"github.com/yukikurage/tracker-api/internal/utils"
)

// LogTimeHandler handles time log requests
type LogTimeHandler struct {
	logTimeService *services.LogTimeService
	log            logging.Logger
}

func NewLogTimeHandler(logTimeService *services.LogTimeService, log logging.Logger) *LogTimeHandler {
	return &LogTimeHandler{
		logTimeService: logTimeService,
		log:            log,
	}
}

// CreateLogTime records time for the caller
func (h *LogTimeHandler) CreateLogTime(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	type CreateLogTimeRequest struct {
		TaskID uint64  `json:"taskId" binding:"required"`
		Time   float64 `json:"time"`
		Date   string  `json:"date"`
		Note   string  `json:"note"`
	}

	var req CreateLogTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.logTimeService.CreateLogTime(c.Request.Context(), id, services.CreateLogTimeInput{
		TaskID: req.TaskID,
		Time:   req.Time,
		Date:   req.Date,
		Note:   req.Note,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"logtime": dto.ToLogTimeDTO(*log)})
}

// ListLogTimes lists time logs
// Query parameters:
// - projectId: every log of a project the caller belongs to
// - taskId: logs of one task
// - page, limit: pagination
func (h *LogTimeHandler) ListLogTimes(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := queryID(c, "projectId")
	if !ok {
		return
	}
	taskID, ok := queryID(c, "taskId")
	if !ok {
		return
	}

	input := services.ListLogTimesInput{
		ProjectID:  projectID,
		TaskID:     taskID,
		Pagination: utils.GetPaginationParams(c),
	}
	logs, total, err := h.logTimeService.ListLogTimes(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLogTimeListResponse(logs, input.Pagination, total))
}

func (h *LogTimeHandler) GetLogTime(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	logID, ok := pathID(c, "id")
	if !ok {
		return
	}

	log, err := h.logTimeService.GetLogTime(c.Request.Context(), id, logID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logtime": dto.ToLogTimeDTO(*log)})
}

func (h *LogTimeHandler) UpdateLogTime(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	logID, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, ok := bindUpdate(c)
	if !ok {
		return
	}

	log, err := h.logTimeService.UpdateLogTime(c.Request.Context(), id, logID, body)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logtime": dto.ToLogTimeDTO(*log)})
}

func (h *LogTimeHandler) DeleteLogTime(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	logID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.logTimeService.DeleteLogTime(c.Request.Context(), id, logID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
