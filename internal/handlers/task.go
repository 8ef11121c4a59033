package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tracker-api/internal/dto"
	apierrors "github.com/yukikurage/tracker-api/internal/errors"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/services"
	"github.com/yukikurage/tracker-api/internal/utils"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService *services.TaskService
	log         logging.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService, log logging.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// ListTasks returns the caller's tasks (every task for admins)
// Query parameters:
// - status: filter by status
// - page: page number (default: 1)
// - limit: items per page (default: 20, max: 100)
func (h *TaskHandler) ListTasks(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	input := listTasksInput(c)
	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, input.Pagination, total))
}

// ListProjectTasks returns every task of a project
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	input := listTasksInput(c)
	tasks, total, err := h.taskService.ListProjectTasks(c.Request.Context(), id, projectID, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, input.Pagination, total))
}

func listTasksInput(c *gin.Context) services.ListTasksInput {
	input := services.ListTasksInput{Pagination: utils.GetPaginationParams(c)}
	if s := c.Query("status"); s != "" {
		status := models.TaskStatus(s)
		input.Status = &status
	}
	return input
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id, taskID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title         string              `json:"title"`
		Description   string              `json:"description"`
		Status        models.TaskStatus   `json:"status"`
		Priority      models.TaskPriority `json:"priority"`
		Assignee      uint64              `json:"assignee"`
		ProjectID     uint64              `json:"projectId" binding:"required"`
		TargetVersion *uint64             `json:"targetVersion"`
		Estimate      *float64            `json:"estimate"`
		Tag           string              `json:"tag"`
		Type          string              `json:"type"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), id, services.CreateTaskInput{
		ProjectID:       req.ProjectID,
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		Priority:        req.Priority,
		AssigneeID:      req.Assignee,
		TargetVersionID: req.TargetVersion,
		Estimate:        req.Estimate,
		Tag:             req.Tag,
		Type:            req.Type,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateTask applies a partial update
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, ok := bindUpdate(c)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, taskID, body)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// SuggestTasks drafts tasks for a project from free text
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type SuggestRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.taskService.SuggestTasks(c.Request.Context(), id, projectID, req.Text)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": drafts})
}

// queryID parses an optional id query parameter. It answers 400 and returns
// false when the value is malformed.
func queryID(c *gin.Context, key string) (*uint64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+key)
		return nil, false
	}
	return &id, true
}
