package dto

import (
	"time"

	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        models.TaskStatus   `json:"status"`
	Priority      models.TaskPriority `json:"priority"`
	Assignee      uint64              `json:"assignee"`
	AssigneeUser  *UserSummaryDTO     `json:"assigneeUser,omitempty"`
	ProjectID     uint64              `json:"projectId"`
	TargetVersion *uint64             `json:"targetVersion"`
	Estimate      *float64            `json:"estimate"`
	Tag           string              `json:"tag"`
	Type          string              `json:"type"`
	CreatedBy     uint64              `json:"createdBy"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        task.Status,
		Priority:      task.Priority,
		Assignee:      task.AssigneeID,
		AssigneeUser:  ToUserSummaryDTO(task.Assignee),
		ProjectID:     task.ProjectID,
		TargetVersion: task.TargetVersionID,
		Estimate:      task.Estimate,
		Tag:           task.Tag,
		Type:          task.Type,
		CreatedBy:     task.CreatedByID,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return TaskListResponse{
		Tasks:      items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
