package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/tracker-api/internal/authz"
	"github.com/yukikurage/tracker-api/internal/constants"
	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/repository"
	"github.com/yukikurage/tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired  = errors.New("title is required")
	ErrTextRequired   = errors.New("text is required")
	ErrAINoValidTasks = errors.New("no valid tasks could be created from AI output")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	catalogRepo repository.CatalogRepository
	authorizer  *authz.Authorizer
	suggester   TaskSuggester
}

// NewTaskService creates a new TaskService. suggester may be nil when no AI
// backend is configured.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, catalogRepo repository.CatalogRepository, authorizer *authz.Authorizer, suggester TaskSuggester) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		catalogRepo: catalogRepo,
		authorizer:  authorizer,
		suggester:   suggester,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectID       uint64
	Title           string
	Description     string
	Status          models.TaskStatus
	Priority        models.TaskPriority
	AssigneeID      uint64
	TargetVersionID *uint64
	Estimate        *float64
	Tag             string
	Type            string
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status     *models.TaskStatus
	Pagination utils.PaginationParams
}

// CreateTask creates a task in a project the caller belongs to. The assignee
// defaults to the caller and must be a member of the project.
func (s *TaskService) CreateTask(ctx context.Context, id authz.Identity, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.ProjectID == 0 {
		return nil, invalidInput("project is required")
	}
	if input.Status == "" {
		input.Status = models.TaskStatusAssigned
	}
	if !input.Status.Valid() {
		return nil, invalidField("unknown task status %q", input.Status)
	}
	if !input.Priority.Valid() {
		return nil, invalidField("unknown task priority %q", input.Priority)
	}
	if input.Estimate != nil && *input.Estimate < 0 {
		return nil, invalidInput("estimate must not be negative")
	}

	project, err := findProject(ctx, s.projectRepo, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceTask, authz.ActionCreate, authz.Target{ProjectID: project.ID}); err != nil {
		return nil, err
	}

	assigneeID := input.AssigneeID
	if assigneeID == 0 {
		assigneeID = id.UserID
	}
	if err := s.authorizer.EnsureAssignable(ctx, project.ID, assigneeID); err != nil {
		return nil, err
	}
	if err := s.checkTargetVersion(ctx, project.ID, input.TargetVersionID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:           title,
		Description:     input.Description,
		Status:          input.Status,
		Priority:        input.Priority,
		AssigneeID:      assigneeID,
		ProjectID:       project.ID,
		TargetVersionID: input.TargetVersionID,
		Estimate:        input.Estimate,
		Tag:             strings.TrimSpace(input.Tag),
		Type:            strings.TrimSpace(input.Type),
		CreatedByID:     id.UserID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.findTask(ctx, task.ID)
}

// ListTasks returns the tasks visible to the caller: every task for admins,
// the tasks assigned to the caller otherwise.
func (s *TaskService) ListTasks(ctx context.Context, id authz.Identity, input ListTasksInput) ([]models.Task, int64, error) {
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceTask, authz.ActionList, authz.Target{}); err != nil {
		return nil, 0, err
	}
	if err := checkStatusFilter(input.Status); err != nil {
		return nil, 0, err
	}

	filter := repository.TaskFilter{Status: input.Status, Pagination: input.Pagination}
	if scope := authz.ListScope(id); !scope.All {
		filter.AssigneeID = &scope.UserID
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListProjectTasks returns every task of a project the caller may read.
func (s *TaskService) ListProjectTasks(ctx context.Context, id authz.Identity, projectID uint64, input ListTasksInput) ([]models.Task, int64, error) {
	if err := checkStatusFilter(input.Status); err != nil {
		return nil, 0, err
	}

	project, err := findProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceProject, authz.ActionRead, authz.Target{ProjectID: project.ID}); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.List(ctx, repository.TaskFilter{
		ProjectID:  &project.ID,
		Status:     input.Status,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask returns a task of a project the caller belongs to.
func (s *TaskService) GetTask(ctx context.Context, id authz.Identity, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceTask, authz.ActionRead, authz.Target{ProjectID: task.ProjectID}); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask applies a partial update. A new assignee must be a member of the
// task's project, for admins as well.
func (s *TaskService) UpdateTask(ctx context.Context, id authz.Identity, taskID uint64, body map[string]any) (*models.Task, error) {
	if err := utils.ValidateUpdateFields(body, utils.TaskUpdateFields); err != nil {
		return nil, err
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceTask, authz.ActionUpdate, authz.Target{ProjectID: task.ProjectID}); err != nil {
		return nil, err
	}

	if err := s.applyTaskUpdate(ctx, task, body); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return s.findTask(ctx, task.ID)
}

func (s *TaskService) applyTaskUpdate(ctx context.Context, task *models.Task, body map[string]any) error {
	for key := range body {
		switch key {
		case "title":
			title, err := stringField(body, key)
			if err != nil {
				return err
			}
			if strings.TrimSpace(title) == "" {
				return ErrTitleRequired
			}
			task.Title = strings.TrimSpace(title)
		case "description", "tag", "type":
			v, err := optionalString(body, key)
			if err != nil {
				return err
			}
			switch key {
			case "description":
				task.Description = v
			case "tag":
				task.Tag = strings.TrimSpace(v)
			default:
				task.Type = strings.TrimSpace(v)
			}
		case "status":
			v, err := stringField(body, key)
			if err != nil {
				return err
			}
			status := models.TaskStatus(v)
			if !status.Valid() {
				return invalidField("unknown task status %q", v)
			}
			task.Status = status
		case "priority":
			v, err := optionalString(body, key)
			if err != nil {
				return err
			}
			priority := models.TaskPriority(v)
			if !priority.Valid() {
				return invalidField("unknown task priority %q", v)
			}
			task.Priority = priority
		case "estimate":
			if body[key] == nil {
				task.Estimate = nil
				continue
			}
			estimate, err := numberField(body, key)
			if err != nil {
				return err
			}
			if estimate < 0 {
				return invalidInput("estimate must not be negative")
			}
			task.Estimate = &estimate
		case "targetVersion":
			if body[key] == nil {
				task.TargetVersionID = nil
				continue
			}
			versionID, err := idField(body, key)
			if err != nil {
				return err
			}
			if err := s.checkTargetVersion(ctx, task.ProjectID, &versionID); err != nil {
				return err
			}
			task.TargetVersionID = &versionID
		case "assignee":
			assigneeID, err := idField(body, key)
			if err != nil {
				return err
			}
			if assigneeID != task.AssigneeID {
				if err := s.authorizer.EnsureAssignable(ctx, task.ProjectID, assigneeID); err != nil {
					return err
				}
			}
			task.AssigneeID = assigneeID
			task.Assignee = models.User{}
		}
	}
	return nil
}

// SuggestTasks drafts tasks for a project with the AI backend. The drafts are
// returned to the caller and not stored.
func (s *TaskService) SuggestTasks(ctx context.Context, id authz.Identity, projectID uint64, text string) ([]SuggestedTask, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	project, err := findProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceTask, authz.ActionSuggest, authz.Target{ProjectID: project.ID}); err != nil {
		return nil, err
	}

	if s.suggester == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := s.suggester.SuggestTasks(ctx, project.Name, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}
	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		drafts = drafts[:constants.MaxAIGeneratedTasks]
	}

	valid := make([]SuggestedTask, 0, len(drafts))
	for _, d := range drafts {
		d.Title = strings.TrimSpace(d.Title)
		if d.Title == "" {
			continue
		}
		if !d.Priority.Valid() {
			d.Priority = ""
		}
		if d.Estimate != nil && *d.Estimate < 0 {
			d.Estimate = nil
		}
		valid = append(valid, d)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}
	return valid, nil
}

func (s *TaskService) findTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// checkTargetVersion requires versionID, when set, to belong to projectID.
func (s *TaskService) checkTargetVersion(ctx context.Context, projectID uint64, versionID *uint64) error {
	if versionID == nil {
		return nil
	}
	version, err := s.catalogRepo.FindTargetVersion(ctx, *versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTargetVersionNotFound
		}
		return fmt.Errorf("failed to find target version: %w", err)
	}
	if version.ProjectID != projectID {
		return ErrTargetVersionNotFound
	}
	return nil
}

func checkStatusFilter(status *models.TaskStatus) error {
	if status != nil && !status.Valid() {
		return invalidField("unknown task status %q", *status)
	}
	return nil
}
