package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/tracker-api/internal/authz"
	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/repository"
	"github.com/yukikurage/tracker-api/internal/utils"
	"gorm.io/gorm"
)

// LogTimeService records hours spent on tasks.
type LogTimeService struct {
	logRepo    repository.LogTimeRepository
	taskRepo   repository.TaskRepository
	authorizer *authz.Authorizer
}

// NewLogTimeService creates a new LogTimeService.
func NewLogTimeService(logRepo repository.LogTimeRepository, taskRepo repository.TaskRepository, authorizer *authz.Authorizer) *LogTimeService {
	return &LogTimeService{
		logRepo:    logRepo,
		taskRepo:   taskRepo,
		authorizer: authorizer,
	}
}

// CreateLogTimeInput represents a time log to record for the caller.
type CreateLogTimeInput struct {
	TaskID uint64
	Time   float64
	Date   string
	Note   string
}

// ListLogTimesInput represents filters for listing time logs.
type ListLogTimesInput struct {
	ProjectID  *uint64
	TaskID     *uint64
	Pagination utils.PaginationParams
}

// CreateLogTime records time for the caller on a task. The caller must belong
// to the task's project, admins included.
func (s *LogTimeService) CreateLogTime(ctx context.Context, id authz.Identity, input CreateLogTimeInput) (*models.LogTime, error) {
	if input.TaskID == 0 {
		return nil, invalidInput("taskId is required")
	}
	if input.Time <= 0 {
		return nil, invalidInput("time must be greater than zero")
	}
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return nil, invalidInput("date must be a date (YYYY-MM-DD or RFC 3339)")
	}

	task, err := s.taskRepo.FindByID(ctx, input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceLogTime, authz.ActionCreate, authz.Target{ProjectID: task.ProjectID}); err != nil {
		return nil, err
	}

	log := &models.LogTime{
		UserID:    id.UserID,
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		Time:      input.Time,
		Date:      date,
		Note:      strings.TrimSpace(input.Note),
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create time log: %w", err)
	}
	return log, nil
}

// GetLogTime returns a time log visible to its author and to members of its
// project.
func (s *LogTimeService) GetLogTime(ctx context.Context, id authz.Identity, logID uint64) (*models.LogTime, error) {
	log, err := s.findLogTime(ctx, logID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceLogTime, authz.ActionRead, logTarget(log)); err != nil {
		return nil, err
	}
	return log, nil
}

// UpdateLogTime applies a partial update to a time log.
func (s *LogTimeService) UpdateLogTime(ctx context.Context, id authz.Identity, logID uint64, body map[string]any) (*models.LogTime, error) {
	if err := utils.ValidateUpdateFields(body, utils.LogTimeUpdateFields); err != nil {
		return nil, err
	}

	log, err := s.findLogTime(ctx, logID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceLogTime, authz.ActionUpdate, logTarget(log)); err != nil {
		return nil, err
	}

	for key := range body {
		switch key {
		case "time":
			hours, err := numberField(body, key)
			if err != nil {
				return nil, err
			}
			if hours <= 0 {
				return nil, invalidInput("time must be greater than zero")
			}
			log.Time = hours
		case "date":
			raw, err := stringField(body, key)
			if err != nil {
				return nil, err
			}
			date, err := utils.ParseDate(raw)
			if err != nil {
				return nil, invalidInput("date must be a date (YYYY-MM-DD or RFC 3339)")
			}
			log.Date = date
		case "note":
			note, err := optionalString(body, key)
			if err != nil {
				return nil, err
			}
			log.Note = strings.TrimSpace(note)
		}
	}

	if err := s.logRepo.Update(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to update time log: %w", err)
	}
	return log, nil
}

// DeleteLogTime soft deletes a time log.
func (s *LogTimeService) DeleteLogTime(ctx context.Context, id authz.Identity, logID uint64) error {
	log, err := s.findLogTime(ctx, logID)
	if err != nil {
		return err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceLogTime, authz.ActionDelete, logTarget(log)); err != nil {
		return err
	}

	if err := s.logRepo.Delete(ctx, log.ID); err != nil {
		return fmt.Errorf("failed to delete time log: %w", err)
	}
	return nil
}

// ListLogTimes lists time logs. With a project filter the caller must belong
// to the project and sees every log in it. Without one, non-admins see only
// their own logs.
func (s *LogTimeService) ListLogTimes(ctx context.Context, id authz.Identity, input ListLogTimesInput) ([]models.LogTime, int64, error) {
	filter := repository.LogTimeFilter{
		ProjectID:  input.ProjectID,
		TaskID:     input.TaskID,
		Pagination: input.Pagination,
	}

	if input.ProjectID != nil {
		if err := s.authorizer.Authorize(ctx, id, authz.ResourceLogTime, authz.ActionList, authz.Target{ProjectID: *input.ProjectID}); err != nil {
			return nil, 0, err
		}
	} else if scope := authz.ListScope(id); !scope.All {
		filter.UserID = &scope.UserID
	}

	logs, total, err := s.logRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time logs: %w", err)
	}
	return logs, total, nil
}

func (s *LogTimeService) findLogTime(ctx context.Context, logID uint64) (*models.LogTime, error) {
	log, err := s.logRepo.FindByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogTimeNotFound
		}
		return nil, fmt.Errorf("failed to find time log: %w", err)
	}
	return log, nil
}

func logTarget(log *models.LogTime) authz.Target {
	return authz.Target{ProjectID: log.ProjectID, OwnerID: log.UserID}
}
