package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/tracker-api/internal/authz"
	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/repository"
	"github.com/yukikurage/tracker-api/internal/utils"
	"gorm.io/gorm"
)

var ErrInvalidProjectName = errors.New("project name cannot be empty")

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	authorizer  *authz.Authorizer
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, authorizer *authz.Authorizer) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		authorizer:  authorizer,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name      string
	StartDate string
	EndDate   string
}

// CreateProject creates a project. Only admins may do so; the creator does not
// become a member implicitly.
func (s *ProjectService) CreateProject(ctx context.Context, id authz.Identity, input CreateProjectInput) (*models.Project, error) {
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceProject, authz.ActionCreate, authz.Target{}); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}

	project := &models.Project{Name: name, CreatedByID: id.UserID}
	var err error
	if project.StartDate, err = optionalDate("startDate", input.StartDate); err != nil {
		return nil, err
	}
	if project.EndDate, err = optionalDate("endDate", input.EndDate); err != nil {
		return nil, err
	}
	if err := checkDateRange(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// ListProjects returns every project for admins and the caller's projects
// otherwise.
func (s *ProjectService) ListProjects(ctx context.Context, id authz.Identity) ([]models.Project, error) {
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceProject, authz.ActionList, authz.Target{}); err != nil {
		return nil, err
	}

	var filter repository.ProjectFilter
	if scope := authz.ListScope(id); !scope.All {
		filter.MemberID = &scope.UserID
	}

	projects, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project the caller may read.
func (s *ProjectService) GetProject(ctx context.Context, id authz.Identity, projectID uint64) (*models.Project, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceProject, authz.ActionRead, authz.Target{ProjectID: project.ID}); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateProject applies a partial update. The body is checked against the
// allowed fields before anything else.
func (s *ProjectService) UpdateProject(ctx context.Context, id authz.Identity, projectID uint64, body map[string]any) (*models.Project, error) {
	if err := utils.ValidateUpdateFields(body, utils.ProjectUpdateFields); err != nil {
		return nil, err
	}

	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceProject, authz.ActionUpdate, authz.Target{ProjectID: project.ID}); err != nil {
		return nil, err
	}

	for key := range body {
		switch key {
		case "name":
			name, err := stringField(body, key)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(name) == "" {
				return nil, ErrInvalidProjectName
			}
			project.Name = strings.TrimSpace(name)
		case "startDate", "endDate":
			raw, err := optionalString(body, key)
			if err != nil {
				return nil, err
			}
			date, err := optionalDate(key, raw)
			if err != nil {
				return nil, err
			}
			if key == "startDate" {
				project.StartDate = date
			} else {
				project.EndDate = date
			}
		}
	}
	if err := checkDateRange(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) findProject(ctx context.Context, projectID uint64) (*models.Project, error) {
	return findProject(ctx, s.projectRepo, projectID)
}

func findProject(ctx context.Context, repo repository.ProjectRepository, projectID uint64) (*models.Project, error) {
	project, err := repo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// optionalDate parses raw, returning nil for an empty value.
func optionalDate(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return nil, invalidInput("%s must be a date (YYYY-MM-DD or RFC 3339)", field)
	}
	return &t, nil
}

func checkDateRange(p *models.Project) error {
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return invalidInput("endDate must not be before startDate")
	}
	return nil
}
