package repository

import (
	"context"

	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/utils"
)

// UserRepository defines the interface for user and session data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Update saves all user columns
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user together with their tokens and memberships
	Delete(ctx context.Context, id uint64) error

	// AddToken stores a newly issued session token
	AddToken(ctx context.Context, userID uint64, token string) error

	// HasToken reports whether token is an active session of userID
	HasToken(ctx context.Context, userID uint64, token string) (bool, error)

	// RemoveToken drops one session token, leaving the others untouched
	RemoveToken(ctx context.Context, userID uint64, token string) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	// MemberID limits the result to projects the user belongs to
	MemberID *uint64
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id uint64) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, error)

	// AddMember inserts a membership row. A duplicate (project, user) pair
	// fails with gorm.ErrDuplicatedKey.
	AddMember(ctx context.Context, member *models.ProjectMember) error

	// RemoveMember deletes a membership row and reports whether one existed
	RemoveMember(ctx context.Context, projectID, userID uint64) (bool, error)

	// ListMembers lists the members of a project with their user preloaded
	ListMembers(ctx context.Context, projectID uint64) ([]models.ProjectMember, error)

	// MemberRole returns the role of userID in projectID
	MemberRole(ctx context.Context, projectID, userID uint64) (models.MemberRole, bool, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID  *uint64
	AssigneeID *uint64
	Status     *models.TaskStatus
	Pagination utils.PaginationParams
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id uint64) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)
}

// LogTimeFilter holds filtering options for listing time logs
type LogTimeFilter struct {
	ProjectID  *uint64
	TaskID     *uint64
	UserID     *uint64
	Pagination utils.PaginationParams
}

// LogTimeRepository defines the interface for time log data access
type LogTimeRepository interface {
	Create(ctx context.Context, log *models.LogTime) error
	FindByID(ctx context.Context, id uint64) (*models.LogTime, error)
	Update(ctx context.Context, log *models.LogTime) error

	// Delete soft deletes a time log
	Delete(ctx context.Context, id uint64) error

	List(ctx context.Context, filter LogTimeFilter) ([]models.LogTime, int64, error)
}

// CatalogRepository defines the interface for project target versions and tags
type CatalogRepository interface {
	CreateTargetVersion(ctx context.Context, version *models.TargetVersion) error
	FindTargetVersion(ctx context.Context, id uint64) (*models.TargetVersion, error)
	ListTargetVersions(ctx context.Context, projectID uint64) ([]models.TargetVersion, error)
	CreateTag(ctx context.Context, tag *models.Tag) error
	ListTags(ctx context.Context, projectID uint64) ([]models.Tag, error)
}
