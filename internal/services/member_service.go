package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/tracker-api/internal/authz"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/repository"
	"gorm.io/gorm"
)

// MemberService manages project memberships.
type MemberService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	authorizer  *authz.Authorizer
	log         logging.Logger
}

// NewMemberService creates a new MemberService.
func NewMemberService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, authorizer *authz.Authorizer, log logging.Logger) *MemberService {
	return &MemberService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
		log:         log,
	}
}

// AddMemberInput represents a membership to create.
type AddMemberInput struct {
	UserID uint64
	Role   models.MemberRole
}

// AddMember adds a user to a project. A user belongs to a project at most
// once; a second add fails with ALREADY_ADD even when two requests race.
func (s *MemberService) AddMember(ctx context.Context, id authz.Identity, projectID uint64, input AddMemberInput) (*models.ProjectMember, error) {
	if input.UserID == 0 {
		return nil, invalidInput("userId is required")
	}
	if input.Role == "" {
		input.Role = models.MemberRoleDev
	}
	if !input.Role.Valid() {
		return nil, invalidField("role must be one of manager, dev, qc")
	}

	project, err := findProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceMember, authz.ActionCreate, authz.Target{ProjectID: project.ID}); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.authorizer.EnsureNotMember(ctx, project.ID, user.ID); err != nil {
		return nil, err
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      input.Role,
		JoinedAt:  time.Now(),
	}
	if err := s.projectRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, authz.AlreadyAdded()
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	member.User = *user

	s.log.Info(ctx, "member added", "project_id", project.ID, "user_id", user.ID, "role", member.Role)
	return member, nil
}

// RemoveMember removes a user from a project.
func (s *MemberService) RemoveMember(ctx context.Context, id authz.Identity, projectID, userID uint64) error {
	if userID == 0 {
		return invalidInput("userId is required")
	}

	project, err := findProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceMember, authz.ActionDelete, authz.Target{ProjectID: project.ID}); err != nil {
		return err
	}

	removed, err := s.projectRepo.RemoveMember(ctx, project.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if !removed {
		return ErrMemberNotFound
	}

	s.log.Info(ctx, "member removed", "project_id", project.ID, "user_id", userID)
	return nil
}

// ListMembers lists the members of a project the caller may read.
func (s *MemberService) ListMembers(ctx context.Context, id authz.Identity, projectID uint64) ([]models.ProjectMember, error) {
	project, err := findProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceMember, authz.ActionList, authz.Target{ProjectID: project.ID}); err != nil {
		return nil, err
	}

	members, err := s.projectRepo.ListMembers(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}
