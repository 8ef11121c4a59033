package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/tracker-api/internal/authz"
	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/repository"
)

var ErrNameRequired = errors.New("name is required")

// CatalogService manages the target versions and tags of a project.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	projectRepo repository.ProjectRepository
	authorizer  *authz.Authorizer
}

func NewCatalogService(catalogRepo repository.CatalogRepository, projectRepo repository.ProjectRepository, authorizer *authz.Authorizer) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		projectRepo: projectRepo,
		authorizer:  authorizer,
	}
}

// TagInput represents a tag to create.
type TagInput struct {
	Name      string
	Color     string
	TextColor string
}

func (s *CatalogService) CreateTargetVersion(ctx context.Context, id authz.Identity, projectID uint64, name string) (*models.TargetVersion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := s.authorize(ctx, id, authz.ResourceTargetVersion, authz.ActionCreate, projectID); err != nil {
		return nil, err
	}

	version := &models.TargetVersion{Name: name, ProjectID: projectID}
	if err := s.catalogRepo.CreateTargetVersion(ctx, version); err != nil {
		return nil, fmt.Errorf("failed to create target version: %w", err)
	}
	return version, nil
}

func (s *CatalogService) ListTargetVersions(ctx context.Context, id authz.Identity, projectID uint64) ([]models.TargetVersion, error) {
	if err := s.authorize(ctx, id, authz.ResourceTargetVersion, authz.ActionList, projectID); err != nil {
		return nil, err
	}

	versions, err := s.catalogRepo.ListTargetVersions(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list target versions: %w", err)
	}
	return versions, nil
}

func (s *CatalogService) CreateTag(ctx context.Context, id authz.Identity, projectID uint64, input TagInput) (*models.Tag, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := s.authorize(ctx, id, authz.ResourceTag, authz.ActionCreate, projectID); err != nil {
		return nil, err
	}

	tag := &models.Tag{
		Name:      name,
		Color:     strings.TrimSpace(input.Color),
		TextColor: strings.TrimSpace(input.TextColor),
		ProjectID: projectID,
	}
	if err := s.catalogRepo.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

func (s *CatalogService) ListTags(ctx context.Context, id authz.Identity, projectID uint64) ([]models.Tag, error) {
	if err := s.authorize(ctx, id, authz.ResourceTag, authz.ActionList, projectID); err != nil {
		return nil, err
	}

	tags, err := s.catalogRepo.ListTags(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// authorize resolves the project first so a missing project reads as not
// found rather than as a denial.
func (s *CatalogService) authorize(ctx context.Context, id authz.Identity, res authz.Resource, act authz.Action, projectID uint64) error {
	project, err := findProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return err
	}
	return s.authorizer.Authorize(ctx, id, res, act, authz.Target{ProjectID: project.ID})
}
