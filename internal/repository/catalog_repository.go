package repository

import (
	"context"

	"github.com/yukikurage/tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormCatalogRepository is a GORM implementation of CatalogRepository
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) CreateTargetVersion(ctx context.Context, version *models.TargetVersion) error {
	return r.db.WithContext(ctx).Create(version).Error
}

func (r *GormCatalogRepository) FindTargetVersion(ctx context.Context, id uint64) (*models.TargetVersion, error) {
	var version models.TargetVersion
	if err := r.db.WithContext(ctx).First(&version, id).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *GormCatalogRepository) ListTargetVersions(ctx context.Context, projectID uint64) ([]models.TargetVersion, error) {
	versions := []models.TargetVersion{}
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("name ASC").Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *GormCatalogRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *GormCatalogRepository) ListTags(ctx context.Context, projectID uint64) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
