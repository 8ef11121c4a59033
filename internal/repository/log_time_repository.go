package repository

import (
	"context"

	"github.com/yukikurage/tracker-api/internal/database"
	"github.com/yukikurage/tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormLogTimeRepository is a GORM implementation of LogTimeRepository
type GormLogTimeRepository struct {
	db *gorm.DB
}

// NewLogTimeRepository creates a new LogTimeRepository
func NewLogTimeRepository(db *gorm.DB) LogTimeRepository {
	return &GormLogTimeRepository{db: db}
}

func (r *GormLogTimeRepository) Create(ctx context.Context, log *models.LogTime) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *GormLogTimeRepository) FindByID(ctx context.Context, id uint64) (*models.LogTime, error) {
	var log models.LogTime
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *GormLogTimeRepository) Update(ctx context.Context, log *models.LogTime) error {
	return r.db.WithContext(ctx).Omit("User", "Task").Save(log).Error
}

func (r *GormLogTimeRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.LogTime{}, id).Error
}

func (r *GormLogTimeRepository) List(ctx context.Context, filter LogTimeFilter) ([]models.LogTime, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LogTime{})

	if filter.ProjectID != nil {
		query = query.Where("log_times.project_id = ?", *filter.ProjectID)
	}
	if filter.TaskID != nil {
		query = query.Where("log_times.task_id = ?", *filter.TaskID)
	}
	if filter.UserID != nil {
		query = query.Where("log_times.user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("log_times.date DESC").Order("log_times.id DESC")
	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	logs := []models.LogTime{}
	if err := listQuery.Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
