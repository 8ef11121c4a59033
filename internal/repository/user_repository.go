package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/tracker-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrDeleteTokens is returned when removing a user's sessions fails inside the delete transaction.
	ErrDeleteTokens = errors.New("user repository: delete tokens failed")
	// ErrDeleteMemberships is returned when removing a user's memberships fails inside the delete transaction.
	ErrDeleteMemberships = errors.New("user repository: delete memberships failed")
	// ErrDeleteUser is returned when removing the user row fails inside the delete transaction.
	ErrDeleteUser = errors.New("user repository: delete user failed")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes the user, their sessions and their memberships atomically.
// Tasks and time logs keep pointing at the deleted id.
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserToken{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteTokens, err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteMemberships, err)
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrDeleteUser, res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormUserRepository) AddToken(ctx context.Context, userID uint64, token string) error {
	return r.db.WithContext(ctx).Create(&models.UserToken{UserID: userID, Token: token}).Error
}

func (r *GormUserRepository) HasToken(ctx context.Context, userID uint64, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserToken{}).
		Where("user_id = ? AND token = ?", userID, token).
		Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepository) RemoveToken(ctx context.Context, userID uint64, token string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.UserToken{}).Error
}
