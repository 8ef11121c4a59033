// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/tracker-api/internal/config"
	"github.com/yukikurage/tracker-api/internal/database"
	"github.com/yukikurage/tracker-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plain text password of every user made by CreateUser.
const Password = "supersecret"

// NewDB returns a migrated in-memory sqlite database closed at test end.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.LoadDefaults()
	cfg.DBDriver = "sqlite"
	cfg.DBPath = ":memory:"

	db, err := database.Connect(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		Role:         role,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateProject(t *testing.T, db *gorm.DB, name string, createdBy uint64) *models.Project {
	t.Helper()

	project := &models.Project{Name: name, CreatedByID: createdBy}
	require.NoError(t, db.Create(project).Error)
	return project
}

func AddMember(t *testing.T, db *gorm.DB, projectID, userID uint64, role models.MemberRole) {
	t.Helper()

	require.NoError(t, db.Create(&models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}).Error)
}

func CreateTask(t *testing.T, db *gorm.DB, title string, projectID, assigneeID uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:       title,
		Status:      models.TaskStatusAssigned,
		ProjectID:   projectID,
		AssigneeID:  assigneeID,
		CreatedByID: assigneeID,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func CreateLogTime(t *testing.T, db *gorm.DB, task *models.Task, userID uint64, hours float64) *models.LogTime {
	t.Helper()

	log := &models.LogTime{
		UserID:    userID,
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		Time:      hours,
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(log).Error)
	return log
}
