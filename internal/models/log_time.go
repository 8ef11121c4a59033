package models

import (
	"time"

	"gorm.io/gorm"
)

// LogTime records hours a user spent on a task. ProjectID is copied from the
// task on create so project-scoped listings need no join.
type LogTime struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	UserID    uint64         `gorm:"not null" json:"userId"`
	TaskID    uint64         `gorm:"not null" json:"taskId"`
	ProjectID uint64         `gorm:"not null" json:"projectId"`
	Time      float64        `gorm:"not null" json:"time"`
	Date      time.Time      `gorm:"not null" json:"date"`
	Note      string         `gorm:"type:text" json:"note"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
}
