package models

import "time"

type TaskStatus string

const (
	TaskStatusAssigned      TaskStatus = "assigned"
	TaskStatusDelayed       TaskStatus = "delayed"
	TaskStatusInProgress    TaskStatus = "inprogress"
	TaskStatusToBeValidated TaskStatus = "toBeValidated"
	TaskStatusToBeTested    TaskStatus = "toBeTested"
	TaskStatusToBeMerged    TaskStatus = "toBeMerged"
	TaskStatusResolved      TaskStatus = "resolved"
	TaskStatusDeleted       TaskStatus = "deleted"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusAssigned, TaskStatusDelayed, TaskStatusInProgress,
		TaskStatusToBeValidated, TaskStatusToBeTested, TaskStatusToBeMerged,
		TaskStatusResolved, TaskStatusDeleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow       TaskPriority = "low"
	TaskPriorityMedium    TaskPriority = "medium"
	TaskPriorityHigh      TaskPriority = "high"
	TaskPriorityExtraHigh TaskPriority = "extra_high"
)

// Valid reports whether p is a known priority. Empty means unset.
func (p TaskPriority) Valid() bool {
	switch p {
	case "", TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityExtraHigh:
		return true
	}
	return false
}

type Task struct {
	ID              uint64       `gorm:"primarykey" json:"id"`
	Title           string       `gorm:"not null" json:"title"`
	Description     string       `gorm:"type:text" json:"description"`
	Status          TaskStatus   `gorm:"type:varchar(20);not null;default:'assigned'" json:"status"`
	Priority        TaskPriority `gorm:"type:varchar(20)" json:"priority"`
	AssigneeID      uint64       `gorm:"not null" json:"assignee"`
	ProjectID       uint64       `gorm:"not null" json:"projectId"`
	TargetVersionID *uint64      `json:"targetVersion"`
	Estimate        *float64     `json:"estimate"`
	Tag             string       `gorm:"type:varchar(100)" json:"tag"`
	Type            string       `gorm:"type:varchar(50)" json:"type"`
	CreatedByID     uint64       `gorm:"not null" json:"createdBy"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`

	// Relations
	Assignee User    `gorm:"foreignKey:AssigneeID" json:"-"`
	Project  Project `gorm:"foreignKey:ProjectID" json:"-"`
}
