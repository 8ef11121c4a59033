package models

import "time"

type Project struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	CreatedByID uint64     `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Members        []ProjectMember `gorm:"foreignKey:ProjectID" json:"-"`
	Tasks          []Task          `gorm:"foreignKey:ProjectID" json:"-"`
	TargetVersions []TargetVersion `gorm:"foreignKey:ProjectID" json:"-"`
	Tags           []Tag           `gorm:"foreignKey:ProjectID" json:"-"`
}

// TargetVersion is a release label tasks of the same project can point at.
type TargetVersion struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	ProjectID uint64    `gorm:"not null;index" json:"project"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Tag struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Color     string    `gorm:"type:varchar(20)" json:"color"`
	TextColor string    `gorm:"type:varchar(20)" json:"textColor"`
	ProjectID uint64    `gorm:"not null;index" json:"project"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
