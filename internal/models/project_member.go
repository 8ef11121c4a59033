package models

import "time"

type MemberRole string

const (
	MemberRoleManager MemberRole = "manager"
	MemberRoleDev     MemberRole = "dev"
	MemberRoleQC      MemberRole = "qc"
)

func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleManager, MemberRoleDev, MemberRoleQC:
		return true
	}
	return false
}

// ProjectMember links a user to a project. The composite primary key keeps at
// most one row per (project, user) pair.
type ProjectMember struct {
	ProjectID uint64     `gorm:"primarykey;autoIncrement:false" json:"projectId"`
	UserID    uint64     `gorm:"primarykey;autoIncrement:false" json:"userId"`
	Role      MemberRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt  time.Time  `json:"joinedAt"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}
