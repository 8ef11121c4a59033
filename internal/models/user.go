package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(100);index" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber  string    `gorm:"type:varchar(50)" json:"phone_number"`
	FirstName    string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string    `gorm:"type:varchar(100)" json:"lastName"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Tokens      []UserToken     `gorm:"foreignKey:UserID" json:"-"`
	Memberships []ProjectMember `gorm:"foreignKey:UserID" json:"-"`
}

// UserToken is one active session. A bearer token is only honoured while its
// row exists.
type UserToken struct {
	ID        uint64    `gorm:"primarykey" json:"-"`
	UserID    uint64    `gorm:"not null;index" json:"-"`
	Token     string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}
