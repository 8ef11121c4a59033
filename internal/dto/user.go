package dto

import (
	"time"

	"github.com/yukikurage/tracker-api/internal/models"
)

// UserDTO represents a user in API responses. Password hashes and session
// tokens never leave the server.
type UserDTO struct {
	ID          uint64      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phone_number"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Role        models.Role `json:"role"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// UserSummaryDTO is the short form embedded in other resources
type UserSummaryDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}
}

// ToUserSummaryDTO returns nil unless the user was preloaded
func ToUserSummaryDTO(user models.User) *UserSummaryDTO {
	if user.ID == 0 {
		return nil
	}
	return &UserSummaryDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
