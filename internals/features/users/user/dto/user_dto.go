package dto

import (
	"time"

	"github.com/google/uuid"

	"gerejaku_backend/internals/features/users/user/model"
)

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	UserRole      string    `json:"user_role"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

func ToUserResponse(m *model.UserModel) *UserResponse {
	return &UserResponse{
		UserID:        m.UserID,
		UserName:      m.UserName,
		UserEmail:     m.UserEmail,
		UserRole:      m.UserRole,
		UserCreatedAt: m.UserCreatedAt,
	}
}
