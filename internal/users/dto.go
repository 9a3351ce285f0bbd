package users

import (
	"github.com/taskmgmt/task-management-api/internal/auth/cognito"
	"github.com/taskmgmt/task-management-api/internal/projects/dto"
)

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	Status    string `json:"status"`
	IsEnabled bool   `json:"isEnabled"`
}

func FromUser(u cognito.User) UserResponse {
	return UserResponse{
		ID:        u.Sub,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: dto.FormatTime(u.CreatedAt),
		Status:    u.Status,
		IsEnabled: u.Enabled,
	}
}

func FromUsers(in []cognito.User) []UserResponse {
	out := make([]UserResponse, 0, len(in))
	for _, u := range in {
		out = append(out, FromUser(u))
	}
	return out
}
