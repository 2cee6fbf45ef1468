package dto

import (
	"salescrm/model"
	"salescrm/services"
)

type UserResponse struct {
	UserID   string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Branch   string `json:"branch,omitempty"`
	IsActive bool   `json:"isActive"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Branch:   u.Branch,
		IsActive: u.IsActive,
	}
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=5"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role" binding:"required,oneof=admin manager salesperson"`
	Branch   string `json:"branch"`
}

func (r CreateUserRequest) ToNewUser() services.NewUser {
	return services.NewUser{
		Username: r.Username,
		Password: r.Password,
		Name:     r.Name,
		Email:    r.Email,
		Role:     r.Role,
		Branch:   r.Branch,
	}
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=5"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin manager salesperson"`
	Branch   *string `json:"branch"`
	IsActive *bool   `json:"isActive"`
}

func (r UpdateUserRequest) ToUpdate() services.UserUpdate {
	return services.UserUpdate{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		Branch:   r.Branch,
		IsActive: r.IsActive,
	}
}
