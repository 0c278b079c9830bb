package dto

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a new user.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
	Contact  string `json:"contact"` // Optional
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	FullName *string `json:"fullName"`
	Contact  *string `json:"contact"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID     string           `json:"userID"`
	Email      string           `json:"email"`
	FullName   string           `json:"fullName"`
	Contact    string           `json:"contact,omitempty"`
	KYCStatus  domain.KYCStatus `json:"kycStatus"`
	Role       domain.Role      `json:"role"`
	IsVerified bool             `json:"isVerified"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:     user.UserID,
		Email:      user.Email,
		FullName:   user.FullName,
		Contact:    user.Contact,
		KYCStatus:  user.KYCStatus,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{Users: userResponses}
}
