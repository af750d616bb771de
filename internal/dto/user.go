package dto

import "personal-ledger/internal/models"

// CreateUserRequest represents the request payload for creating a user
type CreateUserRequest struct {
	Name  string  `json:"name" validate:"required,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users  []models.User `json:"users"`
	Total  int64         `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}
