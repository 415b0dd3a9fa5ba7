package models

// UserRequest is the body accepted by both /api/users/register and /api/users/login.
// Neither field is required; a missing or null field stays nil.
type UserRequest struct {
	Email        *string `json:"email"`
	UserPassword *string `json:"userPassword"`
}
