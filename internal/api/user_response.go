package api

import "nadespensa/internal/model"

// UserResponse wraps the profile; the password hash never leaves model.User.
// swagger:model api.UserResponse
type UserResponse struct {
	User model.User `json:"user"`
}
