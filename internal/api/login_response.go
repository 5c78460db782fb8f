// File: internal/api/login_response.go
package api

// swagger:model api.LoginResponse
type LoginResponse struct {
	Message string `json:"msg" example:"authenticated"`
	Token   string `json:"token" example:"eyJhbGciOi..."`
}
