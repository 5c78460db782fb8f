package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Name            string `json:"name" validate:"required" example:"Ana"`
	Email           string `json:"email" validate:"required" example:"ana@example.com"`
	Password        string `json:"password" validate:"required" example:"Secret123!"`
	ConfirmPassword string `json:"confirmpassword" validate:"required" example:"Secret123!"`
}
