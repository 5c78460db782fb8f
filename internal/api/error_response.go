// File: internal/api/error_response.go
package api

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	// msg 錯誤描述
	Message string `json:"msg" example:"access denied"`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"msg" example:"user created"`
}
