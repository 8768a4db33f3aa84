package common

import "net/http"

type SuccessResponse struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}, message string) SuccessResponse {
	return newSuccess(http.StatusOK, data, message)
}

// NewCreatedResponse is NewSuccessResponse for freshly created resources.
func NewCreatedResponse(data interface{}, message string) SuccessResponse {
	return newSuccess(http.StatusCreated, data, message)
}

func newSuccess(status int, data interface{}, message string) SuccessResponse {
	if message == "" {
		message = "success"
	}
	return SuccessResponse{
		Status:  status,
		Success: true,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(message string, data interface{}, status int) ErrorResponse {
	return ErrorResponse{
		Status:  status,
		Success: false,
		Message: message,
		Data:    data,
	}
}
