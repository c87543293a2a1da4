package serverutils

// ApiResponse is the envelope every non-streaming endpoint returns.
type ApiResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Success: false,
		Message: message,
	}
}
