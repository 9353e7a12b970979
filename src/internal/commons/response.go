package commons

// Response is the JSON envelope every API endpoint returns. Data is set only
// on success; Errors carries the reasons for a rejected request.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

// ErrorResponse builds a failed envelope. Reasons should be safe to show to
// API clients; store details belong in the logs.
func ErrorResponse[T any](message string, reasons ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  reasons,
	}
}
