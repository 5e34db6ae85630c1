package contracts

// Result is the envelope used to surface a collaborator outcome to
// page-rendering callers without interpreting it.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Ok wraps a successful value.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail wraps an error. The error text is passed through verbatim.
func Fail[T any](err error) Result[T] {
	return Result[T]{Success: false, Error: err.Error()}
}
