package domain

import "fmt"

// APIResponse is a raw upstream HTTP response.
type APIResponse struct {
	StatusCode int
	Body       []byte
}

// IsSuccess reports a 2xx status.
func (r *APIResponse) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// ServiceError is returned when an upstream endpoint answers with a non-2xx status.
type ServiceError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}
