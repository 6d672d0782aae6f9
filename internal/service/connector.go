package service

import (
	"context"

	"github.com/compozy/prwriter/internal/domain"
)

// ServiceConnector invokes a named operation described by a service description.
type ServiceConnector interface {
	Invoke(ctx context.Context, payload domain.InvocationPayload) (*domain.APIResponse, error)
}
