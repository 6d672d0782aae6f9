package repository

import (
	"context"

	"github.com/compozy/prwriter/internal/domain"
)

// GithubRepository defines the interface for GitHub REST API operations.
type GithubRepository interface {
	// Call issues a request relative to the API base URL. Any HTTP status is
	// returned as a response; only transport failures return an error.
	Call(ctx context.Context, method, path string, body any) (*domain.APIResponse, error)
	// UpdatePullRequestBody replaces the body of a pull request.
	UpdatePullRequestBody(ctx context.Context, owner, repo string, number int, body string) (*domain.APIResponse, error)
}
