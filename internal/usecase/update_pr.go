package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/compozy/prwriter/internal/repository"
)

// UpdatePRInput identifies the pull request and its new body.
type UpdatePRInput struct {
	Owner  string
	Repo   string
	Number int
	Body   string
}

// UpdatePRUseCase writes the generated text as the pull request body.
type UpdatePRUseCase struct {
	GithubRepo repository.GithubRepository
	Token      string
}

// Execute runs the use case. It reports skipped when any identifier or the
// text is missing; a non-2xx status is returned as a response, not an error.
func (uc *UpdatePRUseCase) Execute(ctx context.Context, in UpdatePRInput) (*domain.APIResponse, bool, error) {
	if uc.Token == "" || in.Owner == "" || in.Repo == "" || in.Number <= 0 || strings.TrimSpace(in.Body) == "" {
		return nil, true, nil
	}
	resp, err := uc.GithubRepo.UpdatePullRequestBody(ctx, in.Owner, in.Repo, in.Number, in.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update PR #%d: %w", in.Number, err)
	}
	return resp, false, nil
}
