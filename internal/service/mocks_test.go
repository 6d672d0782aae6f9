package service

import (
	"context"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockGithubRepository struct {
	mock.Mock
}

func (m *mockGithubRepository) Call(ctx context.Context, method, path string, body any) (*domain.APIResponse, error) {
	args := m.Called(ctx, method, path, body)
	resp, _ := args.Get(0).(*domain.APIResponse)
	return resp, args.Error(1)
}

func (m *mockGithubRepository) UpdatePullRequestBody(
	ctx context.Context,
	owner, repo string,
	number int,
	body string,
) (*domain.APIResponse, error) {
	args := m.Called(ctx, owner, repo, number, body)
	resp, _ := args.Get(0).(*domain.APIResponse)
	return resp, args.Error(1)
}
