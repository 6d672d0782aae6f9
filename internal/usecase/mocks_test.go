package usecase

import (
	"context"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for ServiceConnector
type mockServiceConnector struct {
	mock.Mock
}

func (m *mockServiceConnector) Invoke(ctx context.Context, payload domain.InvocationPayload) (*domain.APIResponse, error) {
	args := m.Called(ctx, payload)
	resp, _ := args.Get(0).(*domain.APIResponse)
	return resp, args.Error(1)
}

// Mock for TextGenerator
type mockTextGenerator struct {
	mock.Mock
}

func (m *mockTextGenerator) Generate(ctx context.Context, messages []domain.ChatMessage) (*domain.GenerationResult, error) {
	args := m.Called(ctx, messages)
	result, _ := args.Get(0).(*domain.GenerationResult)
	return result, args.Error(1)
}

// Mock for GithubRepository
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
