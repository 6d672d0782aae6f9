package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdatePRUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	input := UpdatePRInput{Owner: "deepset-ai", Repo: "haystack", Number: 7, Body: "### Why\nBecause."}
	t.Run("Should patch the pull request body", func(t *testing.T) {
		repo := new(mockGithubRepository)
		want := &domain.APIResponse{StatusCode: 200}
		repo.On("UpdatePullRequestBody", ctx, "deepset-ai", "haystack", 7, input.Body).Return(want, nil)
		resp, skipped, err := (&UpdatePRUseCase{GithubRepo: repo, Token: "t"}).Execute(ctx, input)
		require.NoError(t, err)
		assert.False(t, skipped)
		assert.Equal(t, want, resp)
		repo.AssertExpectations(t)
	})
	t.Run("Should return non-2xx responses without error", func(t *testing.T) {
		repo := new(mockGithubRepository)
		repo.On("UpdatePullRequestBody", ctx, "deepset-ai", "haystack", 7, input.Body).
			Return(&domain.APIResponse{StatusCode: 404, Body: []byte("Not Found")}, nil)
		resp, skipped, err := (&UpdatePRUseCase{GithubRepo: repo, Token: "t"}).Execute(ctx, input)
		require.NoError(t, err)
		assert.False(t, skipped)
		assert.Equal(t, 404, resp.StatusCode)
	})
	t.Run("Should skip when an identifier is missing", func(t *testing.T) {
		cases := map[string]struct {
			token string
			input UpdatePRInput
		}{
			"no token":     {token: "", input: input},
			"no owner":     {token: "t", input: UpdatePRInput{Repo: "r", Number: 1, Body: "b"}},
			"no repo":      {token: "t", input: UpdatePRInput{Owner: "o", Number: 1, Body: "b"}},
			"no PR number": {token: "t", input: UpdatePRInput{Owner: "o", Repo: "r", Body: "b"}},
			"no text":      {token: "t", input: UpdatePRInput{Owner: "o", Repo: "r", Number: 1}},
		}
		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				repo := new(mockGithubRepository)
				resp, skipped, err := (&UpdatePRUseCase{GithubRepo: repo, Token: tc.token}).Execute(ctx, tc.input)
				require.NoError(t, err)
				assert.True(t, skipped)
				assert.Nil(t, resp)
				repo.AssertNotCalled(t, "UpdatePullRequestBody",
					mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})
	t.Run("Should wrap transport errors", func(t *testing.T) {
		repo := new(mockGithubRepository)
		repo.On("UpdatePullRequestBody", ctx, "deepset-ai", "haystack", 7, input.Body).Return(nil, errors.New("EOF"))
		_, _, err := (&UpdatePRUseCase{GithubRepo: repo, Token: "t"}).Execute(ctx, input)
		assert.ErrorContains(t, err, "failed to update PR #7: EOF")
	})
}
