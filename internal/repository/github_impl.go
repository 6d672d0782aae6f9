package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/compozy/prwriter/pkg/version"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	client *github.Client
}

// NewGithubRepository creates a GitHub client for baseURL. An empty token
// yields an unauthenticated client, which GitHub may rate limit or reject.
func NewGithubRepository(token, baseURL string) (GithubRepository, error) {
	var httpClient *http.Client
	if token = strings.TrimSpace(token); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	client := github.NewClient(httpClient)
	client.UserAgent = "auto-pr-writer/" + version.Summary()
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
		}
		client.BaseURL = parsed
	}
	return &githubRepository{client: client}, nil
}

// Call issues a raw REST request and captures the response body.
func (r *githubRepository) Call(ctx context.Context, method, path string, body any) (*domain.APIResponse, error) {
	req, err := r.client.NewRequest(method, strings.TrimPrefix(path, "/"), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	var buf bytes.Buffer
	resp, err := r.client.Do(ctx, req, &buf)
	if resp == nil || resp.Response == nil {
		return nil, fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	if err == nil {
		return &domain.APIResponse{StatusCode: resp.StatusCode, Body: buf.Bytes()}, nil
	}
	return &domain.APIResponse{StatusCode: resp.StatusCode, Body: errorBody(resp, err)}, nil
}

// UpdatePullRequestBody sets the body of a pull request.
func (r *githubRepository) UpdatePullRequestBody(
	ctx context.Context,
	owner, repo string,
	number int,
	body string,
) (*domain.APIResponse, error) {
	path := fmt.Sprintf("repos/%s/%s/pulls/%d", owner, repo, number)
	return r.Call(ctx, http.MethodPatch, path, &github.PullRequest{Body: github.Ptr(body)})
}

// errorBody recovers the raw error payload; go-github re-populates the body
// after decoding it into an ErrorResponse.
func errorBody(resp *github.Response, err error) []byte {
	var accepted *github.AcceptedError
	if errors.As(err, &accepted) {
		return accepted.Raw
	}
	if resp.Body != nil {
		if data, readErr := io.ReadAll(resp.Body); readErr == nil && len(data) > 0 {
			return data
		}
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Message != "" {
		return []byte(ghErr.Message)
	}
	return []byte(err.Error())
}
