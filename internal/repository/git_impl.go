package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// gitRepository is the implementation of the GitRepository interface.
type gitRepository struct {
	repo *git.Repository
}

// NewGitRepository opens the repository containing path.
func NewGitRepository(path string) (GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo}, nil
}

// OriginRepository returns the owner/name of the origin remote.
func (r *gitRepository) OriginRepository(_ context.Context) (string, string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("failed to get origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("origin remote has no URL")
	}
	return parseGitRemoteURL(urls[0])
}

// GetCurrentBranch returns the current branch name.
func (r *gitRepository) GetCurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is detached at %s", head.Hash().String()[:7])
	}
	return head.Name().Short(), nil
}

// parseGitRemoteURL extracts owner and repository from https, ssh and path remotes.
func parseGitRemoteURL(remote string) (string, string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(remote), "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")
	if trimmed == "" {
		return "", "", fmt.Errorf("empty remote URL")
	}
	switch {
	case strings.Contains(trimmed, "://"):
		trimmed = trimmed[strings.Index(trimmed, "://")+3:]
	case strings.Contains(trimmed, "@") && strings.Contains(trimmed, ":"):
		// scp-like syntax: git@github.com:owner/repo
		trimmed = trimmed[strings.Index(trimmed, ":")+1:]
	}
	parts := strings.Split(filepath.ToSlash(trimmed), "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("cannot parse owner/repository from remote %q", remote)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
