package repository

import "context"

// GitRepository reads defaults from the local checkout.
type GitRepository interface {
	// OriginRepository returns owner and name parsed from the origin remote URL.
	OriginRepository(ctx context.Context) (string, string, error)
	GetCurrentBranch(ctx context.Context) (string, error)
}
