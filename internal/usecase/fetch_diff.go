package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/compozy/prwriter/internal/service"
	"github.com/tidwall/gjson"
)

// FetchDiffUseCase retrieves the changed files between two refs.
type FetchDiffUseCase struct {
	Connector service.ServiceConnector
}

// Execute runs the use case. Only the files of the compare response are kept.
func (uc *FetchDiffUseCase) Execute(ctx context.Context, owner, repo, base, head string) (*domain.DiffResult, error) {
	payload, err := domain.NewComparePayload(owner, repo, base, head)
	if err != nil {
		return nil, err
	}
	resp, err := uc.Connector.Invoke(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch diff: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &domain.ServiceError{
			Operation:  payload.Name,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
		}
	}
	files := gjson.GetBytes(resp.Body, "files")
	if !files.IsArray() {
		return nil, fmt.Errorf("compare response of %s...%s has no files list", base, head)
	}
	var changed []domain.ChangedFile
	if err := json.Unmarshal([]byte(files.Raw), &changed); err != nil {
		return nil, fmt.Errorf("failed to decode changed files: %w", err)
	}
	return &domain.DiffResult{Files: changed}, nil
}
