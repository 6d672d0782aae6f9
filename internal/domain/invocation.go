package domain

import (
	"encoding/json"
	"fmt"
)

// CompareBranchesOperation is the operation id of the branch comparison endpoint.
const CompareBranchesOperation = "compare_branches"

// InvocationPayload names a service operation and carries its JSON arguments.
type InvocationPayload struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// compareArguments keeps the field order of the serialized arguments stable.
type compareArguments struct {
	Basehead string `json:"basehead"`
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
}

// NewComparePayload builds the invocation for comparing head against base in owner/repo.
func NewComparePayload(owner, repo, base, head string) (InvocationPayload, error) {
	args, err := json.Marshal(compareArguments{
		Basehead: fmt.Sprintf("%s...%s", base, head),
		Owner:    owner,
		Repo:     repo,
	})
	if err != nil {
		return InvocationPayload{}, fmt.Errorf("failed to marshal compare arguments: %w", err)
	}
	return InvocationPayload{Name: CompareBranchesOperation, Arguments: args}, nil
}

// DecodeArguments returns the arguments as a generic map.
func (p InvocationPayload) DecodeArguments() (map[string]any, error) {
	if len(p.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(p.Arguments, &args); err != nil {
		return nil, fmt.Errorf("failed to decode arguments of %s: %w", p.Name, err)
	}
	return args, nil
}
