package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRefName(t *testing.T) {
	t.Run("Should accept refs GitHub allows", func(t *testing.T) {
		refs := []string{
			"main",
			"feature/docs",
			"release/v1.2.3",
			"a1b2c3d",
			"dependabot/npm_and_yarn/@babel/core-7.24.0",
			"renovate/@types-node-20.x",
			"v1.0.0+build",
			"octocat:feature",
			"fix#12",
		}
		for _, ref := range refs {
			assert.NoError(t, ValidateRefName(ref), ref)
		}
	})
	cases := []struct {
		ref  string
		want string
	}{
		{ref: "", want: "cannot be empty"},
		{ref: "  ", want: "cannot be empty"},
		{ref: "/main", want: "start or end with slash"},
		{ref: "main/", want: "start or end with slash"},
		{ref: "main..dev", want: "consecutive dots"},
	}
	for _, tc := range cases {
		t.Run("Should reject "+tc.want, func(t *testing.T) {
			assert.ErrorContains(t, ValidateRefName(tc.ref), tc.want)
		})
	}
}
