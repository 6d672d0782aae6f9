package orchestrator

import (
	"fmt"
	"strings"
)

// ValidateRefName checks that ref can be placed on either side of base...head.
// Anything GitHub accepts as a branch, tag, fork head or SHA passes.
func ValidateRefName(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return fmt.Errorf("ref name cannot be empty")
	}
	if strings.HasPrefix(ref, "/") || strings.HasSuffix(ref, "/") {
		return fmt.Errorf("ref name cannot start or end with slash: %s", ref)
	}
	if strings.Contains(ref, "..") {
		return fmt.Errorf("ref name cannot contain consecutive dots: %s", ref)
	}
	return nil
}
