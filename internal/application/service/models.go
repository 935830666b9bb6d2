package service

import (
	"fmt"
	"slices"

	"mcp-agent/internal/domain/entity"
)

// ResolveModel picks preferred when the endpoint serves it and falls back to
// the first available model otherwise. fallback reports the substitution.
func ResolveModel(available []string, preferred string) (model string, fallback bool, err error) {
	if slices.Contains(available, preferred) {
		return preferred, false, nil
	}
	if len(available) == 0 {
		return "", false, fmt.Errorf("model %q: %w", preferred, entity.ErrNoModelsAvailable)
	}
	return available[0], true, nil
}
