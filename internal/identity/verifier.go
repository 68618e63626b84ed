// Package identity verifies bearer ID tokens and turns them into domain identities.
package identity

import (
	"context"
	"fmt"

	"github.com/aden91/tidar-web-app/internal/domain"
)

// Verifier validates a raw bearer token with an identity provider.
// Every rejection wraps domain.ErrInvalidToken.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*domain.Identity, error)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidToken, fmt.Sprintf(format, args...))
}

func claimString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
