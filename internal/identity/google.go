package identity

import (
	"context"
	"time"

	"github.com/aden91/tidar-web-app/internal/domain"
	"google.golang.org/api/idtoken"
)

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// GoogleVerifier validates Google Sign-In ID tokens issued for clientID.
type GoogleVerifier struct {
	clientID string
	validate validateFunc
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*domain.Identity, error) {
	payload, err := v.validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, invalid("%v", err)
	}
	if payload.Subject == "" {
		return nil, invalid("token has no subject")
	}

	id := &domain.Identity{
		UID:   payload.Subject,
		Name:  claimString(payload.Claims["name"]),
		Email: claimString(payload.Claims["email"]),
		Phone: claimString(payload.Claims["phone_number"]),
	}
	if payload.Expires > 0 {
		id.ExpiresAt = time.Unix(payload.Expires, 0)
	}
	return id, nil
}
