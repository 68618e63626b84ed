package identity

import (
	"context"
	"errors"
	"time"

	"github.com/aden91/tidar-web-app/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the HS256 token body accepted by HMACVerifier.
type Claims struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	jwt.RegisteredClaims
}

// HMACVerifier checks tokens signed with a shared secret. Intended for local
// development and tests where no external identity platform is reachable.
type HMACVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(time.Minute),
		),
	}
}

func (v *HMACVerifier) Verify(_ context.Context, rawToken string) (*domain.Identity, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, invalid("%v", err)
	}
	if claims.Subject == "" {
		return nil, invalid("token has no subject")
	}

	id := &domain.Identity{
		UID:   claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Phone: claims.PhoneNumber,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// IssueHMACToken signs an HS256 token for id that expires after ttl.
func IssueHMACToken(secret string, id domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:        id.Name,
		Email:       id.Email,
		PhoneNumber: id.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
