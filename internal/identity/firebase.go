package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/aden91/tidar-web-app/internal/domain"
	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"go.uber.org/zap"
)

const (
	firebaseJWKSURL      = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"
	firebaseIssuerPrefix = "https://securetoken.google.com/"
)

// FirebaseVerifier validates Firebase Authentication ID tokens against the
// securetoken JWKS, which is cached and refreshed in the background.
type FirebaseVerifier struct {
	projectID string
	issuer    string
	jwksURL   string
	keys      *jwk.Cache
	logger    *logger.Logger
}

// NewFirebaseVerifier fetches the signing keys once so a misconfigured
// deployment fails at startup. ctx bounds the lifetime of the key refresher.
func NewFirebaseVerifier(ctx context.Context, projectID string, log *logger.Logger) (*FirebaseVerifier, error) {
	return newFirebaseVerifier(ctx, projectID, firebaseJWKSURL, log)
}

func newFirebaseVerifier(ctx context.Context, projectID, jwksURL string, log *logger.Logger) (*FirebaseVerifier, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firebase project id is required")
	}

	keys := jwk.NewCache(ctx)
	if err := keys.Register(jwksURL, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
		return nil, fmt.Errorf("register firebase jwks: %w", err)
	}
	if _, err := keys.Refresh(ctx, jwksURL); err != nil {
		return nil, fmt.Errorf("fetch firebase jwks: %w", err)
	}

	log.Info("Firebase token verifier ready", zap.String("project_id", projectID))
	return &FirebaseVerifier{
		projectID: projectID,
		issuer:    firebaseIssuerPrefix + projectID,
		jwksURL:   jwksURL,
		keys:      keys,
		logger:    log.Named("FirebaseVerifier"),
	}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, rawToken string) (*domain.Identity, error) {
	set, err := v.keys.Get(ctx, v.jwksURL)
	if err != nil {
		v.logger.Error("Firebase signing keys unavailable", zap.Error(err))
		return nil, fmt.Errorf("firebase jwks: %w", err)
	}

	tok, err := jwt.ParseString(rawToken,
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.projectID),
		jwt.WithAcceptableSkew(time.Minute),
	)
	if err != nil {
		return nil, invalid("%v", err)
	}
	if tok.Subject() == "" {
		return nil, invalid("token has no subject")
	}

	name, _ := tok.Get("name")
	email, _ := tok.Get("email")
	phone, _ := tok.Get("phone_number")
	return &domain.Identity{
		UID:       tok.Subject(),
		Name:      claimString(name),
		Email:     claimString(email),
		Phone:     claimString(phone),
		ExpiresAt: tok.Expiration(),
	}, nil
}
