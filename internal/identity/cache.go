package identity

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/aden91/tidar-web-app/internal/domain"
	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// TokenCache stores identities of recently verified tokens.
type TokenCache interface {
	// Get reports found=false, err=nil on a miss.
	Get(ctx context.Context, key string) (id *domain.Identity, found bool, err error)
	Set(ctx context.Context, key string, id *domain.Identity, ttl time.Duration) error
}

// CachingVerifier short-circuits repeat verifications of the same token.
// Cache failures are logged and never fail a request.
type CachingVerifier struct {
	next    Verifier
	cache   TokenCache
	ttl     time.Duration
	lookups *prometheus.CounterVec
	now     func() time.Time
	logger  *logger.Logger
}

// NewCachingVerifier wraps next. lookups may be nil.
func NewCachingVerifier(next Verifier, cache TokenCache, ttl time.Duration, lookups *prometheus.CounterVec, log *logger.Logger) *CachingVerifier {
	return &CachingVerifier{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		lookups: lookups,
		now:     time.Now,
		logger:  log.Named("CachingVerifier"),
	}
}

func (v *CachingVerifier) Verify(ctx context.Context, rawToken string) (*domain.Identity, error) {
	key := Fingerprint(rawToken)

	cached, found, err := v.cache.Get(ctx, key)
	switch {
	case err != nil:
		v.count("error")
		v.logger.Warn("Token cache lookup failed", zap.Error(err))
	case found && (cached.ExpiresAt.IsZero() || v.now().Before(cached.ExpiresAt)):
		v.count("hit")
		return cached, nil
	default:
		v.count("miss")
	}

	id, err := v.next.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if ttl := v.ttlFor(id); ttl > 0 {
		if err := v.cache.Set(ctx, key, id, ttl); err != nil {
			v.logger.Warn("Token cache store failed", zap.String("uid", id.UID), zap.Error(err))
		}
	}
	return id, nil
}

// ttlFor never lets an entry outlive the token itself.
func (v *CachingVerifier) ttlFor(id *domain.Identity) time.Duration {
	ttl := v.ttl
	if !id.ExpiresAt.IsZero() {
		if remaining := id.ExpiresAt.Sub(v.now()); remaining < ttl {
			ttl = remaining
		}
	}
	return ttl
}

func (v *CachingVerifier) count(result string) {
	if v.lookups != nil {
		v.lookups.WithLabelValues(result).Inc()
	}
}

// Fingerprint is the cache key for a raw token; the token itself is never stored.
func Fingerprint(rawToken string) string {
	sum := blake2b.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
