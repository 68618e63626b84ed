package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aden91/tidar-web-app/internal/domain"
	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifierFunc func(ctx context.Context, rawToken string) (*domain.Identity, error)

func (f verifierFunc) Verify(ctx context.Context, rawToken string) (*domain.Identity, error) {
	return f(ctx, rawToken)
}

func acceptOnly(good string) verifierFunc {
	return func(_ context.Context, rawToken string) (*domain.Identity, error) {
		if rawToken != good {
			return nil, domain.ErrInvalidToken
		}
		return &domain.Identity{UID: "u1", Email: "a@x.com"}, nil
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
		wantCalled  bool
	}{
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized, wantMessage: msgNoToken},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantMessage: msgNoToken},
		{name: "lowercase scheme", header: "bearer good-token", wantStatus: http.StatusUnauthorized, wantMessage: msgNoToken},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantMessage: msgNoToken},
		{name: "rejected token", header: "Bearer forged", wantStatus: http.StatusForbidden, wantMessage: msgInvalidToken},
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var seen *domain.Identity
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				seen = IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/users/u1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(acceptOnly("good-token"), logger.NewNop())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantCalled {
				require.NotNil(t, seen)
				assert.Equal(t, "u1", seen.UID)
				return
			}
			body := decodeBody(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestAuth_DoesNotLeakVerifierError(t *testing.T) {
	failing := verifierFunc(func(context.Context, string) (*domain.Identity, error) {
		return nil, errors.New("jwks fetch failed: secret internal detail")
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()

	Auth(failing, logger.NewNop())(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret internal detail")
}

func TestIdentityFromContext(t *testing.T) {
	assert.Nil(t, IdentityFromContext(context.Background()))

	id := &domain.Identity{UID: "u9"}
	assert.Same(t, id, IdentityFromContext(WithIdentity(context.Background(), id)))
}
