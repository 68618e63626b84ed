package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithFirebaseProject(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "tidar-test")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ProviderFirebase, cfg.IdentityProvider)
	assert.Equal(t, "tidar-test", cfg.FirebaseProjectID)
	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.MongoTimeout)
	assert.Equal(t, 5*time.Minute, cfg.TokenCacheTTL)
	assert.Equal(t, "Nama Pengguna", cfg.DefaultDisplayName)
	assert.False(t, cfg.SMTPEnabled())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("IDENTITY_PROVIDER", " HMAC ")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("MONGO_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "2")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ProviderHMAC, cfg.IdentityProvider)
	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, 3*time.Second, cfg.MongoTimeout)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestValidate(t *testing.T) {
	base := Config{MongoURI: "mongodb://localhost", MongoDatabase: "tidar"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"firebase without project", func(c *Config) { c.IdentityProvider = ProviderFirebase }, "FIREBASE_PROJECT_ID"},
		{"google without client", func(c *Config) { c.IdentityProvider = ProviderGoogle }, "GOOGLE_CLIENT_ID"},
		{"hmac without secret", func(c *Config) { c.IdentityProvider = ProviderHMAC }, "JWT_SECRET"},
		{"unknown provider", func(c *Config) { c.IdentityProvider = "saml" }, "unknown IDENTITY_PROVIDER"},
		{"missing database", func(c *Config) {
			c.IdentityProvider = ProviderHMAC
			c.JWTSecret = "x"
			c.MongoDatabase = ""
		}, "MONGO_DATABASE"},
		{"valid hmac", func(c *Config) {
			c.IdentityProvider = ProviderHMAC
			c.JWTSecret = "x"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Config{FrontendURL: "http://localhost:5500, https://aden91.github.io,,"}
	assert.Equal(t, []string{"http://localhost:5500", "https://aden91.github.io"}, cfg.AllowedOrigins())

	assert.Empty(t, (&Config{}).AllowedOrigins())
}
