package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpt(t *testing.T) {
	assert.Nil(t, Opt(""))
	assert.Nil(t, Opt("   "))

	v := Opt("Ana")
	require.NotNil(t, v)
	assert.Equal(t, "Ana", *v)
}

func TestCoalesce(t *testing.T) {
	a, b := "a", "b"
	assert.Nil(t, Coalesce())
	assert.Nil(t, Coalesce(nil, nil))
	assert.Equal(t, &b, Coalesce(nil, &b, &a))
	assert.Equal(t, &a, Coalesce(&a, &b))
}

func TestNewUser(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	u := NewUser("u1", now)

	assert.Equal(t, "u1", u.UID)
	assert.False(t, u.IsVerified)
	assert.Equal(t, now, u.CreatedAt)
	assert.Equal(t, now, u.LastLogin)
	assert.Nil(t, u.Name)
	assert.Nil(t, u.Address.Detail)
}

func TestIdentityOwns(t *testing.T) {
	var nilIdentity *Identity
	assert.False(t, nilIdentity.Owns("u1"))
	assert.False(t, (&Identity{}).Owns(""))
	assert.False(t, (&Identity{UID: "u1"}).Owns("u2"))
	assert.True(t, (&Identity{UID: "u1"}).Owns("u1"))
}
