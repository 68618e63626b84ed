package domain

import "time"

// Identity is the verified claim set produced by the identity provider.
// Optional claims are empty strings when the token does not carry them.
type Identity struct {
	UID   string `json:"uid"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	// ExpiresAt is the token expiry; zero when the provider did not report one.
	ExpiresAt time.Time `json:"expiresAt"`
}

// Owns reports whether the identity is the subject uid.
func (i *Identity) Owns(uid string) bool {
	return i != nil && i.UID != "" && i.UID == uid
}
