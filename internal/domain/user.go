package domain

import (
	"strings"
	"time"
)

// Address is the structured postal address of a member. Every part is optional.
type Address struct {
	Province    *string `json:"province"`
	City        *string `json:"city"`
	District    *string `json:"district"`
	Subdistrict *string `json:"subdistrict"`
	Detail      *string `json:"detail"`
}

// User is the single profile document kept per identity.
// Absent optional values serialize as JSON null.
type User struct {
	UID        string    `json:"-"`
	Name       *string   `json:"name"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	Birthplace *string   `json:"birthplace"`
	Birthdate  *string   `json:"birthdate"`
	Address    Address   `json:"address"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	LastLogin  time.Time `json:"lastLogin"`
}

// LoginUpdate is the partial update applied by a login sync. Fields left nil
// are stored as null, so callers resolve them against the existing record first.
type LoginUpdate struct {
	LastLogin time.Time
	Name      *string
	Email     *string
	Phone     *string
}

// NewUser returns a fresh, unverified record created at now.
func NewUser(uid string, now time.Time) *User {
	return &User{
		UID:        uid,
		IsVerified: false,
		CreatedAt:  now,
		LastLogin:  now,
	}
}

// Opt turns a caller-supplied string into an optional value; blank means absent.
func Opt(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// Coalesce returns the first non-nil value.
func Coalesce(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
