package models

import "time"

// User is an account of the managed authentication backend.
type User struct {
	// UID is the backend-assigned unique user identifier.
	UID string `json:"uid"`

	// Email is the address the account signs in with.
	Email string `json:"email"`

	// DisplayName is the public name shown next to the user's posts.
	DisplayName string `json:"display_name"`

	// CreatedAt is the account creation time, when the backend reports it.
	CreatedAt time.Time `json:"created_at"`
}

// UserCredential is the result of a successful sign-up or sign-in.
type UserCredential struct {
	// User is the signed-in account.
	User User `json:"user"`

	// IDToken is the short-lived bearer token identifying the session.
	// It is never serialized.
	IDToken string `json:"-"`

	// ExpiresIn is the remaining lifetime of IDToken.
	ExpiresIn time.Duration `json:"expires_in"`
}
