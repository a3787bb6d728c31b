package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// IDTokenClaims is the claim set of an ID token issued by the SQL backend
// driver. The session identifier travels in the standard "jti" claim and the
// user identifier in "sub".
type IDTokenClaims struct {
	jwt.RegisteredClaims

	// Email is the account email at the time the token was issued.
	Email string `json:"email,omitempty"`
}

// IDToken wraps a signed ID token together with its parsed claims.
type IDToken struct {
	// Token is the underlying JWT. Excluded from JSON serialization because
	// only the compact string form is meaningful outside the process.
	*jwt.Token `json:"-"`

	// Claims holds the decoded claim set.
	Claims IDTokenClaims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// UID returns the "sub" claim.
func (t IDToken) UID() string {
	return t.Claims.Subject
}

// SessionID returns the "jti" claim.
func (t IDToken) SessionID() string {
	return t.Claims.ID
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t IDToken) String() string {
	return t.SignedString
}
