package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/mini-capstone/models"
	"github.com/golang-jwt/jwt/v5"
)

// IDTokenParams describes the ID token to issue.
type IDTokenParams struct {
	// Issuer (iss) identifies the backend project that issued the token.
	Issuer string
	// Audience (aud) identifies the application the token is meant for.
	Audience string
	// UID (sub) is the user the token is issued for.
	UID string
	// SessionID (jti) identifies the session so that it can be revoked.
	SessionID string
	// Email is copied into the "email" claim.
	Email string
	// Duration is how long the token remains valid.
	Duration time.Duration
	// SignKey is the secret used to sign the token with HMAC-SHA256.
	SignKey string
}

// GenerateIDToken creates a signed HMAC-SHA256 ID token.
//
// The token includes the following standard claims:
//   - Issuer    (iss): the backend project
//   - Audience  (aud): the application
//   - Subject   (sub): the user ID
//   - ID        (jti): the session ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus Duration
//
// Issuer, UID, SessionID, Duration and SignKey are required.
//
// Example usage:
//
//	token, err := utils.GenerateIDToken(utils.IDTokenParams{
//	    Issuer: "blog", UID: uid, SessionID: sid, Duration: time.Hour, SignKey: "secret",
//	})
func GenerateIDToken(p IDTokenParams) (models.IDToken, error) {
	if p.Issuer == "" || p.UID == "" || p.SessionID == "" || p.Duration <= 0 || p.SignKey == "" {
		return models.IDToken{}, errors.New("invalid params for generating ID token")
	}

	now := time.Now()
	claims := models.IDTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.UID,
			ID:        p.SessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(p.Duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: p.Email,
	}
	if p.Audience != "" {
		claims.Audience = jwt.ClaimStrings{p.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(p.SignKey))
	if err != nil {
		return models.IDToken{}, fmt.Errorf("error occurred during singing ID token: %w", err)
	}

	return models.IDToken{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseIDToken validates the given ID token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against issuer
//   - Audience (aud) claim check when audience is non-empty
//   - Expiration (exp) claim check
//   - Subject (sub) and ID (jti) claim presence
//
// Example usage:
//
//	token, err := utils.ValidateAndParseIDToken(raw, "secret", "blog", "app-id")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseIDToken(tokenString, signKey, issuer, audience string) (models.IDToken, error) {
	opts := []jwt.ParserOption{
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	claims := models.IDTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, opts...)
	if err != nil {
		return models.IDToken{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.IDToken{}, errors.New("empty subject error")
	}
	if claims.ID == "" {
		return models.IDToken{}, errors.New("empty session id error")
	}

	return models.IDToken{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
