package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/mini-capstone/models"
	"github.com/golang-jwt/jwt/v5"
)

func validParams() IDTokenParams {
	return IDTokenParams{
		Issuer:    "blog",
		Audience:  "app-id",
		UID:       "uid-123",
		SessionID: "session-1",
		Email:     "ada@example.com",
		Duration:  time.Hour,
		SignKey:   "secret-key",
	}
}

func TestGenerateIDToken_Success(t *testing.T) {
	p := validParams()

	token, err := GenerateIDToken(p)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}
	if token.UID() != "uid-123" {
		t.Errorf("expected subject 'uid-123', got %s", token.UID())
	}
	if token.SessionID() != "session-1" {
		t.Errorf("expected jti 'session-1', got %s", token.SessionID())
	}
	if token.Claims.Issuer != "blog" {
		t.Errorf("expected issuer 'blog', got %s", token.Claims.Issuer)
	}
	if token.String() != token.SignedString {
		t.Error("expected String() to return the signed token")
	}
}

func TestGenerateIDToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *IDTokenParams)
	}{
		{"empty issuer", func(p *IDTokenParams) { p.Issuer = "" }},
		{"empty uid", func(p *IDTokenParams) { p.UID = "" }},
		{"empty session", func(p *IDTokenParams) { p.SessionID = "" }},
		{"zero duration", func(p *IDTokenParams) { p.Duration = 0 }},
		{"empty key", func(p *IDTokenParams) { p.SignKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			if _, err := GenerateIDToken(p); err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseIDToken_Success(t *testing.T) {
	p := validParams()
	genToken, err := GenerateIDToken(p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := ValidateAndParseIDToken(genToken.SignedString, p.SignKey, p.Issuer, p.Audience)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsed.UID() != p.UID {
		t.Errorf("expected uid %s, got %s", p.UID, parsed.UID())
	}
	if parsed.SessionID() != p.SessionID {
		t.Errorf("expected session %s, got %s", p.SessionID, parsed.SessionID())
	}
	if parsed.Claims.Email != p.Email {
		t.Errorf("expected email %s, got %s", p.Email, parsed.Claims.Email)
	}
}

func TestValidateAndParseIDToken_InvalidKey(t *testing.T) {
	genToken, _ := GenerateIDToken(validParams())

	_, err := ValidateAndParseIDToken(genToken.SignedString, "wrong-key", "blog", "app-id")
	if err == nil {
		t.Error("expected error due to signature mismatch, got nil")
	}
}

func TestValidateAndParseIDToken_Expired(t *testing.T) {
	claims := models.IDTokenClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "blog",
		Subject:   "uid",
		ID:        "sid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = ValidateAndParseIDToken(raw, "key", "blog", "")
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateAndParseIDToken_WrongIssuer(t *testing.T) {
	genToken, _ := GenerateIDToken(validParams())

	_, err := ValidateAndParseIDToken(genToken.SignedString, "secret-key", "fake-issuer", "app-id")
	if err == nil {
		t.Error("expected error for issuer mismatch, got nil")
	}
}

func TestValidateAndParseIDToken_WrongAudience(t *testing.T) {
	genToken, _ := GenerateIDToken(validParams())

	_, err := ValidateAndParseIDToken(genToken.SignedString, "secret-key", "blog", "other-app")
	if err == nil {
		t.Error("expected error for audience mismatch, got nil")
	}
}

func TestValidateAndParseIDToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseIDToken("not.a.token", "key", "iss", "")
	if err == nil {
		t.Error("expected error for malformed token string, got nil")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc", "abc", false},
		{"bearer abc", "abc", false},
		{"  Bearer abc  ", "abc", false},
		{"Basic abc", "", true},
		{"Bearer", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
