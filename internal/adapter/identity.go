package adapter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/config"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/utils"
	"github.com/MKhiriev/mini-capstone/models"
)

type identityClient struct {
	client *utils.HTTPClient
	apiKey string

	logger *logger.Logger
}

func newIdentityClient(client *utils.HTTPClient, cfg config.Backend, log *logger.Logger) *identityClient {
	return &identityClient{client: client, apiKey: cfg.APIKey, logger: log}
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type tokenResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
	ExpiresIn   string `json:"expiresIn"`
}

type accountInfo struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
}

func (a accountInfo) user() models.User {
	u := models.User{UID: a.LocalID, Email: a.Email, DisplayName: a.DisplayName}
	if ms, err := strconv.ParseInt(a.CreatedAt, 10, 64); err == nil {
		u.CreatedAt = time.UnixMilli(ms).UTC()
	}
	return u
}

// CreateUserWithEmailAndPassword implements [backend.AuthClient] via
// POST accounts:signUp.
func (c *identityClient) CreateUserWithEmailAndPassword(ctx context.Context, email, password string) (models.UserCredential, error) {
	return c.passwordAuth(ctx, "/accounts:signUp", email, password)
}

// SignInWithEmailAndPassword implements [backend.AuthClient] via
// POST accounts:signInWithPassword.
func (c *identityClient) SignInWithEmailAndPassword(ctx context.Context, email, password string) (models.UserCredential, error) {
	return c.passwordAuth(ctx, "/accounts:signInWithPassword", email, password)
}

func (c *identityClient) passwordAuth(ctx context.Context, path, email, password string) (models.UserCredential, error) {
	var result tokenResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(passwordRequest{Email: email, Password: password, ReturnSecureToken: true}).
		SetResult(&result).
		Post(path)
	if err != nil {
		return models.UserCredential{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapIdentityError(resp); err != nil {
		return models.UserCredential{}, err
	}
	if result.IDToken == "" || result.LocalID == "" {
		return models.UserCredential{}, fmt.Errorf("%w: %s returned no token", ErrUnexpectedResponse, path)
	}

	expiresIn, _ := strconv.Atoi(result.ExpiresIn)

	return models.UserCredential{
		User: models.User{
			UID:         result.LocalID,
			Email:       result.Email,
			DisplayName: result.DisplayName,
		},
		IDToken:   result.IDToken,
		ExpiresIn: time.Duration(expiresIn) * time.Second,
	}, nil
}

// UpdateProfile implements [backend.AuthClient] via POST accounts:update.
func (c *identityClient) UpdateProfile(ctx context.Context, idToken, displayName string) (models.User, error) {
	var result accountInfo

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"idToken":           idToken,
			"displayName":       displayName,
			"returnSecureToken": false,
		}).
		SetResult(&result).
		Post("/accounts:update")
	if err != nil {
		return models.User{}, fmt.Errorf("update profile request: %w", err)
	}
	if err = mapIdentityError(resp); err != nil {
		return models.User{}, err
	}

	return result.user(), nil
}

// VerifyIDToken implements [backend.AuthClient] via POST accounts:lookup.
func (c *identityClient) VerifyIDToken(ctx context.Context, idToken string) (models.User, error) {
	if idToken == "" {
		return models.User{}, backend.ErrInvalidIDToken
	}

	var result struct {
		Users []accountInfo `json:"users"`
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"idToken": idToken}).
		SetResult(&result).
		Post("/accounts:lookup")
	if err != nil {
		return models.User{}, fmt.Errorf("lookup request: %w", err)
	}
	if err = mapIdentityError(resp); err != nil {
		return models.User{}, err
	}
	if len(result.Users) == 0 {
		return models.User{}, fmt.Errorf("%w: no account for token", backend.ErrInvalidIDToken)
	}

	return result.Users[0].user(), nil
}

// CurrentUser implements [backend.AuthClient].
func (c *identityClient) CurrentUser(ctx context.Context) (models.User, error) {
	idToken, ok := utils.IDTokenFromContext(ctx)
	if !ok {
		return models.User{}, backend.ErrNoCurrentUser
	}

	return c.VerifyIDToken(ctx, idToken)
}

// SignOut implements [backend.AuthClient]. ID tokens of the managed identity
// service cannot be revoked with an API key, so signing out only forgets the
// token on the caller's side; the token itself stays valid until it expires.
func (c *identityClient) SignOut(ctx context.Context) error {
	if _, ok := utils.IDTokenFromContext(ctx); ok {
		c.logger.Debug().Msg("sign out: id token dropped by caller")
	}
	return nil
}
