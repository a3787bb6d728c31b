package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdentity(t *testing.T, handler http.HandlerFunc) backend.AuthClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	auth, err := backend.GetAuth(context.Background(), newTestApp(t, srv.URL))
	require.NoError(t, err)
	return auth
}

// ── sign up / sign in ─────────────────────────────────────────────────────────

func TestCreateUserWithEmailAndPassword_Success(t *testing.T) {
	auth := newTestIdentity(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts:signUp", r.URL.Path)
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))

		body := decodeBody(t, r)
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "secret123", body["password"])
		assert.Equal(t, true, body["returnSecureToken"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"localId":   "uid-1",
			"email":     "ada@example.com",
			"idToken":   "id-token",
			"expiresIn": "3600",
		})
	})

	cred, err := auth.CreateUserWithEmailAndPassword(context.Background(), "ada@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "uid-1", cred.User.UID)
	assert.Equal(t, "ada@example.com", cred.User.Email)
	assert.Equal(t, "id-token", cred.IDToken)
	assert.Equal(t, time.Hour, cred.ExpiresIn)
}

func TestCreateUserWithEmailAndPassword_Errors(t *testing.T) {
	tests := []struct {
		message string
		want    error
	}{
		{"EMAIL_EXISTS", backend.ErrEmailAlreadyInUse},
		{"WEAK_PASSWORD : Password should be at least 6 characters", backend.ErrWeakPassword},
		{"INVALID_EMAIL", backend.ErrInvalidEmail},
		{"API key not valid. Please pass a valid API key.", backend.ErrConfiguration},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", ErrUnexpectedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			auth := newTestIdentity(t, func(w http.ResponseWriter, r *http.Request) {
				writeRESTError(t, w, http.StatusBadRequest, tt.message, "INVALID_ARGUMENT")
			})

			_, err := auth.CreateUserWithEmailAndPassword(context.Background(), "ada@example.com", "pw")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignInWithEmailAndPassword_Success(t *testing.T) {
	auth := newTestIdentity(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:signInWithPassword", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"localId":     "uid-1",
			"email":       "ada@example.com",
			"displayName": "Ada",
			"idToken":     "id-token",
			"expiresIn":   "3600",
			"registered":  true,
		})
	})

	cred, err := auth.SignInWithEmailAndPassword(context.Background(), "ada@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "Ada", cred.User.DisplayName)
	assert.Equal(t, "id-token", cred.IDToken)
}

func TestSignInWithEmailAndPassword_InvalidCredentials(t *testing.T) {
	for _, message := range []string{"EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS"} {
		t.Run(message, func(t *testing.T) {
			auth := newTestIdentity(t, func(w http.ResponseWriter, r *http.Request) {
				writeRESTError(t, w, http.StatusBadRequest, message, "INVALID_ARGUMENT")
			})

			_, err := auth.SignInWithEmailAndPassword(context.Background(), "ada@example.com", "wrong")
			assert.ErrorIs(t, err, backend.ErrInvalidCredentials)
		})
	}
}

func TestSignInWithEmailAndPassword_MissingToken(t *testing.T) {
	auth := newTestIdentity(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"email": "ada@example.com"})
	})

	_, err := auth.SignInWithEmailAndPassword(context.Background(), "ada@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

// ── profile / lookup ──────────────────────────────────────────────────────────

func TestUpdateProfile_Success(t *testing.T) {
	auth := newTestIdentity(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:update", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "id-token", body["idToken"])
		assert.Equal(t, "Ada Lovelace", body["displayName"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"localId":     "uid-1",
			"email":       "ada@example.com",
			"displayName": "Ada Lovelace",
		})
	})

	user, err := auth.UpdateProfile(context.Background(), "id-token", "Ada Lovelace")

	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, "Ada Lovelace", user.DisplayName)
}

func TestVerifyIDToken_Success(t *testing.T) {
	auth := newTestIdentity(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:lookup", r.URL.Path)
		assert.Equal(t, "id-token", decodeBody(t, r)["idToken"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"users": []map[string]any{{
				"localId":     "uid-1",
				"email":       "ada@example.com",
				"displayName": "Ada",
				"createdAt":   "1700000000000",
			}},
		})
	})

	user, err := auth.VerifyIDToken(context.Background(), "id-token")

	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), user.CreatedAt)
}

func TestVerifyIDToken_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"invalid token", func(w http.ResponseWriter, r *http.Request) {
			writeRESTError(t, w, http.StatusBadRequest, "INVALID_ID_TOKEN", "INVALID_ARGUMENT")
		}},
		{"expired token", func(w http.ResponseWriter, r *http.Request) {
			writeRESTError(t, w, http.StatusBadRequest, "TOKEN_EXPIRED", "INVALID_ARGUMENT")
		}},
		{"deleted user", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"users": []any{}})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := newTestIdentity(t, tt.handler)
			_, err := auth.VerifyIDToken(context.Background(), "id-token")
			assert.ErrorIs(t, err, backend.ErrInvalidIDToken)
		})
	}
}

func TestVerifyIDToken_EmptyTokenSkipsRequest(t *testing.T) {
	auth := newTestIdentity(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := auth.VerifyIDToken(context.Background(), "")
	assert.ErrorIs(t, err, backend.ErrInvalidIDToken)
}

// ── current user / sign out ───────────────────────────────────────────────────

func TestCurrentUser_NoToken(t *testing.T) {
	auth := newTestIdentity(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := auth.CurrentUser(context.Background())
	assert.ErrorIs(t, err, backend.ErrNoCurrentUser)
}

func TestCurrentUser_UsesContextToken(t *testing.T) {
	auth := newTestIdentity(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ctx-token", decodeBody(t, r)["idToken"])
		writeJSON(t, w, http.StatusOK, map[string]any{
			"users": []map[string]any{{"localId": "uid-1", "email": "ada@example.com"}},
		})
	})

	user, err := auth.CurrentUser(utils.WithIDToken(context.Background(), "ctx-token"))

	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
}

func TestSignOut(t *testing.T) {
	auth := newTestIdentity(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	assert.NoError(t, auth.SignOut(utils.WithIDToken(context.Background(), "ctx-token")))
	assert.NoError(t, auth.SignOut(context.Background()))
}
