package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/mini-capstone/internal/backend"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/utils"
	"github.com/MKhiriev/mini-capstone/models"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted on sign-up.
const MinPasswordLength = 6

// TokenSettings configures the ID tokens issued by the account repository.
type TokenSettings struct {
	SignKey  string
	Issuer   string
	Audience string
	Duration time.Duration
}

// accountRepository implements [backend.AuthClient] over the accounts and
// sessions tables. Every sign-up or sign-in opens a session whose ID is the
// "jti" claim of the issued ID token; SignOut revokes it.
type accountRepository struct {
	db         *DB
	tokens     TokenSettings
	bcryptCost int
	newID      func() string
	now        func() time.Time
	logger     *logger.Logger
}

// NewAccountRepository constructs a [backend.AuthClient] backed by db.
func NewAccountRepository(db *DB, tokens TokenSettings, logger *logger.Logger) backend.AuthClient {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:         db,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		newID:      utils.NewUUIDGenerator().Generate,
		now:        storeNow,
		logger:     logger,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: %q", backend.ErrInvalidEmail, email)
	}
	return email, nil
}

// CreateUserWithEmailAndPassword implements [backend.AuthClient].
//
// Error handling:
//   - malformed email → [backend.ErrInvalidEmail];
//   - password shorter than [MinPasswordLength] → [backend.ErrWeakPassword];
//   - unique violation on email → [backend.ErrEmailAlreadyInUse].
func (r *accountRepository) CreateUserWithEmailAndPassword(ctx context.Context, email, password string) (models.UserCredential, error) {
	log := logger.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return models.UserCredential{}, err
	}
	if len(password) < MinPasswordLength {
		return models.UserCredential{}, fmt.Errorf("%w: password should be at least %d characters", backend.ErrWeakPassword, MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return models.UserCredential{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.User{UID: r.newID(), Email: email, CreatedAt: r.now()}
	query, args, err := buildInsertAccountQuery(r.db.builder, user, string(hash))
	if err != nil {
		return models.UserCredential{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return models.UserCredential{}, fmt.Errorf("%w: %s", backend.ErrEmailAlreadyInUse, email)
		}
		log.Err(err).Str("func", "*accountRepository.CreateUserWithEmailAndPassword").Msg("error creating account")
		return models.UserCredential{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return r.openSession(ctx, user)
}

// SignInWithEmailAndPassword implements [backend.AuthClient]. An unknown
// email and a wrong password are indistinguishable to the caller.
func (r *accountRepository) SignInWithEmailAndPassword(ctx context.Context, email, password string) (models.UserCredential, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return models.UserCredential{}, err
	}

	user, hash, err := r.findAccount(ctx, sq.Eq{"email": email})
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserCredential{}, backend.ErrInvalidCredentials
	}
	if err != nil {
		return models.UserCredential{}, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.UserCredential{}, backend.ErrInvalidCredentials
	}

	return r.openSession(ctx, user)
}

// UpdateProfile implements [backend.AuthClient].
func (r *accountRepository) UpdateProfile(ctx context.Context, idToken, displayName string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, _, err := r.verify(ctx, idToken)
	if err != nil {
		return models.User{}, err
	}

	query, args, err := buildUpdateDisplayNameQuery(r.db.builder, user.UID, displayName)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateProfile").Str("uid", user.UID).Msg("error updating display name")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	user.DisplayName = displayName
	return user, nil
}

// VerifyIDToken implements [backend.AuthClient]. A token is valid while its
// signature, issuer, audience and expiry check out and its session has not
// been revoked.
func (r *accountRepository) VerifyIDToken(ctx context.Context, idToken string) (models.User, error) {
	user, _, err := r.verify(ctx, idToken)
	return user, err
}

// CurrentUser implements [backend.AuthClient].
func (r *accountRepository) CurrentUser(ctx context.Context) (models.User, error) {
	idToken, ok := utils.IDTokenFromContext(ctx)
	if !ok {
		return models.User{}, backend.ErrNoCurrentUser
	}
	return r.VerifyIDToken(ctx, idToken)
}

// SignOut implements [backend.AuthClient]. It revokes the session of the ID
// token carried by ctx; without a valid token there is nothing to revoke.
func (r *accountRepository) SignOut(ctx context.Context) error {
	idToken, ok := utils.IDTokenFromContext(ctx)
	if !ok {
		return nil
	}

	token, err := utils.ValidateAndParseIDToken(idToken, r.tokens.SignKey, r.tokens.Issuer, r.tokens.Audience)
	if err != nil {
		return nil
	}

	query, args, err := buildRevokeSessionQuery(r.db.builder, token.SessionID())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountRepository.SignOut").Msg("error revoking session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *accountRepository) openSession(ctx context.Context, user models.User) (models.UserCredential, error) {
	log := logger.FromContext(ctx)

	sessionID := r.newID()
	token, err := utils.GenerateIDToken(utils.IDTokenParams{
		Issuer:    r.tokens.Issuer,
		Audience:  r.tokens.Audience,
		UID:       user.UID,
		SessionID: sessionID,
		Email:     user.Email,
		Duration:  r.tokens.Duration,
		SignKey:   r.tokens.SignKey,
	})
	if err != nil {
		return models.UserCredential{}, err
	}

	createdAt := r.now()
	query, args, err := buildInsertSessionQuery(r.db.builder, sessionID, user.UID, createdAt, createdAt.Add(r.tokens.Duration))
	if err != nil {
		return models.UserCredential{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*accountRepository.openSession").Str("uid", user.UID).Msg("error opening session")
		return models.UserCredential{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.UserCredential{
		User:      user,
		IDToken:   token.String(),
		ExpiresIn: r.tokens.Duration,
	}, nil
}

func (r *accountRepository) verify(ctx context.Context, idToken string) (models.User, string, error) {
	token, err := utils.ValidateAndParseIDToken(idToken, r.tokens.SignKey, r.tokens.Issuer, r.tokens.Audience)
	if err != nil {
		return models.User{}, "", fmt.Errorf("%w: %w", backend.ErrInvalidIDToken, err)
	}

	query, args, err := buildSelectSessionQuery(r.db.builder, token.SessionID(), token.UID())
	if err != nil {
		return models.User{}, "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		revoked   bool
		expiresAt time.Time
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&revoked, &expiresAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, "", fmt.Errorf("%w: unknown session", backend.ErrInvalidIDToken)
	case err != nil:
		return models.User{}, "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	case revoked || !expiresAt.After(r.now()):
		return models.User{}, "", fmt.Errorf("%w: session ended", backend.ErrInvalidIDToken)
	}

	user, _, err := r.findAccount(ctx, sq.Eq{"uid": token.UID()})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", fmt.Errorf("%w: unknown user", backend.ErrInvalidIDToken)
	}
	if err != nil {
		return models.User{}, "", err
	}

	return user, token.SessionID(), nil
}

// findAccount returns the account matching where and its password hash.
// A missing account is reported as sql.ErrNoRows.
func (r *accountRepository) findAccount(ctx context.Context, where sq.Eq) (models.User, string, error) {
	query, args, err := buildSelectAccountQuery(r.db.builder, where)
	if err != nil {
		return models.User{}, "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		user models.User
		hash string
	)
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&user.UID, &user.Email, &hash, &user.DisplayName, &user.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", err
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountRepository.findAccount").Msg("error finding account")
		return models.User{}, "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	return user, hash, nil
}
