// Package auth implements the authentication session manager: password
// checks, MFA enrollment and the MFA login challenge, tracked as
// mutually exclusive per-session state markers.
package auth

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"time"

	"github.com/mmcloughlin/geohash"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/ourshelves/bookswap/internal/boot"
	"github.com/ourshelves/bookswap/internal/model"
)

const (
	totpPeriod     uint = 30
	totpSecretSize uint = 20
)

type UserStore interface {
	ByEmail(email string) (*model.User, error)
	ByID(id string) (*model.User, error)
	Insert(user *model.User) error
	Save(user *model.User) error
}

type SessionStore interface {
	Get(ctx context.Context, token string) (model.Session, error)
	Put(ctx context.Context, token string, session model.Session) error
	Delete(ctx context.Context, token string) error
}

type service struct {
	config   *boot.Config
	users    UserStore
	sessions SessionStore
}

func New(config *boot.Config, users UserStore, sessions SessionStore) *service {
	return &service{
		config:   config,
		users:    users,
		sessions: sessions,
	}
}

// Register creates an account and moves the session to the
// pending-MFA-setup state. The geohash is computed here, once, and
// never recomputed afterwards.
func (s *service) Register(ctx context.Context, token string, params *model.CreateUserParams) (*model.User, error) {
	if params.Email == "" || params.Password == "" || params.Latitude == nil || params.Longitude == nil {
		return nil, model.ErrorMissingFields
	}

	lat, lon := *params.Latitude, *params.Longitude
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, model.ErrorInvalidCoordinates
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.config.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("generating encoded password: %w", err)
	}

	user := &model.User{
		ID:           model.CreateID(),
		CreatedAt:    time.Now().UTC(),
		Email:        params.Email,
		PasswordHash: string(passwordBytes),
		Latitude:     lat,
		Longitude:    lon,
		Geohash:      geohash.EncodeWithPrecision(lat, lon, s.config.Auth.GeohashPrecision),
	}

	// Uniqueness is the store's job; a duplicate surfaces from the
	// insert itself.
	if err := s.users.Insert(user); err != nil {
		if errors.Is(err, model.ErrorDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	if err := s.sessions.Put(ctx, token, model.PendingMFASetup(user.ID)); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	return user, nil
}

// Login verifies the password and reports whether an MFA challenge is
// still required. Unknown email and wrong password are deliberately
// indistinguishable to the caller.
func (s *service) Login(ctx context.Context, token, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, model.ErrorMissingFields
	}

	user, err := s.users.ByEmail(email)
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			return false, model.ErrorInvalidCredentials
		}
		return false, fmt.Errorf("fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false, model.ErrorInvalidCredentials
	}

	next := model.Authenticated(user.ID)
	if user.MFAEnabled {
		next = model.PendingMFALogin(user.ID)
	}
	if err := s.sessions.Put(ctx, token, next); err != nil {
		return false, fmt.Errorf("storing session: %w", err)
	}

	return user.MFAEnabled, nil
}

// BeginMFASetup generates the account's shared secret on first call
// and returns the provisioning key. Repeated calls return a key for
// the same secret.
func (s *service) BeginMFASetup(ctx context.Context, token string) (*otp.Key, error) {
	session, err := s.currentSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.State != model.SessionPendingMFASetup {
		return nil, model.ErrorNoPendingSetup
	}

	user, err := s.users.ByID(session.UserID)
	if err != nil {
		return nil, err
	}

	opts := totp.GenerateOpts{
		Issuer:      s.config.Auth.TOTPIssuer,
		AccountName: user.Email,
		Period:      totpPeriod,
		SecretSize:  totpSecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	}
	if user.MFASecret != nil {
		raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(*user.MFASecret)
		if err != nil {
			return nil, fmt.Errorf("decoding stored secret: %w", err)
		}
		opts.Secret = raw
	}

	key, err := totp.Generate(opts)
	if err != nil {
		return nil, fmt.Errorf("generating totp key: %w", err)
	}

	if user.MFASecret == nil {
		secret := key.Secret()
		user.MFASecret = &secret
		if err := s.users.Save(user); err != nil {
			return nil, fmt.Errorf("saving user: %w", err)
		}
	}

	return key, nil
}

// ConfirmMFASetup checks the submitted code against the pending
// subject's secret, enables MFA and promotes the session. A mismatch
// leaves both account and session untouched.
func (s *service) ConfirmMFASetup(ctx context.Context, token, code string) error {
	session, err := s.currentSession(ctx, token)
	if err != nil {
		return err
	}
	if session.State != model.SessionPendingMFASetup {
		return model.ErrorNoPendingSetup
	}

	user, err := s.users.ByID(session.UserID)
	if err != nil {
		return err
	}

	if user.MFASecret == nil || !s.validateCode(code, *user.MFASecret) {
		return model.ErrorInvalidToken
	}

	user.MFAEnabled = true
	if err := s.users.Save(user); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}

	if err := s.sessions.Put(ctx, token, model.Authenticated(user.ID)); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}

	return nil
}

// SubmitLoginCode completes an MFA login challenge. The pending-login
// marker is retained on mismatch so the caller may retry.
func (s *service) SubmitLoginCode(ctx context.Context, token, code string) error {
	session, err := s.currentSession(ctx, token)
	if err != nil {
		return err
	}
	if session.State != model.SessionPendingMFALogin {
		return model.ErrorNoPendingLogin
	}

	user, err := s.users.ByID(session.UserID)
	if err != nil {
		return err
	}

	if user.MFASecret == nil || !s.validateCode(code, *user.MFASecret) {
		return model.ErrorInvalidToken
	}

	if err := s.sessions.Put(ctx, token, model.Authenticated(user.ID)); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}

	return nil
}

func (s *service) Profile(ctx context.Context, token string) (*model.User, error) {
	session, err := s.currentSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.State != model.SessionAuthenticated {
		return nil, model.ErrorUnauthenticated
	}

	return s.users.ByID(session.UserID)
}

func (s *service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// currentSession maps an unknown token onto the anonymous state but
// surfaces real store failures.
func (s *service) currentSession(ctx context.Context, token string) (model.Session, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrorSessionNotFound) {
			return model.Anonymous(), nil
		}
		return model.Session{}, fmt.Errorf("fetching session: %w", err)
	}
	return session, nil
}

func (s *service) validateCode(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      s.config.Auth.TOTPSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
