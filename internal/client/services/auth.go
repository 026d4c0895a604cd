// Package services contains the feature-level services of the CliniVault
// client. This file defines the authentication service: registration, login
// (session establishment), silent token refresh, and sign-out.
package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinivault/clinivault/internal/client/api"
	"github.com/clinivault/clinivault/internal/common"
	"github.com/clinivault/clinivault/internal/cryptox"
	"github.com/clinivault/clinivault/internal/logging"
)

// AuthService defines authentication operations for the client.
//
// Contract:
//   - Register: create a new account on the backend.
//   - Login: establish a session — obtain the bearer token, derive the
//     user-held encryption key locally, and store both under the chosen
//     durability policy. The key never leaves the machine.
//   - Refresh: replace only the session token; the key is untouched.
//   - Logout: destroy both secrets.
//   - StartRefreshWatcher: refresh the token ahead of its expiry until the
//     context is cancelled.
type AuthService interface {
	Register(ctx context.Context, email string, passphrase []byte) error
	Login(ctx context.Context, email string, passphrase []byte, remember bool) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
	StartRefreshWatcher(ctx context.Context, interval, ahead time.Duration)
}

type authService struct {
	client api.Client
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client api.Client, log logging.Logger) AuthService {
	return &authService{client: client, log: log}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	KeySalt     string `json:"keySalt"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

func (a *authService) Register(ctx context.Context, email string, passphrase []byte) error {
	req := registerRequest{Email: email, Password: string(passphrase)}
	if err := a.client.Post(ctx, "/api/v1/auth/register", req, nil); err != nil {
		return err
	}
	return nil
}

// Login authenticates against the backend and establishes the session. The
// backend returns the bearer token and the per-user key salt; the encryption
// key is derived locally from (passphrase, salt) and stored next to the
// token. Losing the passphrase makes stored clinical content unrecoverable —
// this layer never attempts recovery or regeneration.
func (a *authService) Login(ctx context.Context, email string, passphrase []byte, remember bool) error {
	req := loginRequest{Email: email, Password: string(passphrase)}

	var resp loginResponse
	if err := a.client.Post(ctx, "/api/v1/auth/login", req, &resp); err != nil {
		return err
	}

	salt, err := base64.StdEncoding.DecodeString(resp.KeySalt)
	if err != nil {
		return fmt.Errorf("decode key salt: %w", err)
	}

	key := cryptox.DeriveUserKey(passphrase, salt)
	defer common.WipeByteArray(key)

	if err := a.client.SetAuth(ctx, resp.AccessToken, cryptox.EncodeKey(key), remember); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}

	a.log.Info(ctx, "session established", "email", email, "remember", remember)
	return nil
}

// Refresh obtains a fresh token from the identity endpoint and replaces the
// stored one. The encryption key is never touched here.
func (a *authService) Refresh(ctx context.Context) error {
	var resp refreshResponse
	if err := a.client.Post(ctx, "/api/v1/auth/refresh", struct{}{}, &resp); err != nil {
		return err
	}
	return a.client.SetToken(ctx, resp.AccessToken)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.client.ClearAuth(ctx)
}

func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	return a.client.IsAuthenticated(ctx)
}

// StartRefreshWatcher periodically checks how close the stored token is to
// expiry and refreshes it at most `ahead` before that moment. It returns when
// ctx is cancelled. Failed refreshes are logged and retried on the next tick;
// the stored token keeps serving requests until the backend rejects it.
func (a *authService) StartRefreshWatcher(ctx context.Context, interval, ahead time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			token, err := a.client.Token(ctx)
			if err != nil || token == "" {
				continue
			}
			exp, err := tokenExpiry(token)
			if err != nil {
				// Opaque (non-JWT) tokens cannot be scheduled; leave them be.
				continue
			}
			if time.Until(exp) > ahead {
				continue
			}
			rctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err = a.Refresh(rctx)
			cancel()
			if err != nil {
				a.log.Warn(ctx, "token refresh failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// tokenExpiry peeks at the exp claim without verifying the signature.
// Verification is the backend's job; the client only needs a schedule hint.
func tokenExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}
