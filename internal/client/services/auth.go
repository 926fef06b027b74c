// Package services contains application services for the LMS client. This
// file defines the authentication service: login against the API, session
// verification, and sign-out with cleanup of the locally stored session.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/teacherlms/internal/client/client"
	"github.com/dmitrijs2005/teacherlms/internal/client/models"
)

// SessionStore is the persisted login state. *session.Store implements it.
type SessionStore interface {
	Get(ctx context.Context) (models.Session, error)
	Set(ctx context.Context, token, email string) error
	SetEmail(ctx context.Context, email string) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist token and email.
//   - Verify: ask the server whether the stored token is still accepted.
//   - Logout: best-effort server logout, then unconditional local cleanup.
//   - Session: read the stored session.
//   - ClearSession: wipe the stored session.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (models.User, error)
	Verify(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (models.Session, error)
	ClearSession(ctx context.Context) error
	BackfillEmail(ctx context.Context, email string) error
}

type authService struct {
	client client.Client
	store  SessionStore
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(client client.Client, store SessionStore) AuthService {
	return &authService{client: client, store: store}
}

// Login authenticates and stores the returned token. The email typed by the
// user is stored when the server does not echo one back.
func (a *authService) Login(ctx context.Context, email string, password []byte) (models.User, error) {
	token, user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return models.User{}, fmt.Errorf("login error: %w", err)
	}

	if user.Email == "" {
		user.Email = email
	}

	if err := a.store.Set(ctx, token, user.Email); err != nil {
		return models.User{}, fmt.Errorf("session saving error: %w", err)
	}
	return user, nil
}

func (a *authService) Verify(ctx context.Context) (models.User, error) {
	return a.client.Verify(ctx)
}

// Logout calls the server and clears the local session whatever the server
// answered. Only a failure to clear the session is returned.
func (a *authService) Logout(ctx context.Context) error {
	_ = a.client.Logout(ctx)
	return a.ClearSession(ctx)
}

func (a *authService) Session(ctx context.Context) (models.Session, error) {
	return a.store.Get(ctx)
}

func (a *authService) ClearSession(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("session clearing error: %w", err)
	}
	return nil
}

// BackfillEmail stores email unless it is empty.
func (a *authService) BackfillEmail(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	return a.store.SetEmail(ctx, email)
}
