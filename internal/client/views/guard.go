package views

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/teacherlms/internal/client/services"
	"github.com/dmitrijs2005/teacherlms/internal/logging"
)

// VerifyingMessage is shown while a guard check is in flight.
const VerifyingMessage = "Verifying authentication..."

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "redirect-login"
}

// Guard decides whether a protected route may be shown. It keeps no state
// between calls; every Check asks the server again.
type Guard struct {
	auth      services.AuthService
	log       logging.Logger
	verifying func()
}

func NewGuard(auth services.AuthService, log logging.Logger) *Guard {
	return &Guard{auth: auth, log: log}
}

// Check reads the stored session. Without a token it redirects immediately.
// Otherwise it verifies the token once; on success it backfills a missing
// email, on failure it clears the session and redirects. A cancelled context
// redirects without touching the session and returns the context error.
func (g *Guard) Check(ctx context.Context) (Decision, error) {
	sess, err := g.auth.Session(ctx)
	if err != nil {
		g.log.Error(ctx, "reading session failed", "error", err)
		return RedirectLogin, err
	}
	if !sess.Authenticated() {
		return RedirectLogin, nil
	}

	if g.verifying != nil {
		g.verifying()
	}
	user, err := g.auth.Verify(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return RedirectLogin, err
		}
		g.log.Warn(ctx, "token verification failed", "error", err)
		if cerr := g.auth.ClearSession(ctx); cerr != nil {
			g.log.Error(ctx, "clearing session failed", "error", cerr)
		}
		return RedirectLogin, nil
	}

	if sess.UserEmail == "" && user.Email != "" {
		if err := g.auth.BackfillEmail(ctx, user.Email); err != nil {
			g.log.Warn(ctx, "storing user email failed", "error", err)
		}
	}
	return Allow, nil
}

// OnVerify registers fn to run right before a stored token is sent to the
// server for verification.
func (g *Guard) OnVerify(fn func()) {
	g.verifying = fn
}

// Allowed adapts Check to router.GuardFunc.
func (g *Guard) Allowed(ctx context.Context) bool {
	d, _ := g.Check(ctx)
	return d == Allow
}
