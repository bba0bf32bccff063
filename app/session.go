package app

import "context"

// SessionService re-validates the ambient session before sensitive flows.
type SessionService interface {
	// Check returns nil while the session is valid and
	// domain.ErrSessionExpired once it is not.
	Check(ctx context.Context) error
}
