package board

import (
	"context"
	"errors"
	"fmt"

	"threadline/domain"
)

// sessionService implements app.SessionService against the board API.
type sessionService struct {
	client *Client
}

// NewSessionService creates a SessionService backed by the board API.
func NewSessionService(client *Client) *sessionService {
	return &sessionService{client: client}
}

func (s *sessionService) Check(_ context.Context) error {
	_, err := s.client.Get("/api?action=check_session")
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrSessionExpired) {
		return domain.ErrSessionExpired
	}
	return fmt.Errorf("checking session: %w", err)
}
