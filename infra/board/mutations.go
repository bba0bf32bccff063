package board

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"threadline/domain"
)

// postService implements app.PostService against the board API.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the board API.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

func (s *postService) CreateReply(_ context.Context, threadID, body string) (domain.Reply, error) {
	if strings.TrimSpace(body) == "" {
		return domain.Reply{}, domain.ErrEmptyBody
	}

	data, err := s.client.PostJSON("/api", map[string]any{
		"body":          body,
		"parentpost_id": threadID,
	})
	if err != nil {
		return domain.Reply{}, fmt.Errorf("creating reply: %w", err)
	}

	var w wireReply
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Reply{}, fmt.Errorf("parsing created reply: %w", err)
	}
	reply := w.toDomain()
	if reply.ThreadID == "" {
		reply.ThreadID = threadID
	}
	// The server echoes the stored body; the user's text is the raw form.
	reply.RawBody = body
	return reply, nil
}

func (s *postService) EditReply(_ context.Context, replyID, body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", domain.ErrEmptyBody
	}

	data, err := s.client.PostJSON("/api", map[string]any{
		"action":   "edit_reply",
		"reply_id": replyID,
		"body":     body,
	})
	if err != nil {
		return "", fmt.Errorf("editing reply: %w", err)
	}

	var payload struct {
		Success bool   `json:"success"`
		NewBody string `json:"new_body"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("parsing edit response: %w", err)
	}
	if payload.Error != "" {
		return "", fmt.Errorf("editing reply: %s", payload.Error)
	}
	// new_body is pre-sanitized by the server; expand it for terminal display.
	return displayText(payload.NewBody), nil
}

func (s *postService) DeletePost(_ context.Context, id string) error {
	data, err := s.client.PostJSON("/api", map[string]any{
		"action": "delete",
		"id":     id,
	})
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	var payload struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parsing delete response: %w", err)
	}
	if payload.Error != "" {
		return fmt.Errorf("deleting post: %s", payload.Error)
	}
	return nil
}
