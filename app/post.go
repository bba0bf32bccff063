package app

import (
	"context"

	"threadline/domain"
)

// PostService creates, edits, and deletes posts on the discussion board.
type PostService interface {
	// CreateReply posts a new reply under a thread.
	CreateReply(ctx context.Context, threadID, body string) (domain.Reply, error)

	// EditReply updates a reply's body and returns the server-sanitized
	// echo of the new body.
	EditReply(ctx context.Context, replyID, body string) (string, error)

	// DeletePost removes a thread or reply by ID.
	DeletePost(ctx context.Context, id string) error
}
