package app

import (
	"context"

	"threadline/domain"
)

// Sort fields accepted by the board API.
const (
	SortCreated = "created_at"
	SortUpdated = "updated_at"
)

// Sort directions accepted by the board API.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ThreadPage is one page of the thread list.
type ThreadPage struct {
	Threads     []domain.Thread
	TotalPages  int
	CurrentPage int

	// CurrentUserID is resolved opportunistically from the list response.
	// Empty until the first successful list fetch.
	CurrentUserID string
}

// ReplySet is the loaded reply subtree of one thread, oldest first.
type ReplySet struct {
	// Count is the authoritative server-side total, which may exceed
	// len(Replies) only when the server truncates; normally they agree.
	Count   int
	Replies []domain.Reply
}

// BoardService reads threads and replies from the discussion board.
type BoardService interface {
	// ListThreads returns one page of threads. A malformed payload degrades
	// to an empty page with TotalPages 1 rather than an error.
	ListThreads(ctx context.Context, sort, order string, page int) (ThreadPage, error)

	// ListReplies returns every reply under a thread with the authoritative count.
	ListReplies(ctx context.Context, threadID string) (ReplySet, error)

	// CountReplies fetches only the current reply count for a thread,
	// bypassing any cache.
	CountReplies(ctx context.Context, threadID string) (int, error)
}
