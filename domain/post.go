package domain

import "time"

// Thread is a top-level post starting a discussion.
type Thread struct {
	ID         string
	AuthorID   string
	Author     string
	Title      string
	Body       string
	CreatedAt  time.Time
	UpdatedAt  time.Time // Equals CreatedAt if never edited.
	ReplyCount int       // Authoritative server count, not the number of loaded replies.
}

// Reply is a post attached to exactly one thread.
type Reply struct {
	ID          string
	ThreadID    string
	AuthorID    string
	Author      string
	RawBody     string // Newline-preserving source text; seeds the next edit session.
	DisplayBody string // Sanitized terminal projection of RawBody.
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Edited      bool
}

// WasEdited reports whether a thread was modified after creation.
func (t Thread) WasEdited() bool {
	return !t.UpdatedAt.IsZero() && t.UpdatedAt.After(t.CreatedAt)
}

// OwnedBy reports whether userID owns the reply. An empty userID means the
// current user is not yet resolved and conservatively owns nothing.
func (r Reply) OwnedBy(userID string) bool {
	return userID != "" && r.AuthorID == userID
}

// OwnedBy reports whether userID owns the thread.
func (t Thread) OwnedBy(userID string) bool {
	return userID != "" && t.AuthorID == userID
}
