package board

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"threadline/domain"
)

// The server is loosely typed: IDs arrive as JSON numbers or strings and
// timestamps in either RFC 3339 or MySQL datetime form. The wire types here
// absorb that before anything reaches the domain.

// wireID accepts a JSON number or string and normalizes to string.
type wireID string

func (w *wireID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*w = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", data)
	}
	*w = wireID(n.String())
	return nil
}

// wireTime accepts RFC 3339 or "2006-01-02 15:04:05". Unparseable values
// decode to the zero time rather than failing the whole payload.
type wireTime struct {
	time.Time
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05"}

func (w *wireTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			w.Time = t
			return nil
		}
	}
	return nil
}

type wireThread struct {
	ID         wireID   `json:"id"`
	AuthorID   wireID   `json:"user_id"`
	Author     string   `json:"username"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	CreatedAt  wireTime `json:"created_at"`
	UpdatedAt  wireTime `json:"updated_at"`
	ReplyCount int      `json:"reply_count"`
}

type wireReply struct {
	ID        wireID   `json:"id"`
	ThreadID  wireID   `json:"parentpost_id"`
	AuthorID  wireID   `json:"user_id"`
	Author    string   `json:"username"`
	Body      string   `json:"body"`
	CreatedAt wireTime `json:"created_at"`
	UpdatedAt wireTime `json:"updated_at"`
}

func (w wireThread) toDomain() domain.Thread {
	updated := w.UpdatedAt.Time
	if updated.IsZero() {
		updated = w.CreatedAt.Time
	}
	return domain.Thread{
		ID:         string(w.ID),
		AuthorID:   string(w.AuthorID),
		Author:     w.Author,
		Title:      displayText(w.Title),
		Body:       displayText(w.Body),
		CreatedAt:  w.CreatedAt.Time,
		UpdatedAt:  updated,
		ReplyCount: w.ReplyCount,
	}
}

func (w wireReply) toDomain() domain.Reply {
	updated := w.UpdatedAt.Time
	if updated.IsZero() {
		updated = w.CreatedAt.Time
	}
	return domain.Reply{
		ID:          string(w.ID),
		ThreadID:    string(w.ThreadID),
		AuthorID:    string(w.AuthorID),
		Author:      w.Author,
		RawBody:     rawText(w.Body),
		DisplayBody: displayText(w.Body),
		CreatedAt:   w.CreatedAt.Time,
		UpdatedAt:   updated,
		Edited:      updated.After(w.CreatedAt.Time),
	}
}
