package board

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListReplies_AcceptsEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "parent_id=7") {
			t.Errorf("expected parent_id in query, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"count": 5, "replies": [
			{"id": 1, "parentpost_id": 7, "user_id": 3, "username": "ada",
			 "body": "hi &lt;there&gt;<br />second line", "created_at": "2026-08-10 08:00:00"}
		]}`))
	}))
	defer ts.Close()

	svc := NewBoardService(NewClient(ts.URL))
	set, err := svc.ListReplies(context.Background(), "7")
	if err != nil {
		t.Fatalf("list replies failed: %v", err)
	}
	if set.Count != 5 {
		t.Fatalf("expected envelope count 5, got %d", set.Count)
	}
	if len(set.Replies) != 1 {
		t.Fatalf("expected one reply, got %d", len(set.Replies))
	}

	r := set.Replies[0]
	if r.ID != "1" || r.ThreadID != "7" || r.AuthorID != "3" {
		t.Fatalf("unexpected normalized reply: %#v", r)
	}
	if r.DisplayBody != "hi <there>\nsecond line" {
		t.Fatalf("unexpected display body: %q", r.DisplayBody)
	}
	if r.RawBody != "hi <there>\nsecond line" {
		t.Fatalf("raw body must preserve newlines: %q", r.RawBody)
	}
	if r.Edited {
		t.Fatalf("unedited reply must not carry the marker")
	}
}

func TestListReplies_AcceptsBareArray(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "parentpost_id": 7, "user_id": 3, "username": "ada", "body": "a"},
			{"id": 2, "parentpost_id": 7, "user_id": 4, "username": "bob", "body": "b"}
		]`))
	}))
	defer ts.Close()

	svc := NewBoardService(NewClient(ts.URL))
	set, err := svc.ListReplies(context.Background(), "7")
	if err != nil {
		t.Fatalf("list replies failed: %v", err)
	}
	if set.Count != 2 || len(set.Replies) != 2 {
		t.Fatalf("bare array must use length as count: %#v", set)
	}
}

func TestListReplies_EnvelopeWithoutCountUsesLength(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"replies": [
			{"id": 1, "parentpost_id": 7, "user_id": 3, "username": "ada", "body": "a"}
		]}`))
	}))
	defer ts.Close()

	svc := NewBoardService(NewClient(ts.URL))
	set, err := svc.ListReplies(context.Background(), "7")
	if err != nil {
		t.Fatalf("list replies failed: %v", err)
	}
	if set.Count != 1 {
		t.Fatalf("missing count must fall back to array length, got %d", set.Count)
	}
}

func TestCountReplies_ReturnsEnvelopeCount(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 9, "replies": []}`))
	}))
	defer ts.Close()

	svc := NewBoardService(NewClient(ts.URL))
	count, err := svc.CountReplies(context.Background(), "7")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 9 {
		t.Fatalf("expected count 9, got %d", count)
	}
}

func TestListReplies_MalformedPayloadErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"nonsense"`))
	}))
	defer ts.Close()

	svc := NewBoardService(NewClient(ts.URL))
	if _, err := svc.ListReplies(context.Background(), "7"); err == nil {
		t.Fatalf("expected error for malformed reply payload")
	}
}
