package board

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListThreads_DecodesLooselyTypedPayload(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{
			"threads": [
				{"id": 7, "user_id": "3", "username": "ada", "title": "First &amp; foremost",
				 "body": "line one<br />line two", "created_at": "2026-08-01 10:00:00",
				 "updated_at": "2026-08-02 11:30:00", "reply_count": 4},
				{"id": "8", "user_id": 3, "username": "ada", "title": "Second",
				 "body": "b", "created_at": "2026-08-03T09:00:00Z", "reply_count": 0}
			],
			"totalPages": 3, "currentPage": 2, "current_user_id": 3
		}`))
	}))
	defer ts.Close()

	svc := NewBoardService(NewClient(ts.URL))
	page, err := svc.ListThreads(context.Background(), "created_at", "desc", 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	for _, part := range []string{"sort=created_at", "order=desc", "page=2"} {
		if !strings.Contains(gotQuery, part) {
			t.Fatalf("expected %q in query %q", part, gotQuery)
		}
	}

	if len(page.Threads) != 2 || page.TotalPages != 3 || page.CurrentPage != 2 {
		t.Fatalf("unexpected page: %#v", page)
	}
	if page.CurrentUserID != "3" {
		t.Fatalf("expected numeric user id normalized to string, got %q", page.CurrentUserID)
	}

	first := page.Threads[0]
	if first.ID != "7" || first.AuthorID != "3" {
		t.Fatalf("expected ids normalized to strings: %#v", first)
	}
	if first.Title != "First & foremost" {
		t.Fatalf("expected entities decoded in title: %q", first.Title)
	}
	if first.Body != "line one\nline two" {
		t.Fatalf("expected break tags expanded: %q", first.Body)
	}
	if !first.WasEdited() {
		t.Fatalf("expected edited thread detected: %#v", first)
	}
	if first.ReplyCount != 4 {
		t.Fatalf("expected reply count 4, got %d", first.ReplyCount)
	}

	second := page.Threads[1]
	if second.WasEdited() {
		t.Fatalf("missing updated_at must fall back to created_at: %#v", second)
	}
}

func TestListThreads_MalformedThreadsDegradesToEmptyPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"threads": "oops", "totalPages": 9, "currentPage": 4}`))
	}))
	defer ts.Close()

	svc := NewBoardService(NewClient(ts.URL))
	page, err := svc.ListThreads(context.Background(), "created_at", "desc", 4)
	if err != nil {
		t.Fatalf("malformed threads must not error: %v", err)
	}
	if len(page.Threads) != 0 {
		t.Fatalf("expected empty thread list, got %d", len(page.Threads))
	}
	if page.TotalPages != 1 || page.CurrentPage != 1 {
		t.Fatalf("expected single-page degradation, got %#v", page)
	}
}
