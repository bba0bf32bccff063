package board

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"threadline/app"
	"threadline/domain"
)

// boardService implements app.BoardService against the board API.
type boardService struct {
	client *Client
}

// NewBoardService creates a BoardService backed by the board API.
func NewBoardService(client *Client) *boardService {
	return &boardService{client: client}
}

func (s *boardService) ListThreads(_ context.Context, sort, order string, page int) (app.ThreadPage, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("sort", sort)
	q.Set("order", order)
	q.Set("page", strconv.Itoa(page))

	data, err := s.client.Get("/api?" + q.Encode())
	if err != nil {
		return app.ThreadPage{}, fmt.Errorf("fetching threads: %w", err)
	}

	var payload struct {
		Threads       json.RawMessage `json:"threads"`
		TotalPages    int             `json:"totalPages"`
		CurrentPage   int             `json:"currentPage"`
		CurrentUserID wireID          `json:"current_user_id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return app.ThreadPage{}, fmt.Errorf("parsing thread list: %w", err)
	}

	result := app.ThreadPage{
		TotalPages:    payload.TotalPages,
		CurrentPage:   payload.CurrentPage,
		CurrentUserID: string(payload.CurrentUserID),
	}
	if result.CurrentPage < 1 {
		result.CurrentPage = page
	}

	// A threads field that is not an array degrades to an empty single page;
	// the render layer never sees a decode failure here.
	var wires []wireThread
	if err := json.Unmarshal(payload.Threads, &wires); err != nil {
		result.Threads = []domain.Thread{}
		result.TotalPages = 1
		result.CurrentPage = 1
		return result, nil
	}
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}

	threads := make([]domain.Thread, 0, len(wires))
	for _, w := range wires {
		threads = append(threads, w.toDomain())
	}
	result.Threads = threads
	return result, nil
}
