package board

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"threadline/app"
	"threadline/domain"
)

func (s *boardService) ListReplies(_ context.Context, threadID string) (app.ReplySet, error) {
	data, err := s.fetchReplyPayload(threadID)
	if err != nil {
		return app.ReplySet{}, err
	}
	return decodeReplySet(data)
}

func (s *boardService) CountReplies(_ context.Context, threadID string) (int, error) {
	data, err := s.fetchReplyPayload(threadID)
	if err != nil {
		return 0, err
	}
	set, err := decodeReplySet(data)
	if err != nil {
		return 0, err
	}
	return set.Count, nil
}

func (s *boardService) fetchReplyPayload(threadID string) ([]byte, error) {
	q := url.Values{}
	q.Set("parent_id", threadID)
	data, err := s.client.Get("/api?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetching replies: %w", err)
	}
	return data, nil
}

// decodeReplySet accepts either a {count, replies} envelope or a bare array,
// treating array length as the count when the envelope is absent.
func decodeReplySet(data []byte) (app.ReplySet, error) {
	var envelope struct {
		Count   *int        `json:"count"`
		Replies []wireReply `json:"replies"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Replies != nil {
		set := app.ReplySet{Replies: toDomainReplies(envelope.Replies)}
		if envelope.Count != nil {
			set.Count = *envelope.Count
		} else {
			set.Count = len(set.Replies)
		}
		return set, nil
	}

	var bare []wireReply
	if err := json.Unmarshal(data, &bare); err != nil {
		return app.ReplySet{}, fmt.Errorf("parsing replies: %w", err)
	}
	return app.ReplySet{Count: len(bare), Replies: toDomainReplies(bare)}, nil
}

func toDomainReplies(wires []wireReply) []domain.Reply {
	replies := make([]domain.Reply, 0, len(wires))
	for _, w := range wires {
		replies = append(replies, w.toDomain())
	}
	return replies
}
