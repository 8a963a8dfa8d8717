package dto

import (
	"time"

	"talentswipe/internal/domain/match"
)

type SendMessageRequest struct {
	Body string `json:"body"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"matchId"`
	SenderID  string    `json:"senderId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type MessageListResponse struct {
	Items   []MessageResponse `json:"items"`
	HasMore bool              `json:"hasMore"`
}

func NewMessageResponse(m match.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID.String(),
		MatchID:   m.MatchID.String(),
		SenderID:  m.SenderID.String(),
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

func NewMessageListResponse(msgs []match.Message, hasMore bool) MessageListResponse {
	items := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, NewMessageResponse(m))
	}
	return MessageListResponse{Items: items, HasMore: hasMore}
}
