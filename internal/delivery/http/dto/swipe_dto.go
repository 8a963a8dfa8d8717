package dto

import (
	"time"

	"talentswipe/internal/domain/swipe"
	"talentswipe/internal/usecase"
)

type RecordSwipeRequest struct {
	TargetType string `json:"targetType"`
	TargetID   string `json:"targetId"`
	Direction  string `json:"direction"`
}

type SwipeResponse struct {
	ID         string    `json:"id"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	Direction  string    `json:"direction"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SwipeResultResponse struct {
	Swipe      SwipeResponse  `json:"swipe"`
	Match      *MatchResponse `json:"match,omitempty"`
	IsNewMatch bool           `json:"isNewMatch"`
}

type SwipeStatsResponse struct {
	Total       int64 `json:"total"`
	Today       int64 `json:"today"`
	RightSwipes int64 `json:"rightSwipes"`
	LeftSwipes  int64 `json:"leftSwipes"`
	DailyLimit  int   `json:"dailyLimit"`
	Remaining   int64 `json:"remaining"`
}

func NewSwipeResponse(s swipe.Swipe) SwipeResponse {
	return SwipeResponse{
		ID:         s.ID.String(),
		TargetType: string(s.TargetType),
		TargetID:   s.TargetID.String(),
		Direction:  string(s.Direction),
		CreatedAt:  s.CreatedAt,
	}
}

func NewSwipeResultResponse(res usecase.SwipeResult) SwipeResultResponse {
	out := SwipeResultResponse{
		Swipe:      NewSwipeResponse(res.Swipe),
		IsNewMatch: res.IsNewMatch,
	}
	if res.Match != nil {
		m := NewMatchResponse(*res.Match)
		out.Match = &m
	}
	return out
}

func NewSwipeStatsResponse(stats swipe.Stats) SwipeStatsResponse {
	remaining := int64(usecase.DailySwipeLimit) - stats.Today
	if remaining < 0 {
		remaining = 0
	}
	return SwipeStatsResponse{
		Total:       stats.Total,
		Today:       stats.Today,
		RightSwipes: stats.RightSwipes,
		LeftSwipes:  stats.LeftSwipes,
		DailyLimit:  usecase.DailySwipeLimit,
		Remaining:   remaining,
	}
}

func NewSwipeListResponse(swipes []swipe.Swipe) []SwipeResponse {
	out := make([]SwipeResponse, 0, len(swipes))
	for _, s := range swipes {
		out = append(out, NewSwipeResponse(s))
	}
	return out
}
