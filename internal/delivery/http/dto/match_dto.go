package dto

import (
	"time"

	"talentswipe/internal/domain/match"
	"talentswipe/internal/usecase"
)

type MatchResponse struct {
	ID              string    `json:"id"`
	CandidateUserID string    `json:"candidateUserId"`
	RecruiterUserID string    `json:"recruiterUserId"`
	JobID           string    `json:"jobId"`
	CreatedAt       time.Time `json:"createdAt"`
}

type MatchStatsResponse struct {
	Total    int64 `json:"total"`
	Today    int64 `json:"today"`
	ThisWeek int64 `json:"thisWeek"`
}

type PaginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type PagedResponse[T any] struct {
	Items      []T                `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

func NewMatchResponse(m match.Match) MatchResponse {
	return MatchResponse{
		ID:              m.ID.String(),
		CandidateUserID: m.CandidateUserID.String(),
		RecruiterUserID: m.RecruiterUserID.String(),
		JobID:           m.JobID.String(),
		CreatedAt:       m.CreatedAt,
	}
}

func NewMatchListResponse(matches []match.Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, NewMatchResponse(m))
	}
	return out
}

func NewMatchStatsResponse(stats match.Stats) MatchStatsResponse {
	return MatchStatsResponse{Total: stats.Total, Today: stats.Today, ThisWeek: stats.ThisWeek}
}

func NewPaginationResponse(p usecase.Pagination) PaginationResponse {
	return PaginationResponse{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}
