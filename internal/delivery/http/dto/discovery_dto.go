package dto

import (
	"time"

	"talentswipe/internal/domain/profile"
)

type CandidateCardResponse struct {
	ProfileID string    `json:"profileId"`
	Title     string    `json:"title"`
	Skills    []string  `json:"skills"`
	YOE       int       `json:"yoe"`
	Location  string    `json:"location"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	About     string    `json:"about,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type FeedFiltersRequest struct {
	Skills   []string `json:"skills"`
	Location string   `json:"location"`
	MinYOE   *int     `json:"minYoe"`
	MaxYOE   *int     `json:"maxYoe"`
}

type FeedFiltersResponse struct {
	Skills   []string `json:"skills"`
	Location string   `json:"location"`
	MinYOE   *int     `json:"minYoe,omitempty"`
	MaxYOE   *int     `json:"maxYoe,omitempty"`
}

type CooldownRequest struct {
	CooldownDays int `json:"cooldownDays"`
}

type CooldownResponse struct {
	CooldownDays int `json:"cooldownDays"`
}

func (r FeedFiltersRequest) ToFilter() profile.Filter {
	return profile.Filter{
		Skills:   r.Skills,
		Location: r.Location,
		MinYOE:   r.MinYOE,
		MaxYOE:   r.MaxYOE,
	}
}

func NewFeedFiltersResponse(f profile.Filter) FeedFiltersResponse {
	skills := f.Skills
	if skills == nil {
		skills = []string{}
	}
	return FeedFiltersResponse{
		Skills:   skills,
		Location: f.Location,
		MinYOE:   f.MinYOE,
		MaxYOE:   f.MaxYOE,
	}
}

func NewCandidateCardResponse(p profile.CandidateProfile) CandidateCardResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return CandidateCardResponse{
		ProfileID: p.ID.String(),
		Title:     p.Title,
		Skills:    skills,
		YOE:       p.YOE,
		Location:  p.Location,
		AvatarURL: p.AvatarURL,
		About:     p.About,
		CreatedAt: p.CreatedAt,
	}
}

func NewCandidateFeedResponse(profiles []profile.CandidateProfile) []CandidateCardResponse {
	out := make([]CandidateCardResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewCandidateCardResponse(p))
	}
	return out
}
