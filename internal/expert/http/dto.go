package http

import (
	"time"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/availability"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/expert"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/pkg/request"
)

// CreateExpertBody is the payload for creating an expert profile.
type CreateExpertBody struct {
	DisplayName     string   `json:"display_name" binding:"required,max=100"`
	Headline        string   `json:"headline" binding:"omitempty,max=200"`
	Skills          []string `json:"skills" binding:"omitempty,max=20"`
	HourlyRateCents int      `json:"hourly_rate_cents" binding:"required,min=1"`
}

// UpdateExpertBody is the payload for partial profile updates.
type UpdateExpertBody struct {
	DisplayName     *string  `json:"display_name" binding:"omitempty,max=100"`
	Headline        *string  `json:"headline" binding:"omitempty,max=200"`
	Skills          []string `json:"skills" binding:"omitempty,max=20"`
	HourlyRateCents *int     `json:"hourly_rate_cents" binding:"omitempty,min=1"`
}

// ReplaceScheduleBody swaps the weekly schedule and break dates wholesale.
type ReplaceScheduleBody struct {
	Schedule   availability.WeeklySchedule `json:"schedule" binding:"required"`
	BreakDates []availability.BreakDate    `json:"break_dates"`
}

// ListExpertsRequest defines query parameters for the expert listing.
type ListExpertsRequest struct {
	request.ListParams
	Skill   string `form:"skill"`
	Keyword string `form:"q"`
}

// ExpertResponse is the public view of an expert profile.
type ExpertResponse struct {
	ID              string                      `json:"id"`
	DisplayName     string                      `json:"display_name"`
	Headline        string                      `json:"headline"`
	Skills          []string                    `json:"skills"`
	HourlyRateCents int                         `json:"hourly_rate_cents"`
	Schedule        availability.WeeklySchedule `json:"schedule"`
	BreakDates      []availability.BreakDate    `json:"break_dates"`
	AvatarPath      *string                     `json:"avatar_path,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

func NewExpertResponse(e *expert.Expert) ExpertResponse {
	skills := e.Skills
	if skills == nil {
		skills = []string{}
	}
	schedule := e.Schedule
	if schedule == nil {
		schedule = availability.WeeklySchedule{}
	}
	breaks := e.BreakDates
	if breaks == nil {
		breaks = []availability.BreakDate{}
	}
	return ExpertResponse{
		ID:              e.ID,
		DisplayName:     e.DisplayName,
		Headline:        e.Headline,
		Skills:          skills,
		HourlyRateCents: e.HourlyRateCents,
		Schedule:        schedule,
		BreakDates:      breaks,
		AvatarPath:      e.AvatarPath,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
