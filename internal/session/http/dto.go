package http

import (
	"time"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/pkg/request"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/session"
)

// CreateSessionBody is the payload for booking a session.
type CreateSessionBody struct {
	ExpertID  string    `json:"expert_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// UpdateSessionBody reschedules a session and/or changes its status.
type UpdateSessionBody struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
}

// ListSessionsRequest defines query parameters for listing sessions.
type ListSessionsRequest struct {
	request.ListParams
	ExpertID      string     `form:"expert_id" binding:"omitempty,uuid"`
	CandidateID   string     `form:"candidate_id" binding:"omitempty,uuid"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// SlotsRequest defines query parameters for slot resolution.
type SlotsRequest struct {
	Date     string `form:"date" binding:"required"`
	Duration int    `form:"duration,default=30"`
}

type SessionResponse struct {
	ID            string    `json:"id"`
	ExpertID      string    `json:"expert_id"`
	ExpertName    string    `json:"expert_name"`
	CandidateID   string    `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	AmountCents   int64     `json:"amount_cents"`
	PaymentRef    *string   `json:"payment_ref,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewSessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		ID:            s.ID,
		ExpertID:      s.ExpertID,
		ExpertName:    s.ExpertName,
		CandidateID:   s.CandidateID,
		CandidateName: s.CandidateName,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Status:        string(s.Status),
		AmountCents:   s.AmountCents,
		PaymentRef:    s.PaymentRef,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
