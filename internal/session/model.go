package session

import (
	"net/http"
	"time"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "session not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid session status")
	ErrStatusFinal      = apperror.New(http.StatusConflict, "session is already completed or cancelled")
	ErrExpertNotFound   = apperror.New(http.StatusNotFound, "expert not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "cannot book a session in the past")
	ErrInvalidDate      = apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "duration must be a positive number of minutes")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Session is a booked consultation between a candidate and an expert.
// Expert and candidate display names are denormalized onto reads for
// list/detail views.
type Session struct {
	ID            string
	ExpertID      string
	ExpertName    string
	CandidateID   string
	CandidateName string
	StartTime     time.Time
	EndTime       time.Time
	Status        Status
	AmountCents   int64
	PaymentRef    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing sessions.
type Filter struct {
	CandidateID string
	ExpertID    string
	Status      string
	StartTime   *time.Time // sessions ending after this instant
	EndTime     *time.Time // sessions starting before this instant
	Page        int
	PageSize    int
}
