package expert

import (
	"errors"
	"time"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/availability"
)

var (
	ErrNotFound         = errors.New("expert not found")
	ErrProfileExists    = errors.New("account already has an expert profile")
	ErrEmptyDisplayName = errors.New("display name cannot be empty")
	ErrInvalidRate      = errors.New("hourly rate must be positive")
	ErrPermissionDenied = errors.New("permission denied")
)

// Expert is a bookable provider profile. Schedule holds the recurring
// weekly open windows and BreakDates the full-day closures; both are fed
// unchanged into the availability resolver when slots are requested.
type Expert struct {
	ID              string // UUID
	AccountID       string
	DisplayName     string
	Headline        string
	Skills          []string
	HourlyRateCents int
	Schedule        availability.WeeklySchedule
	BreakDates      []availability.BreakDate
	AvatarPath      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing experts.
type Filter struct {
	Skill    string // matches any element of the skills array
	Keyword  string // matches display name or headline
	Page     int
	PageSize int
}
