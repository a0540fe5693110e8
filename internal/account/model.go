package account

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidRole        = errors.New("invalid account role")
)

// Role distinguishes what an account can do on the platform.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleExpert    Role = "expert"
	RoleAdmin     Role = "admin"
)

// Account represents a login identity. Candidates book sessions; experts
// additionally own a profile in the expert module keyed by AccountID.
type Account struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing accounts.
type Filter struct {
	Email    string
	Role     string
	IsActive *bool // pointer to distinguish between false and not set

	Page     int
	PageSize int
}
