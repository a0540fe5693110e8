package expert

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/availability"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/pkg/storage"
)

type CreateRequest struct {
	AccountID       string
	DisplayName     string
	Headline        string
	Skills          []string
	HourlyRateCents int
}

type UpdateRequest struct {
	DisplayName     *string
	Headline        *string
	Skills          []string
	HourlyRateCents *int
}

// Service defines business logic for expert profiles.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Expert, error)
	GetByID(ctx context.Context, id string) (*Expert, error)
	List(ctx context.Context, filter Filter) ([]*Expert, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorAccountID string, isAdmin bool) (*Expert, error)

	// ReplaceSchedule swaps the whole weekly schedule and break-date list.
	// Malformed ranges are stored as-is: the availability engine treats
	// them as inert, so they can never produce bookable slots.
	ReplaceSchedule(ctx context.Context, id string, schedule availability.WeeklySchedule, breaks []availability.BreakDate, actorAccountID string, isAdmin bool) (*Expert, error)

	// SaveAvatar normalizes and stores the profile image, persisting its path.
	SaveAvatar(ctx context.Context, id string, content io.Reader, actorAccountID string, isAdmin bool) (*Expert, error)
}

type service struct {
	repo   Repository
	store  storage.Storage
	images *storage.ImageProcessor
}

// NewService creates a new expert Service.
func NewService(repo Repository, store storage.Storage, images *storage.ImageProcessor) Service {
	return &service{
		repo:   repo,
		store:  store,
		images: images,
	}
}

const (
	avatarMaxWidth  = 512
	avatarMaxHeight = 512
)

func (s *service) Create(ctx context.Context, req CreateRequest) (*Expert, error) {
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, ErrEmptyDisplayName
	}
	if req.HourlyRateCents <= 0 {
		return nil, ErrInvalidRate
	}

	e := &Expert{
		AccountID:       req.AccountID,
		DisplayName:     strings.TrimSpace(req.DisplayName),
		Headline:        strings.TrimSpace(req.Headline),
		Skills:          normalizeSkills(req.Skills),
		HourlyRateCents: req.HourlyRateCents,
		Schedule:        availability.WeeklySchedule{},
		BreakDates:      []availability.BreakDate{},
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Expert, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Expert, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorAccountID string, isAdmin bool) (*Expert, error) {
	e, err := s.authorize(ctx, id, actorAccountID, isAdmin)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if strings.TrimSpace(*req.DisplayName) == "" {
			return nil, ErrEmptyDisplayName
		}
		e.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Headline != nil {
		e.Headline = strings.TrimSpace(*req.Headline)
	}
	if req.Skills != nil {
		e.Skills = normalizeSkills(req.Skills)
	}
	if req.HourlyRateCents != nil {
		if *req.HourlyRateCents <= 0 {
			return nil, ErrInvalidRate
		}
		e.HourlyRateCents = *req.HourlyRateCents
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) ReplaceSchedule(ctx context.Context, id string, schedule availability.WeeklySchedule, breaks []availability.BreakDate, actorAccountID string, isAdmin bool) (*Expert, error) {
	e, err := s.authorize(ctx, id, actorAccountID, isAdmin)
	if err != nil {
		return nil, err
	}

	e.Schedule = schedule
	e.BreakDates = breaks

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) SaveAvatar(ctx context.Context, id string, content io.Reader, actorAccountID string, isAdmin bool) (*Expert, error) {
	e, err := s.authorize(ctx, id, actorAccountID, isAdmin)
	if err != nil {
		return nil, err
	}

	normalized, err := s.images.FitJPEG(content, avatarMaxWidth, avatarMaxHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to process avatar: %w", err)
	}

	path := "avatars/" + e.ID + ".jpg"
	if err := s.store.Save(ctx, path, normalized); err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	e.AvatarPath = &path
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// authorize loads the profile and checks the actor owns it (or is admin).
func (s *service) authorize(ctx context.Context, id, actorAccountID string, isAdmin bool) (*Expert, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && e.AccountID != actorAccountID {
		return nil, ErrPermissionDenied
	}
	return e, nil
}

// normalizeSkills trims entries and drops empties, preserving order.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
