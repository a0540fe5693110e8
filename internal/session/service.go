package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/availability"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/expert"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/payment"
)

const paymentCurrency = "usd"

type CreateRequest struct {
	CandidateID string
	ExpertID    string
	StartTime   time.Time
	EndTime     time.Time
}

type UpdateRequest struct {
	StartTime *time.Time
	EndTime   *time.Time
	Status    *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Session, error)
	GetByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorAccountID string, isAdmin bool) (*Session, error)

	// AvailableSlots resolves the bookable slots of an expert for one
	// calendar date and duration, conflict-checked against that expert's
	// existing sessions.
	AvailableSlots(ctx context.Context, expertID string, date time.Time, durationMinutes int) ([]availability.Slot, error)
}

type service struct {
	repo          Repository
	expertService expert.Service
	payments      payment.Provider
	resolver      *availability.Resolver
	logger        *zap.Logger
}

func NewService(repo Repository, expertService expert.Service, payments payment.Provider, resolver *availability.Resolver, logger *zap.Logger) Service {
	return &service{
		repo:          repo,
		expertService: expertService,
		payments:      payments,
		resolver:      resolver,
		logger:        logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Session, error) {
	// 1. Validate Time Range
	if req.EndTime.Before(req.StartTime) || req.EndTime.Equal(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime.Before(time.Now().UTC()) {
		return nil, ErrStartTimePast
	}

	// 2. Validate Expert Exists (and fetch the rate)
	e, err := s.expertService.GetByID(ctx, req.ExpertID)
	if err != nil {
		if errors.Is(err, expert.ErrNotFound) {
			return nil, ErrExpertNotFound
		}
		return nil, err
	}

	// 3. Check for Overlaps. This is advisory: the unique claim on insert
	// is what actually closes the race between concurrent bookers.
	hasOverlap, err := s.repo.HasOverlap(ctx, req.ExpertID, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	// 4. Price from the expert's hourly rate, pro-rated to the minute.
	minutes := int64(req.EndTime.Sub(req.StartTime) / time.Minute)
	amount := int64(e.HourlyRateCents) * minutes / 60

	sess := &Session{
		ExpertID:    req.ExpertID,
		CandidateID: req.CandidateID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      StatusPending,
		AmountCents: amount,
	}

	// 5. Open a payment intent before claiming the slot. Capture and
	// verification happen outside this service.
	if amount > 0 {
		ref, err := s.payments.CreateIntent(ctx, amount, paymentCurrency, map[string]string{
			"expert_id":    req.ExpertID,
			"candidate_id": req.CandidateID,
		})
		if err != nil {
			s.logger.Error("payment intent creation failed",
				zap.String("expert_id", req.ExpertID),
				zap.Error(err))
			return nil, fmt.Errorf("failed to initiate payment: %w", err)
		}
		if ref != "" {
			sess.PaymentRef = &ref
		}
	}

	// 6. Insert; a unique violation on the claim index maps to ErrTimeConflict.
	if err := s.repo.Create(ctx, sess); err != nil {
		// The intent was opened for a booking that never happened. Cancel it
		// best effort; an uncaptured intent expires on its own eventually.
		if sess.PaymentRef != nil {
			if cerr := s.payments.CancelIntent(ctx, *sess.PaymentRef); cerr != nil {
				s.logger.Warn("orphaned payment intent could not be cancelled",
					zap.String("payment_ref", *sess.PaymentRef),
					zap.Error(cerr))
			}
		}
		return nil, err
	}

	return sess, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Session, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorAccountID string, isAdmin bool) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Permission: the booking candidate, the booked expert, or an admin.
	isCandidate := sess.CandidateID == actorAccountID
	isExpertOwner := false
	if !isAdmin && !isCandidate {
		e, err := s.expertService.GetByID(ctx, sess.ExpertID)
		if err != nil {
			return nil, err
		}
		isExpertOwner = e.AccountID == actorAccountID
	}
	if !isAdmin && !isCandidate && !isExpertOwner {
		return nil, ErrPermissionDenied
	}

	// Completed and cancelled sessions are immutable.
	if sess.Status == StatusCompleted || sess.Status == StatusCancelled {
		return nil, ErrStatusFinal
	}

	newStart := sess.StartTime
	newEnd := sess.EndTime
	timeChanged := false

	if req.StartTime != nil {
		newStart = *req.StartTime
		timeChanged = true
	}
	if req.EndTime != nil {
		newEnd = *req.EndTime
		timeChanged = true
	}

	if timeChanged {
		if newEnd.Before(newStart) || newEnd.Equal(newStart) {
			return nil, ErrInvalidTimeRange
		}
		if newStart.Before(time.Now().UTC()) {
			return nil, ErrStartTimePast
		}

		hasOverlap, err := s.repo.HasOverlap(ctx, sess.ExpertID, newStart, newEnd, sess.ID)
		if err != nil {
			return nil, err
		}
		if hasOverlap {
			return nil, ErrTimeConflict
		}
		sess.StartTime = newStart
		sess.EndTime = newEnd
	}

	if req.Status != nil {
		st := Status(*req.Status)
		switch st {
		case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		default:
			return nil, ErrInvalidStatus
		}

		// A candidate may only cancel; confirming and completing belong
		// to the expert (or an admin).
		if isCandidate && !isAdmin && !isExpertOwner && st != StatusCancelled {
			return nil, ErrPermissionDenied
		}
		sess.Status = st
	}

	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *service) AvailableSlots(ctx context.Context, expertID string, date time.Time, durationMinutes int) ([]availability.Slot, error) {
	e, err := s.expertService.GetByID(ctx, expertID)
	if err != nil {
		if errors.Is(err, expert.ErrNotFound) {
			return nil, ErrExpertNotFound
		}
		return nil, err
	}

	// Pad the window by a day on each side so bookings that cross
	// midnight (from rolled-over schedule ranges) still conflict.
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	existing, err := s.repo.ListForExpertBetween(ctx, expertID, dayStart.AddDate(0, 0, -1), dayStart.AddDate(0, 0, 2))
	if err != nil {
		return nil, err
	}

	bookings := make([]availability.Booking, len(existing))
	for i, x := range existing {
		bookings[i] = availability.Booking{
			StartTime: x.StartTime.In(date.Location()).Format(time.RFC3339),
			EndTime:   x.EndTime.In(date.Location()).Format(time.RFC3339),
			Status:    string(x.Status),
		}
	}

	slots, err := s.resolver.Resolve(date, e.Schedule, e.BreakDates, bookings, durationMinutes)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDuration) {
			return nil, ErrInvalidDuration
		}
		return nil, err
	}
	return slots, nil
}
