package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts the session. A partial unique index on
	// (expert_id, start_time, end_time) for non-cancelled rows makes the
	// insert the atomic claim: two bookers racing for the same slot cannot
	// both succeed, and the loser gets ErrTimeConflict.
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, int, error)
	Update(ctx context.Context, s *Session) error

	// HasOverlap checks for any conflicting non-cancelled session of the
	// expert in the given time range. excludeSessionID is used during
	// reschedules to ignore the session itself.
	HasOverlap(ctx context.Context, expertID string, start, end time.Time, excludeSessionID string) (bool, error)

	// ListForExpertBetween returns the expert's sessions intersecting
	// [from, to), regardless of status. The availability engine decides
	// which of them actually block slots.
	ListForExpertBetween(ctx context.Context, expertID string, from, to time.Time) ([]*Session, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, s *Session) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.sessions").
		Columns("expert_id", "candidate_id", "start_time", "end_time", "status", "amount_cents", "payment_ref").
		Values(s.ExpertID, s.CandidateID, s.StartTime, s.EndTime, s.Status, s.AmountCents, s.PaymentRef).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create session query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Session, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"s.id", "s.expert_id", "e.display_name", "s.candidate_id", "COALESCE(a.display_name, a.email)",
		"s.start_time", "s.end_time", "s.status", "s.amount_cents", "s.payment_ref",
		"s.created_at", "s.updated_at",
	).
		From("public.sessions s").
		Join("public.experts e ON s.expert_id = e.id").
		Join("public.accounts a ON s.candidate_id = a.id").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get session query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var s Session
	if err := row.Scan(
		&s.ID, &s.ExpertID, &s.ExpertName, &s.CandidateID, &s.CandidateName,
		&s.StartTime, &s.EndTime, &s.Status, &s.AmountCents, &s.PaymentRef,
		&s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Session, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"s.id", "s.expert_id", "e.display_name", "s.candidate_id", "COALESCE(a.display_name, a.email)",
		"s.start_time", "s.end_time", "s.status", "s.amount_cents", "s.payment_ref",
		"s.created_at", "s.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.sessions s").
		Join("public.experts e ON s.expert_id = e.id").
		Join("public.accounts a ON s.candidate_id = a.id")

	if filter.CandidateID != "" {
		query = query.Where(squirrel.Eq{"s.candidate_id": filter.CandidateID})
	}
	if filter.ExpertID != "" {
		query = query.Where(squirrel.Eq{"s.expert_id": filter.ExpertID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"s.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.StartTime != nil {
		query = query.Where(squirrel.GtOrEq{"s.end_time": filter.StartTime})
	}
	if filter.EndTime != nil {
		query = query.Where(squirrel.LtOrEq{"s.start_time": filter.EndTime})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("s.start_time DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list sessions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions failed: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	var total int

	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.ExpertID, &s.ExpertName, &s.CandidateID, &s.CandidateName,
			&s.StartTime, &s.EndTime, &s.Status, &s.AmountCents, &s.PaymentRef,
			&s.CreatedAt, &s.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan session failed: %w", err)
		}
		sessions = append(sessions, &s)
	}

	return sessions, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Session) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.sessions").
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("status", s.Status).
		Set("payment_ref", s.PaymentRef).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update session query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrTimeConflict
		}
		return fmt.Errorf("update session failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, expertID string, start, end time.Time, excludeSessionID string) (bool, error) {
	// 1. Expert matches
	// 2. Status is NOT cancelled
	// 3. Time overlaps: (NewStart < ExistingEnd) AND (NewEnd > ExistingStart)
	// 4. Exclude specific ID (for reschedules)
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.sessions").
		Where(squirrel.Eq{"expert_id": expertID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeSessionID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeSessionID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ListForExpertBetween(ctx context.Context, expertID string, from, to time.Time) ([]*Session, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(
		"id", "expert_id", "candidate_id", "start_time", "end_time",
		"status", "amount_cents", "payment_ref", "created_at", "updated_at",
	).
		From("public.sessions").
		Where(squirrel.Eq{"expert_id": expertID}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build expert sessions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list expert sessions failed: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.ExpertID, &s.CandidateID, &s.StartTime, &s.EndTime,
			&s.Status, &s.AmountCents, &s.PaymentRef, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expert session failed: %w", err)
		}
		sessions = append(sessions, &s)
	}

	return sessions, nil
}
