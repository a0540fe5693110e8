package expert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/availability"
)

// Repository defines methods for accessing expert profiles in storage.
type Repository interface {
	Create(ctx context.Context, e *Expert) error
	GetByID(ctx context.Context, id string) (*Expert, error)
	GetByAccountID(ctx context.Context, accountID string) (*Expert, error)
	List(ctx context.Context, filter Filter) ([]*Expert, int, error)
	Update(ctx context.Context, e *Expert) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const expertColumns = "id, account_id, display_name, headline, skills, hourly_rate_cents, schedule, break_dates, avatar_path, created_at, updated_at"

// scanExpert scans one row including the JSONB schedule and break columns.
func scanExpert(row pgx.Row) (*Expert, error) {
	var e Expert
	var scheduleJSON, breaksJSON []byte

	if err := row.Scan(
		&e.ID, &e.AccountID, &e.DisplayName, &e.Headline, &e.Skills,
		&e.HourlyRateCents, &scheduleJSON, &breaksJSON, &e.AvatarPath,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(scheduleJSON) > 0 {
		if err := json.Unmarshal(scheduleJSON, &e.Schedule); err != nil {
			return nil, fmt.Errorf("unmarshal schedule for expert %s failed: %w", e.ID, err)
		}
	}
	if len(breaksJSON) > 0 {
		if err := json.Unmarshal(breaksJSON, &e.BreakDates); err != nil {
			return nil, fmt.Errorf("unmarshal break dates for expert %s failed: %w", e.ID, err)
		}
	}
	return &e, nil
}

func marshalSchedule(e *Expert) ([]byte, []byte, error) {
	schedule := e.Schedule
	if schedule == nil {
		schedule = availability.WeeklySchedule{}
	}
	breaks := e.BreakDates
	if breaks == nil {
		breaks = []availability.BreakDate{}
	}

	scheduleJSON, err := json.Marshal(schedule)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal schedule failed: %w", err)
	}
	breaksJSON, err := json.Marshal(breaks)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal break dates failed: %w", err)
	}
	return scheduleJSON, breaksJSON, nil
}

func (r *pgxRepository) Create(ctx context.Context, e *Expert) error {
	scheduleJSON, breaksJSON, err := marshalSchedule(e)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.experts").
		Columns("account_id", "display_name", "headline", "skills", "hourly_rate_cents", "schedule", "break_dates").
		Values(e.AccountID, e.DisplayName, e.Headline, e.Skills, e.HourlyRateCents, scheduleJSON, breaksJSON).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create expert query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrProfileExists
		}
		return fmt.Errorf("create expert failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Expert, error) {
	query := "SELECT " + expertColumns + " FROM public.experts WHERE id = $1"

	e, err := scanExpert(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get expert failed: %w", err)
	}
	return e, nil
}

func (r *pgxRepository) GetByAccountID(ctx context.Context, accountID string) (*Expert, error) {
	query := "SELECT " + expertColumns + " FROM public.experts WHERE account_id = $1"

	e, err := scanExpert(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get expert by account failed: %w", err)
	}
	return e, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Expert, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "account_id", "display_name", "headline", "skills",
		"hourly_rate_cents", "schedule", "break_dates", "avatar_path",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.experts")

	if filter.Skill != "" {
		query = query.Where("? = ANY(skills)", filter.Skill)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"display_name": pattern},
			squirrel.ILike{"headline": pattern},
		})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list experts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list experts failed: %w", err)
	}
	defer rows.Close()

	var experts []*Expert
	var total int

	for rows.Next() {
		var e Expert
		var scheduleJSON, breaksJSON []byte
		if err := rows.Scan(
			&e.ID, &e.AccountID, &e.DisplayName, &e.Headline, &e.Skills,
			&e.HourlyRateCents, &scheduleJSON, &breaksJSON, &e.AvatarPath,
			&e.CreatedAt, &e.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan expert failed: %w", err)
		}
		if len(scheduleJSON) > 0 {
			if err := json.Unmarshal(scheduleJSON, &e.Schedule); err != nil {
				return nil, 0, fmt.Errorf("unmarshal schedule for expert %s failed: %w", e.ID, err)
			}
		}
		if len(breaksJSON) > 0 {
			if err := json.Unmarshal(breaksJSON, &e.BreakDates); err != nil {
				return nil, 0, fmt.Errorf("unmarshal break dates for expert %s failed: %w", e.ID, err)
			}
		}
		experts = append(experts, &e)
	}

	return experts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Expert) error {
	scheduleJSON, breaksJSON, err := marshalSchedule(e)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.experts").
		Set("display_name", e.DisplayName).
		Set("headline", e.Headline).
		Set("skills", e.Skills).
		Set("hourly_rate_cents", e.HourlyRateCents).
		Set("schedule", scheduleJSON).
		Set("break_dates", breaksJSON).
		Set("avatar_path", e.AvatarPath).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update expert query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update expert failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
