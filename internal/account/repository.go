package account

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

// Repository defines methods for accessing account data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, a *Account) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	List(ctx context.Context, filter Filter) ([]*Account, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const accountColumns = "id, email, password_hash, display_name, role, is_active, created_at, last_login_at"

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	if err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName,
		&a.Role, &a.IsActive, &a.CreatedAt, &a.LastLoginAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query := "SELECT " + accountColumns + " FROM public.accounts WHERE email = $1"

	a, err := scanAccount(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account by email failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	query := "SELECT " + accountColumns + " FROM public.accounts WHERE id = $1"

	a, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account by id failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) Create(ctx context.Context, a *Account) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.accounts").
		Columns("email", "password_hash", "display_name", "role", "is_active").
		Values(a.Email, a.PasswordHash, a.DisplayName, a.Role, a.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create account query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create account failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	ct, err := r.pool.Exec(ctx,
		"UPDATE public.accounts SET last_login_at = $1 WHERE id = $2", t, id)
	if err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Account, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "email", "password_hash", "display_name", "role",
		"is_active", "created_at", "last_login_at",
		"count(*) OVER() as total_count",
	).From("public.accounts")

	if filter.Email != "" {
		query = query.Where(squirrel.ILike{"email": "%" + filter.Email + "%"})
	}
	if filter.Role != "" {
		query = query.Where(squirrel.Eq{"role": filter.Role})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"is_active": *filter.IsActive})
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
		return nil, 0, fmt.Errorf("build list accounts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts failed: %w", err)
	}
	defer rows.Close()

	var accounts []*Account
	var total int

	for rows.Next() {
		var a Account
		if err := rows.Scan(
			&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.Role,
			&a.IsActive, &a.CreatedAt, &a.LastLoginAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan account failed: %w", err)
		}
		accounts = append(accounts, &a)
	}

	return accounts, total, nil
}
