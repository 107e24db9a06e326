package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

// UserRepository stores user accounts in Postgres.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, hashed_password, full_name, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		user.Email, user.HashedPassword, user.FullName, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password, full_name, created_at FROM users WHERE email=$1`,
		email))
}

func (r *UserRepository) ByID(ctx context.Context, id int64) (domain.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password, full_name, created_at FROM users WHERE id=$1`,
		id))
}

func (r *UserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.HashedPassword, &user.FullName, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}
