package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

// ModuleRepository stores generated lessons as JSONB rows. The lesson body,
// quiz and video list travel as a single document; the owner and title are
// lifted into columns for listing without decoding.
type ModuleRepository struct {
	pool *pgxpool.Pool
}

func NewModuleRepository(pool *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{pool: pool}
}

func (r *ModuleRepository) Save(ctx context.Context, module *domain.Module) error {
	lesson, err := json.Marshal(module.Lesson)
	if err != nil {
		return fmt.Errorf("marshal lesson: %w", err)
	}
	if module.CreatedAt.IsZero() {
		module.CreatedAt = time.Now().UTC()
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO modules (user_id, title, lesson, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		module.UserID, module.Lesson.Title, lesson, module.CreatedAt,
	).Scan(&module.ID)
	if err != nil {
		return fmt.Errorf("insert module: %w", err)
	}
	return nil
}

func (r *ModuleRepository) ByID(ctx context.Context, id int64) (domain.Module, error) {
	var (
		module domain.Module
		lesson []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, lesson, created_at FROM modules WHERE id=$1`, id,
	).Scan(&module.ID, &module.UserID, &lesson, &module.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Module{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Module{}, fmt.Errorf("load module: %w", err)
	}
	if err := json.Unmarshal(lesson, &module.Lesson); err != nil {
		return domain.Module{}, fmt.Errorf("unmarshal lesson: %w", err)
	}
	return module, nil
}

func (r *ModuleRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Module, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, lesson, created_at FROM modules
		 WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	modules := []domain.Module{}
	for rows.Next() {
		var (
			module domain.Module
			lesson []byte
		)
		if err := rows.Scan(&module.ID, &module.UserID, &lesson, &module.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		if err := json.Unmarshal(lesson, &module.Lesson); err != nil {
			return nil, fmt.Errorf("unmarshal lesson: %w", err)
		}
		modules = append(modules, module)
	}
	return modules, rows.Err()
}

func (r *ModuleRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM modules WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing module from someone else's module.
		var owner int64
		err := r.pool.QueryRow(ctx, `SELECT user_id FROM modules WHERE id=$1`, id).Scan(&owner)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("check module owner: %w", err)
		}
		return domain.ErrForbidden
	}
	return nil
}
