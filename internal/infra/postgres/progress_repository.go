package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

// ProgressRepository records quiz outcomes per user and module.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// Upsert records a quiz score, replacing any earlier attempt for the same
// module so the latest score wins.
func (r *ProgressRepository) Upsert(ctx context.Context, userID, moduleID int64, score float64) (domain.Progress, error) {
	now := time.Now().UTC()
	var progress domain.Progress
	err := r.pool.QueryRow(ctx,
		`INSERT INTO progress (user_id, module_id, quiz_score, quiz_completed_at, created_at)
		 VALUES ($1, $2, $3, $4, $4)
		 ON CONFLICT (user_id, module_id)
		 DO UPDATE SET quiz_score=$3, quiz_completed_at=$4
		 RETURNING id, user_id, module_id, quiz_score, quiz_completed_at, created_at`,
		userID, moduleID, score, now,
	).Scan(&progress.ID, &progress.UserID, &progress.ModuleID,
		&progress.QuizScore, &progress.QuizCompletedAt, &progress.CreatedAt)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("upsert progress: %w", err)
	}
	return progress, nil
}

func (r *ProgressRepository) ByModule(ctx context.Context, userID, moduleID int64) (domain.Progress, error) {
	var progress domain.Progress
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, module_id, quiz_score, quiz_completed_at, created_at
		 FROM progress WHERE user_id=$1 AND module_id=$2`,
		userID, moduleID,
	).Scan(&progress.ID, &progress.UserID, &progress.ModuleID,
		&progress.QuizScore, &progress.QuizCompletedAt, &progress.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Progress{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Progress{}, fmt.Errorf("load progress: %w", err)
	}
	return progress, nil
}

// ListCompleted summarizes scored modules for prompt context, newest first.
func (r *ProgressRepository) ListCompleted(ctx context.Context, userID int64) ([]domain.CompletedModule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.title, p.quiz_score
		 FROM progress p JOIN modules m ON m.id = p.module_id
		 WHERE p.user_id=$1 AND p.quiz_score IS NOT NULL
		 ORDER BY p.quiz_completed_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed: %w", err)
	}
	defer rows.Close()

	completed := []domain.CompletedModule{}
	for rows.Next() {
		var c domain.CompletedModule
		if err := rows.Scan(&c.Title, &c.Score); err != nil {
			return nil, fmt.Errorf("scan completed: %w", err)
		}
		completed = append(completed, c)
	}
	return completed, rows.Err()
}
