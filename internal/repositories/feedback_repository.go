package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"snack_factory_backend/internal/models"
)

// FeedbackRepository defines the interface for feedback database operations.
type FeedbackRepository interface {
	Create(ctx context.Context, executor SQLExecutor, feedback *models.Feedback) error
	List(ctx context.Context, executor SQLExecutor, userID *string) ([]models.Feedback, error)
	GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.Feedback, error)
	UpdateStatus(ctx context.Context, executor SQLExecutor, id, status string) (*models.Feedback, error)
	Delete(ctx context.Context, executor SQLExecutor, id string) error
	Stats(ctx context.Context, executor SQLExecutor) (*models.FeedbackStats, error)
}

type feedbackRepository struct{}

// NewFeedbackRepository creates a new instance of FeedbackRepository.
func NewFeedbackRepository() FeedbackRepository {
	return &feedbackRepository{}
}

const feedbackColumns = `id, user_id, user_name, rating, message, status, created_at, updated_at`

func scanFeedback(s scanner) (*models.Feedback, error) {
	var f models.Feedback
	if err := s.Scan(&f.ID, &f.UserID, &f.UserName, &f.Rating, &f.Message, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *feedbackRepository) Create(ctx context.Context, executor SQLExecutor, feedback *models.Feedback) error {
	query := `INSERT INTO feedback (` + feedbackColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	now := time.Now().UTC()
	feedback.CreatedAt, feedback.UpdatedAt = now, now
	_, err := executor.ExecContext(ctx, query,
		feedback.ID, feedback.UserID, feedback.UserName, feedback.Rating, feedback.Message,
		feedback.Status, feedback.CreatedAt, feedback.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: creating feedback: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *feedbackRepository) List(ctx context.Context, executor SQLExecutor, userID *string) ([]models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback`
	var args []interface{}
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing feedback: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	list := []models.Feedback{}
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning feedback: %v", ErrDatabaseError, err)
		}
		list = append(list, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating feedback: %v", ErrDatabaseError, err)
	}
	return list, nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.Feedback, error) {
	f, err := scanFeedback(executor.QueryRowContext(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting feedback %s: %v", ErrDatabaseError, id, err)
	}
	return f, nil
}

func (r *feedbackRepository) UpdateStatus(ctx context.Context, executor SQLExecutor, id, status string) (*models.Feedback, error) {
	query := `UPDATE feedback SET status = $1, updated_at = $2 WHERE id = $3 RETURNING ` + feedbackColumns
	f, err := scanFeedback(executor.QueryRowContext(ctx, query, status, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating feedback %s: %v", ErrDatabaseError, id, err)
	}
	return f, nil
}

func (r *feedbackRepository) Delete(ctx context.Context, executor SQLExecutor, id string) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting feedback %s: %v", ErrDatabaseError, id, err)
	}
	if err := rowsAffectedOrNotFound(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: deleting feedback %s: %v", ErrDatabaseError, id, err)
	}
	return nil
}

func (r *feedbackRepository) Stats(ctx context.Context, executor SQLExecutor) (*models.FeedbackStats, error) {
	stats := &models.FeedbackStats{RatingDistribution: []models.RatingBucket{}}
	err := executor.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM feedback`).
		Scan(&stats.TotalFeedback, &stats.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("%w: counting feedback: %v", ErrDatabaseError, err)
	}

	rows, err := executor.QueryContext(ctx, `SELECT rating, COUNT(*) FROM feedback GROUP BY rating ORDER BY rating ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: feedback rating distribution: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	for rows.Next() {
		var b models.RatingBucket
		if err := rows.Scan(&b.Rating, &b.Count); err != nil {
			return nil, fmt.Errorf("%w: scanning rating bucket: %v", ErrDatabaseError, err)
		}
		stats.RatingDistribution = append(stats.RatingDistribution, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rating buckets: %v", ErrDatabaseError, err)
	}
	return stats, nil
}
