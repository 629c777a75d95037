package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/repositories"

	"github.com/google/uuid"
)

const (
	minFeedbackMessageLength = 10
	anonymousUserName        = "Anonymous"
)

type CreateFeedbackRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Message  string `json:"message" binding:"required"`
	UserName string `json:"userName"`
}

type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// FeedbackService collects ratings and handles moderation.
type FeedbackService interface {
	Create(ctx context.Context, userID string, req CreateFeedbackRequest) (*models.Feedback, error)
	GetAll(ctx context.Context) ([]models.Feedback, error)
	GetByUser(ctx context.Context, userID string) ([]models.Feedback, error)
	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	UpdateStatus(ctx context.Context, id string, req UpdateFeedbackStatusRequest) (*models.Feedback, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.FeedbackStats, error)
}

type feedbackService struct {
	repo     repositories.FeedbackRepository
	authRepo repositories.AuthRepository
	db       *sql.DB
}

// NewFeedbackService creates a new instance of FeedbackService.
func NewFeedbackService(repo repositories.FeedbackRepository, authRepo repositories.AuthRepository, db *sql.DB) FeedbackService {
	return &feedbackService{repo: repo, authRepo: authRepo, db: db}
}

// resolveUserName prefers the supplied name, then the profile name.
func (s *feedbackService) resolveUserName(ctx context.Context, userID, supplied string) string {
	if name := strings.TrimSpace(supplied); name != "" {
		return name
	}
	user, err := s.authRepo.FindUserByID(ctx, s.db, userID)
	if err == nil && strings.TrimSpace(user.Name) != "" {
		return strings.TrimSpace(user.Name)
	}
	return anonymousUserName
}

func (s *feedbackService) Create(ctx context.Context, userID string, req CreateFeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, validationError("rating must be between 1 and 5")
	}
	message := strings.TrimSpace(req.Message)
	if utf8.RuneCountInString(message) < minFeedbackMessageLength {
		return nil, validationError("message must be at least %d characters", minFeedbackMessageLength)
	}

	feedback := &models.Feedback{
		ID:       uuid.NewString(),
		UserID:   userID,
		UserName: s.resolveUserName(ctx, userID, req.UserName),
		Rating:   req.Rating,
		Message:  message,
		Status:   models.FeedbackPending,
	}
	if err := s.repo.Create(ctx, s.db, feedback); err != nil {
		return nil, fmt.Errorf("failed to submit feedback: %w", err)
	}
	return feedback, nil
}

func (s *feedbackService) GetAll(ctx context.Context) ([]models.Feedback, error) {
	list, err := s.repo.List(ctx, s.db, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return list, nil
}

func (s *feedbackService) GetByUser(ctx context.Context, userID string) ([]models.Feedback, error) {
	list, err := s.repo.List(ctx, s.db, &userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback for user %s: %w", userID, err)
	}
	return list, nil
}

func (s *feedbackService) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	feedback, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback %s: %w", id, err)
	}
	return feedback, nil
}

func (s *feedbackService) UpdateStatus(ctx context.Context, id string, req UpdateFeedbackStatusRequest) (*models.Feedback, error) {
	if !models.IsValidFeedbackStatus(req.Status) {
		return nil, validationError("invalid feedback status %q", req.Status)
	}
	feedback, err := s.repo.UpdateStatus(ctx, s.db, id, req.Status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to update feedback %s: %w", id, err)
	}
	return feedback, nil
}

func (s *feedbackService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		return fmt.Errorf("failed to delete feedback %s: %w", id, err)
	}
	return nil
}

func (s *feedbackService) Stats(ctx context.Context) (*models.FeedbackStats, error) {
	stats, err := s.repo.Stats(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to compute feedback stats: %w", err)
	}
	return stats, nil
}
