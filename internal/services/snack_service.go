package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateSnackRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Price       *float64            `json:"price" binding:"required,gte=0"`
	Image       string              `json:"image"`
	Category    string              `json:"category" binding:"omitempty,snack_category"`
	PacketTypes []models.PacketType `json:"packetTypes"`
	InStock     *bool               `json:"inStock"`
	Rating      *float64            `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Ingredients []string            `json:"ingredients"`
}

type UpdateSnackRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Price       *float64            `json:"price" binding:"omitempty,gte=0"`
	Image       *string             `json:"image"`
	Category    *string             `json:"category" binding:"omitempty,snack_category"`
	PacketTypes []models.PacketType `json:"packetTypes"`
	InStock     *bool               `json:"inStock"`
	Rating      *float64            `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Ingredients []string            `json:"ingredients"`
}

// --- End of DTOs ---

// SnackService manages the storefront catalog.
type SnackService interface {
	CreateSnack(ctx context.Context, req CreateSnackRequest) (*models.Snack, error)
	GetSnacks(ctx context.Context, filters models.SnackFilters) ([]models.Snack, error)
	GetSnackByID(ctx context.Context, id string) (*models.Snack, error)
	UpdateSnack(ctx context.Context, id string, req UpdateSnackRequest) (*models.Snack, error)
	DeleteSnack(ctx context.Context, id string) error
}

type snackService struct {
	repo repositories.SnackRepository
	db   *sql.DB
}

// NewSnackService creates a new instance of SnackService.
func NewSnackService(repo repositories.SnackRepository, db *sql.DB) SnackService {
	return &snackService{repo: repo, db: db}
}

func normalizePacketTypes(in []models.PacketType) (models.PacketTypes, error) {
	out := make(models.PacketTypes, 0, len(in))
	for i, p := range in {
		if strings.TrimSpace(p.Size) == "" {
			return nil, validationError("packetTypes[%d].size is required", i)
		}
		if p.PriceMultiplier < 0 {
			return nil, validationError("packetTypes[%d].priceMultiplier must not be negative", i)
		}
		if p.PriceMultiplier == 0 {
			p.PriceMultiplier = 1
		}
		out = append(out, p)
	}
	return out, nil
}

func cleanIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func validRating(r float64) bool {
	return r >= 0 && r <= 5
}

func (s *snackService) CreateSnack(ctx context.Context, req CreateSnackRequest) (*models.Snack, error) {
	name, description := strings.TrimSpace(req.Name), strings.TrimSpace(req.Description)
	if name == "" || description == "" || req.Price == nil {
		return nil, validationError("name, description and price are required")
	}
	if !validQuantity(*req.Price) {
		return nil, validationError("price must be a non-negative number")
	}

	snack := &models.Snack{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       *req.Price,
		Image:       models.DefaultSnackImage,
		Category:    models.DefaultSnackCategory,
		InStock:     true,
		Rating:      models.DefaultSnackRating,
		Ingredients: cleanIngredients(req.Ingredients),
	}
	if img := strings.TrimSpace(req.Image); img != "" {
		snack.Image = img
	}
	if req.Category != "" {
		if !models.IsValidSnackCategory(req.Category) {
			return nil, validationError("invalid category %q", req.Category)
		}
		snack.Category = req.Category
	}
	if req.InStock != nil {
		snack.InStock = *req.InStock
	}
	if req.Rating != nil {
		if !validRating(*req.Rating) {
			return nil, validationError("rating must be between 0 and 5")
		}
		snack.Rating = *req.Rating
	}
	packets, err := normalizePacketTypes(req.PacketTypes)
	if err != nil {
		return nil, err
	}
	snack.PacketTypes = packets

	if err := s.repo.Create(ctx, s.db, snack); err != nil {
		return nil, fmt.Errorf("failed to create snack: %w", err)
	}
	return snack, nil
}

func (s *snackService) GetSnacks(ctx context.Context, filters models.SnackFilters) ([]models.Snack, error) {
	if filters.Category != nil && *filters.Category != "" && !models.IsValidSnackCategory(*filters.Category) {
		return nil, validationError("invalid category %q", *filters.Category)
	}
	snacks, err := s.repo.List(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get snacks: %w", err)
	}
	return snacks, nil
}

func (s *snackService) GetSnackByID(ctx context.Context, id string) (*models.Snack, error) {
	snack, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSnackNotFound
		}
		return nil, fmt.Errorf("failed to get snack %s: %w", id, err)
	}
	return snack, nil
}

func (s *snackService) UpdateSnack(ctx context.Context, id string, req UpdateSnackRequest) (*models.Snack, error) {
	snack, err := s.GetSnackByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationError("name cannot be empty")
		}
		snack.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, validationError("description cannot be empty")
		}
		snack.Description = description
	}
	if req.Price != nil {
		if !validQuantity(*req.Price) {
			return nil, validationError("price must be a non-negative number")
		}
		snack.Price = *req.Price
	}
	if req.Image != nil {
		snack.Image = strings.TrimSpace(*req.Image)
		if snack.Image == "" {
			snack.Image = models.DefaultSnackImage
		}
	}
	if req.Category != nil {
		if !models.IsValidSnackCategory(*req.Category) {
			return nil, validationError("invalid category %q", *req.Category)
		}
		snack.Category = *req.Category
	}
	if req.PacketTypes != nil {
		packets, err := normalizePacketTypes(req.PacketTypes)
		if err != nil {
			return nil, err
		}
		snack.PacketTypes = packets
	}
	if req.InStock != nil {
		snack.InStock = *req.InStock
	}
	if req.Rating != nil {
		if !validRating(*req.Rating) {
			return nil, validationError("rating must be between 0 and 5")
		}
		snack.Rating = *req.Rating
	}
	if req.Ingredients != nil {
		snack.Ingredients = cleanIngredients(req.Ingredients)
	}

	if err := s.repo.Update(ctx, s.db, snack); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSnackNotFound
		}
		return nil, fmt.Errorf("failed to update snack %s: %w", id, err)
	}
	return snack, nil
}

func (s *snackService) DeleteSnack(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSnackNotFound
		}
		return fmt.Errorf("failed to delete snack %s: %w", id, err)
	}
	return nil
}
