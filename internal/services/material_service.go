package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- DTOs ---

// CreateMaterialRequest is the payload for adding a raw material.
type CreateMaterialRequest struct {
	Name     string   `json:"name" binding:"required"`
	Quantity *float64 `json:"quantity" binding:"required,gte=0"`
	Unit     string   `json:"unit" binding:"required,material_unit"`
	Price    *float64 `json:"price" binding:"omitempty,gte=0"`
}

// UpdateMaterialRequest is a partial update; nil fields are left unchanged.
type UpdateMaterialRequest struct {
	Name     *string  `json:"name"`
	Quantity *float64 `json:"quantity" binding:"omitempty,gte=0"`
	Unit     *string  `json:"unit" binding:"omitempty,material_unit"`
	Price    *float64 `json:"price" binding:"omitempty,gte=0"`
}

// ReduceMaterialRequest draws down a material outside of production.
type ReduceMaterialRequest struct {
	ID               string  `json:"id" binding:"required"`
	QuantityToReduce float64 `json:"quantityToReduce" binding:"required,gt=0"`
}

// --- End of DTOs ---

// MaterialService manages the raw material catalogue.
type MaterialService interface {
	CreateMaterial(ctx context.Context, req CreateMaterialRequest) (*models.Material, error)
	GetMaterials(ctx context.Context) ([]models.Material, error)
	GetMaterialByID(ctx context.Context, id string) (*models.Material, error)
	UpdateMaterial(ctx context.Context, id string, req UpdateMaterialRequest) (*models.Material, error)
	DeleteMaterial(ctx context.Context, id string) error
	ReduceQuantity(ctx context.Context, req ReduceMaterialRequest) (*models.Material, error)
}

type materialService struct {
	materialRepo repositories.MaterialRepository
	ledger       StockLedger
	txManager    repositories.TxManager
	db           *sql.DB
}

// NewMaterialService creates a new instance of MaterialService.
func NewMaterialService(mr repositories.MaterialRepository, ledger StockLedger, txm repositories.TxManager, db *sql.DB) MaterialService {
	return &materialService{materialRepo: mr, ledger: ledger, txManager: txm, db: db}
}

func validQuantity(q float64) bool {
	return q >= 0 && !math.IsNaN(q) && !math.IsInf(q, 0)
}

func (s *materialService) CreateMaterial(ctx context.Context, req CreateMaterialRequest) (*models.Material, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	if req.Quantity == nil || !validQuantity(*req.Quantity) {
		return nil, validationError("quantity must be a non-negative number")
	}
	if !models.IsValidMaterialUnit(req.Unit) {
		return nil, validationError("unit must be one of %s", strings.Join(models.MaterialUnits(), ", "))
	}
	material := &models.Material{
		ID:       uuid.NewString(),
		Name:     name,
		Quantity: *req.Quantity,
		Unit:     req.Unit,
	}
	if req.Price != nil {
		if !validQuantity(*req.Price) {
			return nil, validationError("price must be a non-negative number")
		}
		material.Price = *req.Price
	}
	if err := s.materialRepo.Create(ctx, s.db, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	return material, nil
}

func (s *materialService) GetMaterials(ctx context.Context) ([]models.Material, error) {
	materials, err := s.materialRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get materials: %w", err)
	}
	return materials, nil
}

func (s *materialService) GetMaterialByID(ctx context.Context, id string) (*models.Material, error) {
	m, err := s.materialRepo.GetByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material %s: %w", id, err)
	}
	return m, nil
}

func (s *materialService) UpdateMaterial(ctx context.Context, id string, req UpdateMaterialRequest) (*models.Material, error) {
	var updated *models.Material
	err := s.txManager.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		m, err := s.materialRepo.GetForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrMaterialNotFound
			}
			return fmt.Errorf("failed to load material %s: %w", id, err)
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return validationError("name cannot be empty")
			}
			m.Name = name
		}
		if req.Quantity != nil {
			if !validQuantity(*req.Quantity) {
				return validationError("quantity must be a non-negative number")
			}
			m.Quantity = *req.Quantity
		}
		if req.Unit != nil {
			if !models.IsValidMaterialUnit(*req.Unit) {
				return validationError("unit must be one of %s", strings.Join(models.MaterialUnits(), ", "))
			}
			m.Unit = *req.Unit
		}
		if req.Price != nil {
			if !validQuantity(*req.Price) {
				return validationError("price must be a non-negative number")
			}
			m.Price = *req.Price
		}
		if err := s.materialRepo.Update(ctx, tx, m); err != nil {
			return fmt.Errorf("failed to update material %s: %w", id, err)
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *materialService) DeleteMaterial(ctx context.Context, id string) error {
	if err := s.materialRepo.Delete(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("failed to delete material %s: %w", id, err)
	}
	return nil
}

func (s *materialService) ReduceQuantity(ctx context.Context, req ReduceMaterialRequest) (*models.Material, error) {
	var m *models.Material
	err := s.txManager.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		var err error
		m, err = s.ledger.ReduceMaterial(ctx, tx, req.ID, req.QuantityToReduce)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
