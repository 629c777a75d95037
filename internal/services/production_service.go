package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- DTOs ---

// CreateProductionRequest records a production run and the materials it used.
type CreateProductionRequest struct {
	SnackName    string                 `json:"snackName" binding:"required"`
	Quantity     int                    `json:"quantity" binding:"required,gte=1"`
	Date         *time.Time             `json:"date"`
	MaterialUsed []models.MaterialUsage `json:"materialUsed"`
	Status       string                 `json:"status"`
}

// UpdateProductionRequest rewrites descriptive fields of a production record.
type UpdateProductionRequest struct {
	SnackName    *string                `json:"snackName"`
	Quantity     *int                   `json:"quantity" binding:"omitempty,gte=1"`
	Date         *time.Time             `json:"date"`
	MaterialUsed []models.MaterialUsage `json:"materialUsed"`
	Status       *string                `json:"status"`
}

// --- End of DTOs ---

// ProductionService records production runs against raw material stock.
type ProductionService interface {
	CreateProduction(ctx context.Context, req CreateProductionRequest) (*models.Production, error)
	GetProductions(ctx context.Context) ([]models.Production, error)
	GetProductionByID(ctx context.Context, id string) (*models.Production, error)
	UpdateProduction(ctx context.Context, id string, req UpdateProductionRequest) (*models.Production, error)
	DeleteProduction(ctx context.Context, id string) error
}

type productionService struct {
	productionRepo repositories.ProductionRepository
	ledger         StockLedger
	txManager      repositories.TxManager
	db             *sql.DB
}

// NewProductionService creates a new instance of ProductionService.
func NewProductionService(pr repositories.ProductionRepository, ledger StockLedger, txm repositories.TxManager, db *sql.DB) ProductionService {
	return &productionService{productionRepo: pr, ledger: ledger, txManager: txm, db: db}
}

// CreateProduction consumes every listed material and stores the record in one transaction.
// If any entry fails validation no material is touched.
func (s *productionService) CreateProduction(ctx context.Context, req CreateProductionRequest) (*models.Production, error) {
	snackName := strings.TrimSpace(req.SnackName)
	if snackName == "" {
		return nil, validationError("snackName is required")
	}
	if req.Quantity < 1 {
		return nil, validationError("quantity must be at least 1")
	}
	status := models.ProductionCompleted
	if req.Status != "" {
		if !models.IsValidProductionStatus(req.Status) {
			return nil, validationError("invalid production status %q", req.Status)
		}
		status = req.Status
	}
	date := time.Now().UTC()
	if req.Date != nil && !req.Date.IsZero() {
		date = req.Date.UTC()
	}

	production := &models.Production{
		ID:           uuid.NewString(),
		SnackName:    snackName,
		Quantity:     req.Quantity,
		Date:         date,
		MaterialUsed: models.MaterialUsageList(req.MaterialUsed),
		Status:       status,
	}
	if production.MaterialUsed == nil {
		production.MaterialUsed = models.MaterialUsageList{}
	}

	err := s.txManager.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		if err := s.ledger.ConsumeForProduction(ctx, tx, req.MaterialUsed, production.ID); err != nil {
			return err
		}
		if err := s.productionRepo.Create(ctx, tx, production); err != nil {
			return fmt.Errorf("failed to create production record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return production, nil
}

func (s *productionService) GetProductions(ctx context.Context) ([]models.Production, error) {
	productions, err := s.productionRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get productions: %w", err)
	}
	return productions, nil
}

func (s *productionService) GetProductionByID(ctx context.Context, id string) (*models.Production, error) {
	p, err := s.productionRepo.GetByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductionNotFound
		}
		return nil, fmt.Errorf("failed to get production %s: %w", id, err)
	}
	return p, nil
}

// UpdateProduction has no effect on material stock.
func (s *productionService) UpdateProduction(ctx context.Context, id string, req UpdateProductionRequest) (*models.Production, error) {
	p, err := s.GetProductionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.SnackName != nil {
		name := strings.TrimSpace(*req.SnackName)
		if name == "" {
			return nil, validationError("snackName cannot be empty")
		}
		p.SnackName = name
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return nil, validationError("quantity must be at least 1")
		}
		p.Quantity = *req.Quantity
	}
	if req.Date != nil && !req.Date.IsZero() {
		p.Date = req.Date.UTC()
	}
	if req.Status != nil {
		if !models.IsValidProductionStatus(*req.Status) {
			return nil, validationError("invalid production status %q", *req.Status)
		}
		p.Status = *req.Status
	}
	if req.MaterialUsed != nil {
		p.MaterialUsed = models.MaterialUsageList(req.MaterialUsed)
	}
	if err := s.productionRepo.Update(ctx, s.db, p); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductionNotFound
		}
		return nil, fmt.Errorf("failed to update production %s: %w", id, err)
	}
	return p, nil
}

// DeleteProduction has no effect on material stock.
func (s *productionService) DeleteProduction(ctx context.Context, id string) error {
	if err := s.productionRepo.Delete(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductionNotFound
		}
		return fmt.Errorf("failed to delete production %s: %w", id, err)
	}
	return nil
}
