package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Error kinds. Handlers map each kind to one HTTP status with errors.Is.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrConflict             = errors.New("conflict")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)

// Resource-specific errors wrap a kind so callers can match either.
var (
	ErrMaterialNotFound      = fmt.Errorf("material %w", ErrNotFound)
	ErrInventoryItemNotFound = fmt.Errorf("inventory item %w", ErrNotFound)
	ErrProductionNotFound    = fmt.Errorf("production record %w", ErrNotFound)
	ErrOrderNotFound         = fmt.Errorf("order %w", ErrNotFound)
	ErrCustomerOrderNotFound = fmt.Errorf("customer order %w", ErrNotFound)
	ErrSnackNotFound         = fmt.Errorf("snack %w", ErrNotFound)
	ErrFeedbackNotFound      = fmt.Errorf("feedback %w", ErrNotFound)
	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)

	ErrEmailExists = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrSKUExists   = fmt.Errorf("sku already in use: %w", ErrConflict)
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// newOrderNumber builds a human-readable order reference such as ORD-1718000000000-3FA2C1.
func newOrderNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
