package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
)

// InventoryRepository defines the persistence surface required by the
// inventory service.
type InventoryRepository interface {
	WithTx(tx *gorm.DB) InventoryRepository
	FindByMenuItem(ctx context.Context, menuItemID uuid.UUID) (*models.InventoryItem, error)
	Upsert(ctx context.Context, row *models.InventoryItem) (*models.InventoryItem, error)
	AdjustQuantity(ctx context.Context, menuItemID uuid.UUID, delta int) error
	MarkRestocked(ctx context.Context, menuItemID uuid.UUID, at time.Time) error
	List(ctx context.Context) ([]models.InventoryItem, error)
	ListLowStock(ctx context.Context) ([]models.InventoryItem, error)
}

// Service exposes stock management for menu items.
type Service interface {
	SetStock(ctx context.Context, input SetStockInput) (*models.InventoryItem, error)
	Restock(ctx context.Context, menuItemID uuid.UUID, qty int) error
	Deduct(ctx context.Context, menuItemID uuid.UUID, qty int) error
	List(ctx context.Context) ([]models.InventoryItem, error)
	ListLowStock(ctx context.Context) ([]models.InventoryItem, error)
}

type service struct {
	repo InventoryRepository
	now  func() time.Time
}

// NewService builds an inventory service backed by the provided repository.
func NewService(repo InventoryRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// SetStockInput replaces the stock row for a menu item.
type SetStockInput struct {
	MenuItemID        uuid.UUID `json:"menu_item_id" validate:"required"`
	Quantity          int       `json:"quantity" validate:"gte=0"`
	Unit              string    `json:"unit,omitempty"`
	LowStockThreshold int       `json:"low_stock_threshold" validate:"gte=0"`
}

func (s *service) SetStock(ctx context.Context, input SetStockInput) (*models.InventoryItem, error) {
	if input.MenuItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required")
	}
	if input.Quantity < 0 || input.LowStockThreshold < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock values cannot be negative")
	}

	row, err := s.repo.FindByMenuItem(ctx, input.MenuItemID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup stock")
		}
		row = &models.InventoryItem{MenuItemID: input.MenuItemID}
	}

	row.Quantity = input.Quantity
	row.LowStockThreshold = input.LowStockThreshold
	if unit := strings.TrimSpace(input.Unit); unit != "" {
		row.Unit = unit
	}

	saved, err := s.repo.Upsert(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save stock")
	}
	return saved, nil
}

func (s *service) Restock(ctx context.Context, menuItemID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "restock quantity must be positive")
	}
	if err := s.adjust(ctx, menuItemID, qty); err != nil {
		return err
	}
	if err := s.repo.MarkRestocked(ctx, menuItemID, s.now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark restocked")
	}
	return nil
}

// Deduct removes stock after an order is placed. Refuses to oversell.
func (s *service) Deduct(ctx context.Context, menuItemID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "deduct quantity must be positive")
	}
	return s.adjust(ctx, menuItemID, -qty)
}

func (s *service) List(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock")
	}
	return rows, nil
}

func (s *service) ListLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock")
	}
	return rows, nil
}

func (s *service) adjust(ctx context.Context, menuItemID uuid.UUID, delta int) error {
	if menuItemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required")
	}
	if err := s.repo.AdjustQuantity(ctx, menuItemID, delta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for menu item")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust stock")
	}
	return nil
}
