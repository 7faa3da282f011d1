package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
)

// Repository exposes persistence operations for stock tracking.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) InventoryRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByMenuItem loads the stock row for a menu item.
func (r *Repository) FindByMenuItem(ctx context.Context, menuItemID uuid.UUID) (*models.InventoryItem, error) {
	var row models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("menu_item_id = ?", menuItemID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert creates or replaces the stock row for a menu item.
func (r *Repository) Upsert(ctx context.Context, row *models.InventoryItem) (*models.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// AdjustQuantity atomically shifts quantity by delta, refusing to go
// below zero.
func (r *Repository) AdjustQuantity(ctx context.Context, menuItemID uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("menu_item_id = ? AND quantity + ? >= 0", menuItemID, delta).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkRestocked updates the restock timestamp.
func (r *Repository) MarkRestocked(ctx context.Context, menuItemID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("menu_item_id = ?", menuItemID).
		UpdateColumn("last_restocked_at", at).Error
}

// List returns all stock rows.
func (r *Repository) List(ctx context.Context) ([]models.InventoryItem, error) {
	var rows []models.InventoryItem
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListLowStock returns rows at or below their threshold.
func (r *Repository) ListLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var rows []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("low_stock_threshold > 0 AND quantity <= low_stock_threshold").
		Order("quantity ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
