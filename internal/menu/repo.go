package menu

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
)

// Repository exposes persistence operations for menu items and toppings.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a menu repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) MenuRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateItem inserts a new menu item.
func (r *Repository) CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem saves the provided menu item.
func (r *Repository) UpdateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindItemByID loads a menu item with its inventory.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns menu items, optionally restricted to available ones.
func (r *Repository) ListItems(ctx context.Context, availableOnly bool) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).Preload("Inventory").Order("category ASC, name ASC")
	if availableOnly {
		query = query.Where("is_available = TRUE")
	}
	var rows []models.MenuItem
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// IncrementPopularity bumps the order counter for a sold item.
func (r *Repository) IncrementPopularity(ctx context.Context, id uuid.UUID, by int) error {
	return r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ?", id).
		UpdateColumn("popularity", gorm.Expr("popularity + ?", by)).Error
}

// DeleteItem removes a menu item and, via cascade, its inventory row.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id).Error
}

// CreateTopping inserts a new topping.
func (r *Repository) CreateTopping(ctx context.Context, topping *models.Topping) (*models.Topping, error) {
	if err := r.db.WithContext(ctx).Create(topping).Error; err != nil {
		return nil, err
	}
	return topping, nil
}

// UpdateTopping saves the provided topping.
func (r *Repository) UpdateTopping(ctx context.Context, topping *models.Topping) (*models.Topping, error) {
	if err := r.db.WithContext(ctx).Save(topping).Error; err != nil {
		return nil, err
	}
	return topping, nil
}

// FindToppingByID loads a topping.
func (r *Repository) FindToppingByID(ctx context.Context, id uuid.UUID) (*models.Topping, error) {
	var topping models.Topping
	if err := r.db.WithContext(ctx).First(&topping, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &topping, nil
}

// ListToppings returns toppings, optionally restricted to available ones.
func (r *Repository) ListToppings(ctx context.Context, availableOnly bool) ([]models.Topping, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if availableOnly {
		query = query.Where("is_available = TRUE")
	}
	var rows []models.Topping
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteTopping removes a topping.
func (r *Repository) DeleteTopping(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Topping{}, "id = ?", id).Error
}
