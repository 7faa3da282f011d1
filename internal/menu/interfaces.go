package menu

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
)

// MenuRepository defines the persistence surface required by the menu service.
type MenuRepository interface {
	WithTx(tx *gorm.DB) MenuRepository
	CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListItems(ctx context.Context, availableOnly bool) ([]models.MenuItem, error)
	IncrementPopularity(ctx context.Context, id uuid.UUID, by int) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	CreateTopping(ctx context.Context, topping *models.Topping) (*models.Topping, error)
	UpdateTopping(ctx context.Context, topping *models.Topping) (*models.Topping, error)
	FindToppingByID(ctx context.Context, id uuid.UUID) (*models.Topping, error)
	ListToppings(ctx context.Context, availableOnly bool) ([]models.Topping, error)
	DeleteTopping(ctx context.Context, id uuid.UUID) error
}
