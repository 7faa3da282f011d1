package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	"github.com/iceonwheels/storefront-backend/pkg/enums"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
)

// Service exposes menu and topping management.
type Service interface {
	ListPublicMenu(ctx context.Context) (*PublicMenu, error)
	ListItems(ctx context.Context) ([]models.MenuItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	CreateItem(ctx context.Context, input ItemInput) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListToppings(ctx context.Context) ([]models.Topping, error)
	CreateTopping(ctx context.Context, input ToppingInput) (*models.Topping, error)
	UpdateTopping(ctx context.Context, id uuid.UUID, input ToppingInput) (*models.Topping, error)
	DeleteTopping(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo MenuRepository
}

// NewService builds a menu service backed by the provided repository.
func NewService(repo MenuRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	return &service{repo: repo}, nil
}

// ItemInput captures the payload for creating or replacing a menu item.
type ItemInput struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Category    string   `json:"category" validate:"required"`
	Emoji       *string  `json:"emoji,omitempty"`
	PriceCents  int64    `json:"price_cents" validate:"gte=0"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
	IsFeatured  *bool    `json:"is_featured,omitempty"`
}

// ToppingInput captures the payload for creating or replacing a topping.
type ToppingInput struct {
	Name        string `json:"name" validate:"required"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	IsAvailable *bool  `json:"is_available,omitempty"`
}

// PublicMenu is the storefront-facing menu: available items plus the
// topping list customers can pick from.
type PublicMenu struct {
	Items    []models.MenuItem `json:"items"`
	Toppings []models.Topping  `json:"toppings"`
}

func (s *service) ListPublicMenu(ctx context.Context) (*PublicMenu, error) {
	items, err := s.repo.ListItems(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}
	toppings, err := s.repo.ListToppings(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list toppings")
	}
	return &PublicMenu{Items: items, Toppings: toppings}, nil
}

func (s *service) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.repo.ListItems(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}
	return items, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return s.findItem(ctx, id)
}

func (s *service) CreateItem(ctx context.Context, input ItemInput) (*models.MenuItem, error) {
	item, err := itemFromInput(input, &models.MenuItem{})
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create menu item")
	}
	return created, nil
}

func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*models.MenuItem, error) {
	existing, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := itemFromInput(input, existing)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update menu item")
	}
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findItem(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete menu item")
	}
	return nil
}

func (s *service) ListToppings(ctx context.Context) ([]models.Topping, error) {
	toppings, err := s.repo.ListToppings(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list toppings")
	}
	return toppings, nil
}

func (s *service) CreateTopping(ctx context.Context, input ToppingInput) (*models.Topping, error) {
	topping, err := toppingFromInput(input, &models.Topping{})
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateTopping(ctx, topping)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create topping")
	}
	return created, nil
}

func (s *service) UpdateTopping(ctx context.Context, id uuid.UUID, input ToppingInput) (*models.Topping, error) {
	existing, err := s.findTopping(ctx, id)
	if err != nil {
		return nil, err
	}
	topping, err := toppingFromInput(input, existing)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateTopping(ctx, topping)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update topping")
	}
	return updated, nil
}

func (s *service) DeleteTopping(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findTopping(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteTopping(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete topping")
	}
	return nil
}

func (s *service) findItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required")
	}
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup menu item")
	}
	return item, nil
}

func (s *service) findTopping(ctx context.Context, id uuid.UUID) (*models.Topping, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "topping id is required")
	}
	topping, err := s.repo.FindToppingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "topping not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup topping")
	}
	return topping, nil
}

func itemFromInput(input ItemInput, into *models.MenuItem) (*models.MenuItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item category is required")
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
	}
	for _, size := range input.Sizes {
		if _, err := enums.ParseItemSize(size); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item size")
		}
	}

	into.Name = name
	into.Description = input.Description
	into.Category = category
	into.Emoji = input.Emoji
	into.PriceCents = input.PriceCents
	into.ImageURL = input.ImageURL
	into.Sizes = input.Sizes
	if into.Sizes == nil {
		into.Sizes = []string{}
	}
	if input.IsAvailable != nil {
		into.IsAvailable = *input.IsAvailable
	} else if into.ID == uuid.Nil {
		into.IsAvailable = true
	}
	if input.IsFeatured != nil {
		into.IsFeatured = *input.IsFeatured
	}
	return into, nil
}

func toppingFromInput(input ToppingInput, into *models.Topping) (*models.Topping, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "topping name is required")
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "topping price cannot be negative")
	}
	into.Name = name
	into.PriceCents = input.PriceCents
	if input.IsAvailable != nil {
		into.IsAvailable = *input.IsAvailable
	} else if into.ID == uuid.Nil {
		into.IsAvailable = true
	}
	return into, nil
}
