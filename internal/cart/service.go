package cart

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/internal/menu"
	"github.com/iceonwheels/storefront-backend/internal/pricing"
	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	"github.com/iceonwheels/storefront-backend/pkg/enums"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
)

// maxLineQuantity bounds a single cart line. Bulk orders go through
// the admin, not the storefront.
const maxLineQuantity = 50

// ItemRequest is one cart entry as submitted by the storefront. Only
// IDs and quantities come from the client; prices are resolved
// server-side.
type ItemRequest struct {
	MenuItemID string   `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int      `json:"quantity" validate:"required,gt=0"`
	Size       *string  `json:"size,omitempty"`
	ToppingIDs []string `json:"topping_ids,omitempty"`
}

// QuoteRequest carries the cart and an optional promo code.
type QuoteRequest struct {
	Items     []ItemRequest `json:"items" validate:"required,min=1,dive"`
	PromoCode string        `json:"promo_code,omitempty"`
}

// QuotedLine is a fully priced cart line. UnitPriceCents includes the
// selected toppings.
type QuotedLine struct {
	MenuItemID     uuid.UUID       `json:"menu_item_id"`
	Name           string          `json:"name"`
	Size           *enums.ItemSize `json:"size,omitempty"`
	Toppings       []string        `json:"toppings"`
	UnitPriceCents int64           `json:"unit_price_cents"`
	Quantity       int             `json:"quantity"`
	TotalCents     int64           `json:"total_cents"`
}

// Quote is the server-computed pricing snapshot for a cart.
type Quote struct {
	Lines     []QuotedLine   `json:"lines"`
	PromoCode *string        `json:"promo_code,omitempty"`
	Totals    pricing.Totals `json:"totals"`
}

// Service prices carts. It is stateless; every call re-resolves items
// against the menu.
type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
}

type service struct {
	repo      menu.MenuRepository
	validator *pricing.Validator
}

// NewService builds a cart service. The menu repository is the price
// authority; the validator resolves promo codes.
func NewService(repo menu.MenuRepository, validator *pricing.Validator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if validator == nil {
		return nil, fmt.Errorf("pricing validator required")
	}
	return &service{repo: repo, validator: validator}, nil
}

// Quote resolves and prices the cart, applying the promo code when
// one is supplied. Client-sent prices are never trusted.
func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lines, priced, err := s.resolve(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	quote := &Quote{Lines: lines}
	code := strings.TrimSpace(req.PromoCode)
	if code == "" {
		quote.Totals = pricing.ComputeTotals(priced, nil)
		return quote, nil
	}

	promo, totals, err := s.validator.Apply(ctx, code, priced)
	if err != nil {
		return nil, err
	}
	quote.PromoCode = &promo.Code
	quote.Totals = totals
	return quote, nil
}

// resolve turns client item requests into priced lines, rejecting
// unknown, unavailable, or malformed entries.
func (s *service) resolve(ctx context.Context, items []ItemRequest) ([]QuotedLine, []pricing.LineItem, error) {
	lines := make([]QuotedLine, 0, len(items))
	priced := make([]pricing.LineItem, 0, len(items))

	for _, req := range items {
		if req.Quantity <= 0 || req.Quantity > maxLineQuantity {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity out of range")
		}
		itemID, err := uuid.Parse(req.MenuItemID)
		if err != nil {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid menu item id")
		}

		item, err := s.repo.FindItemByID(ctx, itemID)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
			}
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup menu item")
		}
		if !item.IsAvailable {
			return nil, nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("%s is not available", item.Name))
		}

		size, err := resolveSize(item, req.Size)
		if err != nil {
			return nil, nil, err
		}

		toppingNames, toppingCents, err := s.resolveToppings(ctx, req.ToppingIDs)
		if err != nil {
			return nil, nil, err
		}

		unitPrice := item.PriceCents + toppingCents
		line := QuotedLine{
			MenuItemID:     item.ID,
			Name:           item.Name,
			Size:           size,
			Toppings:       toppingNames,
			UnitPriceCents: unitPrice,
			Quantity:       req.Quantity,
			TotalCents:     unitPrice * int64(req.Quantity),
		}
		lines = append(lines, line)

		customizations := make([]string, 0, len(toppingNames)+1)
		if size != nil {
			customizations = append(customizations, size.Label())
		}
		customizations = append(customizations, toppingNames...)
		priced = append(priced, pricing.LineItem{
			ID:             item.ID.String(),
			Name:           item.Name,
			UnitPriceCents: unitPrice,
			Quantity:       req.Quantity,
			Customizations: customizations,
		})
	}

	return lines, priced, nil
}

func resolveSize(item *models.MenuItem, raw *string) (*enums.ItemSize, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	size, err := enums.ParseItemSize(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item size")
	}
	for _, offered := range item.Sizes {
		if offered == size.String() {
			return &size, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s is not offered in that size", item.Name))
}

func (s *service) resolveToppings(ctx context.Context, ids []string) ([]string, int64, error) {
	names := make([]string, 0, len(ids))
	var cents int64
	for _, raw := range ids {
		toppingID, err := uuid.Parse(raw)
		if err != nil {
			return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid topping id")
		}
		topping, err := s.repo.FindToppingByID(ctx, toppingID)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, pkgerrors.New(pkgerrors.CodeNotFound, "topping not found")
			}
			return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup topping")
		}
		if !topping.IsAvailable {
			return nil, 0, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("topping %s is not available", topping.Name))
		}
		names = append(names, topping.Name)
		cents += topping.PriceCents
	}
	return names, cents, nil
}
