package checkout

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/internal/cart"
	"github.com/iceonwheels/storefront-backend/internal/inventory"
	"github.com/iceonwheels/storefront-backend/internal/menu"
	"github.com/iceonwheels/storefront-backend/internal/orders"
	"github.com/iceonwheels/storefront-backend/internal/promos"
	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	"github.com/iceonwheels/storefront-backend/pkg/enums"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
	"github.com/iceonwheels/storefront-backend/pkg/logger"
	"github.com/iceonwheels/storefront-backend/pkg/metrics"
)

// TxRunner executes a function inside a database transaction.
// db.Client satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Request finalizes a cart into an order.
type Request struct {
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerPhone *string            `json:"customer_phone,omitempty"`
	OrderType     string             `json:"order_type" validate:"required"`
	PaymentMethod string             `json:"payment_method" validate:"required"`
	Notes         *string            `json:"notes,omitempty"`
	Items         []cart.ItemRequest `json:"items" validate:"required,min=1,dive"`
	PromoCode     string             `json:"promo_code,omitempty"`
}

// Service turns quoted carts into persisted orders.
type Service interface {
	PlaceOrder(ctx context.Context, req Request) (*models.Order, error)
}

// ServiceParams carries checkout dependencies.
type ServiceParams struct {
	Cart      cart.Service
	Orders    orders.OrderRepository
	Menu      menu.MenuRepository
	Inventory inventory.InventoryRepository
	Promos    promos.PromoRepository
	Tx        TxRunner
	Metrics   *metrics.StoreMetrics
	Logger    *logger.Logger
}

type service struct {
	cart      cart.Service
	orderRepo orders.OrderRepository
	menuRepo  menu.MenuRepository
	invRepo   inventory.InventoryRepository
	promoRepo promos.PromoRepository
	tx        TxRunner
	metrics   *metrics.StoreMetrics
	logg      *logger.Logger
	now       func() time.Time
	newID     func() uuid.UUID
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Menu == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if params.Promos == nil {
		return nil, fmt.Errorf("promos repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		cart:      params.Cart,
		orderRepo: params.Orders,
		menuRepo:  params.Menu,
		invRepo:   params.Inventory,
		promoRepo: params.Promos,
		tx:        params.Tx,
		metrics:   params.Metrics,
		logg:      params.Logger,
		now:       time.Now,
		newID:     uuid.New,
	}, nil
}

// PlaceOrder re-quotes the cart server-side, then persists the order,
// decrements stock, bumps item popularity, and records promo usage in
// one transaction.
func (s *service) PlaceOrder(ctx context.Context, req Request) (*models.Order, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	orderType, err := enums.ParseOrderType(strings.TrimSpace(req.OrderType))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order type")
	}
	paymentMethod, err := enums.ParsePaymentMethod(strings.TrimSpace(req.PaymentMethod))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	quote, err := s.cart.Quote(ctx, cart.QuoteRequest{Items: req.Items, PromoCode: req.PromoCode})
	if err != nil {
		if s.metrics != nil && strings.TrimSpace(req.PromoCode) != "" {
			s.metrics.IncPromoApplied("rejected")
		}
		return nil, err
	}
	if quote.PromoCode != nil && s.metrics != nil {
		s.metrics.IncPromoApplied("accepted")
	}

	placedAt := s.now().UTC()
	order := &models.Order{
		OrderNumber:   s.orderNumber(placedAt),
		CustomerName:  name,
		CustomerPhone: req.CustomerPhone,
		OrderType:     orderType,
		PaymentMethod: paymentMethod,
		PaymentStatus: enums.PaymentStatusPending,
		Status:        enums.OrderStatusPending,
		SubtotalCents: quote.Totals.SubtotalCents,
		DiscountCents: quote.Totals.DiscountCents,
		TotalCents:    quote.Totals.TotalCents,
		PromoCode:     quote.PromoCode,
		Notes:         req.Notes,
		PlacedAt:      placedAt,
	}
	for _, line := range quote.Lines {
		itemID := line.MenuItemID
		order.LineItems = append(order.LineItems, models.OrderLineItem{
			MenuItemID:     &itemID,
			Name:           line.Name,
			Size:           line.Size,
			Toppings:       line.Toppings,
			UnitPriceCents: line.UnitPriceCents,
			Qty:            line.Quantity,
			TotalCents:     line.TotalCents,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
		}
		for _, line := range quote.Lines {
			if err := s.deductStock(ctx, tx, line); err != nil {
				return err
			}
			if err := s.menuRepo.WithTx(tx).IncrementPopularity(ctx, line.MenuItemID, line.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bump item popularity")
			}
		}
		if quote.PromoCode != nil {
			// built-in codes have no registry row; the update is a no-op
			if err := s.promoRepo.WithTx(tx).IncrementUsage(ctx, *quote.PromoCode); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record promo use")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncOrderCreated(orderType.String(), paymentMethod.String())
	}
	s.logg.Info(
		s.logg.WithOrderID(ctx, order.ID.String()),
		fmt.Sprintf("order %s placed for %s", order.OrderNumber, order.CustomerName),
	)
	return order, nil
}

// deductStock decrements the item's stock row when one exists. Items
// without stock tracking sell freely.
func (s *service) deductStock(ctx context.Context, tx *gorm.DB, line cart.QuotedLine) error {
	repo := s.invRepo.WithTx(tx)
	if _, err := repo.FindByMenuItem(ctx, line.MenuItemID); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup stock")
	}
	if err := repo.AdjustQuantity(ctx, line.MenuItemID, -line.Quantity); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(
				pkgerrors.CodeConflict,
				fmt.Sprintf("not enough stock for %s", line.Name),
			)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deduct stock")
	}
	return nil
}

// orderNumber derives the public reference printed on receipts.
func (s *service) orderNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(s.newID().String(), "-", ""))[:6]
	return fmt.Sprintf("IOW-%s-%s", at.Format("20060102"), suffix)
}
