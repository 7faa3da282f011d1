package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/internal/menu"
	"github.com/iceonwheels/storefront-backend/internal/pricing"
	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
)

type stubCatalog struct {
	items    map[uuid.UUID]*models.MenuItem
	toppings map[uuid.UUID]*models.Topping
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		items:    map[uuid.UUID]*models.MenuItem{},
		toppings: map[uuid.UUID]*models.Topping{},
	}
}

func (s *stubCatalog) addItem(name string, priceCents int64, available bool, sizes ...string) uuid.UUID {
	id := uuid.New()
	s.items[id] = &models.MenuItem{
		ID: id, Name: name, Category: "ice-cream",
		PriceCents: priceCents, Sizes: sizes, IsAvailable: available,
	}
	return id
}

func (s *stubCatalog) addTopping(name string, priceCents int64, available bool) uuid.UUID {
	id := uuid.New()
	s.toppings[id] = &models.Topping{ID: id, Name: name, PriceCents: priceCents, IsAvailable: available}
	return id
}

func (s *stubCatalog) WithTx(tx *gorm.DB) menu.MenuRepository { return s }

func (s *stubCatalog) CreateItem(_ context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	item.ID = uuid.New()
	s.items[item.ID] = item
	return item, nil
}

func (s *stubCatalog) UpdateItem(_ context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	s.items[item.ID] = item
	return item, nil
}

func (s *stubCatalog) FindItemByID(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubCatalog) ListItems(_ context.Context, availableOnly bool) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range s.items {
		if availableOnly && !item.IsAvailable {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (s *stubCatalog) IncrementPopularity(_ context.Context, id uuid.UUID, by int) error {
	if item, ok := s.items[id]; ok {
		item.Popularity += by
	}
	return nil
}

func (s *stubCatalog) DeleteItem(_ context.Context, id uuid.UUID) error {
	delete(s.items, id)
	return nil
}

func (s *stubCatalog) CreateTopping(_ context.Context, topping *models.Topping) (*models.Topping, error) {
	topping.ID = uuid.New()
	s.toppings[topping.ID] = topping
	return topping, nil
}

func (s *stubCatalog) UpdateTopping(_ context.Context, topping *models.Topping) (*models.Topping, error) {
	s.toppings[topping.ID] = topping
	return topping, nil
}

func (s *stubCatalog) FindToppingByID(_ context.Context, id uuid.UUID) (*models.Topping, error) {
	topping, ok := s.toppings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return topping, nil
}

func (s *stubCatalog) ListToppings(_ context.Context, availableOnly bool) ([]models.Topping, error) {
	var out []models.Topping
	for _, topping := range s.toppings {
		if availableOnly && !topping.IsAvailable {
			continue
		}
		out = append(out, *topping)
	}
	return out, nil
}

func (s *stubCatalog) DeleteTopping(_ context.Context, id uuid.UUID) error {
	delete(s.toppings, id)
	return nil
}

func newQuoteService(t *testing.T, catalog *stubCatalog) Service {
	t.Helper()
	svc, err := NewService(catalog, pricing.NewValidator(nil))
	require.NoError(t, err)
	return svc
}

func TestQuotePricesItemsAndToppings(t *testing.T) {
	catalog := newStubCatalog()
	sundaeID := catalog.addItem("Chocolate Sundae", 12000, true, "small", "large")
	nutsID := catalog.addTopping("Roasted Almonds", 1500, true)

	svc := newQuoteService(t, catalog)

	size := "large"
	quote, err := svc.Quote(context.Background(), QuoteRequest{
		Items: []ItemRequest{{
			MenuItemID: sundaeID.String(),
			Quantity:   2,
			Size:       &size,
			ToppingIDs: []string{nutsID.String()},
		}},
	})
	require.NoError(t, err)
	require.Len(t, quote.Lines, 1)
	require.Equal(t, int64(13500), quote.Lines[0].UnitPriceCents)
	require.Equal(t, int64(27000), quote.Lines[0].TotalCents)
	require.Equal(t, int64(27000), quote.Totals.SubtotalCents)
	require.Equal(t, int64(0), quote.Totals.DiscountCents)
	require.Nil(t, quote.PromoCode)
}

func TestQuoteAppliesPromoCode(t *testing.T) {
	catalog := newStubCatalog()
	itemID := catalog.addItem("Vanilla Scoop", 10000, true)

	svc := newQuoteService(t, catalog)

	quote, err := svc.Quote(context.Background(), QuoteRequest{
		Items:     []ItemRequest{{MenuItemID: itemID.String(), Quantity: 1}},
		PromoCode: "welcome10",
	})
	require.NoError(t, err)
	require.NotNil(t, quote.PromoCode)
	require.Equal(t, "WELCOME10", *quote.PromoCode)
	require.Equal(t, int64(1000), quote.Totals.DiscountCents)
	require.Equal(t, int64(9000), quote.Totals.TotalCents)
}

func TestQuoteRejectsUnavailableItem(t *testing.T) {
	catalog := newStubCatalog()
	itemID := catalog.addItem("Sold Out Special", 8000, false)

	svc := newQuoteService(t, catalog)

	_, err := svc.Quote(context.Background(), QuoteRequest{
		Items: []ItemRequest{{MenuItemID: itemID.String(), Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestQuoteRejectsSizeNotOffered(t *testing.T) {
	catalog := newStubCatalog()
	itemID := catalog.addItem("Kulfi", 6000, true, "small")

	svc := newQuoteService(t, catalog)

	size := "large"
	_, err := svc.Quote(context.Background(), QuoteRequest{
		Items: []ItemRequest{{MenuItemID: itemID.String(), Quantity: 1, Size: &size}},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestQuoteRejectsUnknownItem(t *testing.T) {
	svc := newQuoteService(t, newStubCatalog())

	_, err := svc.Quote(context.Background(), QuoteRequest{
		Items: []ItemRequest{{MenuItemID: uuid.NewString(), Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestQuoteRejectsEmptyCart(t *testing.T) {
	svc := newQuoteService(t, newStubCatalog())

	_, err := svc.Quote(context.Background(), QuoteRequest{})
	require.Error(t, err)
}

func TestQuoteRejectsExcessiveQuantity(t *testing.T) {
	catalog := newStubCatalog()
	itemID := catalog.addItem("Family Tub", 40000, true)

	svc := newQuoteService(t, catalog)

	_, err := svc.Quote(context.Background(), QuoteRequest{
		Items: []ItemRequest{{MenuItemID: itemID.String(), Quantity: maxLineQuantity + 1}},
	})
	require.Error(t, err)
}
