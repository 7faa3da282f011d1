package menu

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
)

type stubMenuRepo struct {
	items    map[uuid.UUID]*models.MenuItem
	toppings map[uuid.UUID]*models.Topping
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{
		items:    map[uuid.UUID]*models.MenuItem{},
		toppings: map[uuid.UUID]*models.Topping{},
	}
}

func (s *stubMenuRepo) WithTx(tx *gorm.DB) MenuRepository { return s }

func (s *stubMenuRepo) CreateItem(_ context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	item.ID = uuid.New()
	s.items[item.ID] = item
	return item, nil
}

func (s *stubMenuRepo) UpdateItem(_ context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	s.items[item.ID] = item
	return item, nil
}

func (s *stubMenuRepo) FindItemByID(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubMenuRepo) ListItems(_ context.Context, availableOnly bool) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range s.items {
		if availableOnly && !item.IsAvailable {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (s *stubMenuRepo) IncrementPopularity(_ context.Context, id uuid.UUID, by int) error {
	if item, ok := s.items[id]; ok {
		item.Popularity += by
	}
	return nil
}

func (s *stubMenuRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	delete(s.items, id)
	return nil
}

func (s *stubMenuRepo) CreateTopping(_ context.Context, topping *models.Topping) (*models.Topping, error) {
	topping.ID = uuid.New()
	s.toppings[topping.ID] = topping
	return topping, nil
}

func (s *stubMenuRepo) UpdateTopping(_ context.Context, topping *models.Topping) (*models.Topping, error) {
	s.toppings[topping.ID] = topping
	return topping, nil
}

func (s *stubMenuRepo) FindToppingByID(_ context.Context, id uuid.UUID) (*models.Topping, error) {
	topping, ok := s.toppings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return topping, nil
}

func (s *stubMenuRepo) ListToppings(_ context.Context, availableOnly bool) ([]models.Topping, error) {
	var out []models.Topping
	for _, topping := range s.toppings {
		if availableOnly && !topping.IsAvailable {
			continue
		}
		out = append(out, *topping)
	}
	return out, nil
}

func (s *stubMenuRepo) DeleteTopping(_ context.Context, id uuid.UUID) error {
	delete(s.toppings, id)
	return nil
}

func TestCreateItemDefaults(t *testing.T) {
	repo := newStubMenuRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	item, err := svc.CreateItem(context.Background(), ItemInput{
		Name:       "Vanilla Scoop",
		Category:   "scoops",
		PriceCents: 3900,
		Sizes:      []string{"small", "large"},
	})
	require.NoError(t, err)
	require.True(t, item.IsAvailable, "new items default to available")
	require.Equal(t, []string{"small", "large"}, []string(item.Sizes))
}

func TestCreateItemRejectsInvalidSize(t *testing.T) {
	svc, err := NewService(newStubMenuRepo())
	require.NoError(t, err)

	_, err = svc.CreateItem(context.Background(), ItemInput{
		Name:       "Vanilla Scoop",
		Category:   "scoops",
		PriceCents: 3900,
		Sizes:      []string{"jumbo"},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateItemRejectsNegativePrice(t *testing.T) {
	svc, err := NewService(newStubMenuRepo())
	require.NoError(t, err)

	_, err = svc.CreateItem(context.Background(), ItemInput{
		Name:       "Vanilla Scoop",
		Category:   "scoops",
		PriceCents: -1,
	})
	require.Error(t, err)
}

func TestPublicMenuFiltersUnavailable(t *testing.T) {
	repo := newStubMenuRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	available := false
	_, err = svc.CreateItem(context.Background(), ItemInput{
		Name: "Hidden", Category: "scoops", PriceCents: 100, IsAvailable: &available,
	})
	require.NoError(t, err)
	_, err = svc.CreateItem(context.Background(), ItemInput{
		Name: "Visible", Category: "scoops", PriceCents: 100,
	})
	require.NoError(t, err)
	_, err = svc.CreateTopping(context.Background(), ToppingInput{Name: "Sprinkles", PriceCents: 500})
	require.NoError(t, err)

	public, err := svc.ListPublicMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, public.Items, 1)
	require.Equal(t, "Visible", public.Items[0].Name)
	require.Len(t, public.Toppings, 1)
}

func TestUpdateItemNotFound(t *testing.T) {
	svc, err := NewService(newStubMenuRepo())
	require.NoError(t, err)

	_, err = svc.UpdateItem(context.Background(), uuid.New(), ItemInput{
		Name: "x", Category: "y", PriceCents: 1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteTopping(t *testing.T) {
	repo := newStubMenuRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	topping, err := svc.CreateTopping(context.Background(), ToppingInput{Name: "Cherry", PriceCents: 800})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTopping(context.Background(), topping.ID))
	require.Empty(t, repo.toppings)
}
