package orders

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	"github.com/iceonwheels/storefront-backend/pkg/enums"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
	"github.com/iceonwheels/storefront-backend/pkg/pagination"
)

type stubOrderRepo struct {
	rows map[uuid.UUID]*models.Order
	seq  int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{rows: map[uuid.UUID]*models.Order{}}
}

func (s *stubOrderRepo) add(order models.Order) *models.Order {
	order.ID = uuid.New()
	s.seq++
	order.CreatedAt = time.Unix(int64(s.seq), 0)
	s.rows[order.ID] = &order
	return s.rows[order.ID]
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) OrderRepository { return s }

func (s *stubOrderRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	created := s.add(*order)
	*order = *created
	return order, nil
}

func (s *stubOrderRepo) Update(_ context.Context, order *models.Order) (*models.Order, error) {
	s.rows[order.ID] = order
	return order, nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *order
	return &clone, nil
}

func (s *stubOrderRepo) FindByNumber(_ context.Context, number string) (*models.Order, error) {
	for _, order := range s.rows {
		if order.OrderNumber == number {
			clone := *order
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) List(_ context.Context, filter Filter, cursor *pagination.Cursor, limit int) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.rows {
		if filter.Status != nil && string(order.Status) != *filter.Status {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(order.OrderNumber, filter.Search) &&
			!strings.Contains(order.CustomerName, filter.Search) {
			continue
		}
		if cursor != nil && !order.CreatedAt.Before(cursor.CreatedAt) {
			continue
		}
		out = append(out, *order)
	}
	// newest first, as the SQL ordering does
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func newOrdersService(t *testing.T, repo *stubOrderRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc
}

func TestLookupByOrderNumber(t *testing.T) {
	repo := newStubOrderRepo()
	repo.add(models.Order{OrderNumber: "IOW-20260831-AB12", CustomerName: "Priya"})

	svc := newOrdersService(t, repo)

	order, err := svc.Lookup(context.Background(), "iow-20260831-ab12")
	require.NoError(t, err)
	require.Equal(t, "Priya", order.CustomerName)
}

func TestLookupUnknownReference(t *testing.T) {
	svc := newOrdersService(t, newStubOrderRepo())

	_, err := svc.Lookup(context.Background(), "IOW-NOPE")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateStatusFollowsWorkflow(t *testing.T) {
	repo := newStubOrderRepo()
	order := repo.add(models.Order{OrderNumber: "IOW-1", Status: enums.OrderStatusPending})

	svc := newOrdersService(t, repo)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusConfirmed, updated.Status)
	require.Nil(t, updated.CompletedAt)
}

func TestUpdateStatusRejectsSkippedStage(t *testing.T) {
	repo := newStubOrderRepo()
	order := repo.add(models.Order{OrderNumber: "IOW-2", Status: enums.OrderStatusPending})

	svc := newOrdersService(t, repo)

	_, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusReady)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestUpdateStatusStampsCompletion(t *testing.T) {
	repo := newStubOrderRepo()
	order := repo.add(models.Order{OrderNumber: "IOW-3", Status: enums.OrderStatusReady})

	svc := newOrdersService(t, repo)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
}

func TestCancelFromNonTerminalState(t *testing.T) {
	repo := newStubOrderRepo()
	order := repo.add(models.Order{OrderNumber: "IOW-4", Status: enums.OrderStatusPreparing})

	svc := newOrdersService(t, repo)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusCancelled, updated.Status)
}

func TestCancelCompletedOrderRejected(t *testing.T) {
	repo := newStubOrderRepo()
	order := repo.add(models.Order{OrderNumber: "IOW-5", Status: enums.OrderStatusCompleted})

	svc := newOrdersService(t, repo)

	_, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusCancelled)
	require.Error(t, err)
}

func TestUpdatePaymentStatus(t *testing.T) {
	repo := newStubOrderRepo()
	order := repo.add(models.Order{OrderNumber: "IOW-6", PaymentStatus: enums.PaymentStatusPending})

	svc := newOrdersService(t, repo)

	updated, err := svc.UpdatePaymentStatus(context.Background(), order.ID, enums.PaymentStatusPaid)
	require.NoError(t, err)
	require.Equal(t, enums.PaymentStatusPaid, updated.PaymentStatus)
}

func TestListPaginatesWithCursor(t *testing.T) {
	repo := newStubOrderRepo()
	for i := 0; i < 3; i++ {
		repo.add(models.Order{OrderNumber: "IOW-PAGE", Status: enums.OrderStatusPending})
	}

	svc := newOrdersService(t, repo)

	first, err := svc.List(context.Background(), Filter{}, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Orders, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.List(context.Background(), Filter{}, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	require.Empty(t, second.NextCursor)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc := newOrdersService(t, newStubOrderRepo())

	bogus := "shipped"
	_, err := svc.List(context.Background(), Filter{Status: &bogus}, pagination.Params{})
	require.Error(t, err)
}
