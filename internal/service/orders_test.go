package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurante-backend/internal/domain"
	"restaurante-backend/internal/logger"
	"restaurante-backend/internal/repository"
)

type fakeOrdersRepo struct {
	orders map[int64]*domain.OrderView
	extras map[int64]*domain.OrderExtra

	created      []domain.OrderCreate
	checkouts    []domain.CheckoutRequest
	statusCalls  []string
	deleted      []int64
	fieldUpdates []domain.OrderUpdate
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{
		orders: map[int64]*domain.OrderView{},
		extras: map[int64]*domain.OrderExtra{},
	}
}

func (f *fakeOrdersRepo) CreateOrder(_ context.Context, userID int64, req domain.OrderCreate) (*domain.OrderView, error) {
	f.created = append(f.created, req)
	id := int64(len(f.orders) + 1)
	view := &domain.OrderView{ID: id, UserID: userID, OrderType: req.OrderType, Status: domain.StatusRecibido}
	f.orders[id] = view
	return view, nil
}

func (f *fakeOrdersRepo) CheckoutCart(_ context.Context, userID int64, req domain.CheckoutRequest) (*domain.OrderView, error) {
	f.checkouts = append(f.checkouts, req)
	id := int64(len(f.orders) + 1)
	view := &domain.OrderView{ID: id, UserID: userID, OrderType: req.OrderType, Status: domain.StatusRecibido}
	f.orders[id] = view
	return view, nil
}

func (f *fakeOrdersRepo) GetOrderByID(_ context.Context, id int64) (*domain.OrderView, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return o, nil
}

func (f *fakeOrdersRepo) ListOrders(_ context.Context, filter repository.ListOrdersFilter) ([]domain.OrderView, error) {
	out := []domain.OrderView{}
	for _, o := range f.orders {
		if filter.UserID != nil && o.UserID != *filter.UserID {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrdersRepo) UpdateOrderFields(_ context.Context, id int64, upd domain.OrderUpdate) (*domain.OrderView, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	f.fieldUpdates = append(f.fieldUpdates, upd)
	if upd.IsPaid != nil {
		o.IsPaid = *upd.IsPaid
	}
	if upd.EstimatedTime != nil {
		o.EstimatedTime = upd.EstimatedTime
	}
	return o, nil
}

func (f *fakeOrdersRepo) SetStatus(_ context.Context, id int64, status string) (*domain.OrderView, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	f.statusCalls = append(f.statusCalls, status)
	o.Status = status
	return o, nil
}

func (f *fakeOrdersRepo) DeleteOrder(_ context.Context, id int64) error {
	if _, ok := f.orders[id]; !ok {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	delete(f.orders, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeOrdersRepo) AddExtras(_ context.Context, orderID int64, extras []domain.OrderExtraCreate) ([]domain.OrderExtraView, error) {
	out := make([]domain.OrderExtraView, 0, len(extras))
	for i, e := range extras {
		out = append(out, domain.OrderExtraView{ID: int64(i + 1), ExtraID: e.ExtraID, Quantity: e.Quantity})
	}
	return out, nil
}

func (f *fakeOrdersRepo) ListOrderExtras(_ context.Context, orderID int64) ([]domain.OrderExtraView, error) {
	return []domain.OrderExtraView{}, nil
}

func (f *fakeOrdersRepo) GetOrderExtra(_ context.Context, id int64) (*domain.OrderExtra, error) {
	e, ok := f.extras[id]
	if !ok {
		return nil, fmt.Errorf("order extra %d: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

func (f *fakeOrdersRepo) RemoveExtra(_ context.Context, id int64) error {
	if _, ok := f.extras[id]; !ok {
		return fmt.Errorf("order extra %d: %w", id, domain.ErrNotFound)
	}
	delete(f.extras, id)
	return nil
}

type fakeNotifier struct {
	created []int64
	status  []string
	ready   []int64
}

func (f *fakeNotifier) OrderCreated(orderID int64) { f.created = append(f.created, orderID) }
func (f *fakeNotifier) StatusChanged(orderID int64, newStatus string) {
	f.status = append(f.status, newStatus)
}
func (f *fakeNotifier) OrderReady(orderID int64) { f.ready = append(f.ready, orderID) }

func testLogger() *logger.Logger {
	return logger.NewWithOutput("test", io.Discard, zerolog.ErrorLevel)
}

var (
	cliente = &domain.User{ID: 7, Role: domain.RoleCliente}
	admin   = &domain.User{ID: 1, Role: domain.RoleAdministrador}
)

func TestCreateOrderValidation(t *testing.T) {
	svc := NewOrdersService(testLogger(), newFakeOrdersRepo(), &fakeNotifier{})

	_, err := svc.Create(context.Background(), cliente, domain.OrderCreate{OrderType: "takeout"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = svc.Create(context.Background(), cliente, domain.OrderCreate{OrderType: domain.OrderTypeDineIn})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = svc.Create(context.Background(), cliente, domain.OrderCreate{OrderType: domain.OrderTypeDelivery})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestCreateOrderNotifies(t *testing.T) {
	repo := newFakeOrdersRepo()
	notifier := &fakeNotifier{}
	svc := NewOrdersService(testLogger(), repo, notifier)

	addr := "Calle Falsa 123"
	order, err := svc.Create(context.Background(), cliente, domain.OrderCreate{
		OrderType:       domain.OrderTypeDelivery,
		DeliveryAddress: &addr,
		Items:           []domain.OrderItemCreate{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{order.ID}, notifier.created)
}

func TestCheckoutNotifies(t *testing.T) {
	repo := newFakeOrdersRepo()
	notifier := &fakeNotifier{}
	svc := NewOrdersService(testLogger(), repo, notifier)

	tableID := int64(3)
	order, err := svc.Checkout(context.Background(), cliente, domain.CheckoutRequest{
		OrderType: domain.OrderTypeDineIn,
		TableID:   &tableID,
	})
	require.NoError(t, err)
	assert.Len(t, repo.checkouts, 1)
	assert.Equal(t, []int64{order.ID}, notifier.created)
}

func TestGetOrderOwnership(t *testing.T) {
	repo := newFakeOrdersRepo()
	repo.orders[1] = &domain.OrderView{ID: 1, UserID: 99}
	svc := NewOrdersService(testLogger(), repo, &fakeNotifier{})

	_, err := svc.Get(context.Background(), cliente, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Get(context.Background(), admin, 1)
	assert.NoError(t, err)
}

func TestListOrdersAdminOnly(t *testing.T) {
	svc := NewOrdersService(testLogger(), newFakeOrdersRepo(), &fakeNotifier{})

	_, err := svc.List(context.Background(), cliente, 0, 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.List(context.Background(), admin, 0, 10)
	assert.NoError(t, err)
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	repo := newFakeOrdersRepo()
	repo.orders[1] = &domain.OrderView{ID: 1, UserID: 7, Status: domain.StatusRecibido}
	svc := NewOrdersService(testLogger(), repo, &fakeNotifier{})

	_, err := svc.SetStatus(context.Background(), admin, 1, "pendiente")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Empty(t, repo.statusCalls)
}

func TestSetStatusAdminOnly(t *testing.T) {
	repo := newFakeOrdersRepo()
	repo.orders[1] = &domain.OrderView{ID: 1, UserID: 7}
	svc := NewOrdersService(testLogger(), repo, &fakeNotifier{})

	_, err := svc.SetStatus(context.Background(), cliente, 1, domain.StatusListo)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSetStatusNotifies(t *testing.T) {
	repo := newFakeOrdersRepo()
	repo.orders[1] = &domain.OrderView{ID: 1, UserID: 7, Status: domain.StatusRecibido}
	notifier := &fakeNotifier{}
	svc := NewOrdersService(testLogger(), repo, notifier)

	_, err := svc.SetStatus(context.Background(), admin, 1, domain.StatusEnPreparacion)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.StatusEnPreparacion}, notifier.status)
	assert.Empty(t, notifier.ready)
}

func TestSetStatusListoAlsoSendsReady(t *testing.T) {
	repo := newFakeOrdersRepo()
	repo.orders[1] = &domain.OrderView{ID: 1, UserID: 7, Status: domain.StatusEnPreparacion}
	notifier := &fakeNotifier{}
	svc := NewOrdersService(testLogger(), repo, notifier)

	_, err := svc.SetStatus(context.Background(), admin, 1, domain.StatusListo)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.StatusListo}, notifier.status)
	assert.Equal(t, []int64{1}, notifier.ready)
}

func TestUpdateRoutesStatusThroughLifecycle(t *testing.T) {
	repo := newFakeOrdersRepo()
	repo.orders[1] = &domain.OrderView{ID: 1, UserID: 7, Status: domain.StatusRecibido}
	notifier := &fakeNotifier{}
	svc := NewOrdersService(testLogger(), repo, notifier)

	status := domain.StatusEntregado
	paid := true
	order, err := svc.Update(context.Background(), admin, 1, domain.OrderUpdate{Status: &status, IsPaid: &paid})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEntregado, order.Status)
	assert.True(t, order.IsPaid)
	assert.Equal(t, []string{domain.StatusEntregado}, repo.statusCalls)
	assert.Equal(t, []string{domain.StatusEntregado}, notifier.status)

	// the status never reaches the free-form field update
	require.Len(t, repo.fieldUpdates, 1)
	assert.Nil(t, repo.fieldUpdates[0].Status)
}

func TestUpdateAdminOnly(t *testing.T) {
	svc := NewOrdersService(testLogger(), newFakeOrdersRepo(), &fakeNotifier{})
	_, err := svc.Update(context.Background(), cliente, 1, domain.OrderUpdate{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteOrderOwnership(t *testing.T) {
	repo := newFakeOrdersRepo()
	repo.orders[1] = &domain.OrderView{ID: 1, UserID: 99}
	svc := NewOrdersService(testLogger(), repo, &fakeNotifier{})

	err := svc.Delete(context.Background(), cliente, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.Delete(context.Background(), admin, 1)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestRemoveExtraChecksOwner(t *testing.T) {
	repo := newFakeOrdersRepo()
	repo.orders[1] = &domain.OrderView{ID: 1, UserID: 99}
	repo.extras[5] = &domain.OrderExtra{ID: 5, OrderID: 1, ExtraID: 2}
	svc := NewOrdersService(testLogger(), repo, &fakeNotifier{})

	err := svc.RemoveExtra(context.Background(), cliente, 5)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.RemoveExtra(context.Background(), admin, 5)
	assert.NoError(t, err)
}
