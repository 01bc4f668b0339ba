package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurante-backend/internal/domain"
	"restaurante-backend/internal/logger"
)

type fakeOrders struct {
	orders map[int64]*domain.OrderView
}

func (f *fakeOrders) GetOrderByID(_ context.Context, id int64) (*domain.OrderView, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return o, nil
}

type fakeRegistry struct {
	mu        sync.Mutex
	targeted  []any
	broadcast []any
	connected map[int64]bool
}

func (f *fakeRegistry) SendToUser(userID int64, msg any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected[userID] {
		return false
	}
	f.targeted = append(f.targeted, msg)
	return true
}

func (f *fakeRegistry) Broadcast(msg any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcast = append(f.broadcast, msg)
}

func (f *fakeRegistry) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.targeted), len(f.broadcast)
}

type fakeMirror struct {
	mu     sync.Mutex
	bodies [][]byte
}

func (f *fakeMirror) Publish(_ context.Context, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, body)
	return nil
}

func testOrder(id, userID int64) *domain.OrderView {
	now := time.Now().UTC()
	return &domain.OrderView{
		ID:        id,
		UserID:    userID,
		OrderType: domain.OrderTypeDineIn,
		Status:    domain.StatusListo,
		CreatedAt: now,
		UpdatedAt: &now,
		Items:     []domain.OrderItemView{},
		Extras:    []domain.OrderExtraView{},
	}
}

func newTestDispatcher(reg Registry, mirror Publisher) *Dispatcher {
	lg := logger.NewWithOutput("notify-test", io.Discard, zerolog.Disabled)
	orders := &fakeOrders{orders: map[int64]*domain.OrderView{1: testOrder(1, 10)}}
	return NewDispatcher(lg, orders, reg, mirror, 2, 16)
}

func TestStatusUpdateTargetedMessage(t *testing.T) {
	reg := &fakeRegistry{connected: map[int64]bool{10: true}}
	d := newTestDispatcher(reg, nil)

	delivered, err := d.NotifyStatusUpdate(context.Background(), 1, domain.StatusEnPreparacion)
	require.NoError(t, err)
	assert.True(t, delivered)

	require.Len(t, reg.targeted, 1)
	ev, ok := reg.targeted[0].(StatusUpdateEvent)
	require.True(t, ok)
	assert.Equal(t, EventStatusUpdate, ev.Type)
	assert.Equal(t, int64(1), ev.OrderID)
	assert.Equal(t, domain.StatusEnPreparacion, ev.NewStatus)
	assert.Equal(t, "Tu orden está en preparación", ev.Message)
	require.NotNil(t, ev.Timestamp)
}

func TestStatusUpdateUnknownStatusFallbackMessage(t *testing.T) {
	reg := &fakeRegistry{connected: map[int64]bool{10: true}}
	d := newTestDispatcher(reg, nil)

	delivered, err := d.NotifyStatusUpdate(context.Background(), 1, "limbo")
	require.NoError(t, err)
	assert.True(t, delivered)

	ev := reg.targeted[0].(StatusUpdateEvent)
	assert.Equal(t, "Estado actualizado: limbo", ev.Message)
}

func TestStatusUpdateUserOffline(t *testing.T) {
	reg := &fakeRegistry{connected: map[int64]bool{}}
	d := newTestDispatcher(reg, nil)

	delivered, err := d.NotifyStatusUpdate(context.Background(), 1, domain.StatusListo)
	require.NoError(t, err)
	assert.False(t, delivered)
}

func TestNotifyMissingOrder(t *testing.T) {
	reg := &fakeRegistry{connected: map[int64]bool{10: true}}
	d := newTestDispatcher(reg, nil)

	_, err := d.NotifyOrderReady(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderReadyEventShape(t *testing.T) {
	reg := &fakeRegistry{connected: map[int64]bool{10: true}}
	d := newTestDispatcher(reg, nil)

	delivered, err := d.NotifyOrderReady(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, delivered)

	ev := reg.targeted[0].(OrderReadyEvent)
	assert.Equal(t, EventOrderReady, ev.Type)
	assert.Equal(t, domain.OrderTypeDineIn, ev.OrderType)
	assert.Equal(t, domain.StatusListo, ev.Status)
	assert.Equal(t, "¡Tu orden está lista!", ev.Message)
}

func TestAsyncDispatchBroadcastsNewOrder(t *testing.T) {
	reg := &fakeRegistry{connected: map[int64]bool{10: true}}
	mirror := &fakeMirror{}
	d := newTestDispatcher(reg, mirror)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	d.OrderCreated(1)
	d.StatusChanged(1, domain.StatusListo)

	assert.Eventually(t, func() bool {
		tg, bc := reg.counts()
		return tg == 1 && bc == 1
	}, 2*time.Second, 10*time.Millisecond)

	mirror.mu.Lock()
	assert.Len(t, mirror.bodies, 2)
	mirror.mu.Unlock()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

// slowFirstFetch stalls the first order fetch so a later event would overtake
// an earlier one if both could be processed concurrently.
type slowFirstFetch struct {
	mu    sync.Mutex
	calls int
	order *domain.OrderView
	delay time.Duration
}

func (f *slowFirstFetch) GetOrderByID(_ context.Context, id int64) (*domain.OrderView, error) {
	f.mu.Lock()
	f.calls++
	first := f.calls == 1
	f.mu.Unlock()
	if first {
		time.Sleep(f.delay)
	}
	return f.order, nil
}

func TestStatusUpdatesForOneOrderKeepEnqueueOrder(t *testing.T) {
	reg := &fakeRegistry{connected: map[int64]bool{10: true}}
	lg := logger.NewWithOutput("notify-test", io.Discard, zerolog.Disabled)
	orders := &slowFirstFetch{order: testOrder(1, 10), delay: 200 * time.Millisecond}
	d := NewDispatcher(lg, orders, reg, nil, 4, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	d.StatusChanged(1, domain.StatusEnPreparacion)
	d.StatusChanged(1, domain.StatusListo)

	require.Eventually(t, func() bool {
		tg, _ := reg.counts()
		return tg == 2
	}, 2*time.Second, 10*time.Millisecond)

	reg.mu.Lock()
	defer reg.mu.Unlock()
	var statuses []string
	for _, msg := range reg.targeted {
		statuses = append(statuses, msg.(StatusUpdateEvent).NewStatus)
	}
	assert.Equal(t, []string{domain.StatusEnPreparacion, domain.StatusListo}, statuses)
}

func TestEnqueueNeverBlocksWhenQueueFull(t *testing.T) {
	reg := &fakeRegistry{connected: map[int64]bool{10: true}}
	lg := logger.NewWithOutput("notify-test", io.Discard, zerolog.Disabled)
	orders := &fakeOrders{orders: map[int64]*domain.OrderView{1: testOrder(1, 10)}}
	d := NewDispatcher(lg, orders, reg, nil, 1, 1)

	// no workers running: the second enqueue overflows and must be dropped,
	// not block the caller
	finished := make(chan struct{})
	go func() {
		d.OrderReady(1)
		d.OrderReady(1)
		d.OrderReady(1)
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on full queue")
	}
}
