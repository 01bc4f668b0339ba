// Package notify turns committed order events into wire messages and routes
// them to the connection registry. Dispatch runs on a bounded worker pool off
// the request path: a slow or dead client can never block or fail the HTTP
// response that triggered the event.
package notify

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"restaurante-backend/internal/domain"
	"restaurante-backend/internal/logger"
	"restaurante-backend/internal/metrics"
)

const fetchTimeout = 5 * time.Second

// OrderReader is the dispatcher's own short-lived read access, separate from
// the transaction that committed the event.
type OrderReader interface {
	GetOrderByID(ctx context.Context, id int64) (*domain.OrderView, error)
}

// Registry is the targeted/broadcast delivery surface of the ws package.
type Registry interface {
	SendToUser(userID int64, msg any) bool
	Broadcast(msg any)
}

// Publisher mirrors event envelopes to the broker. Nil disables mirroring.
type Publisher interface {
	Publish(ctx context.Context, body []byte) error
}

const (
	EventNewOrder     = "new_order"
	EventStatusUpdate = "order_status_update"
	EventOrderReady   = "order_ready"
)

type NewOrderEvent struct {
	Type      string            `json:"type"`
	Data      *domain.OrderView `json:"data"`
	Timestamp string            `json:"timestamp"`
}

type StatusUpdateEvent struct {
	Type      string  `json:"type"`
	OrderID   int64   `json:"order_id"`
	NewStatus string  `json:"new_status"`
	Message   string  `json:"message"`
	Timestamp *string `json:"timestamp"`
}

type OrderReadyEvent struct {
	Type      string  `json:"type"`
	OrderID   int64   `json:"order_id"`
	OrderType string  `json:"order_type"`
	Status    string  `json:"status"`
	Message   string  `json:"message"`
	Timestamp *string `json:"timestamp"`
}

type job struct {
	kind          string
	orderID       int64
	status        string
	correlationID string
}

type Dispatcher struct {
	log      *logger.Logger
	orders   OrderReader
	registry Registry
	mirror   Publisher

	// One queue per worker, jobs sharded by order id. All events for an
	// order land on the same shard and are processed by the same worker,
	// so per-order delivery order matches enqueue order at any worker count.
	shards []chan job
}

func NewDispatcher(lg *logger.Logger, orders OrderReader, registry Registry, mirror Publisher, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	shards := make([]chan job, workers)
	for i := range shards {
		shards[i] = make(chan job, queueSize)
	}
	return &Dispatcher{
		log:      lg,
		orders:   orders,
		registry: registry,
		mirror:   mirror,
		shards:   shards,
	}
}

// Run drains the shards, one worker per shard, until ctx is canceled.
func (d *Dispatcher) Run(ctx context.Context) error {
	done := make(chan struct{})
	for _, shard := range d.shards {
		go func(shard chan job) {
			for {
				select {
				case <-ctx.Done():
					done <- struct{}{}
					return
				case j := <-shard:
					d.process(j)
				}
			}
		}(shard)
	}
	for range d.shards {
		<-done
	}
	return ctx.Err()
}

// OrderCreated broadcasts the full order to every dashboard channel.
func (d *Dispatcher) OrderCreated(orderID int64) { d.enqueue(EventNewOrder, orderID, "") }

// StatusChanged sends the human-readable status message to the order's owner.
func (d *Dispatcher) StatusChanged(orderID int64, newStatus string) {
	d.enqueue(EventStatusUpdate, orderID, newStatus)
}

// OrderReady is the explicit "your order is ready" convenience event.
func (d *Dispatcher) OrderReady(orderID int64) { d.enqueue(EventOrderReady, orderID, "") }

func (d *Dispatcher) enqueue(kind string, orderID int64, status string) {
	j := job{kind: kind, orderID: orderID, status: status, correlationID: uuid.NewString()[:8]}
	shard := d.shards[int(orderID%int64(len(d.shards)))]
	select {
	case shard <- j:
	default:
		metrics.NotificationsDropped.WithLabelValues(kind).Inc()
		d.log.Warn("notification_queue_full", map[string]any{"type": kind, "order_id": orderID})
	}
}

func (d *Dispatcher) process(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	delivered, err := d.deliver(ctx, j.kind, j.orderID, j.status)
	fields := map[string]any{
		"type":           j.kind,
		"order_id":       j.orderID,
		"correlation_id": j.correlationID,
		"delivered":      delivered,
	}
	if err != nil {
		metrics.NotificationsDropped.WithLabelValues(j.kind).Inc()
		d.log.Error("notification_failed", err, fields)
		return
	}
	if delivered {
		metrics.NotificationsDelivered.WithLabelValues(j.kind).Inc()
	} else {
		metrics.NotificationsDropped.WithLabelValues(j.kind).Inc()
	}
	d.log.Info("notification_dispatched", fields)
}

// NotifyStatusUpdate performs a synchronous targeted delivery and reports
// whether any channel took it. Used by the admin notification endpoints; the
// async path goes through StatusChanged.
func (d *Dispatcher) NotifyStatusUpdate(ctx context.Context, orderID int64, newStatus string) (bool, error) {
	return d.deliver(ctx, EventStatusUpdate, orderID, newStatus)
}

// NotifyOrderReady is the synchronous variant of OrderReady.
func (d *Dispatcher) NotifyOrderReady(ctx context.Context, orderID int64) (bool, error) {
	return d.deliver(ctx, EventOrderReady, orderID, "")
}

func (d *Dispatcher) deliver(ctx context.Context, kind string, orderID int64, status string) (bool, error) {
	order, err := d.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return false, err
	}

	var (
		msg       any
		delivered bool
	)
	switch kind {
	case EventNewOrder:
		msg = NewOrderEvent{
			Type:      EventNewOrder,
			Data:      order,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		d.registry.Broadcast(msg)
		delivered = true
	case EventStatusUpdate:
		msg = StatusUpdateEvent{
			Type:      EventStatusUpdate,
			OrderID:   order.ID,
			NewStatus: status,
			Message:   domain.StatusMessage(status),
			Timestamp: isoOrNil(order.UpdatedAt),
		}
		delivered = d.registry.SendToUser(order.UserID, msg)
	case EventOrderReady:
		msg = OrderReadyEvent{
			Type:      EventOrderReady,
			OrderID:   order.ID,
			OrderType: order.OrderType,
			Status:    order.Status,
			Message:   domain.StatusMessage(domain.StatusListo),
			Timestamp: isoOrNil(order.UpdatedAt),
		}
		delivered = d.registry.SendToUser(order.UserID, msg)
	default:
		return false, nil
	}

	d.mirrorEvent(ctx, kind, msg)
	return delivered, nil
}

// mirrorEvent best-effort publishes the envelope to the broker. Failures are
// logged, never surfaced.
func (d *Dispatcher) mirrorEvent(ctx context.Context, kind string, msg any) {
	if d.mirror == nil {
		return
	}
	body, err := json.Marshal(msg)
	if err != nil {
		d.log.Error("mirror_marshal_failed", err, map[string]any{"type": kind})
		return
	}
	if err := d.mirror.Publish(ctx, body); err != nil {
		d.log.Error("mirror_publish_failed", err, map[string]any{"type": kind})
	}
}

func isoOrNil(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
