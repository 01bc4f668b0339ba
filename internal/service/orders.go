package service

import (
	"context"
	"fmt"

	"restaurante-backend/internal/domain"
	"restaurante-backend/internal/logger"
	"restaurante-backend/internal/metrics"
	"restaurante-backend/internal/repository"
)

type OrdersServiceInterface interface {
	Create(ctx context.Context, actor *domain.User, req domain.OrderCreate) (*domain.OrderView, error)
	Checkout(ctx context.Context, actor *domain.User, req domain.CheckoutRequest) (*domain.OrderView, error)
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.OrderView, error)
	List(ctx context.Context, actor *domain.User, skip, limit int) ([]domain.OrderView, error)
	MyOrders(ctx context.Context, actor *domain.User, skip, limit int) ([]domain.OrderView, error)
	Update(ctx context.Context, actor *domain.User, id int64, upd domain.OrderUpdate) (*domain.OrderView, error)
	SetStatus(ctx context.Context, actor *domain.User, id int64, status string) (*domain.OrderView, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
	AddExtras(ctx context.Context, actor *domain.User, orderID int64, extras []domain.OrderExtraCreate) ([]domain.OrderExtraView, error)
	ListExtras(ctx context.Context, actor *domain.User, orderID int64) ([]domain.OrderExtraView, error)
	RemoveExtra(ctx context.Context, actor *domain.User, orderExtraID int64) error
}

type OrdersService struct {
	log      *logger.Logger
	orders   repository.OrdersRepositoryInterface
	notifier Notifier
}

func NewOrdersService(lg *logger.Logger, orders repository.OrdersRepositoryInterface, notifier Notifier) OrdersServiceInterface {
	return &OrdersService{log: lg, orders: orders, notifier: notifier}
}

func isAdmin(u *domain.User) bool {
	return u != nil && u.Role == domain.RoleAdministrador
}

func validateFulfillment(orderType string, tableID *int64, address *string) error {
	if !domain.ValidOrderType(orderType) {
		return fmt.Errorf("unknown order type %q: %w", orderType, domain.ErrInvalidRequest)
	}
	if orderType == domain.OrderTypeDineIn && tableID == nil {
		return fmt.Errorf("dine_in order requires a table: %w", domain.ErrInvalidRequest)
	}
	if orderType == domain.OrderTypeDelivery && (address == nil || *address == "") {
		return fmt.Errorf("delivery order requires an address: %w", domain.ErrInvalidRequest)
	}
	return nil
}

func (s *OrdersService) Create(ctx context.Context, actor *domain.User, req domain.OrderCreate) (*domain.OrderView, error) {
	if err := validateFulfillment(req.OrderType, req.TableID, req.DeliveryAddress); err != nil {
		return nil, err
	}
	order, err := s.orders.CreateOrder(ctx, actor.ID, req)
	if err != nil {
		return nil, err
	}
	metrics.OrdersCreated.Inc()
	s.log.Info("order_created", map[string]any{"order_id": order.ID, "user_id": actor.ID, "total": order.TotalAmount})
	s.notifier.OrderCreated(order.ID)
	return order, nil
}

func (s *OrdersService) Checkout(ctx context.Context, actor *domain.User, req domain.CheckoutRequest) (*domain.OrderView, error) {
	if err := validateFulfillment(req.OrderType, req.TableID, req.DeliveryAddress); err != nil {
		return nil, err
	}
	order, err := s.orders.CheckoutCart(ctx, actor.ID, req)
	if err != nil {
		return nil, err
	}
	metrics.OrdersCreated.Inc()
	s.log.Info("cart_checked_out", map[string]any{"order_id": order.ID, "user_id": actor.ID, "total": order.TotalAmount})
	s.notifier.OrderCreated(order.ID)
	return order, nil
}

func (s *OrdersService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.OrderView, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin(actor) && order.UserID != actor.ID {
		return nil, fmt.Errorf("order %d belongs to another user: %w", id, domain.ErrForbidden)
	}
	return order, nil
}

func (s *OrdersService) List(ctx context.Context, actor *domain.User, skip, limit int) ([]domain.OrderView, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("listing all orders: %w", domain.ErrForbidden)
	}
	return s.orders.ListOrders(ctx, repository.ListOrdersFilter{Skip: skip, Limit: limit})
}

func (s *OrdersService) MyOrders(ctx context.Context, actor *domain.User, skip, limit int) ([]domain.OrderView, error) {
	return s.orders.ListOrders(ctx, repository.ListOrdersFilter{UserID: &actor.ID, Skip: skip, Limit: limit})
}

// Update is the admin's partial edit. A status carried in the update goes
// through the same lifecycle path as SetStatus so table release and
// notifications are never skipped.
func (s *OrdersService) Update(ctx context.Context, actor *domain.User, id int64, upd domain.OrderUpdate) (*domain.OrderView, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("updating orders: %w", domain.ErrForbidden)
	}

	status := upd.Status
	upd.Status = nil
	var (
		order *domain.OrderView
		err   error
	)
	if upd.SpecialInstructions != nil || upd.DeliveryAddress != nil || upd.EstimatedTime != nil || upd.IsPaid != nil {
		order, err = s.orders.UpdateOrderFields(ctx, id, upd)
		if err != nil {
			return nil, err
		}
	}
	if status != nil {
		return s.SetStatus(ctx, actor, id, *status)
	}
	if order == nil {
		return s.orders.GetOrderByID(ctx, id)
	}
	return order, nil
}

func (s *OrdersService) SetStatus(ctx context.Context, actor *domain.User, id int64, status string) (*domain.OrderView, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("changing order status: %w", domain.ErrForbidden)
	}
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, domain.ErrInvalidRequest)
	}

	order, err := s.orders.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.log.Info("order_status_changed", map[string]any{"order_id": id, "status": status})

	s.notifier.StatusChanged(id, status)
	if status == domain.StatusListo {
		s.notifier.OrderReady(id)
	}
	return order, nil
}

func (s *OrdersService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin(actor) && order.UserID != actor.ID {
		return fmt.Errorf("order %d belongs to another user: %w", id, domain.ErrForbidden)
	}
	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.log.Info("order_deleted", map[string]any{"order_id": id, "user_id": actor.ID})
	return nil
}

func (s *OrdersService) AddExtras(ctx context.Context, actor *domain.User, orderID int64, extras []domain.OrderExtraCreate) ([]domain.OrderExtraView, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin(actor) && order.UserID != actor.ID {
		return nil, fmt.Errorf("order %d belongs to another user: %w", orderID, domain.ErrForbidden)
	}
	return s.orders.AddExtras(ctx, orderID, extras)
}

func (s *OrdersService) ListExtras(ctx context.Context, actor *domain.User, orderID int64) ([]domain.OrderExtraView, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin(actor) && order.UserID != actor.ID {
		return nil, fmt.Errorf("order %d belongs to another user: %w", orderID, domain.ErrForbidden)
	}
	return s.orders.ListOrderExtras(ctx, orderID)
}

func (s *OrdersService) RemoveExtra(ctx context.Context, actor *domain.User, orderExtraID int64) error {
	extra, err := s.orders.GetOrderExtra(ctx, orderExtraID)
	if err != nil {
		return err
	}
	order, err := s.orders.GetOrderByID(ctx, extra.OrderID)
	if err != nil {
		return err
	}
	if !isAdmin(actor) && order.UserID != actor.ID {
		return fmt.Errorf("order %d belongs to another user: %w", extra.OrderID, domain.ErrForbidden)
	}
	return s.orders.RemoveExtra(ctx, orderExtraID)
}
