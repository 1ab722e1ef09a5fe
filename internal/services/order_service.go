package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Routing keys of the order events.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// EventPublisher publishes a JSON event. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type OrderCreatedEvent struct {
	OrderID    string          `json:"orderId"`
	UserID     string          `json:"userId"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	TotalItem  int             `json:"totalItem"`
}

type OrderStatusChangedEvent struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// CreateOrderInput names either a saved address or a new one to store.
type CreateOrderInput struct {
	AddressID       string        `json:"addressId"`
	ShippingAddress *AddressInput `json:"shippingAddress"`
	PaymentIntentID string        `json:"paymentIntentId" validate:"omitempty,max=255"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orders    repositories.OrderRepository
	carts     repositories.CartRepository
	addresses repositories.AddressRepository
	publisher EventPublisher
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil when
// messaging is disabled.
func NewOrderService(orders repositories.OrderRepository, carts repositories.CartRepository, addresses repositories.AddressRepository,
	publisher EventPublisher, m *metrics.Metrics, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{
		orders:    orders,
		carts:     carts,
		addresses: addresses,
		publisher: publisher,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

// CreateOrder snapshots the user's cart into a PLACED order. The cart is
// left as is and stock is not reserved.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (*models.Order, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	address, err := s.shippingAddress(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil && !IsNotFound(err) {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, apperr.Invalid("cart", "cart is empty")
	}

	order := models.SnapshotCart(cart, userID, address.ID)
	order.PaymentDetails.PaymentIntentID = in.PaymentIntentID
	if err := s.orders.Create(ctx, order, address); err != nil {
		return nil, err
	}
	order.ShippingAddress = address
	s.metrics.OrderCreated()
	s.log.Info("Order created", zap.String("order_id", order.ID), zap.String("user_id", userID),
		zap.String("total_price", order.TotalPrice.StringFixed(2)))

	s.publish(ctx, EventOrderCreated, OrderCreatedEvent{
		OrderID:    order.ID,
		UserID:     userID,
		Status:     string(order.OrderStatus),
		TotalPrice: order.TotalPrice,
		TotalItem:  order.TotalItem,
	})
	return order, nil
}

func (s *OrderService) shippingAddress(ctx context.Context, userID string, in CreateOrderInput) (*models.Address, error) {
	switch {
	case in.AddressID != "" && in.ShippingAddress != nil:
		return nil, apperr.Invalid("shippingAddress", "give either addressId or shippingAddress, not both")
	case in.AddressID != "":
		address, err := s.addresses.GetByID(ctx, in.AddressID)
		if err != nil {
			return nil, err
		}
		if address.UserID != userID {
			return nil, fmt.Errorf("address %s does not belong to user %s: %w", in.AddressID, userID, apperr.ErrAuthorization)
		}
		return address, nil
	case in.ShippingAddress != nil:
		if err := validateStruct(*in.ShippingAddress); err != nil {
			return nil, err
		}
		address := &models.Address{UserID: userID}
		in.ShippingAddress.apply(address)
		return address, nil
	}
	return nil, apperr.Invalid("shippingAddress", "is required")
}

// Get returns an order to its owner or to an admin.
func (s *OrderService) Get(ctx context.Context, user *models.User, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID && !user.IsAdmin() {
		return nil, fmt.Errorf("order %s belongs to another user: %w", id, apperr.ErrAuthorization)
	}
	return order, nil
}

// History lists the user's orders, newest first.
func (s *OrderService) History(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx)
}

// Transition moves an order to target when the lifecycle allows it.
// Anything else fails with an IllegalTransitionError and the order is unchanged.
func (s *OrderService) Transition(ctx context.Context, id string, target models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := order.OrderStatus
	if !from.CanTransitionTo(target) {
		s.metrics.OrderTransition(string(target), "rejected")
		return nil, &apperr.IllegalTransitionError{From: string(from), To: string(target)}
	}

	var deliveryDate *time.Time
	if target == models.OrderDelivered {
		now := s.now()
		deliveryDate = &now
	}
	if err := s.orders.UpdateStatus(ctx, id, from, target, deliveryDate); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			s.metrics.OrderTransition(string(target), "rejected")
		}
		return nil, err
	}
	s.metrics.OrderTransition(string(target), "ok")

	order.OrderStatus = target
	if deliveryDate != nil {
		order.DeliveryDate = deliveryDate
	}
	s.log.Info("Order status changed", zap.String("order_id", id),
		zap.String("from", string(from)), zap.String("to", string(target)))

	s.publish(ctx, EventOrderStatusChanged, OrderStatusChangedEvent{
		OrderID: id,
		UserID:  order.UserID,
		From:    string(from),
		To:      string(target),
	})
	return order, nil
}

// Delete removes an order and its items.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Order deleted", zap.String("order_id", id))
	return nil
}

// publish is best effort: the order is already committed.
func (s *OrderService) publish(ctx context.Context, key string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		s.log.Warn("Failed to publish order event", zap.String("routing_key", key), zap.Error(err))
	}
}
