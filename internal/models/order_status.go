package models

import "fmt"

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	OrderPlaced         OrderStatus = "PLACED"
	OrderConfirmed      OrderStatus = "ORDER_CONFIRMED"
	OrderShipped        OrderStatus = "SHIPPED"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

// nextStatus is the single forward step allowed from each non-terminal state.
var nextStatus = map[OrderStatus]OrderStatus{
	OrderPlaced:         OrderConfirmed,
	OrderConfirmed:      OrderShipped,
	OrderShipped:        OrderOutForDelivery,
	OrderOutForDelivery: OrderDelivered,
}

// OrderStatuses lists every state in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderPlaced, OrderConfirmed, OrderShipped,
		OrderOutForDelivery, OrderDelivered, OrderCancelled,
	}
}

// ParseOrderStatus accepts only the known states.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) IsValid() bool {
	_, err := ParseOrderStatus(string(s))
	return err == nil
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransitionTo is the only place transition legality is decided:
// the next forward state, or CANCELLED from any non-terminal state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !s.IsValid() || !target.IsValid() || s.IsTerminal() {
		return false
	}
	if target == OrderCancelled {
		return true
	}
	return nextStatus[s] == target
}
