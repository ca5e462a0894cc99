package domain

import "errors"

type OrderStatus string

// remember to add new statuses to the orderStatusRank map
const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReady      OrderStatus = "is_ready"
	OrderStatusCompleted  OrderStatus = "completed"
)

// orderStatusRank orders the lifecycle; transitions may only move forward.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusNew:        0,
	OrderStatusInProgress: 1,
	OrderStatusReady:      2,
	OrderStatusCompleted:  3,
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderStatusRank[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, 0, len(orderStatusRank))
	for status := range orderStatusRank {
		result = append(result, status)
	}
	return result
}

// CanTransition reports whether moving from s to next is a forward step.
// Status advancement is an administrative action, not part of checkout.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}

	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}

	return to > from
}
