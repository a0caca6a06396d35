package domain

// OrderStatus captures the lifecycle of an order.
//
// Only PENDING and SHIPPED take part in transitions driven by the console.
// Any other value loaded from the backend is carried through untouched.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusShipped},
}

// CanTransition reports whether from → to is an edge of the lifecycle.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal indicates whether no console transition leaves the status.
func (s OrderStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

func (s OrderStatus) String() string {
	return string(s)
}
