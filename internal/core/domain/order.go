package domain

import "time"

// OrderStatus represents the lifecycle state of a work order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// completed and cancelled are terminal, orders are never deleted.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:  {StatusAccepted, StatusCancelled},
	StatusAccepted: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s OrderStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// LaborerRef is the embedded laborer summary carried on an order.
type LaborerRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Order is the core aggregate: a unit of work linking one farmer and one laborer.
type Order struct {
	ID          string      `json:"id" validate:"required"`
	Description string      `json:"description"`
	Status      OrderStatus `json:"status" validate:"required,oneof=pending accepted completed cancelled"`
	Wage        float64     `json:"wage"`
	CreatedAt   time.Time   `json:"createdAt"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	FarmerID    string      `json:"farmerId" validate:"required"`
	LaborerID   string      `json:"laborerId" validate:"required"`
	Laborer     *LaborerRef `json:"laborer,omitempty"`
}
