package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
	"github.com/agrowork/agrowork-cli/internal/core/ports"
)

// OrderView produces a validated, role-filtered order list for display and
// merges mutations back into it. The remote API stays authoritative: a status
// update replaces the whole local order with the server's returned object.
//
// Overlapping Load calls are last-write-wins; there is no request
// cancellation for superseded loads.
type OrderView struct {
	gateway  ports.Gateway
	session  *SessionStore
	validate *validator.Validate
	log      zerolog.Logger

	mu     sync.Mutex
	orders []domain.Order
	loaded bool
}

func NewOrderView(gateway ports.Gateway, session *SessionStore, log zerolog.Logger) *OrderView {
	return &OrderView{
		gateway:  gateway,
		session:  session,
		validate: validator.New(),
		log:      log,
	}
}

// Load fetches the order list matching the session's role. Items failing
// shape validation are dropped with a diagnostic rather than failing the
// whole list. A failed first load empties the list; a failed refresh keeps
// the previous one, except for a malformed (non-list) payload, which always
// empties it: a response that is not a list at all means nothing held
// locally can be trusted either.
func (v *OrderView) Load(ctx context.Context) ([]domain.Order, error) {
	sess := v.session.Snapshot()
	if !sess.Authenticated() {
		return nil, fmt.Errorf("load orders: %w", domain.ErrAuth)
	}

	var (
		fetched []domain.Order
		err     error
	)
	if sess.User.Role == domain.RoleFarmer {
		fetched, err = v.gateway.ListMyPlacedOrders(ctx, sess.Token)
	} else {
		fetched, err = v.gateway.ListMyOrders(ctx, sess.Token)
	}
	if err != nil {
		v.mu.Lock()
		if !v.loaded || errors.Is(err, domain.ErrDataShape) {
			v.orders = nil
		}
		v.mu.Unlock()
		return nil, err
	}

	valid := make([]domain.Order, 0, len(fetched))
	for _, o := range fetched {
		if verr := v.validate.Struct(o); verr != nil {
			v.log.Warn().Err(verr).Str("order_id", o.ID).Msg("dropping malformed order from list")
			continue
		}
		valid = append(valid, o)
	}

	v.mu.Lock()
	v.orders = valid
	v.loaded = true
	v.mu.Unlock()

	return v.Orders(), nil
}

// Orders returns a copy of the current list.
func (v *OrderView) Orders() []domain.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]domain.Order, len(v.orders))
	copy(out, v.orders)
	return out
}

// Loaded reports whether at least one Load has succeeded.
func (v *OrderView) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Partition splits the list into the active pane (pending, accepted) and the
// completed pane. Cancelled orders appear in neither.
func (v *OrderView) Partition() (active, completed []domain.Order) {
	for _, o := range v.Orders() {
		switch o.Status {
		case domain.StatusPending, domain.StatusAccepted:
			active = append(active, o)
		case domain.StatusCompleted:
			completed = append(completed, o)
		}
	}
	return active, completed
}

// ApplyStatusUpdate requests a transition from the remote and merges the
// returned order into local state by identity. The response status must obey
// the transition lattice relative to the locally known status; a violating
// response is rejected to catch backend drift, leaving the list unchanged.
func (v *OrderView) ApplyStatusUpdate(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	sess := v.session.Snapshot()
	if !sess.Authenticated() {
		return nil, fmt.Errorf("update order: %w", domain.ErrAuth)
	}

	updated, err := v.gateway.UpdateOrderStatus(ctx, sess.Token, orderID, status)
	if err != nil {
		return nil, err
	}
	if verr := v.validate.Struct(*updated); verr != nil {
		return nil, fmt.Errorf("update order %s: %w: %v", orderID, domain.ErrDataShape, verr)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for i, o := range v.orders {
		if o.ID != updated.ID {
			continue
		}
		if o.Status != updated.Status && !o.Status.CanTransitionTo(updated.Status) {
			return nil, fmt.Errorf("update order %s: %w: server moved %s to %s",
				orderID, domain.ErrInvalidTransition, o.Status, updated.Status)
		}
		v.orders[i] = *updated
		break
	}
	u := *updated
	return &u, nil
}
