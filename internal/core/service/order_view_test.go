package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
	"github.com/agrowork/agrowork-cli/internal/core/ports"
)

type stubGateway struct {
	listMyOrdersFn       func(ctx context.Context, token string) ([]domain.Order, error)
	listMyPlacedOrdersFn func(ctx context.Context, token string) ([]domain.Order, error)
	updateOrderStatusFn  func(ctx context.Context, token, orderID string, status domain.OrderStatus) (*domain.Order, error)
}

func (g *stubGateway) Login(context.Context, string, string) (*ports.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (g *stubGateway) RegisterFarmer(context.Context, ports.FarmerProfile) (*ports.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (g *stubGateway) RegisterLaborer(context.Context, ports.LaborerProfile) (*ports.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (g *stubGateway) CreateOrder(context.Context, string, ports.OrderDraft) (*domain.Order, error) {
	return nil, errors.New("not implemented")
}

func (g *stubGateway) ListMyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	return g.listMyOrdersFn(ctx, token)
}

func (g *stubGateway) ListMyPlacedOrders(ctx context.Context, token string) ([]domain.Order, error) {
	return g.listMyPlacedOrdersFn(ctx, token)
}

func (g *stubGateway) ListLaborers(context.Context, string) ([]domain.LaborerProfile, error) {
	return nil, errors.New("not implemented")
}

func (g *stubGateway) UpdateOrderStatus(ctx context.Context, token, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	return g.updateOrderStatusFn(ctx, token, orderID, status)
}

func authedFarmerStore(t *testing.T) *SessionStore {
	t.Helper()
	store := NewSessionStore(&memStorage{}, zerolog.Nop())
	store.Login(domain.User{ID: "1", Username: "f1", Role: domain.RoleFarmer}, "t1")
	return store
}

func testOrder(id string, status domain.OrderStatus) domain.Order {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	return domain.Order{
		ID:          id,
		Description: "weed the east field",
		Status:      status,
		Wage:        120,
		CreatedAt:   now,
		StartDate:   now.AddDate(0, 0, 1),
		EndDate:     now.AddDate(0, 0, 3),
		FarmerID:    "1",
		LaborerID:   "2",
	}
}

func TestOrderView_LoadRequiresAuthentication(t *testing.T) {
	store := NewSessionStore(&memStorage{}, zerolog.Nop())
	view := NewOrderView(&stubGateway{}, store, zerolog.Nop())

	if _, err := view.Load(context.Background()); !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestOrderView_LoadUsesRoleMatchingOperation(t *testing.T) {
	placedCalled := false
	gw := &stubGateway{
		listMyPlacedOrdersFn: func(_ context.Context, token string) ([]domain.Order, error) {
			placedCalled = true
			if token != "t1" {
				t.Fatalf("expected bearer token t1, got %q", token)
			}
			return []domain.Order{testOrder("o1", domain.StatusPending)}, nil
		},
	}
	view := NewOrderView(gw, authedFarmerStore(t), zerolog.Nop())

	orders, err := view.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !placedCalled {
		t.Fatalf("farmer load must call the placed-orders operation")
	}
	if len(orders) != 1 || orders[0].ID != "o1" {
		t.Fatalf("unexpected orders: %+v", orders)
	}

	laborerStore := NewSessionStore(&memStorage{}, zerolog.Nop())
	laborerStore.Login(domain.User{ID: "2", Username: "l1", Role: domain.RoleLaborer}, "t2")
	myCalled := false
	gw2 := &stubGateway{
		listMyOrdersFn: func(context.Context, string) ([]domain.Order, error) {
			myCalled = true
			return nil, nil
		},
	}
	if _, err := NewOrderView(gw2, laborerStore, zerolog.Nop()).Load(context.Background()); err != nil {
		t.Fatalf("laborer load failed: %v", err)
	}
	if !myCalled {
		t.Fatalf("laborer load must call the my-orders operation")
	}
}

func TestOrderView_LoadDropsMalformedItems(t *testing.T) {
	missingFarmer := testOrder("o2", domain.StatusPending)
	missingFarmer.FarmerID = ""
	unknownStatus := testOrder("o3", domain.OrderStatus("shipped"))

	gw := &stubGateway{
		listMyPlacedOrdersFn: func(context.Context, string) ([]domain.Order, error) {
			return []domain.Order{testOrder("o1", domain.StatusPending), missingFarmer, unknownStatus}, nil
		},
	}
	view := NewOrderView(gw, authedFarmerStore(t), zerolog.Nop())

	orders, err := view.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "o1" {
		t.Fatalf("expected only the well-formed order to survive, got %+v", orders)
	}
}

func TestOrderView_FirstLoadFailureEmptiesList(t *testing.T) {
	gw := &stubGateway{
		listMyPlacedOrdersFn: func(context.Context, string) ([]domain.Order, error) {
			return nil, domain.NewRemoteError(domain.ErrDataShape, "", "expected a list of orders")
		},
	}
	view := NewOrderView(gw, authedFarmerStore(t), zerolog.Nop())

	if _, err := view.Load(context.Background()); !errors.Is(err, domain.ErrDataShape) {
		t.Fatalf("expected ErrDataShape, got %v", err)
	}
	if got := view.Orders(); len(got) != 0 {
		t.Fatalf("first-load failure must leave an empty list, got %+v", got)
	}
}

func TestOrderView_RefreshFailureKeepsPriorList(t *testing.T) {
	fail := false
	gw := &stubGateway{
		listMyPlacedOrdersFn: func(context.Context, string) ([]domain.Order, error) {
			if fail {
				return nil, domain.NewRemoteError(domain.ErrNetwork, "", "could not reach the server")
			}
			return []domain.Order{testOrder("o1", domain.StatusPending)}, nil
		},
	}
	view := NewOrderView(gw, authedFarmerStore(t), zerolog.Nop())

	if _, err := view.Load(context.Background()); err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	fail = true
	if _, err := view.Load(context.Background()); !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if got := view.Orders(); len(got) != 1 || got[0].ID != "o1" {
		t.Fatalf("refresh failure must keep the prior list, got %+v", got)
	}
}

func TestOrderView_MalformedRefreshEmptiesList(t *testing.T) {
	fail := false
	gw := &stubGateway{
		listMyPlacedOrdersFn: func(context.Context, string) ([]domain.Order, error) {
			if fail {
				return nil, domain.NewRemoteError(domain.ErrDataShape, "", "expected a list of orders")
			}
			return []domain.Order{testOrder("o1", domain.StatusPending)}, nil
		},
	}
	view := NewOrderView(gw, authedFarmerStore(t), zerolog.Nop())

	if _, err := view.Load(context.Background()); err != nil {
		t.Fatalf("first load failed: %v", err)
	}

	// Unlike a network failure, a non-list payload discredits the prior
	// list too: nothing stale may keep rendering.
	fail = true
	if _, err := view.Load(context.Background()); !errors.Is(err, domain.ErrDataShape) {
		t.Fatalf("expected ErrDataShape, got %v", err)
	}
	if got := view.Orders(); len(got) != 0 {
		t.Fatalf("malformed refresh must empty the list, got %+v", got)
	}
}

func TestOrderView_Partition(t *testing.T) {
	gw := &stubGateway{
		listMyPlacedOrdersFn: func(context.Context, string) ([]domain.Order, error) {
			return []domain.Order{
				testOrder("o1", domain.StatusPending),
				testOrder("o2", domain.StatusAccepted),
				testOrder("o3", domain.StatusCompleted),
				testOrder("o4", domain.StatusCancelled),
			}, nil
		},
	}
	view := NewOrderView(gw, authedFarmerStore(t), zerolog.Nop())
	if _, err := view.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	active, completed := view.Partition()
	if len(active) != 2 {
		t.Fatalf("expected 2 active orders, got %d", len(active))
	}
	if len(completed) != 1 {
		t.Fatalf("expected 1 completed order, got %d", len(completed))
	}
	for _, o := range append(active, completed...) {
		if o.Status == domain.StatusCancelled {
			t.Fatalf("cancelled order leaked into a pane: %+v", o)
		}
	}
}

func TestOrderView_ApplyStatusUpdateMergesServerObject(t *testing.T) {
	gw := &stubGateway{
		listMyPlacedOrdersFn: func(context.Context, string) ([]domain.Order, error) {
			return []domain.Order{testOrder("o1", domain.StatusPending)}, nil
		},
		updateOrderStatusFn: func(_ context.Context, _, orderID string, status domain.OrderStatus) (*domain.Order, error) {
			updated := testOrder(orderID, status)
			updated.Description = "weed the east field (confirmed)"
			return &updated, nil
		},
	}
	view := NewOrderView(gw, authedFarmerStore(t), zerolog.Nop())
	if _, err := view.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	updated, err := view.ApplyStatusUpdate(context.Background(), "o1", domain.StatusAccepted)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.StatusAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}

	orders := view.Orders()
	if len(orders) != 1 {
		t.Fatalf("expected exactly one order in state, got %d", len(orders))
	}
	if orders[0].Status != domain.StatusAccepted {
		t.Fatalf("expected merged status accepted, got %s", orders[0].Status)
	}
	// Server-computed fields are authoritative, not a blind local status flip.
	if orders[0].Description != "weed the east field (confirmed)" {
		t.Fatalf("server object must replace the local one, got %+v", orders[0])
	}
}

func TestOrderView_ApplyStatusUpdateRejectsLatticeViolation(t *testing.T) {
	gw := &stubGateway{
		listMyPlacedOrdersFn: func(context.Context, string) ([]domain.Order, error) {
			return []domain.Order{testOrder("o1", domain.StatusCompleted)}, nil
		},
		updateOrderStatusFn: func(_ context.Context, _, orderID string, status domain.OrderStatus) (*domain.Order, error) {
			// Misbehaving server: naively echoes whatever was asked.
			updated := testOrder(orderID, status)
			return &updated, nil
		},
	}
	view := NewOrderView(gw, authedFarmerStore(t), zerolog.Nop())
	if _, err := view.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	_, err := view.ApplyStatusUpdate(context.Background(), "o1", domain.StatusPending)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if got := view.Orders(); got[0].Status != domain.StatusCompleted {
		t.Fatalf("rejected update must leave the list unchanged, got %+v", got)
	}
}

func TestOrderView_ApplyStatusUpdateFailureLeavesListUnchanged(t *testing.T) {
	gw := &stubGateway{
		listMyPlacedOrdersFn: func(context.Context, string) ([]domain.Order, error) {
			return []domain.Order{testOrder("o1", domain.StatusPending)}, nil
		},
		updateOrderStatusFn: func(context.Context, string, string, domain.OrderStatus) (*domain.Order, error) {
			return nil, domain.NewRemoteError(domain.ErrInvalidTransition, "order already cancelled", "")
		},
	}
	view := NewOrderView(gw, authedFarmerStore(t), zerolog.Nop())
	if _, err := view.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	_, err := view.ApplyStatusUpdate(context.Background(), "o1", domain.StatusAccepted)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err.Error() != "order already cancelled" {
		t.Fatalf("server message must be surfaced verbatim, got %q", err.Error())
	}
	if got := view.Orders(); got[0].Status != domain.StatusPending {
		t.Fatalf("failed update must leave the list unchanged, got %+v", got)
	}
}
