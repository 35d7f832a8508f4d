package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
	"github.com/agrowork/agrowork-cli/internal/core/ports"
)

// defaultTimeout bounds gateway calls when no timeout was configured.
const defaultTimeout = 15 * time.Second

// callCtx derives the context for one gateway call from the configured HTTP
// timeout, so the UI and the resty client share a single budget.
func (d Deps) callCtx() (context.Context, context.CancelFunc) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

type authDoneMsg struct {
	result *ports.AuthResult
	err    error
}

type ordersLoadedMsg struct {
	err error
}

type orderUpdatedMsg struct {
	err error
}

type laborersLoadedMsg struct {
	laborers []domain.LaborerProfile
	err      error
}

type orderCreatedMsg struct {
	order *domain.Order
	err   error
}

func loginCmd(d Deps, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.callCtx()
		defer cancel()
		res, err := d.Gateway.Login(ctx, username, password)
		return authDoneMsg{result: res, err: err}
	}
}

func registerFarmerCmd(d Deps, profile ports.FarmerProfile) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.callCtx()
		defer cancel()
		res, err := d.Gateway.RegisterFarmer(ctx, profile)
		return authDoneMsg{result: res, err: err}
	}
}

func registerLaborerCmd(d Deps, profile ports.LaborerProfile) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.callCtx()
		defer cancel()
		res, err := d.Gateway.RegisterLaborer(ctx, profile)
		return authDoneMsg{result: res, err: err}
	}
}

func loadOrdersCmd(d Deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.callCtx()
		defer cancel()
		_, err := d.Orders.Load(ctx)
		return ordersLoadedMsg{err: err}
	}
}

func updateStatusCmd(d Deps, orderID string, status domain.OrderStatus) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.callCtx()
		defer cancel()
		_, err := d.Orders.ApplyStatusUpdate(ctx, orderID, status)
		return orderUpdatedMsg{err: err}
	}
}

func loadLaborersCmd(d Deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.callCtx()
		defer cancel()
		laborers, err := d.Gateway.ListLaborers(ctx, d.Session.Token())
		return laborersLoadedMsg{laborers: laborers, err: err}
	}
}

func createOrderCmd(d Deps, draft ports.OrderDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := d.callCtx()
		defer cancel()
		order, err := d.Gateway.CreateOrder(ctx, d.Session.Token(), draft)
		return orderCreatedMsg{order: order, err: err}
	}
}
