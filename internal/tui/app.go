// Package tui is the terminal front end for the marketplace. Navigation is
// routed through the access guard: every page change is checked against the
// current session and silently corrected, so a protected page can never be
// shown to the wrong role.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/agrowork/agrowork-cli/internal/core/ports"
	"github.com/agrowork/agrowork-cli/internal/core/service"
)

// Deps bundles the wiring a running UI needs.
type Deps struct {
	Session *service.SessionStore
	Orders  *service.OrderView
	Gateway ports.Gateway
	Log     zerolog.Logger
	// Timeout bounds each gateway call, mirroring the HTTP client's own
	// timeout so the two cannot drift apart.
	Timeout time.Duration
}

// gotoMsg asks the root model to navigate. The guard has the final word on
// the destination.
type gotoMsg struct {
	route service.Route
}

func navigate(route service.Route) tea.Cmd {
	return func() tea.Msg { return gotoMsg{route: route} }
}

// logoutMsg clears the session and returns to home.
type logoutMsg struct{}

// page is a single screen. Pages never switch themselves; they emit gotoMsg
// and let the root model run the guard.
type page interface {
	update(msg tea.Msg) (page, tea.Cmd)
	view() string
}

// Model is the root bubbletea model.
type Model struct {
	deps  Deps
	route service.Route
	page  page
	width int
}

func NewModel(deps Deps) Model {
	m := Model{deps: deps}
	m.route, m.page = m.resolve(service.RouteHome)
	return m
}

func (m Model) Init() tea.Cmd {
	// Landing on home after a restored session goes straight to the
	// dashboard, same as opening the app in a still-valid browser session.
	if sess := m.deps.Session.Snapshot(); sess.Authenticated() {
		return navigate(service.Dashboard(sess.User.Role))
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			if m.deps.Session.Snapshot().Authenticated() {
				return m, func() tea.Msg { return logoutMsg{} }
			}
		}

	case gotoMsg:
		var cmd tea.Cmd
		m.route, m.page = m.resolve(msg.route)
		if init, ok := m.page.(interface{ init() tea.Cmd }); ok {
			cmd = init.init()
		}
		return m, cmd

	case logoutMsg:
		m.deps.Session.Logout()
		m.deps.Log.Info().Msg("logged out")
		return m.Update(gotoMsg{route: service.RouteHome})
	}

	var cmd tea.Cmd
	m.page, cmd = m.page.update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.page.view()
}

// resolve runs the guard on the requested route and builds the page for
// wherever the guard lands. Guard redirects always terminate, so a single
// recursive step is enough in practice; the loop guards against rule bugs.
func (m Model) resolve(route service.Route) (service.Route, page) {
	sess := m.deps.Session.Snapshot()
	for i := 0; i < 4; i++ {
		decision := service.Guard(sess, route)
		if decision.Allowed {
			return route, m.buildPage(route)
		}
		route = decision.Redirect
	}
	return service.RouteHome, m.buildPage(service.RouteHome)
}

func (m Model) buildPage(route service.Route) page {
	switch route {
	case service.RouteLogin:
		return newLoginPage(m.deps)
	case service.RouteRegisterRole:
		return newRegisterRolePage()
	case service.RouteRegisterFarmer:
		return newRegisterFarmerPage(m.deps)
	case service.RouteRegisterLaborer:
		return newRegisterLaborerPage(m.deps)
	case service.RouteFarmerDashboard:
		return newDashboardPage(m.deps, true)
	case service.RouteLaborerDashboard:
		return newDashboardPage(m.deps, false)
	case service.RouteCreateOrder:
		return newCreateOrderPage(m.deps)
	case service.RouteLaborers:
		return newLaborersPage(m.deps)
	default:
		return newHomePage()
	}
}

// Run starts the interactive program.
func Run(deps Deps) error {
	_, err := tea.NewProgram(NewModel(deps), tea.WithAltScreen()).Run()
	return err
}
