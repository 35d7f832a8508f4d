package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
	"github.com/agrowork/agrowork-cli/internal/core/service"
)

// dashboardPage shows the order board for either role. Active orders sit in
// the left pane, completed ones in the right; cancelled orders are not shown.
type dashboardPage struct {
	deps    Deps
	farmer  bool
	spinner spinner.Model
	busy    bool
	errMsg  string

	selected int
}

func newDashboardPage(deps Deps, farmer bool) *dashboardPage {
	return &dashboardPage{
		deps:    deps,
		farmer:  farmer,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (p *dashboardPage) init() tea.Cmd {
	p.busy = true
	return tea.Batch(p.spinner.Tick, loadOrdersCmd(p.deps))
}

func (p *dashboardPage) update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)

	case spinner.TickMsg:
		if !p.busy {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case ordersLoadedMsg:
		p.busy = false
		if msg.err != nil {
			p.errMsg = msg.err.Error()
		} else {
			p.errMsg = ""
		}
		p.clampSelection()
		return p, nil

	case orderUpdatedMsg:
		p.busy = false
		if msg.err != nil {
			p.errMsg = msg.err.Error()
		} else {
			p.errMsg = ""
		}
		p.clampSelection()
		return p, nil
	}
	return p, nil
}

func (p *dashboardPage) handleKey(key tea.KeyMsg) (page, tea.Cmd) {
	active, _ := p.deps.Orders.Partition()

	switch key.String() {
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
	case "down", "j":
		if p.selected < len(active)-1 {
			p.selected++
		}
	case "r":
		return p, p.init()
	case "q":
		return p, tea.Quit

	case "n":
		if p.farmer {
			return p, navigate(service.RouteCreateOrder)
		}
	case "b":
		if p.farmer {
			return p, navigate(service.RouteLaborers)
		}

	case "a":
		// Laborers accept pending work.
		if !p.farmer {
			return p.transition(active, domain.StatusPending, domain.StatusAccepted)
		}
	case "c":
		// Laborers mark accepted work as done.
		if !p.farmer {
			return p.transition(active, domain.StatusAccepted, domain.StatusCompleted)
		}
	case "x":
		// Either side may cancel while the order is still active.
		if len(active) > 0 {
			order := active[p.selected]
			p.busy = true
			return p, tea.Batch(p.spinner.Tick, updateStatusCmd(p.deps, order.ID, domain.StatusCancelled))
		}
	}
	return p, nil
}

func (p *dashboardPage) transition(active []domain.Order, from, to domain.OrderStatus) (page, tea.Cmd) {
	if len(active) == 0 {
		return p, nil
	}
	order := active[p.selected]
	if order.Status != from {
		p.errMsg = fmt.Sprintf("only %s orders can move to %s", from, to)
		return p, nil
	}
	p.busy = true
	p.errMsg = ""
	return p, tea.Batch(p.spinner.Tick, updateStatusCmd(p.deps, order.ID, to))
}

func (p *dashboardPage) clampSelection() {
	active, _ := p.deps.Orders.Partition()
	if p.selected >= len(active) {
		p.selected = len(active) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

func (p *dashboardPage) view() string {
	var b strings.Builder

	user := p.deps.Session.Current()
	name := ""
	if user != nil {
		name = user.Username
	}
	if p.farmer {
		b.WriteString(titleStyle.Render("Farmer dashboard · " + name))
	} else {
		b.WriteString(titleStyle.Render("Laborer dashboard · " + name))
	}
	b.WriteString("\n")

	if p.busy && !p.deps.Orders.Loaded() {
		b.WriteString(p.spinner.View() + " loading orders...\n")
		return b.String()
	}

	active, completed := p.deps.Orders.Partition()
	left := p.renderPane("Active", active, true)
	right := p.renderPane("Completed", completed, false)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")

	if p.busy {
		b.WriteString(p.spinner.View() + " working...\n")
	}
	if p.errMsg != "" {
		b.WriteString(errorStyle.Render(p.errMsg) + "\n")
	}

	if p.farmer {
		b.WriteString(helpStyle.Render("n new order · b browse laborers · x cancel · r refresh · ctrl+l logout · q quit"))
	} else {
		b.WriteString(helpStyle.Render("a accept · c complete · x cancel · r refresh · ctrl+l logout · q quit"))
	}
	return b.String()
}

func (p *dashboardPage) renderPane(title string, orders []domain.Order, selectable bool) string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(fmt.Sprintf("%s (%d)", title, len(orders))))
	b.WriteString("\n")
	if len(orders) == 0 {
		b.WriteString(subtitleStyle.Render("no orders"))
	}
	for i, o := range orders {
		cursor := "  "
		if selectable && i == p.selected {
			cursor = "> "
		}
		who := o.LaborerID
		if o.Laborer != nil {
			who = o.Laborer.Username
		}
		line := fmt.Sprintf("%s%s · %s · %.0f/day · %s", cursor, o.Description, who, o.Wage, renderStatus(string(o.Status)))
		if selectable && i == p.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return paneStyle.Render(b.String())
}
