package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agrowork/agrowork-cli/internal/core/ports"
	"github.com/agrowork/agrowork-cli/internal/core/service"
)

// createOrderPage is the farmer's order placement form.
type createOrderPage struct {
	deps    Deps
	form    form
	spinner spinner.Model
	busy    bool
	errMsg  string
}

func newCreateOrderPage(deps Deps) *createOrderPage {
	return &createOrderPage{
		deps: deps,
		form: newForm([]formField{
			{label: "Laborer ID", placeholder: "paste an id from the laborer list"},
			{label: "Description", placeholder: "what needs doing"},
			{label: "Daily wage", placeholder: "150"},
			{label: "Start date", placeholder: "2026-03-11"},
			{label: "End date", placeholder: "2026-03-13"},
		}),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (p *createOrderPage) update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return p, navigate(service.RouteFarmerDashboard)
		}
		if p.busy {
			return p, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case orderCreatedMsg:
		p.busy = false
		if msg.err != nil {
			p.errMsg = msg.err.Error()
			return p, nil
		}
		return p, navigate(service.RouteFarmerDashboard)
	}

	cmd, submit := p.form.update(msg)
	if submit {
		wage, err := strconv.ParseFloat(p.form.value(2), 64)
		if err != nil {
			p.errMsg = "wage must be a number"
			return p, nil
		}
		draft := ports.OrderDraft{
			LaborerID:   p.form.value(0),
			Description: p.form.value(1),
			Wage:        wage,
			StartDate:   p.form.value(3),
			EndDate:     p.form.value(4),
		}
		p.busy = true
		p.errMsg = ""
		return p, tea.Batch(p.spinner.Tick, createOrderCmd(p.deps, draft))
	}
	return p, cmd
}

func (p *createOrderPage) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Place a work order"))
	b.WriteString("\n")
	b.WriteString(p.form.view())
	if p.busy {
		b.WriteString(p.spinner.View() + " placing order...\n")
	}
	if p.errMsg != "" {
		b.WriteString(errorStyle.Render(p.errMsg) + "\n")
	}
	b.WriteString(helpStyle.Render("enter submit · tab next field · esc back"))
	return b.String()
}
