package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
	"github.com/agrowork/agrowork-cli/internal/core/service"
)

// laborersPage is the farmer's directory of registered laborers.
type laborersPage struct {
	deps     Deps
	laborers []domain.LaborerProfile
	selected int
	spinner  spinner.Model
	busy     bool
	errMsg   string
}

func newLaborersPage(deps Deps) *laborersPage {
	return &laborersPage{
		deps:    deps,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (p *laborersPage) init() tea.Cmd {
	p.busy = true
	return tea.Batch(p.spinner.Tick, loadLaborersCmd(p.deps))
}

func (p *laborersPage) update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return p, navigate(service.RouteFarmerDashboard)
		case "up", "k":
			if p.selected > 0 {
				p.selected--
			}
		case "down", "j":
			if p.selected < len(p.laborers)-1 {
				p.selected++
			}
		case "r":
			return p, p.init()
		case "enter":
			// Hiring flows through the order form; the id is shown so it
			// can be carried over.
			return p, navigate(service.RouteCreateOrder)
		}

	case spinner.TickMsg:
		if !p.busy {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case laborersLoadedMsg:
		p.busy = false
		if msg.err != nil {
			p.errMsg = msg.err.Error()
			return p, nil
		}
		p.errMsg = ""
		p.laborers = msg.laborers
		if p.selected >= len(p.laborers) {
			p.selected = 0
		}
	}
	return p, nil
}

func (p *laborersPage) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Available laborers"))
	b.WriteString("\n")

	if p.busy {
		b.WriteString(p.spinner.View() + " loading laborers...\n")
		return b.String()
	}
	if p.errMsg != "" {
		b.WriteString(errorStyle.Render(p.errMsg) + "\n")
	}
	if len(p.laborers) == 0 && p.errMsg == "" {
		b.WriteString(subtitleStyle.Render("nobody has registered yet"))
		b.WriteString("\n")
	}

	for i, l := range p.laborers {
		cursor := "  "
		line := fmt.Sprintf("%s · %d yrs · %s", l.Username, l.Age, strings.Join(l.Skills, ", "))
		if i == p.selected {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
		if i == p.selected {
			b.WriteString("    " + subtitleStyle.Render("id: "+l.ID) + "\n")
			if l.Experience != "" {
				b.WriteString("    " + subtitleStyle.Render(l.Experience) + "\n")
			}
		}
	}

	b.WriteString(helpStyle.Render("enter hire · up/down move · r refresh · esc back"))
	return b.String()
}
