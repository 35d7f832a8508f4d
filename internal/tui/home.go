package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agrowork/agrowork-cli/internal/core/service"
)

// homePage is the unauthenticated landing screen.
type homePage struct {
	choices  []string
	routes   []service.Route
	selected int
}

func newHomePage() *homePage {
	return &homePage{
		choices: []string{"Log in", "Create an account"},
		routes:  []service.Route{service.RouteLogin, service.RouteRegisterRole},
	}
}

func (p *homePage) update(msg tea.Msg) (page, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if p.selected > 0 {
				p.selected--
			}
		case "down", "j":
			if p.selected < len(p.choices)-1 {
				p.selected++
			}
		case "enter":
			return p, navigate(p.routes[p.selected])
		case "q":
			return p, tea.Quit
		}
	}
	return p, nil
}

func (p *homePage) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("AgroWork"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Seasonal farm work, matched."))
	b.WriteString("\n\n")
	for i, choice := range p.choices {
		cursor := "  "
		line := choice
		if i == p.selected {
			cursor = "> "
			line = selectedStyle.Render(choice)
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString(helpStyle.Render("enter select · up/down move · q quit"))
	return b.String()
}
