package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agrowork/agrowork-cli/internal/core/service"
)

type loginPage struct {
	deps    Deps
	form    form
	spinner spinner.Model
	busy    bool
	errMsg  string
}

func newLoginPage(deps Deps) *loginPage {
	return &loginPage{
		deps: deps,
		form: newForm([]formField{
			{label: "Username", placeholder: "username"},
			{label: "Password", placeholder: "password", secret: true},
		}),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (p *loginPage) update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return p, navigate(service.RouteHome)
		}
		if p.busy {
			return p, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case authDoneMsg:
		p.busy = false
		if msg.err != nil {
			p.errMsg = msg.err.Error()
			return p, nil
		}
		p.deps.Session.Login(msg.result.User, msg.result.Token)
		return p, navigate(service.Dashboard(msg.result.User.Role))
	}

	cmd, submit := p.form.update(msg)
	if submit {
		username, password := p.form.value(0), p.form.value(1)
		if username == "" || password == "" {
			p.errMsg = "username and password are required"
			return p, nil
		}
		p.busy = true
		p.errMsg = ""
		return p, tea.Batch(p.spinner.Tick, loginCmd(p.deps, username, password))
	}
	return p, cmd
}

func (p *loginPage) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Log in"))
	b.WriteString("\n")
	b.WriteString(p.form.view())
	if p.busy {
		b.WriteString(p.spinner.View() + " signing in...\n")
	}
	if p.errMsg != "" {
		b.WriteString(errorStyle.Render(p.errMsg) + "\n")
	}
	b.WriteString(helpStyle.Render("enter submit · tab next field · esc back"))
	return b.String()
}
