package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agrowork/agrowork-cli/internal/core/ports"
	"github.com/agrowork/agrowork-cli/internal/core/service"
)

// registerRolePage asks which kind of account to create.
type registerRolePage struct {
	selected int
}

func newRegisterRolePage() *registerRolePage { return &registerRolePage{} }

func (p *registerRolePage) update(msg tea.Msg) (page, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k", "down", "j":
			p.selected = 1 - p.selected
		case "enter":
			if p.selected == 0 {
				return p, navigate(service.RouteRegisterFarmer)
			}
			return p, navigate(service.RouteRegisterLaborer)
		case "esc":
			return p, navigate(service.RouteHome)
		}
	}
	return p, nil
}

func (p *registerRolePage) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create an account"))
	b.WriteString("\n")
	choices := []string{"Farmer: I need workers for my land", "Laborer: I'm looking for farm work"}
	for i, choice := range choices {
		cursor := "  "
		line := choice
		if i == p.selected {
			cursor = "> "
			line = selectedStyle.Render(choice)
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString(helpStyle.Render("enter select · esc back"))
	return b.String()
}

// registerPage drives both registration forms; the submit function maps the
// field values onto the role-specific payload.
type registerPage struct {
	deps    Deps
	title   string
	form    form
	submit  func(p *registerPage) tea.Cmd
	spinner spinner.Model
	busy    bool
	errMsg  string
}

func newRegisterFarmerPage(deps Deps) *registerPage {
	return &registerPage{
		deps:  deps,
		title: "Register as a farmer",
		form: newForm([]formField{
			{label: "Username", placeholder: "username"},
			{label: "Email", placeholder: "you@example.com"},
			{label: "Password", placeholder: "at least 6 characters", secret: true},
			{label: "Address", placeholder: "village, district"},
			{label: "Phone number", placeholder: "phone"},
			{label: "Land area (acres)", placeholder: "2.5"},
			{label: "Crop type", placeholder: "rice, wheat..."},
		}),
		submit: func(p *registerPage) tea.Cmd {
			area, err := strconv.ParseFloat(p.form.value(5), 64)
			if err != nil {
				p.errMsg = "land area must be a number"
				return nil
			}
			return registerFarmerCmd(p.deps, ports.FarmerProfile{
				Username:    p.form.value(0),
				Email:       p.form.value(1),
				Password:    p.form.value(2),
				Address:     p.form.value(3),
				PhoneNumber: p.form.value(4),
				LandArea:    area,
				CropType:    p.form.value(6),
			})
		},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func newRegisterLaborerPage(deps Deps) *registerPage {
	return &registerPage{
		deps:  deps,
		title: "Register as a laborer",
		form: newForm([]formField{
			{label: "Username", placeholder: "username"},
			{label: "Email", placeholder: "you@example.com"},
			{label: "Password", placeholder: "at least 6 characters", secret: true},
			{label: "Confirm password", placeholder: "repeat password", secret: true},
			{label: "Address", placeholder: "village, district"},
			{label: "Phone number", placeholder: "phone"},
			{label: "Age", placeholder: "18"},
			{label: "Skills (comma separated)", placeholder: "harvesting, ploughing"},
			{label: "Experience", placeholder: "3 seasons of rice harvesting"},
		}),
		submit: func(p *registerPage) tea.Cmd {
			age, err := strconv.Atoi(p.form.value(6))
			if err != nil {
				p.errMsg = "age must be a number"
				return nil
			}
			var skills []string
			for _, s := range strings.Split(p.form.value(7), ",") {
				if s = strings.TrimSpace(s); s != "" {
					skills = append(skills, s)
				}
			}
			return registerLaborerCmd(p.deps, ports.LaborerProfile{
				Username:        p.form.value(0),
				Email:           p.form.value(1),
				Password:        p.form.value(2),
				ConfirmPassword: p.form.value(3),
				Address:         p.form.value(4),
				PhoneNumber:     p.form.value(5),
				Age:             age,
				Skills:          skills,
				Experience:      p.form.value(8),
			})
		},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (p *registerPage) update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return p, navigate(service.RouteRegisterRole)
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
		// Registration logs the new account straight in.
		p.deps.Session.Login(msg.result.User, msg.result.Token)
		return p, navigate(service.Dashboard(msg.result.User.Role))
	}

	cmd, submit := p.form.update(msg)
	if submit {
		p.errMsg = ""
		if run := p.submit(p); run != nil {
			p.busy = true
			return p, tea.Batch(p.spinner.Tick, run)
		}
		return p, nil
	}
	return p, cmd
}

func (p *registerPage) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.title))
	b.WriteString("\n")
	b.WriteString(p.form.view())
	if p.busy {
		b.WriteString(p.spinner.View() + " creating account...\n")
	}
	if p.errMsg != "" {
		b.WriteString(errorStyle.Render(p.errMsg) + "\n")
	}
	b.WriteString(helpStyle.Render("enter submit · tab next field · esc back"))
	return b.String()
}
