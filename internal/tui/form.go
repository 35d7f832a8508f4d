package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of labelled text inputs with a single focus.
// Tab and shift+tab move the focus, enter on the last field submits.
type form struct {
	labels  []string
	inputs  []textinput.Model
	focused int
}

type formField struct {
	label       string
	placeholder string
	secret      bool
}

func newForm(fields []formField) form {
	f := form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.CharLimit = 128
		in.Width = 40
		if field.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		f.labels[i] = field.label
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// update advances focus and feeds keystrokes to the focused input.
// It reports submit=true when enter is pressed on the last field.
func (f *form) update(msg tea.Msg) (cmd tea.Cmd, submit bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.focus(f.focused + 1)
			return nil, false
		case "shift+tab", "up":
			f.focus(f.focused - 1)
			return nil, false
		case "enter":
			if f.focused == len(f.inputs)-1 {
				return nil, true
			}
			f.focus(f.focused + 1)
			return nil, false
		}
	}
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd, false
}

func (f *form) focus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focused].Blur()
	f.focused = (i + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focused].Focus()
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) view() string {
	var b strings.Builder
	for i, in := range f.inputs {
		b.WriteString(labelStyle.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return b.String()
}
