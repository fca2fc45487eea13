// Package productform renders the product entry form as a Bubble Tea
// component backed by a form.Form.
package productform

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/catalog/pkg/form"
	"tableflip.dev/catalog/pkg/tui/theme"
)

var placeholders = map[form.Kind]string{
	form.Text:  "",
	form.Money: "0.00",
	form.File:  "caminho/para/imagem.png",
}

// Model edits every field of a form. The form is the source of truth; the
// text inputs mirror it.
type Model struct {
	form   *form.Form
	fields []form.Field
	inputs map[string]*textinput.Model
	focus  int

	title    string
	width    int
	disabled bool
	styles   theme.FormTheme

	onChange func()
}

// New builds the component for f.
func New(f *form.Form, styles theme.FormTheme) *Model {
	m := &Model{
		form:   f,
		fields: f.Fields(),
		inputs: make(map[string]*textinput.Model),
		styles: styles,
		width:  48,
	}
	for _, fd := range m.fields {
		if fd.Kind == form.Choice {
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[fd.Kind]
		if fd.Kind == form.Text && fd.Name == form.FieldDesc {
			in.CharLimit = 500
		}
		m.inputs[fd.Name] = &in
	}
	m.Sync()
	return m
}

// OnChange registers fn to run after every edit made through the component.
func (m *Model) OnChange(fn func()) { m.onChange = fn }

// SetTitle sets the heading shown above the fields.
func (m *Model) SetTitle(title string) { m.title = title }

// Title returns the heading.
func (m *Model) Title() string { return m.title }

// SetWidth sets the input width.
func (m *Model) SetWidth(w int) {
	m.width = max(w, 16)
	for _, in := range m.inputs {
		in.Width = m.width
	}
}

// SetDisabled ignores input while a submission is running.
func (m *Model) SetDisabled(v bool) { m.disabled = v }

// Sync copies the form's values into the inputs, after the form was changed
// outside the component (restored draft, edit, reset).
func (m *Model) Sync() {
	for _, fd := range m.fields {
		in, ok := m.inputs[fd.Name]
		if !ok {
			continue
		}
		in.SetValue(m.form.Value(fd.Name))
		in.CursorEnd()
	}
}

// Focused returns the name of the focused field.
func (m *Model) Focused() string {
	if len(m.fields) == 0 {
		return ""
	}
	return m.fields[m.focus].Name
}

// Focus focuses the first field.
func (m *Model) Focus() tea.Cmd {
	return m.focusAt(0)
}

func (m *Model) focusAt(i int) tea.Cmd {
	for _, in := range m.inputs {
		in.Blur()
	}
	if len(m.fields) == 0 {
		return nil
	}
	m.focus = (i + len(m.fields)) % len(m.fields)
	if in, ok := m.inputs[m.fields[m.focus].Name]; ok {
		return in.Focus()
	}
	return nil
}

// move leaves the focused field, validating it the way a blur does.
func (m *Model) move(delta int) tea.Cmd {
	m.form.ValidateField(m.Focused())
	return m.focusAt(m.focus + delta)
}

// Update handles a message. It reports true when the user asked to submit.
func (m *Model) Update(msg tea.Msg) (bool, tea.Cmd) {
	if m.disabled {
		return false, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, m.forward(msg)
	}

	switch key.String() {
	case "ctrl+s":
		return true, nil
	case "tab", "down":
		return false, m.move(1)
	case "shift+tab", "up":
		return false, m.move(-1)
	case "enter":
		if m.focus == len(m.fields)-1 {
			return true, nil
		}
		return false, m.move(1)
	}

	fd := m.fields[m.focus]
	if fd.Kind == form.Choice {
		switch key.String() {
		case "left", "h":
			m.cycle(fd, -1)
		case "right", "l", " ":
			m.cycle(fd, 1)
		}
		return false, nil
	}
	return false, m.forward(msg)
}

func (m *Model) cycle(fd form.Field, delta int) {
	if len(fd.Options) == 0 {
		return
	}
	i := slices.Index(fd.Options, m.form.Value(fd.Name))
	i = (i + delta + len(fd.Options)) % len(fd.Options)
	m.form.Set(fd.Name, fd.Options[i])
	m.changed()
}

// forward hands msg to the focused input and copies its value into the form.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	fd := m.fields[m.focus]
	in, ok := m.inputs[fd.Name]
	if !ok {
		return nil
	}
	before := in.Value()
	next, cmd := in.Update(msg)
	*in = next
	if in.Value() == before {
		return cmd
	}

	switch fd.Kind {
	case form.File:
		m.form.SetFile(fd.Name, strings.TrimSpace(in.Value()))
	case form.Money:
		m.form.Set(fd.Name, in.Value())
		in.SetValue(m.form.Value(fd.Name))
		in.CursorEnd()
	default:
		m.form.Set(fd.Name, in.Value())
	}
	m.changed()
	return cmd
}

func (m *Model) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}

// View renders the fields with their labels and errors.
func (m *Model) View() string {
	var b strings.Builder
	for i, fd := range m.fields {
		label := m.styles.Label
		if i == m.focus {
			label = m.styles.FocusedLabel
		}
		b.WriteString(label.Render(fd.Label))
		if fd.Required {
			b.WriteString(m.styles.Required.Render(" *"))
		}
		b.WriteString("\n")

		if fd.Kind == form.Choice {
			b.WriteString(m.choiceView(fd))
		} else {
			b.WriteString(m.inputs[fd.Name].View())
		}
		b.WriteString("\n")

		if msg := m.form.Error(fd.Name); msg != "" {
			b.WriteString(m.styles.Error.Render(msg))
			b.WriteString("\n")
		}
		if i < len(m.fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) choiceView(fd form.Field) string {
	current := m.form.Value(fd.Name)
	parts := make([]string, 0, len(fd.Options))
	for _, opt := range fd.Options {
		style := m.styles.Choice
		if opt == current {
			style = m.styles.ChoiceActive
		}
		parts = append(parts, style.Render(opt))
	}
	return strings.Join(parts, "  ")
}
