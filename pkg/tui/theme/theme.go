package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the catalog UI.
type Theme struct {
	Header HeaderTheme
	Table  TableTheme
	Footer FooterTheme
	Modal  ModalTheme
	Form   FormTheme
	Toast  ToastTheme
}

// HeaderTheme styles the title line above the product table.
type HeaderTheme struct {
	Title lipgloss.Style
	Count lipgloss.Style
}

// TableTheme styles the product table.
type TableTheme struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
}

// FooterTheme groups styles used by the bottom help/status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Busy   lipgloss.Style
}

// ModalTheme styles centered modal overlays.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Faint lipgloss.Style
}

// FormTheme styles the product entry form.
type FormTheme struct {
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Required     lipgloss.Style
	Error        lipgloss.Style
	Choice       lipgloss.Style
	ChoiceActive lipgloss.Style
}

// ToastTheme styles transient notifications.
type ToastTheme struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().Bold(true).Underline(true),
			Count: faint,
		},
		Table: TableTheme{
			Header: lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				BorderBottom(true),
			Cell: lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")),
			Empty: faint.Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: faint,
			Busy:   lipgloss.NewStyle().Foreground(accent),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true).Foreground(accent),
			Body:  lipgloss.NewStyle(),
			Faint: faint,
		},
		Form: FormTheme{
			Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			FocusedLabel: lipgloss.NewStyle().Foreground(accent).Bold(true),
			Required:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true),
			Choice:       faint,
			ChoiceActive: lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true),
		},
		Toast: ToastTheme{
			Success: toast.BorderForeground(lipgloss.Color("42")).Foreground(lipgloss.Color("42")),
			Error:   toast.BorderForeground(lipgloss.Color("203")).Foreground(lipgloss.Color("203")),
			Info:    toast.BorderForeground(lipgloss.Color("39")).Foreground(lipgloss.Color("39")),
		},
	}
}
