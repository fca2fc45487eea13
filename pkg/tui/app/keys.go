package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	New     key.Binding
	View    key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding

	Submit key.Binding
	Cancel key.Binding
	Yes    key.Binding
	No     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		New:     key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "novo")),
		View:    key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "ver")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editar")),
		Delete:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "excluir")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recarregar")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ajuda")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "sair")),

		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "salvar")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "fechar")),
		Yes:    key.NewBinding(key.WithKeys("y", "s"), key.WithHelp("s", "sim")),
		No:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "não")),
	}
}

// listKeys is the footer help while the table has focus.
type listKeys keyMap

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.View, k.Edit, k.Delete, k.Help, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.View},
		{k.New, k.Edit, k.Delete},
		{k.Refresh, k.Help, k.Quit},
	}
}

// formKeys is the footer help while the form is open.
type formKeys keyMap

func (k formKeys) ShortHelp() []key.Binding {
	tab := key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "próximo"))
	return []key.Binding{tab, k.Submit, k.Cancel}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// confirmKeys is the footer help while a confirmation is pending.
type confirmKeys keyMap

func (k confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}

func (k confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
