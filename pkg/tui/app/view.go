package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/product"
)

func columns(width int) []table.Column {
	price, actions := 16, 24
	name := max(width-price-actions-8, 12)
	return []table.Column{
		{Title: "Nome", Width: name},
		{Title: "Valor", Width: price},
		{Title: "Ações", Width: actions},
	}
}

var actionLabels = map[product.Action]string{
	product.ActionView:   "ver",
	product.ActionEdit:   "editar",
	product.ActionDelete: "excluir",
}

func tableRows(rows []product.Row) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		labels := make([]string, 0, len(r.Actions))
		for _, a := range r.Actions {
			labels = append(labels, actionLabels[a])
		}
		out = append(out, table.Row{r.Name, r.Price, strings.Join(labels, " · ")})
	}
	return out
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.mode {
	case modeForm:
		body = m.center(m.formModal())
	case modeView:
		body = m.center(m.viewModal())
	case modeConfirm:
		body = m.center(m.confirmModal())
	case modeHelp:
		body = m.center(m.overlay.View())
	default:
		body = m.listView()
	}

	var b strings.Builder
	b.WriteString(body)
	if t := m.toasts.View(min(max(m.width/2, 30), 60)); t != "" {
		b.WriteString("\n")
		if m.width > 0 {
			t = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, t)
		}
		b.WriteString(t)
	}
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) listView() string {
	rows, _ := m.rows.snapshot()
	var b strings.Builder
	b.WriteString(m.theme.Header.Title.Render("Produtos"))
	noun := "produtos"
	if len(rows) == 1 {
		noun = "produto"
	}
	b.WriteString(m.theme.Header.Count.Render(fmt.Sprintf(" - %d %s", len(rows), noun)))
	b.WriteString("\n\n")
	if len(rows) == 0 {
		b.WriteString(m.theme.Table.Empty.Render(" nenhum produto, tecle n para cadastrar"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.table.View())
	return b.String()
}

func (m *Model) formModal() string {
	var b strings.Builder
	title := m.formView.Title()
	if title == "" {
		title = "Novo produto"
	}
	b.WriteString(m.theme.Modal.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.formView.View())
	if m.submitting {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(m.theme.Modal.Faint.Render(" salvando…"))
	}
	return m.theme.Modal.Frame.Render(b.String())
}

func (m *Model) viewModal() string {
	p := m.viewing
	if p == nil {
		return ""
	}
	wrap := max(min(m.width-12, 60), 20)
	faint := m.theme.Modal.Faint

	var b strings.Builder
	b.WriteString(m.theme.Modal.Title.Render(p.Name))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", faint.Render("Valor:     "), product.FormatBRL(p.Price))
	fmt.Fprintf(&b, "%s %s\n", faint.Render("Disponível:"), p.AvailableLabel())
	if p.ImageURL != "" {
		fmt.Fprintf(&b, "%s %s\n", faint.Render("Imagem:    "), m.opts.ImageBase+p.ImageURL)
	}
	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(wordwrap.String(p.Description, wrap))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(faint.Render(fmt.Sprintf("id %s", p.ID)))
	return m.theme.Modal.Frame.Render(b.String())
}

func (m *Model) confirmModal() string {
	name := m.confirmID
	rows, _ := m.rows.snapshot()
	for _, r := range rows {
		if r.ID == m.confirmID {
			name = r.Name
			break
		}
	}
	var b strings.Builder
	b.WriteString(m.theme.Modal.Title.Render("Excluir " + name))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Modal.Body.Render(notify.MsgConfirm))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Modal.Faint.Render("s para excluir, n para cancelar"))
	return m.theme.Modal.Frame.Render(b.String())
}

func (m *Model) center(s string) string {
	if m.width == 0 || m.height == 0 {
		return s
	}
	return lipgloss.Place(m.width, max(m.height-3, lipgloss.Height(s)), lipgloss.Center, lipgloss.Center, s)
}

func (m *Model) footer() string {
	var keys help.KeyMap
	switch m.mode {
	case modeForm:
		keys = formKeys(m.keys)
	case modeConfirm:
		keys = confirmKeys(m.keys)
	default:
		keys = listKeys(m.keys)
	}
	line := m.help.View(keys)
	if m.busy > 0 && !m.submitting {
		line = m.spinner.View() + " " + line
	}
	return m.theme.Footer.Help.Render(line)
}
