// Package help is the key reference overlay of the catalog UI.
package help

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

//go:embed help.md
var helpMarkdown string

// Settings are the effective runtime settings listed below the keys.
type Settings struct {
	Server   string
	DraftKey string
	Debounce time.Duration
}

func (s Settings) markdown() string {
	var rows []string
	if s.Server != "" {
		rows = append(rows, fmt.Sprintf("| server | `%s` |", s.Server))
	}
	if s.DraftKey != "" {
		rows = append(rows, fmt.Sprintf("| draft key | `%s` |", s.DraftKey))
	}
	if s.Debounce > 0 {
		rows = append(rows, fmt.Sprintf("| autosave after | %s |", s.Debounce))
	}
	if len(rows) == 0 {
		return ""
	}
	return "\n\n## Settings\n\n| setting | value |\n|---|---|\n" + strings.Join(rows, "\n")
}

// Model shows the rendered help inside a scrollable frame. The markdown is
// rendered again only when the wrap width changes.
type Model struct {
	viewport viewport.Model
	settings Settings
	frame    lipgloss.Style
	footer   lipgloss.Style

	width, height int
	wrap          int
	err           error
}

const minWidth, minHeight = 32, 8

// New returns an overlay of the given outer size.
func New(width, height int, settings Settings) *Model {
	m := &Model{
		viewport: viewport.New(1, 1),
		settings: settings,
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
		footer:   lipgloss.NewStyle().Faint(true),
	}
	m.viewport.MouseWheelEnabled = true
	m.SetSize(width, height)
	return m
}

// Update scrolls with the viewport keys.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	body := m.viewport.View()
	if m.err != nil {
		body = "help unavailable: " + m.err.Error()
	}
	scroll := m.footer.Render(fmt.Sprintf("%3.f%%  ? or esc to close", m.viewport.ScrollPercent()*100))
	return m.frame.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, body, scroll))
}

// Content returns the visible part of the rendered help.
func (m *Model) Content() string {
	return m.viewport.View()
}

// SetSize resizes the overlay, never below 32x8.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = max(width, minWidth), max(height, minHeight)

	innerWidth := max(m.width-m.frame.GetHorizontalFrameSize(), 1)
	// One line is kept for the scroll footer.
	innerHeight := max(m.height-m.frame.GetVerticalFrameSize()-1, 1)
	m.viewport.Width = innerWidth
	m.viewport.Height = innerHeight

	if innerWidth != m.wrap {
		m.wrap = innerWidth
		m.render()
	}
}

func (m *Model) render() {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(m.wrap-2, 10)),
	)
	if err == nil {
		var content string
		content, err = renderer.Render(strings.TrimSpace(helpMarkdown) + m.settings.markdown())
		if err == nil {
			m.err = nil
			m.viewport.SetContent(stripANSI(content))
			m.viewport.GotoTop()
			return
		}
	}
	m.err = err
	m.viewport.SetContent("")
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
