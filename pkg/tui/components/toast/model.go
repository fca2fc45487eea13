// Package toast renders transient notifications for the catalog UI.
package toast

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/catalog/pkg/notify"
	"tableflip.dev/catalog/pkg/tui/theme"
)

// TickMsg drives expiry while toasts are visible.
type TickMsg time.Time

const tickEvery = 200 * time.Millisecond

// Toast is one visible notification.
type Toast struct {
	ID int
	notify.Notification
	Expires time.Time
}

// Model is a notify.Sink that keeps notifications until they expire. Notify
// is safe to call from command goroutines; the rest is called from the
// Bubble Tea update loop.
type Model struct {
	mu     sync.Mutex
	toasts []Toast
	next   int

	// Duration, when set, replaces the duration of every notification.
	Duration time.Duration
	Now      func() time.Time

	styles  theme.ToastTheme
	ticking bool
}

var _ notify.Sink = (*Model)(nil)

// New returns an empty toast stack.
func New(d time.Duration, styles theme.ToastTheme) *Model {
	return &Model{Duration: d, Now: time.Now, styles: styles}
}

// Notify queues n.
func (m *Model) Notify(n notify.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := n.Duration
	if m.Duration > 0 {
		d = m.Duration
	}
	if d <= 0 {
		d = notify.DefaultDuration
	}
	m.next++
	m.toasts = append(m.toasts, Toast{ID: m.next, Notification: n, Expires: m.now().Add(d)})
}

func (m *Model) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// Active returns the visible toasts, oldest first.
func (m *Model) Active() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Toast(nil), m.toasts...)
}

// Prune drops expired toasts and reports how many remain.
func (m *Model) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Before(t.Expires) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
	return len(kept)
}

// Update handles TickMsg. Call Schedule after any message that may have
// queued a toast.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(TickMsg); !ok {
		return nil
	}
	m.mu.Lock()
	m.ticking = false
	m.mu.Unlock()
	if m.Prune() == 0 {
		return nil
	}
	return m.Schedule()
}

// Schedule starts the expiry tick when toasts are visible and no tick is
// pending.
func (m *Model) Schedule() tea.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ticking || len(m.toasts) == 0 {
		return nil
	}
	m.ticking = true
	return tea.Tick(tickEvery, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// View stacks the visible toasts, each truncated to width.
func (m *Model) View(width int) string {
	toasts := m.Active()
	if len(toasts) == 0 {
		return ""
	}
	inner := max(width-4, 8)
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		msg := truncate.StringWithTail(t.Message, uint(inner), "…")
		lines = append(lines, m.style(t.Level).Render(mark(t.Level)+" "+msg))
	}
	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}

func (m *Model) style(l notify.Level) lipgloss.Style {
	switch l {
	case notify.Success:
		return m.styles.Success
	case notify.Error:
		return m.styles.Error
	default:
		return m.styles.Info
	}
}

func mark(l notify.Level) string {
	switch l {
	case notify.Success:
		return "✓"
	case notify.Error:
		return "✗"
	default:
		return "•"
	}
}
