package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/catalog/pkg/submit"
)

type listedMsg struct {
	applied bool
	err     error
}

type submittedMsg struct{ res submit.Result }

type viewedMsg struct{ res submit.Result }

type editLoadedMsg struct{ res submit.Result }

type deletedMsg struct{ res submit.Result }

// The commands below run on Bubble Tea's command goroutines. They only touch
// the controllers, which are safe for concurrent use, and report back with a
// message.

func (m *Model) refreshCmd() tea.Cmd {
	if m.opts.Client == nil {
		return func() tea.Msg { return listedMsg{err: errNoClient} }
	}
	ctx, r := m.ctx, m.refresher
	return tea.Batch(m.start(), func() tea.Msg {
		applied, err := r.Refresh(ctx)
		return listedMsg{applied: applied, err: err}
	})
}

func (m *Model) submitCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	if m.opts.Client == nil {
		return func() tea.Msg { return submittedMsg{res: submit.Result{Err: errNoClient}} }
	}
	return func() tea.Msg {
		return submittedMsg{res: ctrl.Submit(ctx)}
	}
}

func (m *Model) viewCmd(id string) tea.Cmd {
	ctx, v := m.ctx, m.viewer
	return tea.Batch(m.start(), func() tea.Msg {
		return viewedMsg{res: v.View(ctx, id)}
	})
}

func (m *Model) editCmd(id string) tea.Cmd {
	ctx, v := m.ctx, m.viewer
	return tea.Batch(m.start(), func() tea.Msg {
		return editLoadedMsg{res: v.Edit(ctx, id)}
	})
}

// deleteCmd runs after the confirmation modal was accepted.
func (m *Model) deleteCmd(id string) tea.Cmd {
	ctx, d := m.ctx, m.deleter
	return tea.Batch(m.start(), func() tea.Msg {
		return deletedMsg{res: d.Delete(ctx, id, submit.AlwaysConfirm)}
	})
}
