package tui

import (
	"time"

	"github.com/anisan-cli/vidman/style"
	tea "github.com/charmbracelet/bubbletea"
)

const notificationTTL = 3 * time.Second

// notification is a short status line shown after an action.
type notification struct {
	text string
	// seq drops clear messages scheduled for an older notification.
	seq int
}

type notifyMsg string

type clearNotificationMsg struct {
	seq int
}

func notify(text string) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg(text)
	}
}

// update processes incoming messages to modify the notification state.
func (n *notification) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notifyMsg:
		n.text = string(msg)
		n.seq++
		seq := n.seq
		return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
			return clearNotificationMsg{seq: seq}
		})
	case clearNotificationMsg:
		if msg.seq == n.seq {
			n.text = ""
		}
	}
	return nil
}

func (n *notification) view() string {
	if n.text == "" {
		return ""
	}
	return style.Faint(n.text)
}
