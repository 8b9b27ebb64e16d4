package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mknight/jot/internal/msg"
)

// TickMsg drives the toast expiry clock.
type TickMsg time.Time

// tickCmd schedules the next clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// backupCheckCmd fires an immediate backup check. Recurring checks are
// scheduled from the BackupTickMsg handler.
func backupCheckCmd() tea.Cmd {
	return func() tea.Msg {
		return msg.BackupTickMsg{At: time.Now()}
	}
}

// backupRecheckCmd schedules the next backup check an hour out, so a long
// running session still snapshots once the interval lapses.
func backupRecheckCmd() tea.Cmd {
	return tea.Tick(time.Hour, func(t time.Time) tea.Msg {
		return msg.BackupTickMsg{At: t}
	})
}
