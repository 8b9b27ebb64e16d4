package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mknight/jot/internal/note"
	"github.com/mknight/jot/internal/styles"
	"github.com/mknight/jot/internal/ui"
)

// View renders the full screen: header, editor, footer, palette overlay.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		warn := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.Muted.Render(warn))
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.editor.View())

	if m.showFooter && !m.narrow() {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	bg := b.String()
	if m.showPalette {
		return ui.OverlayModal(bg, m.palette.View(), m.width, m.height)
	}
	return bg
}

// renderHeader shows the app chip and the workspace tabs.
func (m Model) renderHeader() string {
	chip := styles.BarChip.Render("jot")

	var tabs []string
	for _, ws := range m.store.NavigableWorkspaces() {
		label := ws
		if ws == note.AllWorkspaces {
			label = "all"
		}
		// Workspace tags are free text and can contain wide runes.
		label = runewidth.Truncate(label, 12, "…")
		if ws == m.store.Filter() {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	tabLine := strings.Join(tabs, " ")

	count := styles.Muted.Render(fmt.Sprintf("%d notes", len(m.store.ListByWorkspace(m.store.Filter()))))

	if m.narrow() {
		return lipgloss.JoinHorizontal(lipgloss.Top, chip, " ", tabLine) + "\n"
	}

	left := lipgloss.JoinHorizontal(lipgloss.Top, chip, "  ", tabLine)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(count)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + count + "\n"
}

// renderFooter shows key hints and the active toast.
func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		style := styles.ToastSuccess
		if m.statusIsError {
			style = styles.ToastError
		}
		toast := style.Render(m.statusMsg)
		pad := m.width - lipgloss.Width(toast)
		if pad < 0 {
			pad = 0
		}
		return toast + styles.Footer.Render(strings.Repeat(" ", pad))
	}

	context := "editor"
	if m.showPalette {
		context = "palette"
	}

	var hints []string
	for _, b := range m.keymap.ForContext(context) {
		hints = append(hints, fmt.Sprintf("%s %s", styles.KeyHint.Render(b.Key), b.Desc))
	}
	hints = append(hints, fmt.Sprintf("%s palette", styles.KeyHint.Render("ctrl+p")))

	line := strings.Join(hints, "  ")
	pad := m.width - lipgloss.Width(line)
	if pad < 0 {
		pad = 0
	}
	return styles.Footer.Render(line + strings.Repeat(" ", pad))
}
