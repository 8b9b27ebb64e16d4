package palette

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mknight/jot/internal/fuzzy"
	"github.com/mknight/jot/internal/note"
	"github.com/mknight/jot/internal/styles"
	"github.com/mknight/jot/internal/suggest"
)

// titleColumnWidth is the fixed width for the title column to keep the
// preview column aligned.
const titleColumnWidth = 28

// Palette-specific styles
var (
	paletteBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.Primary).
			Background(styles.BgSecondary).
			Padding(1, 2)

	entryNormal = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	entrySelected = lipgloss.NewStyle().
			Foreground(styles.TextPrimary).
			Background(styles.BgTertiary)

	entryPreview = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	titleCreate = lipgloss.NewStyle().
			Foreground(styles.Success).
			Bold(true)

	titleMove = lipgloss.NewStyle().
			Foreground(styles.Info).
			Bold(true)

	titleRename = lipgloss.NewStyle().
			Foreground(styles.Warning).
			Bold(true)

	matchHighlight = lipgloss.NewStyle().
			Foreground(styles.Primary).
			Bold(true)
)

// View renders the palette box: query input, workspace line, suggestions.
func (m Model) View() string {
	var b strings.Builder

	width := min(80, m.width-4)
	if width < 40 {
		width = 40
	}
	contentWidth := width - 4

	promptPrefix := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render(">")
	escChip := styles.KeyHint.Render("esc")
	inputWidth := contentWidth - lipgloss.Width(promptPrefix) - lipgloss.Width(escChip) - 3
	paddedInput := lipgloss.NewStyle().Width(inputWidth).Render(m.textInput.View())
	b.WriteString(fmt.Sprintf("%s %s %s", promptPrefix, paddedInput, escChip))
	b.WriteString("\n")

	b.WriteString(m.renderWorkspaceLine())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", contentWidth))
	b.WriteString("\n")

	total := len(m.suggestions)
	visibleEnd := min(m.offset+m.maxVisible, total)

	if m.offset > 0 {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  ↑ %d more above", m.offset)))
		b.WriteString("\n")
	}

	for i := m.offset; i < visibleEnd; i++ {
		b.WriteString(m.renderEntry(m.suggestions[i], i == m.engine.Selected(), contentWidth))
		b.WriteString("\n")
	}

	if visibleEnd < total {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  ↓ %d more below", total-visibleEnd)))
		b.WriteString("\n")
	}

	if total == 0 {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("No matches"))
		b.WriteString("\n")
	}

	if n := m.store.DeletedCount(); n > 0 {
		b.WriteString(strings.Repeat("─", contentWidth))
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  ctrl+z undo delete (%d)", n)))
	}

	content := strings.TrimRight(b.String(), "\n")
	return paletteBox.Width(width).Render(content)
}

// renderWorkspaceLine shows the active filter chip and switch hint.
func (m Model) renderWorkspaceLine() string {
	var chip string
	if m.store.Filter() == note.AllWorkspaces {
		chip = styles.BarChip.Render("all notes")
	} else {
		chip = styles.BarChip.Render("[" + m.store.Filter() + "]")
	}
	hint := styles.Muted.Render("←/→ to switch workspace")
	return fmt.Sprintf("%s  %s", chip, hint)
}

// renderEntry renders a single suggestion row.
func (m Model) renderEntry(s suggest.Suggestion, selected bool, maxWidth int) string {
	title := s.Title
	if title == "" {
		title = "(empty note)"
	}

	var titleStr string
	switch s.Kind {
	case suggest.KindNote:
		titleStr = highlightRanges(title, s.Ranges)
	case suggest.KindCreateNote, suggest.KindCreateWorkspace:
		titleStr = titleCreate.Render(title)
	case suggest.KindMoveToWorkspace:
		titleStr = titleMove.Render(title)
	case suggest.KindRenameWorkspace:
		titleStr = titleRename.Render(title)
	default:
		titleStr = title
	}

	titleStr = ansi.Truncate(titleStr, titleColumnWidth, "…")
	if w := lipgloss.Width(titleStr); w < titleColumnWidth {
		titleStr += strings.Repeat(" ", titleColumnWidth-w)
	}

	preview := previewText(s)
	previewWidth := maxWidth - titleColumnWidth - 4
	if previewWidth > 3 {
		preview = ansi.Truncate(preview, previewWidth, "…")
	}

	line := fmt.Sprintf("  %s %s", titleStr, entryPreview.Render(preview))
	padded := lipgloss.NewStyle().Width(maxWidth).Render(line)

	if selected {
		return entrySelected.Width(maxWidth).Render(padded)
	}
	return entryNormal.Render(padded)
}

// previewText picks the second-line preview for a suggestion. Note rows show
// the content after the title, action rows describe their effect.
func previewText(s suggest.Suggestion) string {
	if s.Kind != suggest.KindNote {
		return s.Preview
	}
	rest := s.Preview
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = strings.TrimSpace(rest[i+1:])
	} else {
		rest = ""
	}
	if rest == "" {
		return strings.TrimSpace(s.Note.UpdatedAt.Format("Jan 2 15:04"))
	}
	return strings.ReplaceAll(rest, "\n", " ")
}

// highlightRanges applies the match style to byte ranges within text.
func highlightRanges(text string, ranges []fuzzy.Range) string {
	if len(ranges) == 0 {
		return text
	}

	var result strings.Builder
	lastEnd := 0
	for _, r := range ranges {
		if r.Start > lastEnd {
			result.WriteString(text[lastEnd:r.Start])
		}
		if r.End <= len(text) && r.Start >= lastEnd {
			result.WriteString(matchHighlight.Render(text[r.Start:r.End]))
			lastEnd = r.End
		}
	}
	if lastEnd < len(text) {
		result.WriteString(text[lastEnd:])
	}
	return result.String()
}
