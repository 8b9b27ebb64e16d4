// Package ui provides shared rendering helpers for the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle applies a dim gray color to background content behind modals.
// Existing ANSI codes are stripped first because SGR 2 (faint) does not
// reliably combine with color codes in most terminals.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// OverlayModal composites a modal on top of a dimmed background. The modal
// is horizontally centered and sits in the upper third of the screen, where
// a command palette is expected.
func OverlayModal(background, modal string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	modalLines := strings.Split(modal, "\n")

	modalWidth := maxLineWidth(modalLines)
	modalHeight := len(modalLines)
	startX := (width - modalWidth) / 2
	startY := (height - modalHeight) / 3
	if startX < 0 {
		startX = 0
	}
	if startY < 0 {
		startY = 0
	}

	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	result := make([]string, 0, height)
	for y := 0; y < height; y++ {
		bgLine := ""
		if y < len(bgLines) {
			bgLine = bgLines[y]
		}

		row := y - startY
		if row >= 0 && row < modalHeight {
			result = append(result, compositeRow(bgLine, modalLines[row], startX, modalWidth, width))
		} else {
			result = append(result, dimLine(bgLine))
		}
	}

	return strings.Join(result, "\n")
}

// compositeRow overlays modalLine onto bgLine at startX, dimming the
// background segments on either side.
func compositeRow(bgLine, modalLine string, startX, modalWidth, totalWidth int) string {
	var out strings.Builder

	stripped := ansi.Strip(bgLine)
	bgWidth := ansi.StringWidth(stripped)

	if startX > 0 {
		left := ansi.Truncate(stripped, startX, "")
		leftWidth := ansi.StringWidth(left)
		out.WriteString(DimStyle.Render(left))
		if leftWidth < startX {
			out.WriteString(strings.Repeat(" ", startX-leftWidth))
		}
	}

	out.WriteString(modalLine)

	rightStart := startX + modalWidth
	if rightStart < totalWidth && bgWidth > rightStart {
		out.WriteString(DimStyle.Render(ansi.Cut(stripped, rightStart, bgWidth)))
	}

	return out.String()
}

// dimLine strips ANSI codes and applies the dim style.
func dimLine(s string) string {
	return DimStyle.Render(ansi.Strip(s))
}

// maxLineWidth returns the maximum visual width of the given lines.
func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		if lw := ansi.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}
