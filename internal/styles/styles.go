package styles

import "github.com/charmbracelet/lipgloss"

// Color variables. Updated in place by ApplyTheme so style vars defined
// against them pick up the active theme.
var (
	// Brand colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#3B82F6") // Blue
	Accent    = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Info    = lipgloss.Color("#3B82F6") // Blue

	// Text colors
	TextPrimary   = lipgloss.Color("#F9FAFB")
	TextSecondary = lipgloss.Color("#9CA3AF")
	TextMuted     = lipgloss.Color("#6B7280")
	TextSubtle    = lipgloss.Color("#4B5563")

	// Background colors
	BgPrimary   = lipgloss.Color("#111827")
	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")

	// Border colors
	BorderNormal = lipgloss.Color("#374151")
	BorderFocus  = lipgloss.Color("#7C3AED")
)

// Shared styles. Rebuilt by rebuildStyles after a theme change.
var (
	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	BarChip = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	TabActive = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Background(Primary).
			Padding(0, 1)

	TabInactive = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgSecondary)

	ToastSuccess = lipgloss.NewStyle().
			Background(Success).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Background(Error).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)
)

// rebuildStyles recreates the composite styles from the current colors.
func rebuildStyles() {
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Subtle = lipgloss.NewStyle().Foreground(TextSubtle)
	KeyHint = lipgloss.NewStyle().Foreground(TextMuted).Background(BgTertiary).Padding(0, 1)
	BarChip = lipgloss.NewStyle().Foreground(TextMuted).Background(BgTertiary).Padding(0, 1)
	TabActive = lipgloss.NewStyle().Foreground(TextPrimary).Background(Primary).Padding(0, 1)
	TabInactive = lipgloss.NewStyle().Foreground(TextMuted).Padding(0, 1)
	Footer = lipgloss.NewStyle().Foreground(TextMuted).Background(BgSecondary)
	ToastSuccess = lipgloss.NewStyle().Background(Success).Foreground(lipgloss.Color("#000000")).Padding(0, 1)
	ToastError = lipgloss.NewStyle().Background(Error).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
}
