package ui

import "github.com/charmbracelet/lipgloss"

// Sitekit palette, tuned for dark terminal backgrounds.
const (
	ColorWhite = "#FFFFFF"

	ColorGray400 = "#9CA3AF"
	ColorGray500 = "#6B7280"
	ColorGray600 = "#4B5563"
	ColorGray800 = "#1F2937"

	ColorTeal300 = "#5EEAD4"
	ColorTeal400 = "#2DD4BF"
	ColorTeal500 = "#14B8A6"
	ColorTeal600 = "#0D9488"

	ColorGreen400  = "#4ADE80"
	ColorRed400    = "#F87171"
	ColorYellow300 = "#FDE047"
	ColorYellow400 = "#FACC15"
	ColorPurple400 = "#C084FC"
	ColorSky400    = "#38BDF8"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorTeal400))

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorGreen400))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorRed400))

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorYellow400))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorTeal500)).
			Padding(0, 1)

	// DimStyle is for secondary text such as created-file lines.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGray500))

	StepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorTeal300))

	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	CommandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorSky400))

	// AccentStyle marks the language prefix in the template picker.
	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPurple400))

	URLStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color(ColorSky400))

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorYellow300))
)
