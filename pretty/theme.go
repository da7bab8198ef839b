package pretty

import "github.com/charmbracelet/lipgloss"

// MenuTheme holds styles used by the interactive command menu.
type MenuTheme struct {
	Header   lipgloss.Style
	Selected lipgloss.Style
	Option   lipgloss.Style
}

var (
	selectedColor = lipgloss.AdaptiveColor{Dark: "#c3e88d", Light: "#587539"}
	headerColor   = lipgloss.AdaptiveColor{Dark: "#bfc7d5", Light: "#4c505e"}
)

// DefaultMenuTheme returns styles honoring the detected color mode. Without
// color support the selected row is only told apart by its marker.
func DefaultMenuTheme() MenuTheme {
	if Colorless || Disabled || DetectColorMode() == ColorModeNone {
		return PlainMenuTheme()
	}
	return MenuTheme{
		Header:   lipgloss.NewStyle().Foreground(headerColor),
		Selected: lipgloss.NewStyle().Foreground(selectedColor).Bold(true),
		Option:   lipgloss.NewStyle(),
	}
}

func PlainMenuTheme() MenuTheme {
	return MenuTheme{
		Header:   lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle(),
		Option:   lipgloss.NewStyle(),
	}
}
