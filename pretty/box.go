package pretty

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BoxStyle defines the characters used for drawing boxes.
type BoxStyle struct {
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Horizontal  string
	Vertical    string
}

var (
	BoxRounded = BoxStyle{
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "╰",
		BottomRight: "╯",
		Horizontal:  "─",
		Vertical:    "│",
	}

	// BoxASCII works on any terminal, including dumb ones.
	BoxASCII = BoxStyle{
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
		Horizontal:  "-",
		Vertical:    "|",
	}
)

// ActiveBoxStyle picks rounded boxes for capable terminals and ASCII otherwise.
func ActiveBoxStyle() BoxStyle {
	term := os.Getenv("TERM")
	if term == "dumb" || term == "" || Colorless || !Interactive {
		return BoxASCII
	}
	return BoxRounded
}

// Boxed frames lines with a border and a title in the top edge. Widths are
// measured without ANSI sequences, so colored lines line up.
func Boxed(title string, lines []string, style BoxStyle) string {
	inner := lipgloss.Width(title) + 2
	for _, line := range lines {
		if width := lipgloss.Width(line); width > inner {
			inner = width
		}
	}
	inner += 2

	var out strings.Builder
	head := style.Horizontal + " " + title + " "
	out.WriteString(style.TopLeft)
	out.WriteString(head)
	out.WriteString(strings.Repeat(style.Horizontal, inner-lipgloss.Width(head)))
	out.WriteString(style.TopRight)
	out.WriteString("\n")
	for _, line := range lines {
		out.WriteString(style.Vertical)
		out.WriteString(" ")
		out.WriteString(line)
		out.WriteString(strings.Repeat(" ", inner-2-lipgloss.Width(line)))
		out.WriteString(" ")
		out.WriteString(style.Vertical)
		out.WriteString("\n")
	}
	out.WriteString(style.BottomLeft)
	out.WriteString(strings.Repeat(style.Horizontal, inner))
	out.WriteString(style.BottomRight)
	out.WriteString("\n")
	return out.String()
}
