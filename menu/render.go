package menu

import (
	"io"
	"strings"

	"github.com/subspace/subspace-cli/pretty"
)

const (
	headerOffset = 2
	optionOffset = 4
	blockPadding = 6
	leftColumn   = 2
	header       = "Please select an option below using arrow keys (or `j` and `k`):"
)

// frame builds one complete redraw of the option block. Every row is
// addressed relative to the anchor, and the cursor is saved before and
// restored after, so repeated frames overwrite each other in place.
func frame(state *State, theme pretty.MenuTheme) string {
	var builder strings.Builder
	anchor := state.AnchorRow

	builder.WriteString(pretty.MoveToSeq(anchor+headerOffset, leftColumn))
	builder.WriteString(pretty.SaveCursorSeq())
	builder.WriteString(theme.Header.Render(header))
	builder.WriteString("\r\n")

	for at, option := range state.Options {
		builder.WriteString(pretty.MoveToSeq(anchor+optionOffset+at, leftColumn))
		builder.WriteString(pretty.ClearLineSeq())
		if at == state.Selected {
			builder.WriteString(theme.Selected.Render(" > " + option + " "))
		} else {
			builder.WriteString(theme.Option.Render("   " + option + " "))
		}
		builder.WriteString("\r\n")
	}
	builder.WriteString("\r\n")
	builder.WriteString(pretty.RestoreCursorSeq())
	return builder.String()
}

// below returns the sequence placing the cursor under the rendered block.
func below(state *State) string {
	return pretty.MoveToSeq(state.AnchorRow+state.Height(), 1)
}

// makeRoom scrolls the terminal when the block would not fit under the
// anchor and returns the anchor after scrolling.
func makeRoom(out io.Writer, anchor, height, needed int) (int, error) {
	if height <= 0 || anchor+needed <= height {
		return anchor, nil
	}
	if _, err := io.WriteString(out, strings.Repeat("\r\n", needed)); err != nil {
		return anchor, err
	}
	moved := height - needed
	if moved < 1 {
		moved = 1
	}
	return moved, nil
}
