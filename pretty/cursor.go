package pretty

import (
	"fmt"
	"io"
)

// Cursor control sequences (CSI). Rows and columns are 1-indexed, top-left
// is 1,1. The *Seq builders always produce the sequence; the writer helpers
// below are used where output is already known to be a terminal.

func MoveToSeq(row, col int) string {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	return csif("%d;%dH", row, col)
}

func SaveCursorSeq() string {
	return csi("s")
}

func RestoreCursorSeq() string {
	return csi("u")
}

func ClearLineSeq() string {
	return csi("2K")
}

// CursorPositionQuery asks the terminal to report cursor position (DSR).
// The reply arrives on input as ESC [ row ; col R.
func CursorPositionQuery() string {
	return csi("6n")
}

func MoveTo(out io.Writer, row, col int) error {
	_, err := io.WriteString(out, MoveToSeq(row, col))
	return err
}

func SaveCursor(out io.Writer) error {
	_, err := io.WriteString(out, SaveCursorSeq())
	return err
}

func RestoreCursor(out io.Writer) error {
	_, err := io.WriteString(out, RestoreCursorSeq())
	return err
}

// ParseCursorPosition decodes a DSR reply like "\x1b[12;1R".
func ParseCursorPosition(reply string) (row, col int, err error) {
	_, err = fmt.Sscanf(reply, "\x1b[%d;%dR", &row, &col)
	if err != nil {
		return 0, 0, fmt.Errorf("cursor position reply %q: %w", reply, err)
	}
	return row, col, nil
}
