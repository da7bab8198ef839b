package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/subspace/subspace-cli/common"
	"github.com/subspace/subspace-cli/pretty"
)

// Terminal owns the input mode of the controlling terminal.
type Terminal interface {
	// MakeRaw switches to raw input. Calling it twice without Restore fails.
	MakeRaw() error
	// Restore returns to the mode saved by MakeRaw. Extra calls do nothing.
	Restore() error
	// CursorRow reports the 1-based row of the cursor. Only valid in raw mode.
	CursorRow() (int, error)
	// Height is the terminal height in rows, or 0 when unknown.
	Height() int
}

// KeySource delivers key presses one at a time.
type KeySource interface {
	ReadKey() (Key, error)
}

var errAlreadyRaw = errors.New("terminal is already in raw mode")

// Console is the process terminal: stdin for input, stdout for output.
type Console struct {
	fd     int
	reader *bufio.Reader
	out    io.Writer
	saved  *term.State
}

// NewConsole shares reader with anything else reading stdin, so bytes
// buffered while in raw mode are not lost to later line prompts.
func NewConsole(stdin *os.File, reader *bufio.Reader, out io.Writer) *Console {
	return &Console{
		fd:     int(stdin.Fd()),
		reader: reader,
		out:    out,
	}
}

func (it *Console) MakeRaw() error {
	if it.saved != nil {
		return errAlreadyRaw
	}
	saved, err := term.MakeRaw(it.fd)
	if err != nil {
		return err
	}
	it.saved = saved
	common.Trace("Terminal switched to raw mode.")
	return nil
}

func (it *Console) Restore() error {
	if it.saved == nil {
		return nil
	}
	saved := it.saved
	it.saved = nil
	common.Trace("Terminal restored from raw mode.")
	return term.Restore(it.fd, saved)
}

func (it *Console) Height() int {
	_, height, err := term.GetSize(it.fd)
	if err != nil || height <= 0 {
		common.Trace("Failed to get terminal height: %v", err)
		return 0
	}
	return height
}

func (it *Console) ReadKey() (Key, error) {
	return DecodeKey(it.reader)
}

const maxReply = 64

// CursorRow asks for the cursor position and skips any input that arrived
// before the reply. An unreadable reply falls back to the first row.
func (it *Console) CursorRow() (int, error) {
	if it.saved == nil {
		return 0, errors.New("cursor position needs raw mode")
	}
	if _, err := io.WriteString(it.out, pretty.CursorPositionQuery()); err != nil {
		return 0, err
	}
	reply := make([]byte, 0, maxReply)
	for len(reply) < maxReply {
		next, err := it.reader.ReadByte()
		if err != nil {
			return 0, err
		}
		if next == 0x1b {
			reply = reply[:0]
		}
		reply = append(reply, next)
		if next == 'R' {
			break
		}
	}
	row, _, err := pretty.ParseCursorPosition(string(reply))
	if err != nil {
		common.Debug("Using first row as anchor: %v", err)
		return 1, nil
	}
	return row, nil
}

func (it *Console) String() string {
	return fmt.Sprintf("console(fd=%d, raw=%v)", it.fd, it.saved != nil)
}
