package menu

import (
	"bufio"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
)

// Key is a decoded key press named like bubbletea does: "up", "enter",
// "ctrl+c", or the typed rune itself.
type Key string

const (
	KeyUp      Key = "up"
	KeyDown    Key = "down"
	KeyLeft    Key = "left"
	KeyRight   Key = "right"
	KeyEnter   Key = "enter"
	KeyEscape  Key = "esc"
	KeyCtrlC   Key = "ctrl+c"
	KeyUnknown Key = "unknown"
)

func (it Key) String() string {
	return string(it)
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}

const maxSequence = 16

// DecodeKey reads one key press from raw terminal input.
func DecodeKey(reader *bufio.Reader) (Key, error) {
	first, err := reader.ReadByte()
	if err != nil {
		return KeyUnknown, err
	}
	switch {
	case first == 0x03:
		return KeyCtrlC, nil
	case first == '\r' || first == '\n':
		return KeyEnter, nil
	case first == 0x1b:
		return decodeEscape(reader)
	case first < 0x20:
		return Key(fmt.Sprintf("ctrl+%c", first+'a'-1)), nil
	case first == 0x7f:
		return Key("backspace"), nil
	case first < utf8.RuneSelf:
		return Key(string(rune(first))), nil
	}
	if err := reader.UnreadByte(); err != nil {
		return KeyUnknown, err
	}
	value, _, err := reader.ReadRune()
	if err != nil {
		return KeyUnknown, err
	}
	return Key(string(value)), nil
}

// decodeEscape handles ESC [ ... final and ESC O final sequences. A lone ESC
// with nothing buffered behind it is the escape key.
func decodeEscape(reader *bufio.Reader) (Key, error) {
	if reader.Buffered() == 0 {
		return KeyEscape, nil
	}
	introducer, err := reader.ReadByte()
	if err != nil {
		return KeyUnknown, err
	}
	if introducer != '[' && introducer != 'O' {
		return KeyUnknown, nil
	}
	sequence := make([]byte, 0, maxSequence)
	for len(sequence) < maxSequence {
		next, err := reader.ReadByte()
		if err != nil {
			return KeyUnknown, err
		}
		sequence = append(sequence, next)
		if next >= 0x40 && next <= 0x7e {
			break
		}
	}
	switch string(sequence) {
	case "A":
		return KeyUp, nil
	case "B":
		return KeyDown, nil
	case "C":
		return KeyRight, nil
	case "D":
		return KeyLeft, nil
	}
	return KeyUnknown, nil
}
