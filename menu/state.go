package menu

// State is the selection cursor over a fixed list of options. The index
// stays within bounds: moving past either end is a no-op, never a wrap.
type State struct {
	Options   []string
	Selected  int
	AnchorRow int
}

func NewState(options []string, anchorRow int) *State {
	return &State{
		Options:   append([]string(nil), options...),
		AnchorRow: anchorRow,
	}
}

// Up moves selection one up and reports whether it changed.
func (it *State) Up() bool {
	if it.Selected > 0 {
		it.Selected--
		return true
	}
	return false
}

// Down moves selection one down and reports whether it changed.
func (it *State) Down() bool {
	if it.Selected < len(it.Options)-1 {
		it.Selected++
		return true
	}
	return false
}

// Height is the number of rows a rendered frame occupies below the anchor,
// including the gap left before any following output.
func (it *State) Height() int {
	return len(it.Options) + blockPadding
}
