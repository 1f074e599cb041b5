package editor

import (
	"fmt"
	"strings"
)

// Mode decides what a click on the canvas or a city does.
type Mode int

const (
	ModeAdd Mode = iota
	ModeConnect
	ModeSelect
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeConnect:
		return "connect"
	case ModeSelect:
		return "select"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names printed by String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return ModeAdd, nil
	case "connect":
		return ModeConnect, nil
	case "select", "move", "edit":
		return ModeSelect, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func (m Mode) valid() bool {
	return m >= ModeAdd && m <= ModeSelect
}
