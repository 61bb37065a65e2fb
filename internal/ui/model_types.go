// internal/ui/model_types.go
// Type definitions for the UI layer
package ui

import "fmt"

// Mode is the display layout. Chat keeps a scrolling log of every exchange,
// simple shows only the latest answer.
type Mode string

const (
	ModeChat   Mode = "chat"
	ModeSimple Mode = "simple"
)

// ParseMode maps a config value to a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeChat, ModeSimple:
		return Mode(s), nil
	case "":
		return ModeChat, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == ModeChat {
		return ModeSimple
	}
	return ModeChat
}

// ToggleLabel is the status label offering the switch away from m
func (m Mode) ToggleLabel() string {
	if m == ModeChat {
		return "switch to simple mode"
	}
	return "switch to chat mode"
}

// Focus is the pane receiving keys
type Focus int

const (
	FocusInput Focus = iota
	FocusSaved
)

// SavedSuffix marks replayed saved queries in the question text
const SavedSuffix = " (saved)"
