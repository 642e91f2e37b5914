package client

import "strings"

// Action is a user intent produced by the keyboard dispatcher.
type Action string

const (
	ActionNone       Action = ""
	ActionNextThread Action = "next_thread"
	ActionPrevThread Action = "prev_thread"
	ActionCompose    Action = "compose"
	ActionReply      Action = "reply"
	ActionArchive    Action = "archive"
	ActionTrash      Action = "trash"
	ActionOpenThread Action = "open_thread"
	ActionGoToInbox  Action = "go_to_inbox"
	ActionSearch     Action = "search"
	ActionClose      Action = "close"
)

// KeyState describes the UI state the dispatcher needs to resolve a key.
type KeyState struct {
	ComposeOpen  bool
	InputFocused bool
	HasSelection bool
}

// ResolveKey maps a pressed key to an action. Escape always resolves;
// everything else is suppressed while typing in an input or while the
// compose dialog is open.
func ResolveKey(key string, state KeyState) Action {
	if key == "Escape" {
		if state.ComposeOpen || state.HasSelection {
			return ActionClose
		}
		return ActionNone
	}
	if state.InputFocused || state.ComposeOpen {
		return ActionNone
	}

	switch strings.ToLower(key) {
	case "j":
		return ActionNextThread
	case "k":
		return ActionPrevThread
	case "c":
		return ActionCompose
	case "r":
		if state.HasSelection {
			return ActionReply
		}
	case "e":
		if state.HasSelection {
			return ActionArchive
		}
	case "#":
		if state.HasSelection {
			return ActionTrash
		}
	case "o", "enter":
		if !state.HasSelection {
			return ActionOpenThread
		}
	case "i":
		return ActionGoToInbox
	case "/":
		return ActionSearch
	}
	return ActionNone
}
