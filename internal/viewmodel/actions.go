package viewmodel

import (
	"github.com/dongho-jung/vcsettings/internal/constants"
)

// ActionID identifies a quick action button.
type ActionID string

const (
	ActionRestart         ActionID = "restart"
	ActionOpenQuickCSS    ActionID = "open-quickcss"
	ActionOpenSettingsDir ActionID = "open-settings-dir"
	ActionOpenGitHub      ActionID = "open-github"
	ActionCopySettingsDir ActionID = "copy-settings-dir"
	ActionTestNotify      ActionID = "test-notification"
)

// Action is one quick action button.
type Action struct {
	ID       ActionID
	Label    string
	Disabled bool
}

// DirState tracks the asynchronous settings directory lookup.
type DirState struct {
	Path    string
	Pending bool
	Err     error
}

// PendingDir is the state before the host has answered.
func PendingDir() DirState {
	return DirState{Pending: true}
}

// Resolved reports whether a usable path is known.
func (d DirState) Resolved() bool {
	return !d.Pending && d.Err == nil && d.Path != ""
}

// Display returns the path, or the placeholder until it resolves.
func (d DirState) Display() string {
	if d.Resolved() {
		return d.Path
	}
	return constants.SettingsDirPlaceholder
}

// QuickActions returns the quick action buttons for env. Actions that need
// the settings directory stay disabled until it has resolved.
func QuickActions(env Env, dir DirState) []Action {
	showingPlaceholder := dir.Display() == constants.SettingsDirPlaceholder
	unavailable := !dir.Resolved()

	if env.IsWeb {
		return []Action{
			{ID: ActionOpenQuickCSS, Label: "Open QuickCSS File", Disabled: showingPlaceholder},
		}
	}

	return []Action{
		{ID: ActionRestart, Label: "Restart Client"},
		{ID: ActionOpenQuickCSS, Label: "Open QuickCSS File", Disabled: showingPlaceholder},
		{ID: ActionOpenSettingsDir, Label: "Open Settings Folder", Disabled: unavailable},
		{ID: ActionOpenGitHub, Label: "Open in GitHub", Disabled: unavailable},
	}
}

// ExtraActions are panel conveniences beyond the client's quick actions.
func ExtraActions(dir DirState) []Action {
	return []Action{
		{ID: ActionCopySettingsDir, Label: "Copy Settings Path", Disabled: !dir.Resolved()},
		{ID: ActionTestNotify, Label: "Send Test Notification"},
	}
}
