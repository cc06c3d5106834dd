// Package settings holds the persisted settings tree and the write-through
// store that validates, persists and publishes every field write.
package settings

import (
	"fmt"

	"github.com/dongho-jung/vcsettings/internal/constants"
)

// NotificationStyle selects which surface shows notifications.
type NotificationStyle string

const (
	NotificationStyleNever      NotificationStyle = "never"       // Always in-app notifications
	NotificationStyleAlways     NotificationStyle = "always"      // Always desktop notifications
	NotificationStyleNotFocused NotificationStyle = "not-focused" // Desktop notifications only while unfocused
)

// NotificationPosition is where in-app notifications appear.
type NotificationPosition string

const (
	NotificationPositionBottomRight NotificationPosition = "bottom-right"
	NotificationPositionTopRight    NotificationPosition = "top-right"
)

// Notifications holds the notification sub-tree.
type Notifications struct {
	UseNative NotificationStyle    `yaml:"useNative"`
	Position  NotificationPosition `yaml:"position"`
	Timeout   int                  `yaml:"timeout"` // milliseconds, 0 = never auto-dismiss
}

// Settings is the full persisted settings tree.
type Settings struct {
	UseQuickCSS         bool          `yaml:"useQuickCss"`
	EnableReactDevtools bool          `yaml:"enableReactDevtools"`
	Frameless           bool          `yaml:"frameless"`
	WinNativeTitleBar   bool          `yaml:"winNativeTitleBar"`
	Transparent         bool          `yaml:"transparent"`
	WinCtrlQ            bool          `yaml:"winCtrlQ"`
	Notifications       Notifications `yaml:"notifications"`
}

// DefaultSettings returns the default settings tree.
func DefaultSettings() Settings {
	return Settings{
		Notifications: Notifications{
			UseNative: NotificationStyleNotFocused,
			Position:  NotificationPositionBottomRight,
			Timeout:   0,
		},
	}
}

// ValidNotificationStyles returns all notification styles in display order.
func ValidNotificationStyles() []NotificationStyle {
	return []NotificationStyle{
		NotificationStyleNotFocused,
		NotificationStyleAlways,
		NotificationStyleNever,
	}
}

// ValidNotificationPositions returns all notification positions in display order.
func ValidNotificationPositions() []NotificationPosition {
	return []NotificationPosition{
		NotificationPositionBottomRight,
		NotificationPositionTopRight,
	}
}

// Valid reports whether s is one of the known styles.
func (s NotificationStyle) Valid() bool {
	for _, v := range ValidNotificationStyles() {
		if v == s {
			return true
		}
	}
	return false
}

// Valid reports whether p is one of the known positions.
func (p NotificationPosition) Valid() bool {
	for _, v := range ValidNotificationPositions() {
		if v == p {
			return true
		}
	}
	return false
}

// ClampTimeout limits a notification timeout to the supported range.
func ClampTimeout(ms int) int {
	if ms < constants.MinNotificationTimeout {
		return constants.MinNotificationTimeout
	}
	if ms > constants.MaxNotificationTimeout {
		return constants.MaxNotificationTimeout
	}
	return ms
}

// Normalize repairs invalid values in place and returns warnings.
func (s *Settings) Normalize() []string {
	var warnings []string
	defaults := DefaultSettings()

	if !s.Notifications.UseNative.Valid() {
		if s.Notifications.UseNative != "" {
			warnings = append(warnings, fmt.Sprintf("invalid notifications.useNative %q, using %q",
				s.Notifications.UseNative, defaults.Notifications.UseNative))
		}
		s.Notifications.UseNative = defaults.Notifications.UseNative
	}

	if !s.Notifications.Position.Valid() {
		if s.Notifications.Position != "" {
			warnings = append(warnings, fmt.Sprintf("invalid notifications.position %q, using %q",
				s.Notifications.Position, defaults.Notifications.Position))
		}
		s.Notifications.Position = defaults.Notifications.Position
	}

	if clamped := ClampTimeout(s.Notifications.Timeout); clamped != s.Notifications.Timeout {
		warnings = append(warnings, fmt.Sprintf("notifications.timeout %d out of range, clamped to %d",
			s.Notifications.Timeout, clamped))
		s.Notifications.Timeout = clamped
	}

	return warnings
}
