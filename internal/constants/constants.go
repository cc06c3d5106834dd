// Package constants defines shared constants used throughout vcsettings.
package constants

import (
	"path/filepath"
	"time"
)

// Application identity
const (
	AppName     = "vcsettings"
	ClientName  = "Vencord"
	ProjectURL  = "https://github.com/Vendicated/Vencord"
	DonateURL   = "https://github.com/sponsors/Vendicated"
	DisplayName = "Vencord Settings"
)

// Directory and file names
const (
	SettingsDirName  = "settings"
	SettingsFileName = "settings.yaml"
	QuickCSSFileName = "quickCss.css"
	LogFileName      = "vcsettings.log"
	TempFilePattern  = ".settings-*.tmp"
)

// Environment variables
const (
	EnvDebug              = "VCSETTINGS_DEBUG"
	EnvConfigDir          = "VCSETTINGS_CONFIG_DIR"
	EnvNotifyPermission   = "VCSETTINGS_NOTIFY_PERMISSION"
	EnvForceWeb           = "VCSETTINGS_WEB"
	DebugEnabledEnvMarker = "1"
)

// Notification timeout bounds in milliseconds.
const (
	MinNotificationTimeout  = 0
	MaxNotificationTimeout  = 20_000
	NotificationTimeoutStep = 250
)

// Placeholder shown while the settings directory is being resolved.
const SettingsDirPlaceholder = "Loading..."

// Watch settings
const (
	WatchDebounce = 100 * time.Millisecond
)

// SettingsDirIn returns the settings directory under a client config root.
func SettingsDirIn(configRoot string) string {
	return filepath.Join(configRoot, ClientName, SettingsDirName)
}

// SettingsFileIn returns the settings document path under a settings directory.
func SettingsFileIn(settingsDir string) string {
	return filepath.Join(settingsDir, SettingsFileName)
}

// QuickCSSFileIn returns the QuickCSS file path under a settings directory.
func QuickCSSFileIn(settingsDir string) string {
	return filepath.Join(settingsDir, QuickCSSFileName)
}
