// Package app provides the process-scoped application context.
//
// Lifecycle: New resolves paths and the environment, Initialize creates the
// settings directory, OpenStore loads the settings document once. Writes go
// straight to disk, so Close only releases the logger.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dongho-jung/vcsettings/internal/constants"
	"github.com/dongho-jung/vcsettings/internal/host"
	"github.com/dongho-jung/vcsettings/internal/logging"
	"github.com/dongho-jung/vcsettings/internal/settings"
	"github.com/dongho-jung/vcsettings/internal/viewmodel"
)

// Options override environment detection. Zero values mean auto.
type Options struct {
	ConfigRoot string // parent of the client's config directory
	ForceWeb   bool
	Platform   string // "windows", "linux", "darwin"; empty = runtime.GOOS
}

// App represents the main application context with all dependencies.
type App struct {
	// Paths
	ConfigRoot   string // user config root, e.g. ~/.config
	SettingsDir  string // <root>/Vencord/settings
	SettingsPath string // <settings dir>/settings.yaml
	LogPath      string

	// Environment, resolved once
	Env      viewmodel.Env
	Platform string

	// Services
	Store *settings.Store
	Host  host.Host

	// Runtime
	Debug bool

	logger logging.Logger
}

// New creates a new App from options and the process environment.
func New(opts Options) (*App, error) {
	root := opts.ConfigRoot
	if root == "" {
		root = os.Getenv(constants.EnvConfigDir)
	}
	if root == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config directory: %w", err)
		}
		root = dir
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	platform, err := resolvePlatform(opts.Platform)
	if err != nil {
		return nil, err
	}

	settingsDir := constants.SettingsDirIn(absRoot)
	a := &App{
		ConfigRoot:   absRoot,
		SettingsDir:  settingsDir,
		SettingsPath: constants.SettingsFileIn(settingsDir),
		LogPath:      filepath.Join(settingsDir, constants.LogFileName),
		Platform:     platform,
		Env: viewmodel.Env{
			IsWeb:     opts.ForceWeb || isWebBuild || envFlag(constants.EnvForceWeb),
			IsWindows: platform == "windows",
		},
		Debug: envFlag(constants.EnvDebug),
	}
	a.Host = host.NewDesktop(settingsDir)
	return a, nil
}

func envFlag(name string) bool {
	return strings.TrimSpace(os.Getenv(name)) == constants.DebugEnabledEnvMarker
}

// Initialize creates the settings directory.
func (a *App) Initialize() error {
	if err := os.MkdirAll(a.SettingsDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", a.SettingsDir, err)
	}
	return nil
}

// SetupLogging opens the log file and installs it as the global logger.
func (a *App) SetupLogging(command string) error {
	logger, err := logging.New(a.LogPath, a.Debug)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	logger.SetCommand(command)
	logging.SetGlobal(logger)
	a.logger = logger
	return nil
}

// Logger returns the app logger, or the global one before SetupLogging.
func (a *App) Logger() logging.Logger {
	if a.logger != nil {
		return a.logger
	}
	return logging.Global()
}

// OpenStore loads the settings document into the store.
func (a *App) OpenStore() error {
	store, err := settings.Open(a.SettingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	a.Store = store
	return nil
}

// QuickCSSPath returns the QuickCSS file path.
func (a *App) QuickCSSPath() string {
	return constants.QuickCSSFileIn(a.SettingsDir)
}

// Close releases the logger. Settings need no flush.
func (a *App) Close() error {
	if a.logger == nil {
		return nil
	}
	logging.SetGlobal(logging.NewStdout(a.Debug))
	err := a.logger.Close()
	a.logger = nil
	return err
}
