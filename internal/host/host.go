// Package host provides the capabilities the panel consumes from the
// environment: resolving the settings directory, opening files, folders and
// URLs, relaunching, and probing notification permission.
package host

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/skratchdot/open-golang/open"

	"github.com/dongho-jung/vcsettings/internal/logging"
	"github.com/dongho-jung/vcsettings/internal/notify"
)

// Host is the narrow capability interface the panel depends on.
type Host interface {
	// SettingsDir resolves the settings directory. The panel calls it off
	// the render path and treats the result as pending until it returns.
	SettingsDir(ctx context.Context) (string, error)

	OpenEditor(path string) error
	OpenFolder(path string) error
	OpenURL(url string) error
	Relaunch() error
	NotificationPermission() notify.Permission
	SendNotification(title, message string) error
	CopyToClipboard(text string) error
}

// Desktop implements Host with the local OS.
type Desktop struct {
	settingsDir string
}

// NewDesktop creates a desktop host rooted at settingsDir.
func NewDesktop(settingsDir string) *Desktop {
	return &Desktop{settingsDir: settingsDir}
}

// SettingsDir ensures the directory exists and returns it.
func (d *Desktop) SettingsDir(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if d.settingsDir == "" {
		return "", errors.New("settings directory not configured")
	}
	if err := os.MkdirAll(d.settingsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create settings directory: %w", err)
	}
	return d.settingsDir, nil
}

// OpenEditor opens path in the default editor, creating it empty if missing.
func (d *Desktop) OpenEditor(path string) error {
	logging.Debug("host: open editor %s", path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to prepare %s: %w", path, err)
	}
	_ = f.Close()
	if err := open.Start(path); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// OpenFolder opens path in the file manager.
func (d *Desktop) OpenFolder(path string) error {
	logging.Debug("host: open folder %s", path)
	if err := open.Start(path); err != nil {
		return fmt.Errorf("failed to open folder: %w", err)
	}
	return nil
}

// OpenURL opens url in the default browser.
func (d *Desktop) OpenURL(url string) error {
	logging.Debug("host: open url %s", url)
	if err := open.Start(url); err != nil {
		return fmt.Errorf("failed to open url: %w", err)
	}
	return nil
}

// Relaunch replaces (or restarts) the current process with the same args.
func (d *Desktop) Relaunch() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	logging.Info("host: relaunching %s", exe)
	return relaunch(exe, os.Args, os.Environ())
}

// NotificationPermission probes desktop notification support.
func (d *Desktop) NotificationPermission() notify.Permission {
	return notify.ProbePermission()
}

// SendNotification shows a desktop notification.
func (d *Desktop) SendNotification(title, message string) error {
	return notify.Send(title, message)
}

// CopyToClipboard writes text to the system clipboard.
func (d *Desktop) CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
