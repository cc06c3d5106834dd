// Package notify probes and sends desktop notifications.
package notify

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dongho-jung/vcsettings/internal/constants"
	"github.com/dongho-jung/vcsettings/internal/logging"
	"github.com/dongho-jung/vcsettings/internal/settings"
)

// Permission is the desktop notification permission.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// ErrUnsupported is returned when the platform has no notification backend.
var ErrUnsupported = errors.New("desktop notifications not supported on this platform")

// Surface is where a notification ends up.
type Surface string

const (
	SurfaceDesktop Surface = "desktop"
	SurfaceInApp   Surface = "in-app"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// goos is swapped in tests.
var goos = runtime.GOOS

// ProbePermission probes whether desktop notifications can be shown. A
// missing backend reports PermissionDefault since nothing was refused.
// VCSETTINGS_NOTIFY_PERMISSION overrides the probe.
func ProbePermission() Permission {
	if v := strings.TrimSpace(os.Getenv(constants.EnvNotifyPermission)); v != "" {
		switch Permission(v) {
		case PermissionGranted, PermissionDenied, PermissionDefault:
			return Permission(v)
		}
		logging.Warn("notify: ignoring invalid %s=%q", constants.EnvNotifyPermission, v)
	}

	switch goos {
	case "darwin":
		if _, err := lookPath("osascript"); err != nil {
			logging.Debug("notify: osascript not found, desktop notifications unavailable")
			return PermissionDefault
		}
		return PermissionGranted
	case "linux", "freebsd", "openbsd", "netbsd":
		if _, err := lookPath("notify-send"); err != nil {
			logging.Debug("notify: notify-send not found, desktop notifications unavailable")
			return PermissionDefault
		}
		return PermissionGranted
	default:
		return PermissionDefault
	}
}

// Route decides the surface for a notification under the given style.
func Route(style settings.NotificationStyle, focused bool) Surface {
	switch style {
	case settings.NotificationStyleAlways:
		return SurfaceDesktop
	case settings.NotificationStyleNever:
		return SurfaceInApp
	default:
		if focused {
			return SurfaceInApp
		}
		return SurfaceDesktop
	}
}

// Send shows a desktop notification when supported.
func Send(title, message string) error {
	logging.Debug("-> notify.Send(title=%q)", title)
	defer logging.Debug("<- notify.Send")

	switch goos {
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title %q`, message, title)
		cmd := appleScriptCommand("-e", script)
		if err := cmd.Run(); err != nil {
			fallbackErr := exec.Command("osascript", "-e", script).Run()
			if fallbackErr == nil {
				return nil
			}
			return err
		}
		return nil
	case "linux", "freebsd", "openbsd", "netbsd":
		path, err := lookPath("notify-send")
		if err != nil {
			return fmt.Errorf("notify-send not found: %w", err)
		}
		return exec.Command(path, "--app-name", constants.ClientName, title, message).Run()
	default:
		return ErrUnsupported
	}
}

func appleScriptCommand(args ...string) *exec.Cmd {
	uid := os.Getuid()
	if uid > 0 {
		cmdArgs := append([]string{"asuser", fmt.Sprintf("%d", uid), "osascript"}, args...)
		return exec.Command("launchctl", cmdArgs...)
	}
	return exec.Command("osascript", args...)
}
