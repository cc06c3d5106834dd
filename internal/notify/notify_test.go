package notify

import (
	"errors"
	"testing"

	"github.com/dongho-jung/vcsettings/internal/constants"
	"github.com/dongho-jung/vcsettings/internal/settings"
)

func withPlatform(t *testing.T, os string, found map[string]bool) {
	t.Helper()
	origGOOS, origLookPath := goos, lookPath
	t.Cleanup(func() {
		goos, lookPath = origGOOS, origLookPath
	})
	goos = os
	lookPath = func(file string) (string, error) {
		if found[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
}

func TestProbePermission(t *testing.T) {
	tests := []struct {
		name  string
		goos  string
		found map[string]bool
		want  Permission
	}{
		{"linux with notify-send", "linux", map[string]bool{"notify-send": true}, PermissionGranted},
		{"linux without notify-send", "linux", nil, PermissionDefault},
		{"darwin with osascript", "darwin", map[string]bool{"osascript": true}, PermissionGranted},
		{"darwin without osascript", "darwin", nil, PermissionDefault},
		{"windows", "windows", nil, PermissionDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(constants.EnvNotifyPermission, "")
			withPlatform(t, tt.goos, tt.found)
			if got := ProbePermission(); got != tt.want {
				t.Errorf("ProbePermission() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProbePermission_EnvOverride(t *testing.T) {
	withPlatform(t, "linux", map[string]bool{"notify-send": true})

	t.Setenv(constants.EnvNotifyPermission, "denied")
	if got := ProbePermission(); got != PermissionDenied {
		t.Errorf("ProbePermission() = %q, want denied", got)
	}

	t.Setenv(constants.EnvNotifyPermission, "bogus")
	if got := ProbePermission(); got != PermissionGranted {
		t.Errorf("ProbePermission() with invalid override = %q, want probed granted", got)
	}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		style   settings.NotificationStyle
		focused bool
		want    Surface
	}{
		{settings.NotificationStyleAlways, true, SurfaceDesktop},
		{settings.NotificationStyleAlways, false, SurfaceDesktop},
		{settings.NotificationStyleNever, false, SurfaceInApp},
		{settings.NotificationStyleNotFocused, true, SurfaceInApp},
		{settings.NotificationStyleNotFocused, false, SurfaceDesktop},
	}
	for _, tt := range tests {
		if got := Route(tt.style, tt.focused); got != tt.want {
			t.Errorf("Route(%s, focused=%v) = %s, want %s", tt.style, tt.focused, got, tt.want)
		}
	}
}

func TestSend_Unsupported(t *testing.T) {
	withPlatform(t, "plan9", nil)
	if err := Send("title", "message"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Send() error = %v, want ErrUnsupported", err)
	}
}

func TestSend_MissingBackend(t *testing.T) {
	withPlatform(t, "linux", nil)
	if err := Send("title", "message"); err == nil {
		t.Error("Send() should fail without notify-send")
	}
}
