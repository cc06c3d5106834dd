package app

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dongho-jung/vcsettings/internal/constants"
	"github.com/dongho-jung/vcsettings/internal/logging"
	"github.com/dongho-jung/vcsettings/internal/settings"
)

func TestNew(t *testing.T) {
	t.Setenv(constants.EnvForceWeb, "")
	root := t.TempDir()

	a, err := New(Options{ConfigRoot: root, Platform: "linux"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	wantDir := filepath.Join(root, "Vencord", "settings")
	if a.SettingsDir != wantDir {
		t.Errorf("SettingsDir = %q, want %q", a.SettingsDir, wantDir)
	}
	if a.SettingsPath != filepath.Join(wantDir, "settings.yaml") {
		t.Errorf("SettingsPath = %q", a.SettingsPath)
	}
	if a.QuickCSSPath() != filepath.Join(wantDir, "quickCss.css") {
		t.Errorf("QuickCSSPath() = %q", a.QuickCSSPath())
	}
	if a.Env.IsWindows {
		t.Error("Env.IsWindows = true for linux")
	}
	if a.Env.IsWeb != isWebBuild {
		t.Errorf("Env.IsWeb = %v, want %v", a.Env.IsWeb, isWebBuild)
	}
	if a.Host == nil {
		t.Error("Host should be set")
	}
}

func TestNew_ConfigRootFromEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv(constants.EnvConfigDir, root)

	a, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.ConfigRoot != root {
		t.Errorf("ConfigRoot = %q, want %q", a.ConfigRoot, root)
	}
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		wantWeb     bool
		wantWindows bool
	}{
		{"windows native", Options{Platform: "windows"}, false, true},
		{"darwin native", Options{Platform: "Darwin"}, false, false},
		{"forced web", Options{Platform: "windows", ForceWeb: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(constants.EnvForceWeb, "")
			tt.opts.ConfigRoot = t.TempDir()
			a, err := New(tt.opts)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if a.Env.IsWeb != (tt.wantWeb || isWebBuild) {
				t.Errorf("IsWeb = %v, want %v", a.Env.IsWeb, tt.wantWeb)
			}
			if a.Env.IsWindows != tt.wantWindows {
				t.Errorf("IsWindows = %v, want %v", a.Env.IsWindows, tt.wantWindows)
			}
		})
	}
}

func TestNew_UnknownPlatform(t *testing.T) {
	_, err := New(Options{ConfigRoot: t.TempDir(), Platform: "amiga"})
	if err == nil || !strings.Contains(err.Error(), "unknown platform") {
		t.Errorf("New() error = %v, want unknown platform", err)
	}
}

func TestResolvePlatformDefault(t *testing.T) {
	got, err := resolvePlatform("")
	if err != nil {
		t.Fatalf("resolvePlatform() error = %v", err)
	}
	if got != runtime.GOOS {
		t.Errorf("resolvePlatform() = %q, want %q", got, runtime.GOOS)
	}
}

func TestInitializeAndOpenStore(t *testing.T) {
	a, err := New(Options{ConfigRoot: t.TempDir(), Platform: "linux"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := a.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if info, err := os.Stat(a.SettingsDir); err != nil || !info.IsDir() {
		t.Fatalf("settings dir not created: %v", err)
	}

	if err := a.OpenStore(); err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	if a.Store.Snapshot() != settings.DefaultSettings() {
		t.Errorf("fresh store should hold defaults")
	}
	if err := a.Store.SetNotificationTimeout(2500); err != nil {
		t.Fatalf("SetNotificationTimeout() error = %v", err)
	}
	if _, err := os.Stat(a.SettingsPath); err != nil {
		t.Errorf("write should persist immediately: %v", err)
	}
}

func TestSetupLoggingAndClose(t *testing.T) {
	original := logging.Global()
	defer logging.SetGlobal(original)

	a, err := New(Options{ConfigRoot: t.TempDir(), Platform: "linux"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := a.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := a.SetupLogging("test"); err != nil {
		t.Fatalf("SetupLogging() error = %v", err)
	}
	a.Logger().SetConsole(nil)
	logging.Info("hello from test")

	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(a.LogPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log = %q, want message", data)
	}
}
