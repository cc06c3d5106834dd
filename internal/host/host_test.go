package host

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDesktopSettingsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Vencord", "settings")
	d := NewDesktop(dir)

	got, err := d.SettingsDir(context.Background())
	if err != nil {
		t.Fatalf("SettingsDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("SettingsDir() = %q, want %q", got, dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("settings directory not created: %v", err)
	}
}

func TestDesktopSettingsDir_Unconfigured(t *testing.T) {
	if _, err := NewDesktop("").SettingsDir(context.Background()); err == nil {
		t.Error("SettingsDir() should fail without a directory")
	}
}

func TestDesktopSettingsDir_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewDesktop(t.TempDir()).SettingsDir(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("SettingsDir() error = %v, want context.Canceled", err)
	}
}

func TestFakeRecordsCalls(t *testing.T) {
	f := &Fake{Dir: "/settings"}
	_ = f.OpenEditor("/settings/quickCss.css")
	_ = f.OpenURL("https://example.com")
	_ = f.Relaunch()

	calls := f.Calls()
	want := []Call{
		{Method: "OpenEditor", Arg: "/settings/quickCss.css"},
		{Method: "OpenURL", Arg: "https://example.com"},
		{Method: "Relaunch"},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestFakeSettingsDirBlocksUntilReleased(t *testing.T) {
	f := &Fake{Dir: "/settings", Release: make(chan struct{})}

	done := make(chan string, 1)
	go func() {
		dir, _ := f.SettingsDir(context.Background())
		done <- dir
	}()

	select {
	case <-done:
		t.Fatal("SettingsDir returned before release")
	case <-time.After(20 * time.Millisecond):
	}

	close(f.Release)
	select {
	case dir := <-done:
		if dir != "/settings" {
			t.Errorf("dir = %q", dir)
		}
	case <-time.After(time.Second):
		t.Fatal("SettingsDir did not return after release")
	}
}
