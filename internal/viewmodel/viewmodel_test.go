package viewmodel

import (
	"errors"
	"slices"
	"testing"

	"github.com/dongho-jung/vcsettings/internal/notify"
	"github.com/dongho-jung/vcsettings/internal/settings"
)

func allEnvs() []Env {
	return []Env{
		{IsWeb: false, IsWindows: false},
		{IsWeb: false, IsWindows: true},
		{IsWeb: true, IsWindows: false},
		{IsWeb: true, IsWindows: true},
	}
}

func TestToggleRows_GuardPolicy(t *testing.T) {
	for _, env := range allEnvs() {
		keys := ToggleKeys(env)

		if !slices.Contains(keys, settings.KeyUseQuickCSS) {
			t.Errorf("%+v: useQuickCss missing from %v", env, keys)
		}

		hasFrameless := slices.Contains(keys, settings.KeyFrameless)
		hasTitleBar := slices.Contains(keys, settings.KeyWinNativeTitleBar)
		if env.IsWeb {
			if hasFrameless || hasTitleBar {
				t.Errorf("%+v: web build must not show frame rows, got %v", env, keys)
			}
		} else if hasFrameless == hasTitleBar {
			t.Errorf("%+v: want exactly one of frameless/winNativeTitleBar, got %v", env, keys)
		}

		if got := slices.Contains(keys, settings.KeyWinCtrlQ); got != (!env.IsWeb && env.IsWindows) {
			t.Errorf("%+v: winCtrlQ present = %v", env, got)
		}
		if got := slices.Contains(keys, settings.KeyEnableReactDevtools); got != !env.IsWeb {
			t.Errorf("%+v: enableReactDevtools present = %v", env, got)
		}
	}
}

func TestToggleRows_Order(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want []settings.Key
	}{
		{
			name: "native non-windows",
			env:  Env{},
			want: []settings.Key{
				settings.KeyUseQuickCSS,
				settings.KeyEnableReactDevtools,
				settings.KeyFrameless,
				settings.KeyTransparent,
			},
		},
		{
			name: "native windows",
			env:  Env{IsWindows: true},
			want: []settings.Key{
				settings.KeyUseQuickCSS,
				settings.KeyEnableReactDevtools,
				settings.KeyWinNativeTitleBar,
				settings.KeyTransparent,
				settings.KeyWinCtrlQ,
			},
		},
		{
			name: "web",
			env:  Env{IsWeb: true, IsWindows: true},
			want: []settings.Key{settings.KeyUseQuickCSS},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToggleKeys(tt.env); !slices.Equal(got, tt.want) {
				t.Errorf("ToggleKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToggleRows_Restartable(t *testing.T) {
	seq := ToggleRows(Env{IsWindows: true})
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}

	// Early break stops the sequence.
	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestToggleRows_NoEmptyRows(t *testing.T) {
	for _, env := range allEnvs() {
		for _, row := range ToggleRowList(env) {
			if row.Key == "" || row.Title == "" || row.Note == "" {
				t.Errorf("%+v: incomplete row %+v", env, row)
			}
		}
	}
}

func TestApplies(t *testing.T) {
	if !Applies(Env{}, settings.KeyFrameless) {
		t.Error("frameless should apply on native non-windows")
	}
	if Applies(Env{IsWindows: true}, settings.KeyFrameless) {
		t.Error("frameless should not apply on windows")
	}
	if Applies(Env{IsWeb: true}, settings.KeyTransparent) {
		t.Error("transparent should not apply on web")
	}
}

func TestNotificationControls_AlwaysDisablesPositionAndTimeout(t *testing.T) {
	n := settings.DefaultSettings().Notifications
	n.Position = settings.NotificationPositionTopRight
	n.Timeout = 5000

	controls := NewNotificationControls(n)
	if controls.Position.Disabled || controls.Timeout.Disabled {
		t.Fatal("controls should be enabled for not-focused")
	}

	n.UseNative = settings.NotificationStyleAlways
	controls = NewNotificationControls(n)
	if !controls.Position.Disabled || !controls.Timeout.Disabled {
		t.Error("position and timeout should be disabled for always")
	}
	if controls.Style.Disabled {
		t.Error("style selector should never be disabled")
	}
	if controls.Position.Selected != settings.NotificationPositionTopRight || controls.Timeout.Value != 5000 {
		t.Errorf("disabled controls should still show stored values, got %+v", controls)
	}

	n.UseNative = settings.NotificationStyleNever
	controls = NewNotificationControls(n)
	if controls.Position.Disabled || controls.Timeout.Disabled {
		t.Error("controls should be enabled for never")
	}
}

func TestShowPermissionWarning(t *testing.T) {
	tests := []struct {
		style settings.NotificationStyle
		perm  notify.Permission
		want  bool
	}{
		{settings.NotificationStyleAlways, notify.PermissionDenied, true},
		{settings.NotificationStyleNotFocused, notify.PermissionDenied, true},
		{settings.NotificationStyleNever, notify.PermissionDenied, false},
		{settings.NotificationStyleAlways, notify.PermissionGranted, false},
		{settings.NotificationStyleAlways, notify.PermissionDefault, false},
	}
	for _, tt := range tests {
		if got := ShowPermissionWarning(tt.style, tt.perm); got != tt.want {
			t.Errorf("ShowPermissionWarning(%s, %s) = %v, want %v", tt.style, tt.perm, got, tt.want)
		}
	}
}

func TestOptions(t *testing.T) {
	styles := StyleOptions()
	if len(styles) != 3 || !styles[0].Default || styles[0].Value != settings.NotificationStyleNotFocused {
		t.Errorf("unexpected style options %+v", styles)
	}

	if got := OptionIndex(styles, settings.NotificationStyleNever); got != 2 {
		t.Errorf("OptionIndex(never) = %d, want 2", got)
	}
	if got := OptionIndex(styles, settings.NotificationStyle("bogus")); got != 0 {
		t.Errorf("OptionIndex(bogus) = %d, want default 0", got)
	}

	if got := CycleOption(styles, settings.NotificationStyleNever, 1); got != settings.NotificationStyleNotFocused {
		t.Errorf("CycleOption(never, +1) = %s, want wrap to not-focused", got)
	}
	if got := CycleOption(PositionOptions(), settings.NotificationPositionBottomRight, -1); got != settings.NotificationPositionTopRight {
		t.Errorf("CycleOption(bottom-right, -1) = %s, want top-right", got)
	}
}

func TestTimeoutFormatting(t *testing.T) {
	tests := []struct {
		ms         int
		wantValue  string
		wantMarker string
	}{
		{0, "0.00s", "0s"},
		{1000, "1.00s", "1s"},
		{2500, "2.50s", "2.5s"},
		{20000, "20.00s", "20s"},
	}
	for _, tt := range tests {
		if got := FormatTimeout(tt.ms); got != tt.wantValue {
			t.Errorf("FormatTimeout(%d) = %q, want %q", tt.ms, got, tt.wantValue)
		}
		if got := FormatMarker(tt.ms); got != tt.wantMarker {
			t.Errorf("FormatMarker(%d) = %q, want %q", tt.ms, got, tt.wantMarker)
		}
	}
}

func TestTimeoutStepping(t *testing.T) {
	if got := StepTimeout(0, -250); got != 0 {
		t.Errorf("StepTimeout(0, -250) = %d, want 0", got)
	}
	if got := StepTimeout(19900, 250); got != 20000 {
		t.Errorf("StepTimeout(19900, 250) = %d, want 20000", got)
	}
	if got := NextMarker(1000); got != 2500 {
		t.Errorf("NextMarker(1000) = %d, want 2500", got)
	}
	if got := NextMarker(20000); got != 20000 {
		t.Errorf("NextMarker(20000) = %d, want 20000", got)
	}
	if got := PrevMarker(3000); got != 2500 {
		t.Errorf("PrevMarker(3000) = %d, want 2500", got)
	}
	if got := PrevMarker(0); got != 0 {
		t.Errorf("PrevMarker(0) = %d, want 0", got)
	}
}

func TestQuickActions(t *testing.T) {
	findAction := func(actions []Action, id ActionID) (Action, bool) {
		for _, a := range actions {
			if a.ID == id {
				return a, true
			}
		}
		return Action{}, false
	}

	pending := QuickActions(Env{}, PendingDir())
	if len(pending) != 4 {
		t.Fatalf("native actions = %d, want 4", len(pending))
	}
	if a, _ := findAction(pending, ActionRestart); a.Disabled {
		t.Error("restart should never be disabled")
	}
	for _, id := range []ActionID{ActionOpenQuickCSS, ActionOpenSettingsDir, ActionOpenGitHub} {
		if a, _ := findAction(pending, id); !a.Disabled {
			t.Errorf("%s should be disabled while pending", id)
		}
	}

	ready := QuickActions(Env{}, DirState{Path: "/tmp/settings"})
	for _, a := range ready {
		if a.Disabled {
			t.Errorf("%s should be enabled once resolved", a.ID)
		}
	}

	failed := QuickActions(Env{}, DirState{Err: errors.New("ipc failed")})
	if a, _ := findAction(failed, ActionOpenSettingsDir); !a.Disabled {
		t.Error("open folder should stay disabled after failure")
	}

	web := QuickActions(Env{IsWeb: true}, DirState{Path: "/tmp/settings"})
	if len(web) != 1 || web[0].ID != ActionOpenQuickCSS || web[0].Disabled {
		t.Errorf("web actions = %+v, want only enabled QuickCSS", web)
	}
	if _, ok := findAction(web, ActionRestart); ok {
		t.Error("web build should not offer restart")
	}
}

func TestDirStateDisplay(t *testing.T) {
	if got := PendingDir().Display(); got != "Loading..." {
		t.Errorf("pending Display() = %q", got)
	}
	if got := (DirState{Path: "/x"}).Display(); got != "/x" {
		t.Errorf("resolved Display() = %q", got)
	}
	if got := (DirState{Path: "/x", Err: errors.New("boom")}).Display(); got != "Loading..." {
		t.Errorf("failed Display() = %q", got)
	}
}
