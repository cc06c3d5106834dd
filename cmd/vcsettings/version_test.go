package main

import (
	"bytes"
	"runtime/debug"
	"strings"
	"testing"
)

func resetVersion(t *testing.T) {
	t.Helper()
	originalVersion := Version
	originalCommit := Commit
	originalMap := versionCommitMap
	t.Cleanup(func() {
		Version = originalVersion
		Commit = originalCommit
		versionCommitMap = originalMap
	})
	Version = "dev"
	Commit = "unknown"
}

func TestApplyBuildInfoUsesModuleVersion(t *testing.T) {
	resetVersion(t)

	applyBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef0123456789"},
		},
	})

	if Version != "v0.4.1" {
		t.Fatalf("Version = %q, want %q", Version, "v0.4.1")
	}
	if Commit != "abcdef0" {
		t.Fatalf("Commit = %q, want %q", Commit, "abcdef0")
	}
}

func TestApplyBuildInfoSkipsDevelVersion(t *testing.T) {
	resetVersion(t)

	applyBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	if Version != "dev" {
		t.Fatalf("Version = %q, want %q", Version, "dev")
	}
}

func TestApplyBuildInfoUsesVersionMapForCommit(t *testing.T) {
	resetVersion(t)
	versionCommitMap = map[string]string{"v9.9.9": "1234567890"}

	applyBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "v9.9.9"}})

	if Commit != "1234567" {
		t.Fatalf("Commit = %q, want %q", Commit, "1234567")
	}
}

func TestApplyBuildInfoDoesNotOverrideExistingValues(t *testing.T) {
	resetVersion(t)
	Version = "v1.0.0"
	Commit = "deadbee"

	applyBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v2.0.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "cafebabe1234567"},
		},
	})

	if Version != "v1.0.0" || Commit != "deadbee" {
		t.Fatalf("Version, Commit = %q, %q; want v1.0.0, deadbee", Version, Commit)
	}
}

func TestVersionFlag(t *testing.T) {
	resetVersion(t)
	Version = "v1.2.3"
	Commit = "abc1234"

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-v"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "vcsettings v1.2.3 (abc1234)" {
		t.Errorf("output = %q", got)
	}
}
