// Package viewmodel derives what the settings panel shows from the current
// settings and two environment facts. Everything here is pure.
package viewmodel

import (
	"iter"
	"slices"

	"github.com/dongho-jung/vcsettings/internal/settings"
)

// Env holds the environment facts that gate rows. It is resolved once.
type Env struct {
	IsWeb     bool
	IsWindows bool
}

// IsNative reports whether this is a desktop (non-web) build.
func (e Env) IsNative() bool {
	return !e.IsWeb
}

// ToggleRow is one on/off setting shown in the panel.
type ToggleRow struct {
	Key   settings.Key
	Title string
	Note  string
}

const restartNote = "Requires a full restart"

type guardedRow struct {
	row   ToggleRow
	guard func(Env) bool
}

// toggleTable lists every toggle in display order with its guard predicate.
var toggleTable = []guardedRow{
	{
		row:   ToggleRow{Key: settings.KeyUseQuickCSS, Title: "Enable Custom CSS", Note: "Loads your Custom CSS"},
		guard: func(Env) bool { return true },
	},
	{
		row:   ToggleRow{Key: settings.KeyEnableReactDevtools, Title: "Enable React Developer Tools", Note: restartNote},
		guard: func(e Env) bool { return !e.IsWeb },
	},
	{
		row:   ToggleRow{Key: settings.KeyFrameless, Title: "Disable the window frame", Note: restartNote},
		guard: func(e Env) bool { return !e.IsWeb && !e.IsWindows },
	},
	{
		row:   ToggleRow{Key: settings.KeyWinNativeTitleBar, Title: "Use Windows' native title bar instead of Discord's custom one", Note: restartNote},
		guard: func(e Env) bool { return !e.IsWeb && e.IsWindows },
	},
	{
		row:   ToggleRow{Key: settings.KeyTransparent, Title: "Enable window transparency", Note: restartNote},
		guard: func(e Env) bool { return !e.IsWeb },
	},
	{
		row:   ToggleRow{Key: settings.KeyWinCtrlQ, Title: "Register Ctrl+Q as shortcut to close Discord (Alternative to Alt+F4)", Note: restartNote},
		guard: func(e Env) bool { return !e.IsWeb && e.IsWindows },
	},
}

// ToggleRows yields the rows applicable to env, in display order. Only rows
// whose guard holds are produced. The sequence can be ranged over repeatedly.
func ToggleRows(env Env) iter.Seq[ToggleRow] {
	return func(yield func(ToggleRow) bool) {
		for _, g := range toggleTable {
			if !g.guard(env) {
				continue
			}
			if !yield(g.row) {
				return
			}
		}
	}
}

// ToggleRowList collects ToggleRows into a slice.
func ToggleRowList(env Env) []ToggleRow {
	return slices.Collect(ToggleRows(env))
}

// ToggleKeys returns only the keys of the applicable rows.
func ToggleKeys(env Env) []settings.Key {
	var keys []settings.Key
	for row := range ToggleRows(env) {
		keys = append(keys, row.Key)
	}
	return keys
}

// Applies reports whether key is a toggle shown under env.
func Applies(env Env, key settings.Key) bool {
	for row := range ToggleRows(env) {
		if row.Key == key {
			return true
		}
	}
	return false
}
