package viewmodel

import (
	"fmt"
	"strconv"

	"github.com/dongho-jung/vcsettings/internal/constants"
	"github.com/dongho-jung/vcsettings/internal/notify"
	"github.com/dongho-jung/vcsettings/internal/settings"
)

// Option is one choice of a select control.
type Option[T ~string] struct {
	Label   string
	Value   T
	Default bool
}

// StyleOptions returns the notification style choices in display order.
func StyleOptions() []Option[settings.NotificationStyle] {
	return []Option[settings.NotificationStyle]{
		{Label: "Only use Desktop notifications when Discord is not focused", Value: settings.NotificationStyleNotFocused, Default: true},
		{Label: "Always use Desktop notifications", Value: settings.NotificationStyleAlways},
		{Label: "Always use Vencord notifications", Value: settings.NotificationStyleNever},
	}
}

// PositionOptions returns the notification position choices in display order.
func PositionOptions() []Option[settings.NotificationPosition] {
	return []Option[settings.NotificationPosition]{
		{Label: "Bottom Right", Value: settings.NotificationPositionBottomRight, Default: true},
		{Label: "Top Right", Value: settings.NotificationPositionTopRight},
	}
}

// OptionIndex returns the index of v in opts, or of the default option if v
// is not present.
func OptionIndex[T ~string](opts []Option[T], v T) int {
	def := 0
	for i, o := range opts {
		if o.Value == v {
			return i
		}
		if o.Default {
			def = i
		}
	}
	return def
}

// CycleOption returns the value delta steps away from current, wrapping.
func CycleOption[T ~string](opts []Option[T], current T, delta int) T {
	if len(opts) == 0 {
		return current
	}
	n := len(opts)
	i := ((OptionIndex(opts, current)+delta)%n + n) % n
	return opts[i].Value
}

// TimeoutMarkers are the labelled stops on the timeout slider.
var TimeoutMarkers = []int{0, 1000, 2500, 5000, 10_000, 20_000}

// Select describes a select control.
type Select[T ~string] struct {
	Options  []Option[T]
	Selected T
	Disabled bool
}

// Slider describes the timeout slider.
type Slider struct {
	Value    int
	Min      int
	Max      int
	Markers  []int
	Disabled bool
}

// NotificationControls is the notification sub-model.
type NotificationControls struct {
	Style    Select[settings.NotificationStyle]
	Position Select[settings.NotificationPosition]
	Timeout  Slider
}

// NewNotificationControls derives the three notification controls. Position
// and timeout are disabled while desktop notifications are always used,
// because the OS then owns placement and dismissal. Their stored values are
// still shown.
func NewNotificationControls(n settings.Notifications) NotificationControls {
	osOwned := n.UseNative == settings.NotificationStyleAlways
	return NotificationControls{
		Style: Select[settings.NotificationStyle]{
			Options:  StyleOptions(),
			Selected: n.UseNative,
		},
		Position: Select[settings.NotificationPosition]{
			Options:  PositionOptions(),
			Selected: n.Position,
			Disabled: osOwned,
		},
		Timeout: Slider{
			Value:    n.Timeout,
			Min:      constants.MinNotificationTimeout,
			Max:      constants.MaxNotificationTimeout,
			Markers:  TimeoutMarkers,
			Disabled: osOwned,
		},
	}
}

// ShowPermissionWarning reports whether the denied-permission card is shown.
func ShowPermissionWarning(style settings.NotificationStyle, perm notify.Permission) bool {
	return style != settings.NotificationStyleNever && perm == notify.PermissionDenied
}

// FormatTimeout renders a slider value, e.g. 2500 -> "2.50s".
func FormatTimeout(ms int) string {
	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}

// FormatMarker renders a slider marker, e.g. 2500 -> "2.5s".
func FormatMarker(ms int) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', -1, 64) + "s"
}

// StepTimeout moves v by delta and clamps the result.
func StepTimeout(v, delta int) int {
	return settings.ClampTimeout(v + delta)
}

// NextMarker returns the first marker above v, or the max.
func NextMarker(v int) int {
	for _, m := range TimeoutMarkers {
		if m > v {
			return m
		}
	}
	return TimeoutMarkers[len(TimeoutMarkers)-1]
}

// PrevMarker returns the last marker below v, or the min.
func PrevMarker(v int) int {
	for i := len(TimeoutMarkers) - 1; i >= 0; i-- {
		if TimeoutMarkers[i] < v {
			return TimeoutMarkers[i]
		}
	}
	return TimeoutMarkers[0]
}
