package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownKey is returned for a field path that is not part of the tree.
	ErrUnknownKey = errors.New("unknown settings key")
	// ErrInvalidValue is returned when a value does not fit the key's type.
	ErrInvalidValue = errors.New("invalid settings value")
)

// Key is a dotted path to a single field of the settings tree.
type Key string

const (
	KeyUseQuickCSS          Key = "useQuickCss"
	KeyEnableReactDevtools  Key = "enableReactDevtools"
	KeyFrameless            Key = "frameless"
	KeyWinNativeTitleBar    Key = "winNativeTitleBar"
	KeyTransparent          Key = "transparent"
	KeyWinCtrlQ             Key = "winCtrlQ"
	KeyNotificationStyle    Key = "notifications.useNative"
	KeyNotificationPosition Key = "notifications.position"
	KeyNotificationTimeout  Key = "notifications.timeout"
)

// Kind describes the value type stored under a key.
type Kind int

const (
	KindBool Kind = iota
	KindStyle
	KindPosition
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindStyle:
		return "style"
	case KindPosition:
		return "position"
	case KindTimeout:
		return "milliseconds"
	default:
		return "unknown"
	}
}

// Keys returns every key in document order.
func Keys() []Key {
	return []Key{
		KeyUseQuickCSS,
		KeyEnableReactDevtools,
		KeyFrameless,
		KeyWinNativeTitleBar,
		KeyTransparent,
		KeyWinCtrlQ,
		KeyNotificationStyle,
		KeyNotificationPosition,
		KeyNotificationTimeout,
	}
}

// ParseKey validates a dotted field path.
func ParseKey(s string) (Key, error) {
	k := Key(strings.TrimSpace(s))
	for _, known := range Keys() {
		if known == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// Kind returns the value kind of the key.
func (k Key) Kind() Kind {
	switch k {
	case KeyNotificationStyle:
		return KindStyle
	case KeyNotificationPosition:
		return KindPosition
	case KeyNotificationTimeout:
		return KindTimeout
	default:
		return KindBool
	}
}

// Options returns the accepted values for enum keys, nil otherwise.
func (k Key) Options() []string {
	switch k.Kind() {
	case KindStyle:
		styles := ValidNotificationStyles()
		out := make([]string, len(styles))
		for i, s := range styles {
			out[i] = string(s)
		}
		return out
	case KindPosition:
		positions := ValidNotificationPositions()
		out := make([]string, len(positions))
		for i, p := range positions {
			out[i] = string(p)
		}
		return out
	case KindBool:
		return []string{"true", "false"}
	}
	return nil
}

// boolField returns a pointer to the bool field for k, or nil.
func (s *Settings) boolField(k Key) *bool {
	switch k {
	case KeyUseQuickCSS:
		return &s.UseQuickCSS
	case KeyEnableReactDevtools:
		return &s.EnableReactDevtools
	case KeyFrameless:
		return &s.Frameless
	case KeyWinNativeTitleBar:
		return &s.WinNativeTitleBar
	case KeyTransparent:
		return &s.Transparent
	case KeyWinCtrlQ:
		return &s.WinCtrlQ
	}
	return nil
}

// Value reads a field by key. Unknown keys return nil.
func (s *Settings) Value(k Key) any {
	if b := s.boolField(k); b != nil {
		return *b
	}
	switch k {
	case KeyNotificationStyle:
		return s.Notifications.UseNative
	case KeyNotificationPosition:
		return s.Notifications.Position
	case KeyNotificationTimeout:
		return s.Notifications.Timeout
	}
	return nil
}

// apply validates value and writes it into the field named by k.
// Timeouts are clamped rather than rejected.
func (s *Settings) apply(k Key, value any) error {
	if b := s.boolField(k); b != nil {
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects bool, got %T", ErrInvalidValue, k, value)
		}
		*b = v
		return nil
	}

	switch k {
	case KeyNotificationStyle:
		var style NotificationStyle
		switch v := value.(type) {
		case NotificationStyle:
			style = v
		case string:
			style = NotificationStyle(v)
		default:
			return fmt.Errorf("%w: %s expects style, got %T", ErrInvalidValue, k, value)
		}
		if !style.Valid() {
			return fmt.Errorf("%w: %s must be one of %s, got %q",
				ErrInvalidValue, k, strings.Join(k.Options(), ", "), style)
		}
		s.Notifications.UseNative = style
		return nil

	case KeyNotificationPosition:
		var pos NotificationPosition
		switch v := value.(type) {
		case NotificationPosition:
			pos = v
		case string:
			pos = NotificationPosition(v)
		default:
			return fmt.Errorf("%w: %s expects position, got %T", ErrInvalidValue, k, value)
		}
		if !pos.Valid() {
			return fmt.Errorf("%w: %s must be one of %s, got %q",
				ErrInvalidValue, k, strings.Join(k.Options(), ", "), pos)
		}
		s.Notifications.Position = pos
		return nil

	case KeyNotificationTimeout:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("%w: %s expects int, got %T", ErrInvalidValue, k, value)
		}
		s.Notifications.Timeout = ClampTimeout(v)
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownKey, k)
}

// ParseValue converts a raw string into the value type of k.
func ParseValue(k Key, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch k.Kind() {
	case KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects true or false, got %q", ErrInvalidValue, k, raw)
		}
		return v, nil
	case KindStyle:
		return NotificationStyle(raw), nil
	case KindPosition:
		return NotificationPosition(raw), nil
	case KindTimeout:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects milliseconds, got %q", ErrInvalidValue, k, raw)
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKey, k)
}

// FormatValue renders a value the way ParseValue accepts it.
func FormatValue(v any) string {
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case NotificationStyle:
		return string(val)
	case NotificationPosition:
		return string(val)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
