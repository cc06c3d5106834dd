package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dongho-jung/vcsettings/internal/constants"
)

// rawDocument mirrors the on-disk shape. Fields stay as nodes so each one
// is decoded on its own: a missing key keeps its default and a value of the
// wrong type is replaced by the default with a warning.
type rawDocument struct {
	UseQuickCSS         yaml.Node `yaml:"useQuickCss"`
	EnableReactDevtools yaml.Node `yaml:"enableReactDevtools"`
	Frameless           yaml.Node `yaml:"frameless"`
	WinNativeTitleBar   yaml.Node `yaml:"winNativeTitleBar"`
	Transparent         yaml.Node `yaml:"transparent"`
	WinCtrlQ            yaml.Node `yaml:"winCtrlQ"`
	Notifications       yaml.Node `yaml:"notifications"`
}

type rawNotifications struct {
	UseNative yaml.Node `yaml:"useNative"`
	Position  yaml.Node `yaml:"position"`
	Timeout   yaml.Node `yaml:"timeout"`
}

const documentHeader = `vcsettings configuration
Written on every change. Edits made while the panel is open are picked up live.`

// keyComments are written above each key in the document.
var keyComments = map[string]string{
	"useQuickCss":         "Load the QuickCSS file",
	"enableReactDevtools": "Enable React Developer Tools (requires a full restart)",
	"frameless":           "Disable the window frame, non-Windows only (requires a full restart)",
	"winNativeTitleBar":   "Use the native Windows title bar, Windows only (requires a full restart)",
	"transparent":         "Enable window transparency (requires a full restart)",
	"winCtrlQ":            "Register Ctrl+Q to close the client, Windows only (requires a full restart)",
	"useNative":           "never | always | not-focused",
	"position":            "bottom-right | top-right (ignored when useNative is always)",
	"timeout":             "Milliseconds before auto-dismiss, 0-20000, 0 = never (ignored when useNative is always)",
}

// parseDocument decodes a settings document. Missing keys take defaults and
// invalid values are normalized with warnings. JSON documents are accepted.
// Only a document that is not valid YAML is an error.
func parseDocument(data []byte) (Settings, []string, error) {
	s := DefaultSettings()
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return s, nil, fmt.Errorf("failed to parse settings document: %w", err)
	}
	if len(root.Content) == 0 {
		return s, nil, nil
	}

	var warnings []string
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		warnings = append(warnings, "settings document is not a mapping, using defaults")
		return s, warnings, nil
	}

	var raw rawDocument
	if err := doc.Decode(&raw); err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to decode settings document, using defaults: %v", err))
		return s, warnings, nil
	}

	decode := func(key string, n *yaml.Node, dst any) bool {
		if n.Kind == 0 {
			return false
		}
		if err := n.Decode(dst); err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid %s %q, using default", key, n.Value))
			return false
		}
		return true
	}
	decodeBool := func(key Key, n *yaml.Node, dst *bool) {
		var v bool
		if decode(string(key), n, &v) {
			*dst = v
		}
	}
	decodeBool(KeyUseQuickCSS, &raw.UseQuickCSS, &s.UseQuickCSS)
	decodeBool(KeyEnableReactDevtools, &raw.EnableReactDevtools, &s.EnableReactDevtools)
	decodeBool(KeyFrameless, &raw.Frameless, &s.Frameless)
	decodeBool(KeyWinNativeTitleBar, &raw.WinNativeTitleBar, &s.WinNativeTitleBar)
	decodeBool(KeyTransparent, &raw.Transparent, &s.Transparent)
	decodeBool(KeyWinCtrlQ, &raw.WinCtrlQ, &s.WinCtrlQ)

	switch {
	case raw.Notifications.Kind == 0:
	case raw.Notifications.Kind != yaml.MappingNode:
		warnings = append(warnings, fmt.Sprintf("invalid notifications %q, using defaults", raw.Notifications.Value))
	default:
		var n rawNotifications
		if err := raw.Notifications.Decode(&n); err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid notifications block, using defaults: %v", err))
			break
		}
		var style, position string
		if decode(string(KeyNotificationStyle), &n.UseNative, &style) {
			s.Notifications.UseNative = NotificationStyle(strings.TrimSpace(style))
		}
		if decode(string(KeyNotificationPosition), &n.Position, &position) {
			s.Notifications.Position = NotificationPosition(strings.TrimSpace(position))
		}
		var timeout float64
		if decode(string(KeyNotificationTimeout), &n.Timeout, &timeout) {
			s.Notifications.Timeout = roundTimeout(timeout)
		}
	}

	warnings = append(warnings, s.Normalize()...)
	return s, warnings, nil
}

// roundTimeout converts a decoded number to int, saturating at the int32
// range so clamping sees the sign.
func roundTimeout(t float64) int {
	switch {
	case math.IsNaN(t):
		return 0
	case t > math.MaxInt32:
		return math.MaxInt32
	case t < math.MinInt32:
		return math.MinInt32
	}
	return int(math.Round(t))
}

// formatDocument encodes the settings tree with a commented header.
func formatDocument(s Settings) ([]byte, error) {
	var root yaml.Node
	if err := root.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	root.HeadComment = documentHeader
	annotate(&root)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return buf.Bytes(), nil
}

// annotate attaches keyComments to mapping keys, recursing into nested maps.
func annotate(n *yaml.Node) {
	if n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]
		if comment, ok := keyComments[keyNode.Value]; ok {
			keyNode.HeadComment = comment
		}
		annotate(valueNode)
	}
}

// readDocument loads the document at path. A missing file yields defaults.
func readDocument(path string) (Settings, []byte, []string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil, nil, nil
	}
	if err != nil {
		return Settings{}, nil, nil, fmt.Errorf("failed to read settings: %w", err)
	}
	s, warnings, err := parseDocument(data)
	if err != nil {
		return Settings{}, nil, nil, err
	}
	return s, data, warnings, nil
}

// writeFileAtomic replaces path with data via a temp file and rename so a
// reader never observes a half-written document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, constants.TempFilePattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close settings: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		cleanup()
		return fmt.Errorf("failed to chmod settings: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}
