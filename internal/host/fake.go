package host

import (
	"context"
	"sync"

	"github.com/dongho-jung/vcsettings/internal/notify"
)

// Fake is an in-memory Host that records calls.
type Fake struct {
	Dir        string
	DirErr     error
	Permission notify.Permission
	// Release, when set, blocks SettingsDir until it is closed.
	Release chan struct{}

	mu    sync.Mutex
	calls []Call
}

// Call is one recorded host action.
type Call struct {
	Method string
	Arg    string
}

var _ Host = (*Fake)(nil)

func (f *Fake) record(method, arg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: method, Arg: arg})
}

// Calls returns the recorded calls in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) SettingsDir(ctx context.Context) (string, error) {
	if f.Release != nil {
		select {
		case <-f.Release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.Dir, f.DirErr
}

func (f *Fake) OpenEditor(path string) error {
	f.record("OpenEditor", path)
	return nil
}

func (f *Fake) OpenFolder(path string) error {
	f.record("OpenFolder", path)
	return nil
}

func (f *Fake) OpenURL(url string) error {
	f.record("OpenURL", url)
	return nil
}

func (f *Fake) Relaunch() error {
	f.record("Relaunch", "")
	return nil
}

func (f *Fake) NotificationPermission() notify.Permission {
	if f.Permission == "" {
		return notify.PermissionGranted
	}
	return f.Permission
}

func (f *Fake) SendNotification(title, message string) error {
	f.record("SendNotification", title)
	return nil
}

func (f *Fake) CopyToClipboard(text string) error {
	f.record("CopyToClipboard", text)
	return nil
}
