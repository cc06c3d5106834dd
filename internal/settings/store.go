package settings

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/dongho-jung/vcsettings/internal/logging"
)

// Change describes one committed field write.
type Change struct {
	Key Key
	Old any
	New any
}

// ChangeHandler receives committed changes.
type ChangeHandler func(change Change)

type subscription struct {
	id      string
	key     Key // empty matches every key
	handler ChangeHandler
}

// Store is the single source of truth for the settings tree.
//
// Every Set validates the value, persists the whole document, commits it in
// memory and then notifies subscribers, in that order. A failed persist
// leaves memory untouched.
type Store struct {
	path string

	mu       sync.RWMutex
	current  Settings
	lastHash [32]byte // hash of the last document written or read by this store

	subMu sync.RWMutex
	subs  map[string]*subscription
}

// Open loads the document at path, or defaults if it does not exist yet.
// Nothing is written until the first Set.
func Open(path string) (*Store, error) {
	logging.Debug("-> settings.Open(%s)", path)
	defer logging.Debug("<- settings.Open")

	s, data, warnings, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logging.Warn("settings: %s", w)
	}

	store := &Store{
		path:    path,
		current: s,
		subs:    make(map[string]*subscription),
	}
	if data != nil {
		store.lastHash = sha256.Sum256(data)
	}
	return store, nil
}

// Path returns the settings document path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the current value for key. Unknown keys return nil.
func (s *Store) Get(key Key) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Value(key)
}

// Bool returns the current value of a bool key, false for non-bool keys.
func (s *Store) Bool(key Key) bool {
	v, _ := s.Get(key).(bool)
	return v
}

// Notifications returns a copy of the notification sub-tree.
func (s *Store) Notifications() Notifications {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Notifications
}

// Snapshot returns a copy of the whole tree.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set writes one field through to disk and publishes the change.
// Timeouts are clamped into range; other invalid values are rejected.
func (s *Store) Set(key Key, value any) error {
	s.mu.Lock()
	next := s.current
	old := next.Value(key)
	if err := next.apply(key, value); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.persistLocked(next); err != nil {
		s.mu.Unlock()
		logging.Error("settings: write %s failed: %v", key, err)
		return err
	}
	s.current = next
	newValue := next.Value(key)
	s.mu.Unlock()

	logging.Debug("settings: %s = %v", key, newValue)
	if old != newValue {
		s.publish(Change{Key: key, Old: old, New: newValue})
	}
	return nil
}

// SetBool writes a bool field.
func (s *Store) SetBool(key Key, v bool) error {
	if key.Kind() != KindBool {
		return fmt.Errorf("%w: %s is not a bool", ErrInvalidValue, key)
	}
	return s.Set(key, v)
}

// SetNotificationStyle writes notifications.useNative.
func (s *Store) SetNotificationStyle(style NotificationStyle) error {
	return s.Set(KeyNotificationStyle, style)
}

// SetNotificationPosition writes notifications.position.
func (s *Store) SetNotificationPosition(pos NotificationPosition) error {
	return s.Set(KeyNotificationPosition, pos)
}

// SetNotificationTimeout writes notifications.timeout, clamped to range.
func (s *Store) SetNotificationTimeout(ms int) error {
	return s.Set(KeyNotificationTimeout, ms)
}

// SetString parses raw for key's type and writes it.
func (s *Store) SetString(key Key, raw string) error {
	v, err := ParseValue(key, raw)
	if err != nil {
		return err
	}
	return s.Set(key, v)
}

// Reset writes every key back to its default, one write per key.
func (s *Store) Reset() error {
	defaults := DefaultSettings()
	for _, key := range Keys() {
		if err := s.Set(key, defaults.Value(key)); err != nil {
			return fmt.Errorf("failed to reset %s: %w", key, err)
		}
	}
	return nil
}

// Reload re-reads the document and publishes a change for every key whose
// value differs from memory. Used when another process edits the file.
func (s *Store) Reload() error {
	timer := logging.StartTimer("settings reload")

	// The read and the commit share the write lock so a concurrent Set can
	// not land between them and be overwritten by an older document.
	s.mu.Lock()
	next, data, warnings, err := readDocument(s.path)
	if err != nil {
		s.mu.Unlock()
		timer.StopWithResult(false, err.Error())
		return err
	}
	if data != nil {
		s.lastHash = sha256.Sum256(data)
	}
	prev := s.current
	s.current = next
	s.mu.Unlock()

	for _, w := range warnings {
		logging.Warn("settings: %s", w)
	}

	changed := 0
	for _, key := range Keys() {
		oldValue, newValue := prev.Value(key), next.Value(key)
		if oldValue != newValue {
			changed++
			s.publish(Change{Key: key, Old: oldValue, New: newValue})
		}
	}
	timer.StopWithResult(true, fmt.Sprintf("%d keys changed", changed))
	return nil
}

// persistLocked must be called with s.mu held.
func (s *Store) persistLocked(next Settings) error {
	data, err := formatDocument(next)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}
	s.lastHash = sha256.Sum256(data)
	return nil
}

// isOwnWrite reports whether data matches what this store last wrote or read.
func (s *Store) isOwnWrite(data []byte) bool {
	sum := sha256.Sum256(data)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sum == s.lastHash
}

// Subscribe registers a handler for changes to one key.
func (s *Store) Subscribe(key Key, handler ChangeHandler) string {
	return s.addSubscription(key, handler)
}

// SubscribeAll registers a handler for changes to any key.
func (s *Store) SubscribeAll(handler ChangeHandler) string {
	return s.addSubscription("", handler)
}

func (s *Store) addSubscription(key Key, handler ChangeHandler) string {
	if handler == nil {
		return ""
	}
	id := ulid.Make().String()
	s.subMu.Lock()
	s.subs[id] = &subscription{id: id, key: key, handler: handler}
	s.subMu.Unlock()
	return id
}

// Unsubscribe removes a subscription.
func (s *Store) Unsubscribe(id string) {
	if id == "" {
		return
	}
	s.subMu.Lock()
	delete(s.subs, id)
	s.subMu.Unlock()
}

// publish runs matching handlers outside of any store lock.
func (s *Store) publish(change Change) {
	s.subMu.RLock()
	subs := make([]*subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		if sub.key == "" || sub.key == change.Key {
			subs = append(subs, sub)
		}
	}
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.handler(change)
	}
}
