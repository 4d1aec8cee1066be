// Package session owns the single authoritative user identity and its
// persisted mirror. Nothing else in the program reads or writes the slot.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const slotFile = "session.json"

// User is the safe profile returned by a successful login or signup.
// It is replaced wholesale, never mutated in place.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Store holds the current user and mirrors it to one JSON slot on disk.
// It is confined to the update loop, so there is no locking; the slot
// file is the only shared resource and the store is its sole writer.
type Store struct {
	dir         string
	current     *User
	subscribers []func(*User)
}

// NewStore creates a store persisting under dir. The directory is
// created lazily on the first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the per-user slot directory.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "shotweave"), nil
}

// Current returns the authoritative user, or nil when unauthenticated.
func (s *Store) Current() *User {
	return s.current
}

// Subscribe registers fn to run synchronously after every session
// change, with the new user (nil on logout). Registration order is
// notification order.
func (s *Store) Subscribe(fn func(*User)) {
	s.subscribers = append(s.subscribers, fn)
}

// Restore loads the persisted slot into memory. A missing slot means
// unauthenticated. Anything unparsable, or a user whose role is outside
// the enum, is indistinguishable from never having logged in: the slot
// is erased and no error surfaces. Safe to call repeatedly.
func (s *Store) Restore() *User {
	data, err := os.ReadFile(s.slotPath())
	if err != nil {
		return nil
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		s.eraseSlot()
		return nil
	}
	if !u.Role.Valid() {
		s.eraseSlot()
		return nil
	}
	s.current = &u
	return s.current
}

// SetCurrent replaces the user, writes the mirror synchronously and
// notifies subscribers before returning, so role dispatch sees the new
// user within the same update cycle.
func (s *Store) SetCurrent(u User) error {
	if !u.Role.Valid() {
		return fmt.Errorf("session: role %q outside enum", u.Role)
	}
	s.current = &u
	if err := s.writeSlot(u); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Clear logs out: user absent, slot erased, subscribers notified.
// Clearing an already-clear store is a no-op, not an error.
func (s *Store) Clear() {
	s.current = nil
	s.eraseSlot()
	s.notify()
}

func (s *Store) notify() {
	for _, fn := range s.subscribers {
		fn(s.current)
	}
}

func (s *Store) slotPath() string {
	return filepath.Join(s.dir, slotFile)
}

func (s *Store) writeSlot(u User) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	tmp := s.slotPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.slotPath()); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

func (s *Store) eraseSlot() {
	if err := os.Remove(s.slotPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		// Nothing actionable for the caller; the in-memory state is
		// already absent and a later write will overwrite the slot.
		_ = err
	}
}
