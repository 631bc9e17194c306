// Package session holds the client-side auth state: a session value that is
// persisted as one atomic unit, and an event bus announcing identity-state
// transitions to any interested component.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// registeredFlag is the literal value stored for a registered session,
// kept for compatibility with the documented client-local key contract.
const registeredFlag = "1"

// ErrIncomplete is returned when a save would leave partial session state.
var ErrIncomplete = errors.New("incomplete session")

// Session is the client-held auth state. The three fields are set together
// or not at all; partial state is not a defined state.
type Session struct {
	Token      string `json:"token"`
	Registered string `json:"registered"`
	Email      string `json:"email"`
}

// New builds a complete session for the given credentials.
func New(token, email string) Session {
	return Session{Token: token, Registered: registeredFlag, Email: email}
}

// Valid reports whether all session fields are present.
func (s Session) Valid() bool {
	return s.Token != "" && s.Registered != "" && s.Email != ""
}

// Store abstracts session persistence for the bootstrapper.
type Store interface {
	Save(s Session) error
	Load() (Session, bool, error)
	Clear() error
}

// FileStore persists the session as a single JSON document. Writes go to a
// temp file in the same directory followed by a rename, so a reader observes
// either the previous session or the new one, never a partial write.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save replaces any prior session wholesale. Incomplete sessions are
// rejected before anything touches the disk.
func (f *FileStore) Save(s Session) error {
	if !s.Valid() {
		return ErrIncomplete
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "session-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// Load reads the stored session. A missing file means no session and is not
// an error.
func (f *FileStore) Load() (Session, bool, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, false, nil
		}
		return Session{}, false, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, false, err
	}
	return s, s.Valid(), nil
}

// Clear removes the stored session. Clearing an absent session is a no-op.
func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ Store = (*FileStore)(nil)
