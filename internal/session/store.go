// Package session persists the authenticated identity between runs. The
// session is two strings, a bearer token and the username it belongs to,
// stored as one JSON file so clearing it can never leave a half-logged-in
// state behind.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const fileMode = 0o600

// Session is the stored credential and display identity. Both fields are
// empty when the user is logged out.
type Session struct {
	Token    string `json:"token"`
	Identity string `json:"identity"`
}

type Store struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}

	return filepath.Join(dir, "hirematch", "session.json"), nil
}

func New(path string) *Store {
	return &Store{path: path}
}

// Set overwrites any prior session with the given credential and identity.
func (s *Store) Set(token, identity string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("session token is empty")
	}

	data, err := json.MarshalIndent(Session{Token: token, Identity: identity}, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, fileMode); err != nil {
		return fmt.Errorf("writing session file %q: %w", s.path, err)
	}

	return nil
}

// Get returns the stored session. A missing or unreadable file yields the
// logged-out state rather than an error; there is nothing for the caller to
// do about a broken session file except log in again.
func (s *Store) Get() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

func (s *Store) read() Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}
	}

	sess.Token = strings.TrimSpace(sess.Token)

	return sess
}

func (s *Store) IsAuthenticated() bool {
	return s.Get().Token != ""
}

// Identity returns the stored display name, empty when logged out.
func (s *Store) Identity() string {
	return s.Get().Identity
}

// Token implements the credentials source the API client reads.
func (s *Store) Token() (string, bool) {
	token := s.Get().Token

	return token, token != ""
}

// Clear removes the persisted session. The session lives in a single file,
// so the caller observes either the full session or none of it.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file %q: %w", s.path, err)
	}

	return nil
}
