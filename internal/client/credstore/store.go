// Package credstore keeps CLI session tokens on disk, one per server host,
// in a JSON file readable only by the owner.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/aycode/internal/filex"
)

var ErrCredentialNotFound = errors.New("credential not found")

type Credential struct {
	Token     string    `json:"token"`
	Username  string    `json:"username,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

type file struct {
	Credentials map[string]*Credential `json:"credentials"`
}

// Store reads and writes the credential file at path.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath is ~/.aycode/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(home, ".aycode", "config.json"), nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) load() (*file, error) {
	f := &file{Credentials: map[string]*Credential{}}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening config file '%s': %w", s.path, err)
	}

	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("decoding config file '%s': %w", s.path, err)
	}
	if f.Credentials == nil {
		f.Credentials = map[string]*Credential{}
	}
	return f, nil
}

func (s *Store) save(f *file) error {
	if _, err := filex.EnsurePrivateDir(s.path); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file '%s': %w", s.path, err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(s.path, 0o600)
}

// Get returns the credential stored for host.
func (s *Store) Get(host string) (*Credential, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	c, ok := f.Credentials[host]
	if !ok || c.Token == "" {
		return nil, ErrCredentialNotFound
	}
	return c, nil
}

// Put replaces the credential for host.
func (s *Store) Put(host string, c *Credential) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	f.Credentials[host] = c
	return s.save(f)
}

// Delete removes the credential for host. Deleting a missing entry is not
// an error.
func (s *Store) Delete(host string) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := f.Credentials[host]; !ok {
		return nil
	}
	delete(f.Credentials, host)
	return s.save(f)
}
