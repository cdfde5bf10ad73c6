// Package auth checks the admin's credentials and tracks logged-in sessions.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

type Credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// CredentialStore keeps the single admin account in a JSON file. The file is
// created from the default username and password on first use.
type CredentialStore struct {
	mu          sync.Mutex
	path        string
	defaultUser string
	defaultPass string
}

func NewCredentialStore(path, defaultUser, defaultPass string) *CredentialStore {
	return &CredentialStore{path: path, defaultUser: defaultUser, defaultPass: defaultPass}
}

func (s *CredentialStore) load() (Credentials, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		hash, err := HashPassword(s.defaultPass)
		if err != nil {
			return Credentials{}, fmt.Errorf("hash default password: %w", err)
		}
		c := Credentials{Username: s.defaultUser, PasswordHash: hash}
		return c, s.write(c)
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}
	return c, nil
}

func (s *CredentialStore) write(c Credentials) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Verify compares usernames case-insensitively.
func (s *CredentialStore) Verify(username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.load()
	if err != nil {
		return false, err
	}
	if !strings.EqualFold(username, c.Username) {
		return false, nil
	}
	return CheckPassword(c.PasswordHash, password), nil
}

func (s *CredentialStore) Username() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.load()
	return c.Username, err
}

// Update sets a new username and, when password is non-empty, a new password.
func (s *CredentialStore) Update(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.load()
	if err != nil {
		return err
	}
	c.Username = username
	if password != "" {
		if c.PasswordHash, err = HashPassword(password); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
	}
	return s.write(c)
}
