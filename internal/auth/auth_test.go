package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_DefaultsAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "admin.json")
	s := NewCredentialStore(path, "admin", "secret")

	ok, err := s.Verify("ADMIN", "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.Verify("admin", "wrong")
	assert.False(t, ok)
	ok, _ = s.Verify("root", "secret")
	assert.False(t, ok)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}

func TestCredentialStore_Update(t *testing.T) {
	s := NewCredentialStore(filepath.Join(t.TempDir(), "admin.json"), "admin", "secret")

	require.NoError(t, s.Update("manager", ""))
	name, err := s.Username()
	require.NoError(t, err)
	assert.Equal(t, "manager", name)
	ok, _ := s.Verify("manager", "secret")
	assert.True(t, ok, "empty password keeps the old one")

	require.NoError(t, s.Update("manager", "n3wpass"))
	ok, _ = s.Verify("manager", "secret")
	assert.False(t, ok)
	ok, _ = s.Verify("manager", "n3wpass")
	assert.True(t, ok)
}

func TestSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSessions(time.Hour)
	s.now = func() time.Time { return now }

	tok := s.Issue()
	assert.True(t, s.Valid(tok))
	assert.False(t, s.Valid(""))
	assert.False(t, s.Valid("forged"))

	now = now.Add(2 * time.Hour)
	assert.False(t, s.Valid(tok))

	tok = s.Issue()
	s.Revoke(tok)
	assert.False(t, s.Valid(tok))
}
