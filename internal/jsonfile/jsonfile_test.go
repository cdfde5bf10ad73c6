package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	ID   string  `json:"id"`
	Note *string `json:"note,omitempty"`
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	c := New[rec](filepath.Join(t.TempDir(), "nope.json"))
	got, err := c.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	note := "hello"
	c := New[rec](filepath.Join(t.TempDir(), "sub", "recs.json"))
	in := []rec{{ID: "a", Note: &note}, {ID: "b"}}

	require.NoError(t, c.Save(in))
	got, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, in, got)

	raw, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"note": null`)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, err := New[rec](path).Load()
	require.Error(t, err)
	assert.Empty(t, got)

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "decode", se.Op)
}

func TestSave_NilWritesEmptyArray(t *testing.T) {
	c := New[rec](filepath.Join(t.TempDir(), "recs.json"))
	require.NoError(t, c.Save(nil))
	raw, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
