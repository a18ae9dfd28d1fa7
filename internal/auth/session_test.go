package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempSessionFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	t.Setenv("SESSION_FILE", path)
	return path
}

func TestSaveAndLoadSession(t *testing.T) {
	path := useTempSessionFile(t)

	require.NoError(t, SaveSession(&Session{Token: "tok-123", Email: "jane@example.com"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	s, err := LoadSession()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", s.Token)
	assert.Equal(t, "jane@example.com", s.Email)
	assert.False(t, s.SavedAt.IsZero())
}

func TestLoadSessionMissingFile(t *testing.T) {
	useTempSessionFile(t)

	_, err := LoadSession()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadSessionEmptyToken(t *testing.T) {
	path := useTempSessionFile(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"token":""}`), 0600))

	_, err := LoadSession()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClearSession(t *testing.T) {
	path := useTempSessionFile(t)
	require.NoError(t, SaveSession(&Session{Token: "tok-123"}))

	require.NoError(t, ClearSession())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	assert.NoError(t, ClearSession())
}
